// Package answer generates grounded natural-language answers.
//
// A Generator runs hybrid retrieval for the query, renders the surviving
// source records as numbered context blocks, and asks the chat model to
// answer from that context, citing sources by number.
package answer
