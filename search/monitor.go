package search

import "github.com/transcout/transcout/core"

// RetrievalMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results.
type RetrievalMonitor interface {
	Start(query string)
	AfterIntentExtraction(intent core.Intent)
	AfterQueryEmbedding(dimension int)
	AfterFilteredPass(matches []*core.Match)
	FallbackToApproximate()
	AfterApproximatePass(matches []*core.Match)
	Finish(records []core.SourceRecord)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) AfterIntentExtraction(_ core.Intent)  {}
func (n *noopMonitor) AfterQueryEmbedding(_ int)            {}
func (n *noopMonitor) AfterFilteredPass(_ []*core.Match)    {}
func (n *noopMonitor) FallbackToApproximate()               {}
func (n *noopMonitor) AfterApproximatePass(_ []*core.Match) {}
func (n *noopMonitor) Finish(_ []core.SourceRecord)         {}
