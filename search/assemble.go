package search

import (
	"math"

	"github.com/transcout/transcout/core"
)

// defaultTopN is the number of source records returned when the caller
// doesn't ask for a specific count.
const defaultTopN = 5

// Assemble converts ranked matches into the public source record shape:
// truncated to topN, 1-based contiguous ranks preserving input order,
// similarity rounded to 4 decimals. A non-positive topN means the default.
// Empty input yields an empty, non-nil slice.
func Assemble(matches []*core.Match, topN int) []core.SourceRecord {
	if topN <= 0 {
		topN = defaultTopN
	}
	if len(matches) > topN {
		matches = matches[:topN]
	}

	records := make([]core.SourceRecord, 0, len(matches))
	for i, match := range matches {
		records = append(records, core.SourceRecord{
			Rank:          i + 1,
			TicketID:      match.TicketID,
			Title:         match.Title,
			Type:          match.Type,
			Similarity:    roundSimilarity(match.Similarity),
			Tags:          match.Tags,
			Relationships: match.Relationships,
		})
	}
	return records
}

func roundSimilarity(s float32) float32 {
	return float32(math.Round(float64(s)*10000) / 10000)
}
