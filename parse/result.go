package parse

import (
	"time"

	"github.com/dhamidi/gramq/tree"
)

// Result is the outcome of one parse.
type Result struct {
	// Success is true when the root rule matched all of the text.
	Success bool
	// EndOffset is the furthest offset any explored path reached; the
	// text length on success.
	EndOffset int
	// Length is the length of the text in characters.
	Length int
	// Tree holds everything matched, also on failure.
	Tree *tree.Tree
	// Elapsed is the wall-clock duration of the match.
	Elapsed time.Duration
}

// Diagnostics summarizes a Result for status reporting.
type Diagnostics struct {
	Success        bool    `json:"success"`
	EndOffset      int     `json:"end_offset"`
	Length         int     `json:"length"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	NodeCount      int     `json:"node_count"`
}

// Diagnostics returns the summary of r.
func (r *Result) Diagnostics() Diagnostics {
	return Diagnostics{
		Success:        r.Success,
		EndOffset:      r.EndOffset,
		Length:         r.Length,
		ElapsedSeconds: r.Elapsed.Seconds(),
		NodeCount:      r.Tree.Len(),
	}
}
