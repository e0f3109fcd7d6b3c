package pics

import "fmt"

// Status is the outcome of processing one candidate file.
type Status int

const (
	// StatusSkipped means the file type is not handled; nothing was read.
	StatusSkipped Status = iota
	// StatusUntouched means the file was decoded but left byte-identical.
	StatusUntouched
	// StatusRewritten means the file was re-encoded in place.
	StatusRewritten
	// StatusFailed means an error stopped processing of this file.
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusUntouched:
		return "untouched"
	case StatusRewritten:
		return "rewritten"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes what happened to a single file.
type Result struct {
	// Path is the file as yielded by the walker.
	Path string
	// Format is the extension-derived codec.
	Format Format
	// Status is the outcome.
	Status Status
	// Reason explains a skipped or untouched file.
	Reason string
	// OriginalSize is the byte size before processing.
	OriginalSize int64
	// NewSize is the byte size after a rewrite; zero otherwise.
	NewSize int64
	// Err is set when Status is StatusFailed.
	Err error
}

// SizeChanged reports whether a rewrite changed the file size.
func (r Result) SizeChanged() bool {
	return r.Status == StatusRewritten && r.NewSize != r.OriginalSize
}

// ReportLine returns the human-readable line for this result, if any. Only
// size-changing rewrites and failures produce a line.
func (r Result) ReportLine() (string, bool) {
	switch {
	case r.Status == StatusFailed:
		return fmt.Sprintf("Error processing %s: %v", r.Path, r.Err), true
	case r.SizeChanged():
		return fmt.Sprintf("Processed %s: %.1fKB -> %.1fKB", r.Path, kib(r.OriginalSize), kib(r.NewSize)), true
	default:
		return "", false
	}
}

func kib(n int64) float64 {
	return float64(n) / 1024
}
