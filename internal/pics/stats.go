package pics

// Summary aggregates per-file results across a run.
type Summary struct {
	// Files is the number of paths handed to the compressor.
	Files int
	// Rewritten counts files re-encoded in place.
	Rewritten int
	// Untouched counts supported files left byte-identical.
	Untouched int
	// Skipped counts files with unsupported extensions.
	Skipped int
	// Failed counts files that produced an error.
	Failed int
	// BytesBefore is the total original size of rewritten files.
	BytesBefore int64
	// BytesAfter is the total new size of rewritten files.
	BytesAfter int64
}

// Add records a single result.
func (s *Summary) Add(r Result) {
	s.Files++
	switch r.Status {
	case StatusRewritten:
		s.Rewritten++
		s.BytesBefore += r.OriginalSize
		s.BytesAfter += r.NewSize
	case StatusUntouched:
		s.Untouched++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// SpaceSaved returns the byte difference between original and rewritten
// files. Positive means the rewrites are smaller.
func (s *Summary) SpaceSaved() int64 {
	return s.BytesBefore - s.BytesAfter
}
