package pics

import (
	"fmt"
	"io"

	"github.com/acm19/shrink/internal/logger"
)

// DefaultRoot is walked when no paths are given.
const DefaultRoot = "public"

// Runner defines the interface for compressing every image under a set of roots.
type Runner interface {
	// Run processes every file under roots in walk order, writing one report
	// line per size-changing rewrite or failure to out.
	Run(roots []string, out io.Writer) Summary
}

// runner implements the Runner interface sequentially.
type runner struct {
	walker     Walker
	compressor ImageCompressor
}

// NewRunner creates a new Runner instance
func NewRunner(walker Walker, compressor ImageCompressor) Runner {
	return &runner{
		walker:     walker,
		compressor: compressor,
	}
}

// Run processes each root in order. A failing file never stops the walk.
func (r *runner) Run(roots []string, out io.Writer) Summary {
	if len(roots) == 0 {
		roots = []string{DefaultRoot}
	}

	var summary Summary
	for _, root := range roots {
		logger.Debug("Walking root", "path", root)
		for path := range r.walker.Walk(root) {
			result := r.compressor.CompressFile(path)
			summary.Add(result)
			if line, ok := result.ReportLine(); ok {
				fmt.Fprintln(out, line)
			}
		}
	}

	logger.Info("Compression finished",
		"files", summary.Files,
		"rewritten", summary.Rewritten,
		"untouched", summary.Untouched,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"saved_kb", fmt.Sprintf("%.1f", kib(summary.SpaceSaved())))
	return summary
}
