package pics

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/acm19/shrink/internal/logger"
)

// Walker defines the interface for enumerating candidate files.
type Walker interface {
	// Walk yields every regular file reachable from root, depth-first.
	// A missing root yields nothing.
	Walk(root string) iter.Seq[string]
}

// fileWalker implements the Walker interface on the local filesystem.
type fileWalker struct{}

// NewWalker creates a new Walker instance
func NewWalker() Walker {
	return &fileWalker{}
}

// Walk yields every regular file reachable from root. If root is itself a
// file it is the only path yielded. Symlinked directories are not descended.
func (w *fileWalker) Walk(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		info, err := os.Stat(root)
		if err != nil {
			logger.Debug("Skipping missing root", "path", root, "error", err)
			return
		}

		if info.Mode().IsRegular() {
			yield(root)
			return
		}
		if !info.IsDir() {
			logger.Debug("Skipping root that is neither file nor directory", "path", root, "mode", info.Mode())
			return
		}

		// WalkDir does not follow a symlinked root; a trailing separator makes
		// Lstat resolve it.
		walkRoot := root
		if linfo, err := os.Lstat(root); err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
			walkRoot = root + string(filepath.Separator)
		}

		filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Debug("Error accessing path", "path", path, "error", err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() || !isRegularFile(path, d) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// isRegularFile reports whether a walked entry is a regular file, resolving
// symlinks to their target.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := os.Stat(path)
	if err != nil {
		logger.Debug("Skipping dangling symlink", "path", path, "error", err)
		return false
	}
	return target.Mode().IsRegular()
}
