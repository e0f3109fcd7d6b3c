//go:build unix

package pics

import (
	"io/fs"
	"os"
	"syscall"
)

// hardLinked reports whether the file described by info has more than one name.
func hardLinked(info fs.FileInfo) bool {
	st, ok := info.Sys().(*syscall.Stat_t)
	return ok && st.Nlink > 1
}

// preserveOwner gives path the owner and group recorded in info. Only root can
// hand files to other users, so for everyone else this is a no-op.
func preserveOwner(path string, info fs.FileInfo) error {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || os.Geteuid() != 0 {
		return nil
	}
	return os.Chown(path, int(st.Uid), int(st.Gid))
}
