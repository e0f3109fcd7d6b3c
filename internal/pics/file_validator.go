package pics

import (
	"errors"
	"fmt"
	"os"
)

// ErrEmptyFile is returned for candidate files with no content.
var ErrEmptyFile = errors.New("file is 0 bytes (corrupted)")

// statValidFile checks that a file exists and is not empty (0 bytes), and
// returns its FileInfo.
func statValidFile(filePath string) (os.FileInfo, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.Size() == 0 {
		return nil, ErrEmptyFile
	}
	return info, nil
}
