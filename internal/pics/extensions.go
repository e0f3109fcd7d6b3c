package pics

import (
	"path/filepath"
	"slices"
	"strings"
)

// Format identifies the image codec a candidate file is handled with.
type Format int

const (
	// FormatUnsupported marks files the compressor leaves alone.
	FormatUnsupported Format = iota
	// FormatJPEG covers .jpg and .jpeg files.
	FormatJPEG
	// FormatPNG covers .png files.
	FormatPNG
)

// String returns the lowercase codec name.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	default:
		return "unsupported"
	}
}

// Extensions defines the interface for file extension operations.
type Extensions interface {
	// Classify maps a path to its Format by extension, ignoring case.
	Classify(filePath string) Format
}

// extensions implements the Extensions interface.
type extensions struct {
	jpegExts []string
	pngExts  []string
}

// NewExtensions creates a new Extensions instance.
func NewExtensions() Extensions {
	return &extensions{
		jpegExts: []string{".jpg", ".jpeg"},
		pngExts:  []string{".png"},
	}
}

// Classify maps a path to its Format by extension, ignoring case.
func (e *extensions) Classify(filePath string) Format {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch {
	case slices.Contains(e.jpegExts, ext):
		return FormatJPEG
	case slices.Contains(e.pngExts, ext):
		return FormatPNG
	default:
		return FormatUnsupported
	}
}

