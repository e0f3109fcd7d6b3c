package pics

import (
	"testing"
)

func TestExtensions_Classify(t *testing.T) {
	ext := NewExtensions()

	tests := []struct {
		filePath string
		expected Format
	}{
		{"photo.jpg", FormatJPEG},
		{"photo.JPG", FormatJPEG},
		{"photo.jpeg", FormatJPEG},
		{"photo.JpEg", FormatJPEG},
		{"logo.png", FormatPNG},
		{"logo.PNG", FormatPNG},
		{"photo.heic", FormatUnsupported},
		{"anim.gif", FormatUnsupported},
		{"notes.txt", FormatUnsupported},
		{"README", FormatUnsupported},
		{"archive.png.bak", FormatUnsupported},
		{"photo.jpg.txt", FormatUnsupported},
		{".png", FormatPNG},
		{"/path/to/image.jpg", FormatJPEG},
		{"/path.png/to/file", FormatUnsupported},
	}

	for _, tt := range tests {
		result := ext.Classify(tt.filePath)
		if result != tt.expected {
			t.Errorf("Classify(%s) = %v, expected %v", tt.filePath, result, tt.expected)
		}
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatJPEG, "jpeg"},
		{FormatPNG, "png"},
		{FormatUnsupported, "unsupported"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.expected {
			t.Errorf("Format(%d).String() = %q, expected %q", tt.format, got, tt.expected)
		}
	}
}
