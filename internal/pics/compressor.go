package pics

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/acm19/shrink/internal/logger"
)

// ImageCompressor defines the interface for compressing images
type ImageCompressor interface {
	// CompressFile normalises and, when its policy says so, re-encodes a
	// single file in place. Errors are reported in the Result, never returned.
	CompressFile(path string) Result
}

// imageCompressor implements the ImageCompressor interface
type imageCompressor struct {
	opts        Options
	extensions  Extensions
	orientation OrientationReader
}

// NewImageCompressor creates a new ImageCompressor that reads EXIF in-process
func NewImageCompressor(opts Options) ImageCompressor {
	return NewImageCompressorWithReader(opts, NewExifOrientationReader())
}

// NewImageCompressorWithReader creates a new ImageCompressor with a custom orientation source
func NewImageCompressorWithReader(opts Options, reader OrientationReader) ImageCompressor {
	return &imageCompressor{
		opts:        opts,
		extensions:  NewExtensions(),
		orientation: reader,
	}
}

// CompressFile decodes path, makes its pixels upright, converts colour mode
// for JPEG output and re-encodes it in place if the format policy applies.
func (c *imageCompressor) CompressFile(path string) Result {
	result := Result{Path: path, Format: c.extensions.Classify(path)}
	if result.Format == FormatUnsupported {
		result.Status = StatusSkipped
		result.Reason = "unsupported extension"
		logger.Debug("Skipping file", "path", path, "reason", result.Reason)
		return result
	}
	policy := c.opts.PolicyFor(result.Format)

	fail := func(err error) Result {
		result.Status = StatusFailed
		result.Err = err
		logger.Debug("Failed to process file", "path", path, "error", err)
		return result
	}

	info, err := statValidFile(path)
	if err != nil {
		return fail(err)
	}
	result.OriginalSize = info.Size()

	data, err := os.ReadFile(path)
	if err != nil {
		return fail(err)
	}

	img, codec, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fail(fmt.Errorf("decode: %w", err))
	}
	mode := ModeOf(img)
	logger.Debug("Decoded image", "path", path, "codec", codec, "mode", mode, "bounds", img.Bounds())

	orientation, err := c.orientation.ReadOrientation(path, data)
	if err != nil {
		return fail(fmt.Errorf("read orientation: %w", err))
	}
	if orientation != OrientNormal {
		logger.Debug("Applying EXIF orientation", "path", path, "orientation", int(orientation))
		if policy.Flatten {
			img = ApplyOrientation(img, orientation)
		} else {
			img = ReorientPreserving(img, orientation)
		}
	}

	if policy.Flatten && mode.NeedsTruecolor() {
		logger.Debug("Converting to truecolor", "path", path, "mode", mode)
		img = ToTruecolor(img)
	}

	if !policy.ShouldEncode(result.OriginalSize) {
		// The in-memory orientation fix is dropped along with img.
		result.Status = StatusUntouched
		result.Reason = fmt.Sprintf("%d bytes is not above the %d byte threshold", result.OriginalSize, policy.Threshold)
		logger.Debug("Leaving file untouched", "path", path, "reason", result.Reason)
		return result
	}

	var encoded bytes.Buffer
	if err := encodeImage(&encoded, img, policy); err != nil {
		return fail(fmt.Errorf("encode: %w", err))
	}
	if err := replaceFile(path, info, encoded.Bytes()); err != nil {
		return fail(err)
	}

	newInfo, err := os.Stat(path)
	if err != nil {
		return fail(err)
	}
	result.Status = StatusRewritten
	result.NewSize = newInfo.Size()
	logger.Debug("Rewrote file", "path", path, "before", result.OriginalSize, "after", result.NewSize)
	return result
}

// encodeImage writes img in the policy's format.
func encodeImage(w io.Writer, img image.Image, policy Policy) error {
	switch policy.Format {
	case FormatJPEG:
		// image/jpeg always writes standard Huffman tables; Optimize has no
		// further knob to turn.
		return jpeg.Encode(w, img, &jpeg.Options{Quality: policy.Quality})
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.DefaultCompression}
		if policy.Optimize {
			enc.CompressionLevel = png.BestCompression
		}
		return enc.Encode(w, img)
	default:
		return fmt.Errorf("no encoder for format %s", policy.Format)
	}
}

// replaceFile writes data as the new content of path. Symlinks are resolved so
// the link itself survives and its target is rewritten. A file with other hard
// links is overwritten in place so every name keeps seeing the same inode;
// otherwise data goes through a temporary sibling that is renamed over the
// original, taking its permission bits and, when possible, its owner.
func replaceFile(path string, info fs.FileInfo, data []byte) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fmt.Errorf("replace: %w", err)
	}

	if hardLinked(info) {
		logger.Debug("Overwriting hard-linked file in place", "path", target)
		return overwriteFile(target, data)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	if err := preserveOwner(tmpPath, info); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	return nil
}

// overwriteFile truncates target and writes data into the existing inode.
func overwriteFile(target string, data []byte) error {
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
