package pics

// DefaultJPEGQuality is the JPEG quality used when none is configured.
const DefaultJPEGQuality = 80

// DefaultPNGThreshold is the byte size above which PNG files are re-encoded.
const DefaultPNGThreshold int64 = 500 * 1024

// Options holds configuration options for compressing images.
type Options struct {
	// JPEGQuality is the quality level for JPEG re-encoding (1-100).
	JPEGQuality int
	// PNGThreshold is the original size in bytes a PNG must exceed to be re-encoded.
	PNGThreshold int64
}

// DefaultOptions returns the default compression options.
func DefaultOptions() Options {
	return Options{
		JPEGQuality:  DefaultJPEGQuality,
		PNGThreshold: DefaultPNGThreshold,
	}
}

// Policy is the encode decision for a single file, derived from its format.
type Policy struct {
	// Format is the codec the file is written back with.
	Format Format
	// Always forces a re-encode regardless of size.
	Always bool
	// Threshold is the size a file must exceed when Always is false.
	Threshold int64
	// Quality is the lossy quality factor; zero for lossless formats.
	Quality int
	// Optimize selects the smallest encoding the codec offers.
	Optimize bool
	// Flatten drops alpha and palette indirection before encoding.
	Flatten bool
}

// PolicyFor returns the encode policy for the given format.
func (o Options) PolicyFor(format Format) Policy {
	switch format {
	case FormatJPEG:
		return Policy{
			Format:   FormatJPEG,
			Always:   true,
			Quality:  o.JPEGQuality,
			Optimize: true,
			Flatten:  true,
		}
	case FormatPNG:
		return Policy{
			Format:    FormatPNG,
			Threshold: o.PNGThreshold,
			Optimize:  true,
		}
	default:
		return Policy{Format: FormatUnsupported}
	}
}

// ShouldEncode reports whether a file of the given original size is re-encoded.
func (p Policy) ShouldEncode(originalSize int64) bool {
	if p.Format == FormatUnsupported {
		return false
	}
	return p.Always || originalSize > p.Threshold
}
