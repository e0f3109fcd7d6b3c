package pics

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"path/filepath"
	"slices"

	"github.com/acm19/shrink/internal/logger"
	"github.com/barasher/go-exiftool"
	"github.com/disintegration/gift"
	"github.com/rwcarlsen/goexif/exif"
)

// Orientation is the value of the EXIF Orientation tag (1-8).
type Orientation int

const (
	OrientNormal         Orientation = 1
	OrientFlipHorizontal Orientation = 2
	OrientRotate180      Orientation = 3
	OrientFlipVertical   Orientation = 4
	OrientTranspose      Orientation = 5
	OrientRotate90CW     Orientation = 6
	OrientTransverse     Orientation = 7
	OrientRotate90CCW    Orientation = 8
)

// orientationFromValue maps a raw tag value to an Orientation. Values outside
// 1-8 are treated as upright.
func orientationFromValue(v int) Orientation {
	if v < int(OrientNormal) || v > int(OrientRotate90CCW) {
		return OrientNormal
	}
	return Orientation(v)
}

// exiftoolDescriptions are the print-converted Orientation values exiftool
// emits when numeric output is not requested.
var exiftoolDescriptions = map[string]Orientation{
	"Horizontal (normal)":                 OrientNormal,
	"Mirror horizontal":                   OrientFlipHorizontal,
	"Rotate 180":                          OrientRotate180,
	"Mirror vertical":                     OrientFlipVertical,
	"Mirror horizontal and rotate 270 CW": OrientTranspose,
	"Rotate 90 CW":                        OrientRotate90CW,
	"Mirror horizontal and rotate 90 CW":  OrientTransverse,
	"Rotate 270 CW":                       OrientRotate90CCW,
}

// filter returns the transform that makes an image with this orientation
// upright, or nil when none is needed.
func (o Orientation) filter() gift.Filter {
	switch o {
	case OrientFlipHorizontal:
		return gift.FlipHorizontal()
	case OrientRotate180:
		return gift.Rotate180()
	case OrientFlipVertical:
		return gift.FlipVertical()
	case OrientTranspose:
		return gift.Transpose()
	case OrientRotate90CW:
		// gift rotates counter-clockwise.
		return gift.Rotate270()
	case OrientTransverse:
		return gift.Transverse()
	case OrientRotate90CCW:
		return gift.Rotate90()
	default:
		return nil
	}
}

// ApplyOrientation returns img transformed so that its pixels are upright.
// The input is returned unchanged for OrientNormal and unknown values.
func ApplyOrientation(img image.Image, o Orientation) image.Image {
	f := o.filter()
	if f == nil {
		return img
	}
	g := gift.New(f)
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// swapsAxes reports whether the upright image has width and height exchanged.
func (o Orientation) swapsAxes() bool {
	return o >= OrientTranspose && o <= OrientRotate90CCW
}

// sourceOf returns the pixel of a w x h source that lands at (x, y) once the
// orientation is undone.
func (o Orientation) sourceOf(x, y, w, h int) (int, int) {
	switch o {
	case OrientFlipHorizontal:
		return w - 1 - x, y
	case OrientRotate180:
		return w - 1 - x, h - 1 - y
	case OrientFlipVertical:
		return x, h - 1 - y
	case OrientTranspose:
		return y, x
	case OrientRotate90CW:
		return y, h - 1 - x
	case OrientTransverse:
		return w - 1 - y, h - 1 - x
	case OrientRotate90CCW:
		return w - 1 - y, x
	default:
		return x, y
	}
}

// ReorientPreserving undoes o by copying pixels, never resampling. The result
// keeps the concrete type of img, so bit depth and palette survive a lossless
// re-encode.
func ReorientPreserving(img image.Image, o Orientation) image.Image {
	if o.filter() == nil {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rect := image.Rect(0, 0, w, h)
	if o.swapsAxes() {
		rect = image.Rect(0, 0, h, w)
	}

	if p, ok := img.(*image.Paletted); ok {
		dst := image.NewPaletted(rect, slices.Clone(p.Palette))
		for y := 0; y < rect.Dy(); y++ {
			for x := 0; x < rect.Dx(); x++ {
				sx, sy := o.sourceOf(x, y, w, h)
				dst.SetColorIndex(x, y, p.ColorIndexAt(b.Min.X+sx, b.Min.Y+sy))
			}
		}
		return dst
	}

	dst := newImageLike(img, rect)
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			sx, sy := o.sourceOf(x, y, w, h)
			dst.Set(x, y, img.At(b.Min.X+sx, b.Min.Y+sy))
		}
	}
	return dst
}

// newImageLike allocates an image of img's type. Types without a matching
// constructor get 16-bit NRGBA, which holds any decoded PNG pixel exactly.
func newImageLike(img image.Image, r image.Rectangle) draw.Image {
	switch img.(type) {
	case *image.Gray:
		return image.NewGray(r)
	case *image.Gray16:
		return image.NewGray16(r)
	case *image.RGBA:
		return image.NewRGBA(r)
	case *image.RGBA64:
		return image.NewRGBA64(r)
	case *image.NRGBA:
		return image.NewNRGBA(r)
	case *image.CMYK:
		return image.NewCMYK(r)
	default:
		return image.NewNRGBA64(r)
	}
}

// OrientationReader defines the interface for reading EXIF orientation.
type OrientationReader interface {
	// ReadOrientation returns the orientation of the image at path whose
	// encoded bytes are data. Images without the tag are OrientNormal.
	ReadOrientation(path string, data []byte) (Orientation, error)
}

// exifOrientationReader parses EXIF in-process from JPEG APP1 segments and
// PNG eXIf chunks.
type exifOrientationReader struct{}

// NewExifOrientationReader creates the built-in OrientationReader.
func NewExifOrientationReader() OrientationReader {
	return &exifOrientationReader{}
}

// ReadOrientation returns the orientation stored in data. Missing or
// malformed EXIF yields OrientNormal.
func (r *exifOrientationReader) ReadOrientation(path string, data []byte) (Orientation, error) {
	src := data
	if isPNG(data) {
		src = pngExifChunk(data)
		if src == nil {
			return OrientNormal, nil
		}
	}

	x, err := exif.Decode(bytes.NewReader(src))
	if x == nil {
		logger.Debug("No EXIF data", "file", filepath.Base(path), "error", err)
		return OrientNormal, nil
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return OrientNormal, nil
	}
	v, err := tag.Int(0)
	if err != nil {
		logger.Debug("Unreadable orientation tag", "file", filepath.Base(path), "error", err)
		return OrientNormal, nil
	}
	return orientationFromValue(v), nil
}

// exiftoolOrientationReader reads orientation through a running exiftool
// process, which understands every container exiftool does.
type exiftoolOrientationReader struct {
	et *exiftool.Exiftool
}

// NewExiftoolOrientationReader creates an OrientationReader backed by exiftool.
// The caller owns et and must close it.
func NewExiftoolOrientationReader(et *exiftool.Exiftool) OrientationReader {
	return &exiftoolOrientationReader{et: et}
}

// ReadOrientation extracts the Orientation tag for path; data is unused.
func (r *exiftoolOrientationReader) ReadOrientation(path string, _ []byte) (Orientation, error) {
	if r.et == nil {
		return 0, fmt.Errorf("exiftool not initialised")
	}

	fileInfos := r.et.ExtractMetadata(path)
	if len(fileInfos) == 0 {
		return OrientNormal, nil
	}
	fileInfo := fileInfos[0]
	if fileInfo.Err != nil {
		return 0, fileInfo.Err
	}

	if v, err := fileInfo.GetInt("Orientation"); err == nil {
		return orientationFromValue(int(v)), nil
	}
	desc, err := fileInfo.GetString("Orientation")
	if err != nil {
		return OrientNormal, nil
	}
	if o, ok := exiftoolDescriptions[desc]; ok {
		return o, nil
	}
	logger.Debug("Unknown orientation description", "file", filepath.Base(path), "value", desc)
	return OrientNormal, nil
}
