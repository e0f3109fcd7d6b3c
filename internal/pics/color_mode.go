package pics

import (
	"image"
	"image/color"
)

// Mode classifies how a decoded image stores colour.
type Mode int

const (
	// ModeTruecolor has no palette and no alpha channel.
	ModeTruecolor Mode = iota
	// ModeAlpha carries an alpha channel.
	ModeAlpha
	// ModePalette is indexed through a palette.
	ModePalette
	// ModeGray is single-channel luminance.
	ModeGray
	// ModeCMYK is four-channel subtractive colour.
	ModeCMYK
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeTruecolor:
		return "truecolor"
	case ModeAlpha:
		return "alpha"
	case ModePalette:
		return "palette"
	case ModeGray:
		return "gray"
	case ModeCMYK:
		return "cmyk"
	default:
		return "unknown"
	}
}

// NeedsTruecolor reports whether images in this mode must be converted
// before they can be written as JPEG.
func (m Mode) NeedsTruecolor() bool {
	return m == ModeAlpha || m == ModePalette
}

// ModeOf classifies img by its concrete type. The standard decoders return
// RGBA only for opaque truecolor data.
func ModeOf(img image.Image) Mode {
	switch im := img.(type) {
	case *image.Paletted:
		return ModePalette
	case *image.NRGBA, *image.NRGBA64, *image.Alpha, *image.Alpha16, *image.NYCbCrA:
		return ModeAlpha
	case *image.Gray, *image.Gray16:
		return ModeGray
	case *image.CMYK:
		return ModeCMYK
	case *image.RGBA:
		if !im.Opaque() {
			return ModeAlpha
		}
		return ModeTruecolor
	case *image.RGBA64:
		if !im.Opaque() {
			return ModeAlpha
		}
		return ModeTruecolor
	default:
		return ModeTruecolor
	}
}

// ToTruecolor converts img to an opaque RGBA image by discarding alpha. The
// straight (non-premultiplied) colour is kept, so fully transparent pixels
// keep their stored colour instead of turning black.
func ToTruecolor(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			si := src.PixOffset(b.Min.X, y)
			di := dst.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Pix[di+0] = src.Pix[si+0]
				dst.Pix[di+1] = src.Pix[si+1]
				dst.Pix[di+2] = src.Pix[si+2]
				dst.Pix[di+3] = 0xff
				si += 4
				di += 4
			}
		}
	case *image.Paletted:
		lut := make([]color.RGBA, len(src.Palette))
		for i, c := range src.Palette {
			lut[i] = opaque(c)
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				idx := int(src.ColorIndexAt(x, y))
				if idx < len(lut) {
					dst.SetRGBA(x, y, lut[idx])
				} else {
					dst.SetRGBA(x, y, color.RGBA{A: 0xff})
				}
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.SetRGBA(x, y, opaque(img.At(x, y)))
			}
		}
	}
	return dst
}

func opaque(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}
}
