package pics

import (
	"bytes"
	"encoding/binary"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// isPNG reports whether data starts with the PNG signature.
func isPNG(data []byte) bool {
	return bytes.HasPrefix(data, pngSignature)
}

// pngExifChunk returns the payload of the first eXIf chunk, a bare TIFF
// block, or nil if there is none.
func pngExifChunk(data []byte) []byte {
	if !isPNG(data) {
		return nil
	}
	rest := data[len(pngSignature):]
	// length(4) + type(4) + data + crc(4)
	for len(rest) >= 12 {
		n := uint64(binary.BigEndian.Uint32(rest[:4]))
		if n > uint64(len(rest)-12) {
			return nil
		}
		switch string(rest[4:8]) {
		case "eXIf":
			return rest[8 : 8+n]
		case "IEND":
			return nil
		}
		rest = rest[12+n:]
	}
	return nil
}
