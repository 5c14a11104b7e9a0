package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
)

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
)

// DefaultJPEGQuality is used when a JPEG is requested without a quality.
const DefaultJPEGQuality = 92

// ParseFormat maps a format name to a Format. The empty string selects PNG.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "png", "image/png":
		return PNG, nil
	case "jpeg", "jpg", "image/jpeg":
		return JPEG, nil
	case "bmp", "image/bmp":
		return BMP, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// MimeType returns the media type for f.
func (f Format) MimeType() string {
	return "image/" + string(f)
}

// Encoded contains an encoded image.
type Encoded struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`

	data []byte
}

// Bytes returns the raw encoded bytes.
func (e *Encoded) Bytes() []byte {
	return e.data
}

// DataURI returns the image as a base64 data URI.
func (e *Encoded) DataURI() string {
	return "data:" + e.MimeType + ";base64," + e.ImageBase64
}

// Encode encodes img in the given format. quality only applies to JPEG;
// values outside 1..100 select DefaultJPEGQuality.
func Encode(img image.Image, format Format, quality int) (*Encoded, error) {
	var enc imgio.Encoder
	switch format {
	case PNG:
		enc = imgio.PNGEncoder()
	case JPEG:
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		enc = imgio.JPEGEncoder(quality)
	case BMP:
		enc = imgio.BMPEncoder()
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}

	var buf bytes.Buffer
	if err := enc(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode %s image: %w", format, err)
	}

	return &Encoded{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    format.MimeType(),
		data:        buf.Bytes(),
	}, nil
}
