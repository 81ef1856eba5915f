package imageproc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"unicode"

	_ "github.com/gen2brain/avif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// MaxPixels caps width*height of an accepted image. Larger images are
// rejected from their header before any pixel buffer is allocated.
const MaxPixels = 178956970

var (
	// ErrEmptyImage is returned when the decoded payload has no bytes.
	ErrEmptyImage = errors.New("empty image data")
	// ErrTooManyPixels is returned for images whose header exceeds MaxPixels.
	ErrTooManyPixels = errors.New("image exceeds pixel limit")
)

// StripDataURL drops everything up to and including the first comma, so
// "data:image/png;base64,AAAA" becomes "AAAA". Strings without a comma are
// returned unchanged.
func StripDataURL(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[i+1:]
	}
	return s
}

// DecodeBase64 decodes standard base64, ignoring embedded whitespace.
// Unpadded input is accepted as well.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}
	if len(s)%4 != 0 {
		if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); rawErr == nil {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("invalid base64 image data: %w", err)
}

// Payload returns the raw image bytes carried by a base64 string or data-URL.
func Payload(encoded string) ([]byte, error) {
	return DecodeBase64(StripDataURL(encoded))
}

// Decode parses image bytes in any registered format and returns the image
// together with the format name. The header is checked against MaxPixels
// first.
func Decode(b []byte) (image.Image, string, error) {
	if len(b) == 0 {
		return nil, "", ErrEmptyImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("cannot identify image: %w", err)
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > MaxPixels {
		return nil, "", fmt.Errorf("%w: %dx%d is %d pixels, limit %d", ErrTooManyPixels, cfg.Width, cfg.Height, px, MaxPixels)
	}
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("cannot identify image: %w", err)
	}
	return img, format, nil
}
