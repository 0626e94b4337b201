package draw

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// pngDataURLPrefix is the header of every data URI produced by EncodeDataURL.
const pngDataURLPrefix = "data:image/png;base64,"

// EncodeDataURL encodes img as a base64 PNG data URI.
func EncodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode png: %w", err)
	}
	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURL returns the raw PNG bytes of a data URI made by EncodeDataURL.
func DecodeDataURL(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, pngDataURLPrefix) {
		return nil, fmt.Errorf("not a png data URI")
	}
	data, err := base64.StdEncoding.DecodeString(uri[len(pngDataURLPrefix):])
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI: %w", err)
	}
	return data, nil
}

// DecodeDataURLImage decodes a PNG data URI into an image.
func DecodeDataURLImage(uri string) (image.Image, error) {
	data, err := DecodeDataURL(uri)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode png: %w", err)
	}
	return img, nil
}
