package draw

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDataURL(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(1, 2, color.RGBA{R: 0xff, A: 0xff})

	uri, err := EncodeDataURL(img)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	data, err := DecodeDataURL(uri)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])

	decoded, err := DecodeDataURLImage(uri)
	require.NoError(t, err)
	r, _, _, a := decoded.At(1, 2).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestDecodeDataURLErrors(t *testing.T) {
	_, err := DecodeDataURL("data:image/jpeg;base64,AAAA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a png data URI")

	_, err = DecodeDataURL("data:image/png;base64,!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode data URI")

	_, err = DecodeDataURLImage("data:image/png;base64,AAAA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode png")
}
