package scan

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDecodeRejectsNonImageBytes(t *testing.T) {
	d := NewDecoder(zap.NewNop())

	codes, err := d.Decode([]byte("definitely not an image"))
	require.ErrorIs(t, err, ErrUnreadableImage)
	assert.Nil(t, codes)
}

func TestDecodeBlankImageFindsNothing(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	d := NewDecoder(zap.NewNop())
	codes, err := d.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestRotatePreservesPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	rotated := rotate(img, 1)
	assert.Equal(t, 3, rotated.Bounds().Dx())
	assert.Equal(t, 2, rotated.Bounds().Dy())

	// A full turn restores the original dimensions.
	full := rotate(img, 4)
	assert.Equal(t, img.Bounds(), full.Bounds())
}
