package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateImageAcceptsPNG(t *testing.T) {
	p := NewImageProcessor(5 * 1024 * 1024)
	assert.NoError(t, p.ValidateImage(encodePNG(t, 10, 10)))
}

func TestValidateImageRejectsOversized(t *testing.T) {
	p := NewImageProcessor(16)
	err := p.ValidateImage(encodePNG(t, 10, 10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestValidateImageRejectsNonImage(t *testing.T) {
	p := NewImageProcessor(5 * 1024 * 1024)
	err := p.ValidateImage([]byte("not an image at all"))
	require.Error(t, err)
}

func TestProcessImageProducesVariants(t *testing.T) {
	p := NewImageProcessor(5 * 1024 * 1024)

	variants, err := p.ProcessImage(encodePNG(t, 2000, 1000))
	require.NoError(t, err)
	require.Len(t, variants, 3)

	wantWidths := map[string]int{"large": 1200, "medium": 600, "thumbnail": 300}
	for name, maxWidth := range wantWidths {
		data, ok := variants[name]
		require.True(t, ok, "missing variant %s", name)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.LessOrEqual(t, cfg.Width, maxWidth)
		assert.LessOrEqual(t, cfg.Height, maxWidth)
	}
}

func TestProcessImageDoesNotUpscale(t *testing.T) {
	p := NewImageProcessor(5 * 1024 * 1024)

	variants, err := p.ProcessImage(encodePNG(t, 100, 50))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(variants["large"]))
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, 100)
	assert.LessOrEqual(t, cfg.Height, 50)
}
