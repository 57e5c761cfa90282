package certimage

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeWithoutTemplate(t *testing.T) {
	r, err := NewRenderer("", "")
	require.NoError(t, err)

	data, err := r.Compose("Ada Lovelace", "Go Basics")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err, "compose must produce a valid PNG")
	assert.Equal(t, fallbackWidth, img.Bounds().Dx())
	assert.Equal(t, fallbackHeight, img.Bounds().Dy())
}

func TestNewRendererMissingAssets(t *testing.T) {
	_, err := NewRenderer("does-not-exist.png", "")
	assert.Error(t, err)

	_, err = NewRenderer("", "does-not-exist.ttf")
	assert.Error(t, err)
}
