package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFitJPEG_DownscalesLargeImage(t *testing.T) {
	data, err := FitJPEG(encodePNG(t, 2000, 1000))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err, "результат должен быть валидным JPEG")

	bounds := img.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 512)
	assert.LessOrEqual(t, bounds.Dy(), 512)
	// Пропорции 2:1 сохраняются.
	assert.Equal(t, 512, bounds.Dx())
	assert.Equal(t, 256, bounds.Dy())
}

func TestFitJPEG_KeepsSmallImageSize(t *testing.T) {
	data, err := FitJPEG(encodePNG(t, 100, 80))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx(), "маленькое фото не должно увеличиваться")
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestFitJPEG_RejectsGarbage(t *testing.T) {
	_, err := FitJPEG([]byte("definitely not an image"))
	require.Error(t, err)
}

func TestToDataURI(t *testing.T) {
	uri := ToDataURI([]byte{0xFF, 0xD8})
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
	assert.Greater(t, len(uri), len("data:image/jpeg;base64,"))
}
