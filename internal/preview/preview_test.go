package preview

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironpeak/thermaview/internal/palette"
	"github.com/ironpeak/thermaview/internal/pixel"
)

func TestFromRasterY14(t *testing.T) {
	data := make([]byte, 2*2*2)
	pixel.PutU16(data, 0, 0)
	pixel.PutU16(data, 1, 16383)
	pixel.PutU16(data, 2, 8192)
	pixel.PutU16(data, 3, 8192)

	img, err := FromRaster(data, 2, 2, pixel.OutputY14)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, uint8(0), img.Pix[0], "cold pixel")
	assert.Equal(t, uint8(255), img.Pix[4], "hot pixel")
	assert.Equal(t, uint8(128), img.Pix[8], "mid pixel")
}

func TestFromRasterBGRSwapsChannels(t *testing.T) {
	data := []byte{10, 20, 30}

	img, err := FromRaster(data, 1, 1, pixel.OutputBGR888)
	require.NoError(t, err)
	assert.Equal(t, uint8(30), img.Pix[0], "red")
	assert.Equal(t, uint8(20), img.Pix[1], "green")
	assert.Equal(t, uint8(10), img.Pix[2], "blue")
	assert.Equal(t, uint8(255), img.Pix[3], "alpha")
}

func TestFromRasterYUV422(t *testing.T) {
	// Neutral chroma decodes to gray at the luma level.
	data := []byte{100, 128, 200, 128}
	img, err := FromRaster(data, 2, 1, pixel.OutputYUV422)
	require.NoError(t, err)
	assert.Equal(t, uint8(100), img.Pix[0])
	assert.Equal(t, uint8(200), img.Pix[4])
}

func TestFromRasterUnknownFormat(t *testing.T) {
	_, err := FromRaster([]byte{0}, 1, 1, pixel.OutputFormat(99))
	assert.Error(t, err)
}

func TestWithLegendLayout(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	out, err := WithLegend(img, palette.ModeBGR, 40.0, 28.0)
	require.NoError(t, err)

	// Frame, margin, bar and label gutter side by side; the canvas grows
	// to the bar height when the frame is shorter.
	assert.Equal(t, 32+margin+barWidth+labelArea, out.Bounds().Dx())
	assert.Equal(t, barHeight, out.Bounds().Dy())
}

func TestSaveWritesDecodableFile(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	path := filepath.Join(t.TempDir(), "frame.png")

	require.NoError(t, Save(img, path, Options{}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), decoded.Bounds())
}

func TestSaveScales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	path := filepath.Join(t.TempDir(), "scaled.png")

	require.NoError(t, Save(img, path, Options{Scale: 2, Smooth: 1}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 16, decoded.Bounds().Dx())
}
