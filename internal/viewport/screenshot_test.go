package viewport

import (
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveScreenshot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 64, 32
	f := newFixture(t, cfg)
	f.c.Frame()

	path, err := f.c.SaveScreenshot(t.TempDir())
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)

	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
	r, g, b, _ := img.At(10, 10).RGBA()
	assert.Equal(t, uint32(51), r>>8)
	assert.Equal(t, uint32(51), g>>8)
	assert.Equal(t, uint32(76), b>>8)
}

func TestSaveScreenshotWithoutView(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.c.Teardown()

	_, err := f.c.SaveScreenshot(t.TempDir())
	assert.ErrorIs(t, err, ErrTornDown)
}
