package viewport

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// SaveScreenshot writes the last rendered frame to dir as
// screenshot-<timestamp>.png and returns the file path.
func (c *Controller) SaveScreenshot(dir string) (string, error) {
	h := c.handle
	if h == nil {
		return "", ErrTornDown
	}

	img, err := h.Surface.Snapshot()
	if err != nil {
		return "", fmt.Errorf("reading frame: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("screenshot-%s.png", time.Now().Format("20060102-150405.000")))

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", err
	}

	c.log.Info("screenshot saved", zap.String("path", path))
	return path, nil
}
