package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amreinch/removebg-pro/internal/api"
	"github.com/amreinch/removebg-pro/internal/model"
)

// ImageSaver writes downloaded images into a target directory. The directory
// is resolved per save so a settings change takes effect immediately.
type ImageSaver struct {
	dir func() string
}

// NewImageSaver creates a saver over a directory provider
func NewImageSaver(dir func() string) *ImageSaver {
	return &ImageSaver{dir: dir}
}

// Save writes the asset to disk and returns its path. The server-suggested
// filename wins when present; otherwise the name is derived from the file ID
// and format. Existing files are never overwritten.
func (s *ImageSaver) Save(asset *api.Asset, fileID string, format model.OutputFormat) (string, error) {
	dir := s.dir()
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create save directory: %w", err)
	}

	name := asset.Filename
	if name == "" {
		name = fmt.Sprintf("removebg-%s.%s", fileID, format)
	}

	path := uniquePath(filepath.Join(dir, filepath.Base(name)))
	if err := os.WriteFile(path, asset.Data, DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}

// uniquePath appends a numeric suffix until the path does not exist
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(path)
	base := path[:len(path)-len(ext)]
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
