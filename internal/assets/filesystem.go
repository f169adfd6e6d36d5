package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemLoader loads assets from a directory laid out like the
// embedded one ({base}/styles/*.css, {base}/scripts/*.js).
// Reads go through os.Root, so neither names nor symlinks can reach
// files outside the base directory.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader checks that basePath is a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	info, err := os.Stat(abs)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{basePath: abs}, nil
}

// LoadStyle reads {base}/styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.load(Style, name)
}

// LoadScript reads {base}/scripts/{name}.js.
func (f *FilesystemLoader) LoadScript(name string) (string, error) {
	return f.load(Script, name)
}

func (f *FilesystemLoader) load(k Kind, name string) (string, error) {
	root, err := os.OpenRoot(f.basePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	defer root.Close()
	return readAsset(root.FS(), k, name)
}

var _ AssetLoader = (*FilesystemLoader)(nil)
