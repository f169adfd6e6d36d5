package assets

import (
	"embed"
	"io/fs"
)

//go:embed styles scripts
var files embed.FS

// EmbeddedLoader loads the assets compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: files}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readAsset(e.fsys, Style, name)
}

func (e *EmbeddedLoader) LoadScript(name string) (string, error) {
	return readAsset(e.fsys, Script, name)
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
