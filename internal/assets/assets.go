package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
)

// Built-in asset names.
const (
	DefaultStyleName = "preview"
	PlainStyleName   = "plain"
	PickerScriptName = "picker"
)

// AssetLoader loads stylesheets and browser scripts by bare name
// (no directory, no extension).
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadScript(name string) (string, error)
}

// Kind selects the directory and extension of an asset.
type Kind int

const (
	Style Kind = iota
	Script
)

func (k Kind) String() string {
	if k == Script {
		return "script"
	}
	return "style"
}

func (k Kind) dir() string {
	if k == Script {
		return "scripts"
	}
	return "styles"
}

func (k Kind) ext() string {
	if k == Script {
		return ".js"
	}
	return ".css"
}

func (k Kind) errNotFound() error {
	if k == Script {
		return ErrScriptNotFound
	}
	return ErrStyleNotFound
}

// path is the slash-separated location of name below a base directory.
func (k Kind) path(name string) string {
	return k.dir() + "/" + name + k.ext()
}

// ValidateAssetName rejects empty names and names holding separators or dots,
// so a name can neither leave its directory nor change its extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// readAsset reads a named asset of kind k from fsys.
func readAsset(fsys fs.FS, k Kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(fsys, k.path(name))
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.errNotFound(), name)
	default:
		return "", fmt.Errorf("%w: %s %q: %v", ErrAssetRead, k, name, err)
	}
}

// StyleNames lists the embedded stylesheets, the default first.
func StyleNames() []string {
	matches, _ := fs.Glob(files, Style.path("*"))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(strings.TrimPrefix(m, Style.dir()+"/"), Style.ext())
		if name != DefaultStyleName {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return append([]string{DefaultStyleName}, names...)
}

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads an embedded stylesheet.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadScript loads an embedded browser script.
func LoadScript(name string) (string, error) {
	return defaultLoader.LoadScript(name)
}
