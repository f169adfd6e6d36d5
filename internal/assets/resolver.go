package assets

import "errors"

// AssetResolver prefers assets from a custom directory and falls back to
// the embedded ones when the custom directory lacks the file. Only
// not-found errors fall back; invalid names and read failures surface.
type AssetResolver struct {
	custom   AssetLoader // nil without a custom directory
	embedded AssetLoader
}

// NewAssetResolver creates a resolver over customBasePath, or over the
// embedded assets alone when customBasePath is empty.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}
	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.load(AssetLoader.LoadStyle, name)
}

func (r *AssetResolver) LoadScript(name string) (string, error) {
	return r.load(AssetLoader.LoadScript, name)
}

func (r *AssetResolver) load(fn func(AssetLoader, string) (string, error), name string) (string, error) {
	if r.custom != nil {
		content, err := fn(r.custom, name)
		if !isNotFoundError(err) {
			return content, err
		}
	}
	return fn(r.embedded, name)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrScriptNotFound)
}

var _ AssetLoader = (*AssetResolver)(nil)
