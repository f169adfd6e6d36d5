// Package assets provides the picker script and preview stylesheets.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the CLI. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader when the asset is not
// found, so a single stylesheet can be overridden while keeping the rest.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # preview stylesheets (e.g., preview.css)
//	└── scripts/
//	    └── {name}.js            # browser scripts (e.g., picker.js)
//
// # Security
//
// Names holding separators or dots are rejected before any read.
// FilesystemLoader reads through os.Root, which refuses paths and symlinks
// leaving the base directory.
package assets
