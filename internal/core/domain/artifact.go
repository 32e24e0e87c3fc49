package domain

import "fmt"

// ArtifactExt is the file extension of the built binary module.
const ArtifactExt = ".wasm"

// EntryModule is the virtual entry handed to the host dev server. It
// re-exports the resolved artifact path with the "?init" suffix as its default
// export: the host resolves that import to a factory taking an optional import
// object and returning a promise of the instantiated module.
type EntryModule struct {
	// ArtifactPath is the resolved artifact location.
	ArtifactPath string
}

// Source renders the entry module source.
func (e EntryModule) Source() string {
	return fmt.Sprintf("export { default } from %q;\n", e.ArtifactPath+"?init")
}
