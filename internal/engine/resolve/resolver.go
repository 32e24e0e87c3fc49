// Package resolve derives the frozen build configuration for a session.
package resolve

import (
	"context"
	"path/filepath"
	"sync"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver turns raw build options into a domain.BuildConfig. One resolver
// serves one session: the compiler tag is cached on the instance after the
// first query and never asked from the toolchain again, while the product
// lookup runs fresh on every call because the set of executable targets
// changes as the package is edited.
type Resolver struct {
	toolchain ports.Toolchain

	tagOnce sync.Once
	tag     string
	tagErr  error
}

// NewResolver creates a Resolver on top of the given toolchain.
func NewResolver(toolchain ports.Toolchain) *Resolver {
	return &Resolver{toolchain: toolchain}
}

// Resolve produces the build configuration for opts. Steps run in order: SDK
// identifier, product, toolset sequence, artifact path. Only the SDK query,
// the manifest dump, and the bin-path query touch the toolchain.
func (r *Resolver) Resolve(ctx context.Context, opts domain.BuildOptions) (domain.BuildConfig, error) {
	sdkID, err := r.sdkIdentifier(ctx, opts)
	if err != nil {
		return domain.BuildConfig{}, err
	}

	product, err := r.product(ctx, opts)
	if err != nil {
		return domain.BuildConfig{}, err
	}

	cfg := domain.BuildConfig{
		SDKIdentifier: sdkID,
		Product:       product,
		Configuration: opts.Configuration,
		ToolsetFlags:  toolsetSequence(opts),
		ExtraArgs:     opts.ExtraArgs,
		PackagePath:   opts.PackagePath,
	}

	binDir, err := r.toolchain.BinPath(ctx, cfg)
	if err != nil {
		return domain.BuildConfig{}, err
	}
	cfg.ArtifactPath = filepath.Join(binDir, product+domain.ArtifactExt)

	return cfg, nil
}

// sdkIdentifier resolves the toolchain SDK identifier. An explicit override
// replaces detection verbatim and the embedded flag is ignored entirely; it
// is a documented override, not a merge. Without an override the identifier
// is composed from the cached compiler tag.
func (r *Resolver) sdkIdentifier(ctx context.Context, opts domain.BuildOptions) (string, error) {
	if opts.SDKOverride != "" {
		return opts.SDKOverride, nil
	}

	r.tagOnce.Do(func() {
		r.tag, r.tagErr = r.toolchain.CompilerTag(ctx)
	})
	if r.tagErr != nil {
		return "", r.tagErr
	}

	id := r.tag + "_wasm"
	if opts.Embedded {
		id += "-embedded"
	}
	return id, nil
}

// product picks the build target. An explicit product always wins; otherwise
// the manifest must contain exactly one locally defined executable, skipping
// executables that belong to a dependency package.
func (r *Resolver) product(ctx context.Context, opts domain.BuildOptions) (string, error) {
	if opts.Product != "" {
		return opts.Product, nil
	}

	manifest, err := r.toolchain.Manifest(ctx, opts.PackagePath)
	if err != nil {
		return "", err
	}

	executables := manifest.LocalExecutables()
	if len(executables) != 1 {
		err := zerr.With(domain.ErrAmbiguousTarget, "package_path", opts.PackagePath)
		return "", zerr.With(err, "executables", len(executables))
	}

	return executables[0], nil
}

// toolsetSequence assembles the ordered toolset entries. Order matters: later
// entries may override earlier ones, and the reactor entry is always last
// because the artifact is always built as a reactor module.
func toolsetSequence(opts domain.BuildOptions) []domain.ToolsetEntry {
	var entries []domain.ToolsetEntry
	if opts.Embedded && opts.UnicodeLinking {
		entries = append(entries, domain.ToolsetEmbeddedUnicode)
	}
	return append(entries, domain.ToolsetReactor)
}
