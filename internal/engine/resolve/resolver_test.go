package resolve_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/resolve"
	"go.uber.org/mock/gomock"
)

const binDir = ".build/wasm32-unknown-wasi/debug"

func setupResolverTest(t *testing.T) (*resolve.Resolver, *mocks.MockToolchain) {
	t.Helper()
	ctrl := gomock.NewController(t)
	tc := mocks.NewMockToolchain(ctrl)
	return resolve.NewResolver(tc), tc
}

func singleExecutableManifest() domain.Manifest {
	return domain.Manifest{
		Name: "demo",
		Targets: []domain.Target{
			{Name: "App", Type: "executable"},
			{Name: "AppLib", Type: "library"},
		},
	}
}

func TestResolver_OverrideVerbatim(t *testing.T) {
	r, tc := setupResolverTest(t)

	// No CompilerTag expectation: detection must not run when an override is
	// present, and the embedded flag must not decorate the override.
	tc.EXPECT().Manifest(gomock.Any(), ".").Return(singleExecutableManifest(), nil)
	tc.EXPECT().BinPath(gomock.Any(), gomock.Any()).Return(binDir, nil)

	opts := domain.DefaultBuildOptions()
	opts.SDKOverride = "wasm32-unknown-wasi_wasm"
	opts.Embedded = true

	cfg, err := r.Resolve(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "wasm32-unknown-wasi_wasm", cfg.SDKIdentifier)
}

func TestResolver_SDKIdentifierComposition(t *testing.T) {
	tests := []struct {
		name     string
		embedded bool
		want     string
	}{
		{name: "standard", embedded: false, want: "swift-6.2-RELEASE_wasm"},
		{name: "embedded", embedded: true, want: "swift-6.2-RELEASE_wasm-embedded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, tc := setupResolverTest(t)
			tc.EXPECT().CompilerTag(gomock.Any()).Return("swift-6.2-RELEASE", nil)
			tc.EXPECT().Manifest(gomock.Any(), gomock.Any()).Return(singleExecutableManifest(), nil)
			tc.EXPECT().BinPath(gomock.Any(), gomock.Any()).Return(binDir, nil)

			opts := domain.DefaultBuildOptions()
			opts.Embedded = tt.embedded
			opts.UnicodeLinking = false

			cfg, err := r.Resolve(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.SDKIdentifier)
		})
	}
}

func TestResolver_TagUndiscoverable(t *testing.T) {
	r, tc := setupResolverTest(t)
	tc.EXPECT().CompilerTag(gomock.Any()).Return("", domain.ErrConfiguration)

	_, err := r.Resolve(context.Background(), domain.DefaultBuildOptions())
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrConfiguration.Error())
}

func TestResolver_SDKQueryOnce(t *testing.T) {
	r, tc := setupResolverTest(t)

	// The tag query is cached on the resolver; the manifest and bin-path
	// queries run on every call.
	tc.EXPECT().CompilerTag(gomock.Any()).Return("swift-6.2-RELEASE", nil).Times(1)
	tc.EXPECT().Manifest(gomock.Any(), gomock.Any()).Return(singleExecutableManifest(), nil).Times(2)
	tc.EXPECT().BinPath(gomock.Any(), gomock.Any()).Return(binDir, nil).Times(2)

	first, err := r.Resolve(context.Background(), domain.DefaultBuildOptions())
	require.NoError(t, err)

	second, err := r.Resolve(context.Background(), domain.DefaultBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, first.SDKIdentifier, second.SDKIdentifier)
}

func TestResolver_ProductExplicit(t *testing.T) {
	r, tc := setupResolverTest(t)

	// No Manifest expectation: an explicit product skips the dump entirely.
	tc.EXPECT().CompilerTag(gomock.Any()).Return("swift-6.2-RELEASE", nil)
	tc.EXPECT().BinPath(gomock.Any(), gomock.Any()).Return(binDir, nil)

	opts := domain.DefaultBuildOptions()
	opts.Product = "Game"

	cfg, err := r.Resolve(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "Game", cfg.Product)
}

func TestResolver_ProductSkipsDependencyTargets(t *testing.T) {
	r, tc := setupResolverTest(t)

	manifest := domain.Manifest{
		Name: "demo",
		Targets: []domain.Target{
			{Name: "App", Type: "executable"},
			{Name: "HelperTool", Type: "executable", Package: "swift-helpers"},
			{Name: "AppLib", Type: "library"},
		},
	}
	tc.EXPECT().CompilerTag(gomock.Any()).Return("swift-6.2-RELEASE", nil)
	tc.EXPECT().Manifest(gomock.Any(), ".").Return(manifest, nil)
	tc.EXPECT().BinPath(gomock.Any(), gomock.Any()).Return(binDir, nil)

	cfg, err := r.Resolve(context.Background(), domain.DefaultBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, "App", cfg.Product)
}

func TestResolver_AmbiguousTarget(t *testing.T) {
	tests := []struct {
		name    string
		targets []domain.Target
	}{
		{
			name:    "no executables",
			targets: []domain.Target{{Name: "AppLib", Type: "library"}},
		},
		{
			name: "two executables",
			targets: []domain.Target{
				{Name: "App", Type: "executable"},
				{Name: "Tool", Type: "executable"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, tc := setupResolverTest(t)
			tc.EXPECT().CompilerTag(gomock.Any()).Return("swift-6.2-RELEASE", nil)
			tc.EXPECT().Manifest(gomock.Any(), gomock.Any()).
				Return(domain.Manifest{Name: "demo", Targets: tt.targets}, nil)

			_, err := r.Resolve(context.Background(), domain.DefaultBuildOptions())
			require.Error(t, err)
			require.ErrorContains(t, err, domain.ErrAmbiguousTarget.Error())
		})
	}
}

func TestResolver_ToolsetSequence(t *testing.T) {
	tests := []struct {
		name     string
		embedded bool
		unicode  bool
		want     []domain.ToolsetEntry
	}{
		{
			name:     "embedded with unicode",
			embedded: true,
			unicode:  true,
			want:     []domain.ToolsetEntry{domain.ToolsetEmbeddedUnicode, domain.ToolsetReactor},
		},
		{
			name:     "embedded without unicode",
			embedded: true,
			unicode:  false,
			want:     []domain.ToolsetEntry{domain.ToolsetReactor},
		},
		{
			name:     "standard with unicode",
			embedded: false,
			unicode:  true,
			want:     []domain.ToolsetEntry{domain.ToolsetReactor},
		},
		{
			name:     "standard without unicode",
			embedded: false,
			unicode:  false,
			want:     []domain.ToolsetEntry{domain.ToolsetReactor},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, tc := setupResolverTest(t)
			tc.EXPECT().CompilerTag(gomock.Any()).Return("swift-6.2-RELEASE", nil)
			tc.EXPECT().BinPath(gomock.Any(), gomock.Any()).Return(binDir, nil)

			opts := domain.DefaultBuildOptions()
			opts.Product = "App"
			opts.Embedded = tt.embedded
			opts.UnicodeLinking = tt.unicode

			cfg, err := r.Resolve(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.ToolsetFlags)
		})
	}
}

func TestResolver_ArtifactPath(t *testing.T) {
	r, tc := setupResolverTest(t)

	tc.EXPECT().CompilerTag(gomock.Any()).Return("swift-6.2-RELEASE", nil)
	tc.EXPECT().Manifest(gomock.Any(), gomock.Any()).Return(singleExecutableManifest(), nil)
	// The bin-path query already sees the frozen argument set.
	tc.EXPECT().BinPath(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cfg domain.BuildConfig) (string, error) {
			assert.Equal(t, "swift-6.2-RELEASE_wasm", cfg.SDKIdentifier)
			assert.Equal(t, "App", cfg.Product)
			assert.Empty(t, cfg.ArtifactPath)
			return binDir, nil
		},
	)

	cfg, err := r.Resolve(context.Background(), domain.DefaultBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(binDir, "App.wasm"), cfg.ArtifactPath)
}

func TestResolver_BinPathError(t *testing.T) {
	r, tc := setupResolverTest(t)

	tc.EXPECT().CompilerTag(gomock.Any()).Return("swift-6.2-RELEASE", nil)
	tc.EXPECT().Manifest(gomock.Any(), gomock.Any()).Return(singleExecutableManifest(), nil)
	tc.EXPECT().BinPath(gomock.Any(), gomock.Any()).Return("", domain.ErrEmptyBinPath)

	_, err := r.Resolve(context.Background(), domain.DefaultBuildOptions())
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrEmptyBinPath.Error())
}

func TestResolver_FreezesOptions(t *testing.T) {
	r, tc := setupResolverTest(t)

	tc.EXPECT().CompilerTag(gomock.Any()).Return("swift-6.2-RELEASE", nil)
	tc.EXPECT().BinPath(gomock.Any(), gomock.Any()).Return(binDir, nil)

	opts := domain.BuildOptions{
		PackagePath:   "examples/clock",
		Product:       "Clock",
		Configuration: domain.ConfigurationRelease,
		ExtraArgs:     []string{"-Xswiftc", "-warnings-as-errors"},
	}

	cfg, err := r.Resolve(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "examples/clock", cfg.PackagePath)
	assert.Equal(t, domain.ConfigurationRelease, cfg.Configuration)
	assert.Equal(t, []string{"-Xswiftc", "-warnings-as-errors"}, cfg.ExtraArgs)
}
