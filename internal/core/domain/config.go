package domain

import "time"

// EnvSDKOverride names the environment variable that, when set, replaces
// SDK detection verbatim for the whole session.
const EnvSDKOverride = "KILN_SDK_ID"

// Configuration selects the toolchain build configuration.
type Configuration string

const (
	// ConfigurationDebug builds without optimization, for dev sessions.
	ConfigurationDebug Configuration = "debug"

	// ConfigurationRelease builds with optimization enabled.
	ConfigurationRelease Configuration = "release"
)

// Validate checks that the configuration is one of the known modes.
func (c Configuration) Validate() error {
	switch c {
	case ConfigurationDebug, ConfigurationRelease:
		return nil
	default:
		return ErrInvalidConfiguration
	}
}

// ToolsetEntry names an external configuration fragment applied in sequence to
// adjust compiler and linker behavior. Order matters: later entries may
// override settings established by earlier ones.
type ToolsetEntry string

const (
	// ToolsetEmbeddedUnicode links the unicode tables that the embedded
	// runtime variant strips by default.
	ToolsetEmbeddedUnicode ToolsetEntry = "embedded-unicode"

	// ToolsetReactor builds the artifact as a reactor module exposing
	// synchronous entry points instead of a standalone executable.
	ToolsetReactor ToolsetEntry = "reactor"
)

// BuildOptions are the raw inputs to configuration resolution, assembled from
// the config file, flags, and the environment before a session starts.
type BuildOptions struct {
	// PackagePath is the package root handed to the toolchain.
	PackagePath string
	// Product is the explicit product name, or empty to auto-resolve.
	Product string
	// SDKOverride, when non-empty, replaces SDK detection verbatim.
	SDKOverride string
	// Embedded requests the reduced-runtime build variant.
	Embedded bool
	// UnicodeLinking links full unicode tables; only relevant with Embedded.
	UnicodeLinking bool
	// Configuration is the build configuration mode.
	Configuration Configuration
	// ExtraArgs are appended to the build invocation unmodified.
	ExtraArgs []string
}

// DefaultBuildOptions returns the option defaults used when no configuration
// file is present.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		PackagePath:    ".",
		UnicodeLinking: true,
		Configuration:  ConfigurationDebug,
	}
}

// ProjectConfig is the full configuration surface, frozen at session start.
type ProjectConfig struct {
	// Root is the project root directory.
	Root string
	// Build are the raw build resolution inputs.
	Build BuildOptions
	// Toolchain is the compiler toolchain binary.
	Toolchain string
	// Optimizer is the post-link optimizer binary.
	Optimizer string
	// Optimize runs the optimizer after release builds.
	Optimize bool
	// OptimizerArgs are passed to the optimizer ahead of the artifact path.
	OptimizerArgs []string
	// WatchPaths are the source directories watched during dev sessions,
	// relative to the package path.
	WatchPaths []string
	// DebounceWindow is the minimum interval between accepted rebuild triggers.
	DebounceWindow time.Duration
}

// DefaultProjectConfig returns the configuration used when no kiln.yaml exists.
func DefaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Root:           ".",
		Build:          DefaultBuildOptions(),
		Toolchain:      "swift",
		Optimizer:      "wasm-opt",
		Optimize:       true,
		OptimizerArgs:  []string{"-Os", "--strip-debug"},
		WatchPaths:     []string{"Sources"},
		DebounceWindow: DefaultDebounceWindow,
	}
}

// ForDevelopment returns a copy with the dev-session forcings applied: the
// embedded variant and the optimizer are off during development regardless of
// what the configuration file asks for.
func (c ProjectConfig) ForDevelopment() ProjectConfig {
	c.Build.Embedded = false
	c.Optimize = false
	return c
}

// BuildConfig is the frozen build plan produced by resolution. It is
// created once per session on first artifact load and reused unchanged by
// every subsequent rebuild, even if environment state changes mid-session.
type BuildConfig struct {
	// SDKIdentifier is the resolved toolchain SDK identifier.
	SDKIdentifier string
	// Product is the resolved product name.
	Product string
	// Configuration is the build configuration mode.
	Configuration Configuration
	// ToolsetFlags is the ordered toolset entry sequence.
	ToolsetFlags []ToolsetEntry
	// ExtraArgs are appended to the build invocation unmodified.
	ExtraArgs []string
	// PackagePath is the package root handed to the toolchain.
	PackagePath string
	// ArtifactPath is where the toolchain places the built artifact.
	ArtifactPath string
}
