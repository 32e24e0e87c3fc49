package domain

import "go.trai.ch/zerr"

var (
	// ErrConfiguration is returned when the toolchain SDK identifier cannot be determined.
	ErrConfiguration = zerr.New("could not determine toolchain SDK identifier")

	// ErrAmbiguousTarget is returned when zero or multiple local executable targets exist
	// and no product was selected explicitly.
	ErrAmbiguousTarget = zerr.New("ambiguous build target, pass an explicit product name")

	// ErrExternalTool is returned when an external tool exits with a non-zero status.
	ErrExternalTool = zerr.New("external tool failed")

	// ErrEmptyCommand is returned when an invocation is launched without a command.
	ErrEmptyCommand = zerr.New("invocation has no command")

	// ErrManifestParse is returned when the package manifest dump cannot be parsed.
	ErrManifestParse = zerr.New("failed to parse package manifest")

	// ErrEmptyBinPath is returned when the toolchain reports an empty binary output directory.
	ErrEmptyBinPath = zerr.New("toolchain reported an empty binary output directory")

	// ErrNoWatchRoots is returned when a dev session is started with no watchable directories.
	ErrNoWatchRoots = zerr.New("no watchable source directories")

	// ErrConfigReadFailed is returned when kiln.yaml exists but cannot be read.
	ErrConfigReadFailed = zerr.New("cannot read configuration file")

	// ErrConfigParseFailed is returned when kiln.yaml is not valid YAML.
	ErrConfigParseFailed = zerr.New("cannot parse configuration file")

	// ErrInvalidConfiguration is returned when the configuration mode is neither debug nor release.
	ErrInvalidConfiguration = zerr.New("invalid configuration, expected 'debug' or 'release'")

	// ErrInvalidDebounceWindow is returned when the configured debounce window is negative.
	ErrInvalidDebounceWindow = zerr.New("debounce window must not be negative")

	// ErrStoreCreateFailed is returned when the build record store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build record store directory")

	// ErrStoreReadFailed is returned when a build record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreUnmarshalFailed is returned when a build record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build record")

	// ErrStoreMarshalFailed is returned when a build record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build record")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")

	// ErrEntryWriteFailed is returned when the virtual entry module cannot be written.
	ErrEntryWriteFailed = zerr.New("failed to write entry module")

	// ErrReloadSignalFailed is returned when the full-reload signal cannot reach the host.
	ErrReloadSignalFailed = zerr.New("failed to signal host reload")

	// ErrToolsetWriteFailed is returned when a toolset fragment cannot be materialized.
	ErrToolsetWriteFailed = zerr.New("failed to write toolset fragment")

	// ErrArtifactMissing is returned when the expected artifact does not exist after a build.
	ErrArtifactMissing = zerr.New("artifact not found after build")

	// ErrArtifactHashFailed is returned when hashing the artifact fails.
	ErrArtifactHashFailed = zerr.New("failed to hash artifact")

	// ErrSessionFailed is returned when the dev session terminates abnormally.
	ErrSessionFailed = zerr.New("dev session failed")

	// ErrBuildFailed is returned when a one-shot build fails.
	ErrBuildFailed = zerr.New("build failed")

	// ErrFileOpenFailed is returned when a file scheduled for hashing cannot
	// be opened.
	ErrFileOpenFailed = zerr.New("cannot open file")

	// ErrWriteHashFailed is returned when writing content to the digest fails.
	ErrWriteHashFailed = zerr.New("failed to write hash to digest")
)
