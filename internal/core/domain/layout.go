package domain

import "path/filepath"

// Everything kiln writes into a project lives under the .kiln directory,
// next to kiln.yaml. The helpers below return paths relative to the project
// root unless noted otherwise.
const (
	// KilnDirName is kiln's workspace directory inside a project.
	KilnDirName = ".kiln"

	// KilnFileName is the project configuration file.
	KilnFileName = "kiln.yaml"

	// StoreDirName holds build records, one JSON file per configuration hash.
	StoreDirName = "store"

	// ToolsetDirName holds materialized toolset fragments.
	ToolsetDirName = "toolsets"

	// EntryFileName is the generated virtual entry module.
	EntryFileName = "entry.js"

	// DebugLogFile collects logger output during interactive sessions.
	DebugLogFile = "debug.log"
)

// Permissions for everything kiln creates.
const (
	// DirPerm is rwxr-x---.
	DirPerm = 0o750

	// FilePerm is rw-r--r--.
	FilePerm = 0o644

	// PrivateFilePerm is rw-------.
	PrivateFilePerm = 0o600
)

// DefaultStorePath is the build record store.
func DefaultStorePath() string {
	return filepath.Join(KilnDirName, StoreDirName)
}

// DefaultToolsetPath is where toolset fragments land, relative to the
// package path rather than the project root.
func DefaultToolsetPath() string {
	return filepath.Join(KilnDirName, ToolsetDirName)
}

// DefaultEntryPath is the generated entry module.
func DefaultEntryPath() string {
	return filepath.Join(KilnDirName, EntryFileName)
}

// DefaultDebugLogPath is the session debug log.
func DefaultDebugLogPath() string {
	return filepath.Join(KilnDirName, DebugLogFile)
}
