// Package build carries the version metadata stamped in at link time.
package build

// Version is the release version, "dev" unless overridden by linker flags.
var Version = "dev"

// Commit is the git commit the binary was built from, "none" unless
// overridden by linker flags.
var Commit = "none"

// Date is the build timestamp, "unknown" unless overridden by linker flags.
var Date = "unknown"
