package domain

// TargetTypeExecutable marks a manifest target that builds to an executable.
const TargetTypeExecutable = "executable"

// Target is one target from the package manifest dump.
type Target struct {
	// Name is the target name.
	Name string
	// Type is the target kind as reported by the toolchain.
	Type string
	// Package names the dependency that defines the target. Empty means the
	// target is defined by the package under build.
	Package string
}

// Manifest is the decoded package manifest.
type Manifest struct {
	// Name is the package name.
	Name string
	// Targets are all targets visible in the manifest, including ones pulled
	// in through dependencies.
	Targets []Target
}

// LocalExecutables returns the names of executable targets defined by the
// package itself, skipping targets that carry a dependency package marker.
func (m Manifest) LocalExecutables() []string {
	var names []string
	for _, t := range m.Targets {
		if t.Type != TargetTypeExecutable {
			continue
		}
		if t.Package != "" {
			continue
		}
		names = append(names, t.Name)
	}
	return names
}
