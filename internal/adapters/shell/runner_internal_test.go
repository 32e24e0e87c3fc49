package shell

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		sysEnv   []string
		invEnv   map[string]string
		expected []string
	}{
		{
			name:     "system only, allowed",
			sysEnv:   []string{"USER=test", "PATH=/bin", "HOME=/home/test"},
			invEnv:   nil,
			expected: []string{"USER=test", "PATH=/bin", "HOME=/home/test"},
		},
		{
			name:     "system only, filtered",
			sysEnv:   []string{"USER=test", "SSH_AUTH_SOCK=/tmp/ssh", "SECRET=key"},
			invEnv:   nil,
			expected: []string{"USER=test"},
		},
		{
			name:     "invocation adds variables",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			invEnv:   map[string]string{"SWIFT_BACKTRACE": "enable=no"},
			expected: []string{"USER=test", "PATH=/bin", "SWIFT_BACKTRACE=enable=no"},
		},
		{
			name:     "invocation overrides system",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			invEnv:   map[string]string{"PATH": "/toolchain/bin", "USER": "kiln"},
			expected: []string{"USER=kiln", "PATH=/toolchain/bin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveEnvironment(tt.sysEnv, tt.invEnv)

			// Merge order is not part of the contract.
			sort.Strings(got)
			sort.Strings(tt.expected)

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLookPath_EmptyPATH(t *testing.T) {
	env := []string{"USER=test"} // no PATH at all
	_, err := lookPath("echo", env)
	if err == nil {
		t.Error("lookPath() expected error when PATH is not in environment")
	}
}

func TestLookPath_ExecutableNotFound(t *testing.T) {
	env := []string{"PATH=/nonexistent/dir"}
	_, err := lookPath("nonexistent-command", env)
	if err == nil {
		t.Error("lookPath() expected error when executable not found")
	}
}

func TestLookPath_EmptyDirectory(t *testing.T) {
	// The empty element before the colon reads as the current directory.
	tmpDir := t.TempDir()

	env := []string{"PATH=:" + tmpDir}
	_, err := lookPath("nonexistent", env)
	if err == nil {
		t.Error("lookPath() expected error when executable not found even with empty dir")
	}
}

func TestFindExecutable_NonExistent(t *testing.T) {
	err := findExecutable("/nonexistent/file")
	if err == nil {
		t.Error("findExecutable() expected error for non-existent file")
	}
}

func TestFindExecutable_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	err := findExecutable(tmpDir)
	if err == nil {
		t.Error("findExecutable() expected error for directory")
	}
}
