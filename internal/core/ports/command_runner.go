package ports

import (
	"context"
	"io"

	"go.trai.ch/kiln/internal/core/domain"
)

// CommandRunner abstracts launching external tools so the orchestration core
// can be exercised with a fake that never spawns a process.
//
// Both modes map a non-zero exit status to the same failure shape: an error
// wrapping domain.ErrExternalTool that carries the command, its arguments and
// the exit code.
//
//go:generate mockgen -source=command_runner.go -destination=mocks/mock_command_runner.go -package=mocks
type CommandRunner interface {
	// Run executes the invocation and streams its combined output to out as
	// it arrives, mirroring each line through the logger. Used for builds,
	// where output should appear as it happens. A nil out discards the stream.
	Run(ctx context.Context, inv domain.Invocation, out io.Writer) error

	// Capture executes the invocation and returns its stdout, trimmed.
	// Used for discovery queries. Buffered output never rescues a non-zero
	// exit: the invocation still fails.
	Capture(ctx context.Context, inv domain.Invocation) (string, error)
}
