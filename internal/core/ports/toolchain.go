package ports

import (
	"context"
	"io"

	"go.trai.ch/kiln/internal/core/domain"
)

// Toolchain is the boundary to the external compiler toolchain. Discovery
// queries run in capture mode; Build and Optimize stream their output.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// CompilerTag returns the compiler identifying tag used to compose the
	// SDK identifier.
	CompilerTag(ctx context.Context) (string, error)

	// Manifest dumps and decodes the package manifest at packagePath.
	Manifest(ctx context.Context, packagePath string) (domain.Manifest, error)

	// BinPath returns the binary output directory the toolchain will use for
	// the given frozen configuration.
	BinPath(ctx context.Context, cfg domain.BuildConfig) (string, error)

	// Build runs the compiler with the frozen argument sequence, streaming
	// tool output to out as it arrives. A nil out discards the stream.
	Build(ctx context.Context, cfg domain.BuildConfig, out io.Writer) error

	// Optimize rewrites the artifact at artifactPath in place, streaming
	// tool output to out as it arrives.
	Optimize(ctx context.Context, artifactPath string, args []string, out io.Writer) error
}
