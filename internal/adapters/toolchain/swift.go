// Package toolchain drives the external compiler and optimizer binaries.
package toolchain

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Toolchain = (*Swift)(nil)

// compilerTagPattern extracts the toolchain tag from the version banner,
// e.g. "Swift version 6.2 (swift-6.2-RELEASE)" yields "swift-6.2-RELEASE".
var compilerTagPattern = regexp.MustCompile(`swift-[A-Za-z0-9.-]+`)

// Swift implements ports.Toolchain for the swift compiler and the wasm
// optimizer. It is constructed per session with the configured binaries.
type Swift struct {
	runner    ports.CommandRunner
	toolchain string
	optimizer string
}

// NewSwift creates a toolchain adapter around the given command runner.
func NewSwift(runner ports.CommandRunner, toolchainBin, optimizerBin string) *Swift {
	return &Swift{
		runner:    runner,
		toolchain: toolchainBin,
		optimizer: optimizerBin,
	}
}

// CompilerTag returns the compiler identifying tag from the version banner.
func (s *Swift) CompilerTag(ctx context.Context) (string, error) {
	out, err := s.runner.Capture(ctx, domain.Invocation{
		Command: s.toolchain,
		Args:    []string{"--version"},
	})
	if err != nil {
		return "", err
	}

	tag := compilerTagPattern.FindString(out)
	if tag == "" {
		return "", zerr.With(domain.ErrConfiguration, "version_output", out)
	}

	return tag, nil
}

// manifestDTO mirrors the fields kiln reads from the package manifest dump.
type manifestDTO struct {
	Name    string `json:"name"`
	Targets []struct {
		Name    string `json:"name"`
		Type    string `json:"type"`
		Package string `json:"package"`
	} `json:"targets"`
}

// Manifest dumps and decodes the package manifest at packagePath.
func (s *Swift) Manifest(ctx context.Context, packagePath string) (domain.Manifest, error) {
	out, err := s.runner.Capture(ctx, domain.Invocation{
		Command: s.toolchain,
		Args:    []string{"package", "dump-package", "--package-path", packagePath},
	})
	if err != nil {
		return domain.Manifest{}, err
	}

	var dto manifestDTO
	if err := json.Unmarshal([]byte(out), &dto); err != nil {
		err = zerr.Wrap(err, domain.ErrManifestParse.Error())
		return domain.Manifest{}, zerr.With(err, "package_path", packagePath)
	}

	manifest := domain.Manifest{
		Name:    dto.Name,
		Targets: make([]domain.Target, 0, len(dto.Targets)),
	}
	for _, target := range dto.Targets {
		manifest.Targets = append(manifest.Targets, domain.Target{
			Name:    target.Name,
			Type:    target.Type,
			Package: target.Package,
		})
	}

	return manifest, nil
}

// BinPath returns the binary output directory for the frozen configuration.
// The query runs with the full build argument set, so the reported directory
// matches what a subsequent Build produces.
func (s *Swift) BinPath(ctx context.Context, cfg domain.BuildConfig) (string, error) {
	toolsetPaths, err := s.materializeToolsets(cfg)
	if err != nil {
		return "", err
	}

	args := append(s.buildArgs(cfg, toolsetPaths), "--show-bin-path")
	out, err := s.runner.Capture(ctx, domain.Invocation{
		Command: s.toolchain,
		Args:    args,
	})
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", zerr.With(domain.ErrEmptyBinPath, "package_path", cfg.PackagePath)
	}

	return out, nil
}

// Build runs the compiler with the frozen argument sequence.
func (s *Swift) Build(ctx context.Context, cfg domain.BuildConfig, out io.Writer) error {
	toolsetPaths, err := s.materializeToolsets(cfg)
	if err != nil {
		return err
	}

	return s.runner.Run(ctx, domain.Invocation{
		Command: s.toolchain,
		Args:    s.buildArgs(cfg, toolsetPaths),
	}, out)
}

// Optimize rewrites the artifact at artifactPath in place.
func (s *Swift) Optimize(ctx context.Context, artifactPath string, args []string, out io.Writer) error {
	optimizeArgs := make([]string, 0, len(args)+3)
	optimizeArgs = append(optimizeArgs, args...)
	optimizeArgs = append(optimizeArgs, artifactPath, "-o", artifactPath)

	return s.runner.Run(ctx, domain.Invocation{
		Command: s.optimizer,
		Args:    optimizeArgs,
	}, out)
}

// buildArgs assembles the frozen argument sequence shared by Build and the
// bin-path query.
func (s *Swift) buildArgs(cfg domain.BuildConfig, toolsetPaths []string) []string {
	args := []string{
		"build",
		"-c", string(cfg.Configuration),
		"--package-path", cfg.PackagePath,
		"--swift-sdk", cfg.SDKIdentifier,
		"--product", cfg.Product,
	}
	for _, path := range toolsetPaths {
		args = append(args, "--toolset", path)
	}
	args = append(args, cfg.ExtraArgs...)
	return args
}

// toolsetFragment is the toolset file schema understood by the toolchain.
type toolsetFragment struct {
	SchemaVersion string             `json:"schemaVersion"`
	SwiftCompiler *toolsetCLIOptions `json:"swiftCompiler,omitempty"`
	Linker        *toolsetCLIOptions `json:"linker,omitempty"`
}

type toolsetCLIOptions struct {
	ExtraCLIOptions []string `json:"extraCLIOptions"`
}

// toolsetFragments maps each entry to the fragment it materializes. The
// application order is decided by the resolver, not here.
var toolsetFragments = map[domain.ToolsetEntry]toolsetFragment{
	domain.ToolsetEmbeddedUnicode: {
		SchemaVersion: "1.0",
		Linker: &toolsetCLIOptions{
			ExtraCLIOptions: []string{"-lswiftUnicodeDataTables"},
		},
	},
	domain.ToolsetReactor: {
		SchemaVersion: "1.0",
		SwiftCompiler: &toolsetCLIOptions{
			ExtraCLIOptions: []string{"-Xclang-linker", "-mexec-model=reactor"},
		},
	},
}

// materializeToolsets writes the configured toolset fragments under the kiln
// cache dir and returns their paths in configuration order.
func (s *Swift) materializeToolsets(cfg domain.BuildConfig) ([]string, error) {
	if len(cfg.ToolsetFlags) == 0 {
		return nil, nil
	}

	dir := filepath.Join(cfg.PackagePath, domain.DefaultToolsetPath())
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrToolsetWriteFailed.Error())
	}

	paths := make([]string, 0, len(cfg.ToolsetFlags))
	for _, entry := range cfg.ToolsetFlags {
		fragment, ok := toolsetFragments[entry]
		if !ok {
			return nil, zerr.With(domain.ErrToolsetWriteFailed, "entry", string(entry))
		}

		data, err := json.MarshalIndent(fragment, "", "  ")
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrToolsetWriteFailed.Error())
		}

		path := filepath.Join(dir, string(entry)+".json")
		if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
			err = zerr.Wrap(err, domain.ErrToolsetWriteFailed.Error())
			return nil, zerr.With(err, "entry", string(entry))
		}

		paths = append(paths, path)
	}

	return paths, nil
}
