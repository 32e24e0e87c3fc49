// Package app implements the application layer for kiln.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/kiln/internal/adapters/detector"
	"go.trai.ch/kiln/internal/adapters/host"
	"go.trai.ch/kiln/internal/adapters/linear"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/kiln/internal/adapters/toolchain"
	"go.trai.ch/kiln/internal/adapters/tui"
	"go.trai.ch/kiln/internal/adapters/watcher"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/resolve"
	"go.trai.ch/kiln/internal/engine/session"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App drives the kiln commands over the injected ports.
type App struct {
	configLoader ports.ConfigLoader
	runner       ports.CommandRunner
	logger       ports.Logger
	store        ports.BuildRecordStore
	hasher       ports.Hasher
	hashCache    ports.InputHashCache
	teaOptions   []tea.ProgramOption
	disableTick  bool
}

// New returns an App wired to the given ports.
func New(
	loader ports.ConfigLoader,
	runner ports.CommandRunner,
	log ports.Logger,
	store ports.BuildRecordStore,
	hasher ports.Hasher,
	hashCache ports.InputHashCache,
) *App {
	return &App{
		configLoader: loader,
		runner:       runner,
		logger:       log,
		store:        store,
		hasher:       hasher,
		hashCache:    hashCache,
	}
}

// WithTeaOptions appends program options for the TUI renderer. Tests use it
// to detach stdin and stdout.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithDisableTick keeps the TUI from scheduling animation ticks. The
// synctest-driven tests run with the ticker off.
func (a *App) WithDisableTick() *App {
	a.disableTick = true
	return a
}

// BuildOptions carries the per-invocation settings of Build.
type BuildOptions struct {
	Product       string
	Configuration string
	NoOptimize    bool
	Inspect       bool
	OutputMode    string
}

// WatchOptions carries the per-invocation settings of Watch.
type WatchOptions struct {
	Product       string
	Configuration string
	OutputMode    string
}

// Build runs one build to completion: resolve, compile, verify the artifact,
// optimize when the configuration asks for it, and record the outcome.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	cfg, err := a.loadConfig(opts.Product, opts.Configuration)
	if err != nil {
		return err
	}
	if opts.NoOptimize {
		cfg.Optimize = false
	}

	return a.runUnderRenderer(ctx, cfg.Root, opts.OutputMode, opts.Inspect,
		func(ctx context.Context, tracer ports.Tracer) error {
			if err := a.buildOnce(ctx, *cfg, tracer); err != nil {
				return errors.Join(domain.ErrBuildFailed, err)
			}
			return nil
		})
}

// Watch runs a development session until the context is canceled. The
// embedded variant and the optimizer are forced off for the whole session.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	cfg, err := a.loadConfig(opts.Product, opts.Configuration)
	if err != nil {
		return err
	}
	devCfg := cfg.ForDevelopment()

	return a.runUnderRenderer(ctx, devCfg.Root, opts.OutputMode, false,
		func(ctx context.Context, tracer ports.Tracer) error {
			w, err := watcher.NewWatcher()
			if err != nil {
				return zerr.Wrap(err, domain.ErrSessionFailed.Error())
			}

			tc := toolchain.NewSwift(a.runner, devCfg.Toolchain, devCfg.Optimizer)
			notifier := host.NewNotifier(devCfg.Root)
			sess := session.NewSession(
				devCfg,
				tc,
				w,
				notifier,
				a.store,
				a.hasher,
				a.hashCache,
				tracer,
				a.logger,
			)
			return sess.Run(ctx)
		})
}

// CleanOptions selects which pieces of on-disk state Clean removes.
type CleanOptions struct {
	Records  bool
	Toolsets bool
	Entry    bool
}

// Clean removes kiln state from the project based on the provided options.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	cfg, err := a.loadConfig("", "")
	if err != nil {
		return err
	}

	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.Records {
		remove(filepath.Join(cfg.Root, domain.DefaultStorePath()), "build record store")
	}

	if options.Toolsets {
		remove(filepath.Join(cfg.Build.PackagePath, domain.DefaultToolsetPath()), "materialized toolsets")
	}

	if options.Entry {
		remove(filepath.Join(cfg.Root, domain.DefaultEntryPath()), "entry module")
	}

	return errs
}

// loadConfig loads the project configuration from the working directory and
// applies the command-line overrides. The package path is anchored to the
// project root so commands behave the same from any directory in the tree.
func (a *App) loadConfig(product, configuration string) (*domain.ProjectConfig, error) {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if !filepath.IsAbs(cfg.Build.PackagePath) {
		cfg.Build.PackagePath = filepath.Join(cfg.Root, cfg.Build.PackagePath)
	}

	if product != "" {
		cfg.Build.Product = product
	}
	if configuration != "" {
		mode := domain.Configuration(configuration)
		if err := mode.Validate(); err != nil {
			return nil, zerr.With(err, "configuration", configuration)
		}
		cfg.Build.Configuration = mode
	}

	return cfg, nil
}

// buildOnce performs the one-shot build pipeline under the given tracer.
func (a *App) buildOnce(ctx context.Context, cfg domain.ProjectConfig, tracer ports.Tracer) error {
	tc := toolchain.NewSwift(a.runner, cfg.Toolchain, cfg.Optimizer)

	buildCfg, err := a.resolveOnce(ctx, tc, cfg.Build, tracer)
	if err != nil {
		return err
	}
	tracer.EmitSession(ctx, buildCfg.Product, string(buildCfg.Configuration))

	// The record is written after the optimizer so the artifact hash
	// describes the file in its final form.
	start := time.Now()
	buildErr := a.compile(ctx, tc, buildCfg, tracer)
	if buildErr == nil && cfg.Optimize {
		buildErr = a.optimize(ctx, tc, buildCfg.ArtifactPath, cfg.OptimizerArgs, tracer)
	}
	a.recordOutcome(cfg.Root, buildCfg, buildErr == nil, time.Since(start))
	return buildErr
}

// resolveOnce runs configuration resolution under its own span.
func (a *App) resolveOnce(
	ctx context.Context,
	tc ports.Toolchain,
	opts domain.BuildOptions,
	tracer ports.Tracer,
) (domain.BuildConfig, error) {
	ctx, span := tracer.Start(ctx, "resolve")
	defer span.End()

	buildCfg, err := resolve.NewResolver(tc).Resolve(ctx, opts)
	if err != nil {
		span.RecordError(err)
		return domain.BuildConfig{}, zerr.Wrap(err, "failed to resolve build configuration")
	}

	span.SetAttribute("kiln.product", buildCfg.Product)
	span.SetAttribute("kiln.sdk", buildCfg.SDKIdentifier)
	return buildCfg, nil
}

// compile runs the compiler under a build span and verifies that the
// expected artifact exists afterwards.
func (a *App) compile(
	ctx context.Context,
	tc ports.Toolchain,
	buildCfg domain.BuildConfig,
	tracer ports.Tracer,
) error {
	ctx, span := tracer.Start(ctx, "build#1")
	defer span.End()

	if err := tc.Build(ctx, buildCfg, span); err != nil {
		span.RecordError(err)
		return err
	}

	if _, err := os.Stat(buildCfg.ArtifactPath); err != nil {
		err = zerr.With(
			zerr.Wrap(err, domain.ErrArtifactMissing.Error()),
			"artifact", buildCfg.ArtifactPath,
		)
		span.RecordError(err)
		return err
	}
	return nil
}

// optimize rewrites the artifact in place under its own span.
func (a *App) optimize(
	ctx context.Context,
	tc ports.Toolchain,
	artifactPath string,
	args []string,
	tracer ports.Tracer,
) error {
	ctx, span := tracer.Start(ctx, "optimize")
	defer span.End()

	if err := tc.Optimize(ctx, artifactPath, args, span); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// recordOutcome persists the build record. Persistence problems are warnings;
// the build result stands on its own.
func (a *App) recordOutcome(root string, buildCfg domain.BuildConfig, success bool, duration time.Duration) {
	record := domain.BuildRecord{
		ConfigHash:   a.hasher.HashConfig(buildCfg),
		Product:      buildCfg.Product,
		ArtifactPath: buildCfg.ArtifactPath,
		Duration:     duration,
		Success:      success,
		CompletedAt:  time.Now(),
	}
	if success {
		hash, err := a.hasher.HashFile(buildCfg.ArtifactPath)
		if err != nil {
			a.logger.Warn(fmt.Sprintf("%v: %v", domain.ErrArtifactHashFailed, err))
		} else {
			record.ArtifactHash = hash
		}
	}

	if err := a.store.Put(root, record); err != nil {
		a.logger.Warn(fmt.Sprintf("failed to persist build record: %v", err))
	}
}

// runUnderRenderer sets up the output pipeline and runs work concurrently
// with the renderer. The renderer owns the terminal for the duration; in TUI
// mode the logger is redirected to the debug log under the internal
// directory so log lines cannot corrupt the display.
func (a *App) runUnderRenderer(
	ctx context.Context,
	root string,
	outputMode string,
	inspect bool,
	work func(ctx context.Context, tracer ports.Tracer) error,
) error {
	autoMode := detector.DetectEnvironment()
	mode := detector.ResolveMode(autoMode, outputMode)

	var renderer ports.Renderer
	if mode == detector.ModeTUI {
		if err := a.redirectLogs(root); err != nil {
			return err
		}
		model := tui.NewModel(os.Stderr)
		if a.disableTick {
			model = model.WithDisableTick()
		}
		optsTea := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		renderer = tui.NewRenderer(&model, optsTea...)
	} else {
		renderer = linear.NewRenderer(os.Stdout, os.Stderr)
	}

	// Spans reach the renderer on two paths: the bridge reports starts and
	// ends, the tracer streams span output as step logs.
	bridge := telemetry.NewBridge(renderer)
	setupOTel(bridge)
	tracer := telemetry.NewOTelTracer("kiln").WithRenderer(renderer)
	defer func() {
		_ = tracer.Shutdown(ctx)
	}()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				// Report the panic before the renderer tears down the terminal.
				fmt.Fprintf(os.Stderr, "kiln panic: %v\n", r)
			}
			// Inspect mode leaves the renderer up so the last step tree
			// stays on screen.
			if !inspect {
				_ = renderer.Stop()
			}
		}()

		return work(ctx, tracer)
	})

	return g.Wait()
}

// outputSetter is the optional redirection surface of the concrete logger.
type outputSetter interface {
	SetOutput(w io.Writer)
}

// redirectLogs points the logger at the debug log file under the internal
// directory. Loggers without a redirection surface keep their output, but
// the internal directory must still be writable for the session state.
func (a *App) redirectLogs(root string) error {
	path := filepath.Join(root, domain.DefaultDebugLogPath())
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create internal directory")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.FilePerm)
	if err != nil {
		return zerr.Wrap(err, "failed to open debug log")
	}

	if lg, ok := a.logger.(outputSetter); ok {
		lg.SetOutput(f)
	}
	return nil
}

// setupOTel installs a global tracer provider that hands every span to the
// bridge.
func setupOTel(bridge *telemetry.Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
