// Package session runs the development loop: watch, debounce, rebuild, reload.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/rebuild"
	"go.trai.ch/kiln/internal/engine/resolve"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Session owns one development run: it resolves the build configuration once,
// freezes it, emits the virtual entry module, performs the initial build, and
// then feeds file-change notifications through the debounce gate into the
// rebuild coordinator until the context ends. A session constructs its own
// resolver, gate, and coordinator, so two sessions never share scheduling
// state.
type Session struct {
	cfg       domain.ProjectConfig
	toolchain ports.Toolchain
	watcher   ports.Watcher
	host      ports.Host
	store     ports.BuildRecordStore
	hasher    ports.Hasher
	hashCache ports.InputHashCache
	tracer    ports.Tracer
	logger    ports.Logger

	resolver    *resolve.Resolver
	gate        *domain.DebounceGate
	coordinator *rebuild.Coordinator

	buildSeq atomic.Uint64

	// buildCfg and configHash are written once during Run, before the first
	// build goroutine starts, and read-only afterwards.
	buildCfg   domain.BuildConfig
	configHash string
}

// NewSession creates a Session for the given frozen project configuration.
func NewSession(
	cfg domain.ProjectConfig,
	toolchain ports.Toolchain,
	watcher ports.Watcher,
	host ports.Host,
	store ports.BuildRecordStore,
	hasher ports.Hasher,
	hashCache ports.InputHashCache,
	tracer ports.Tracer,
	log ports.Logger,
) *Session {
	s := &Session{
		cfg:       cfg,
		toolchain: toolchain,
		watcher:   watcher,
		host:      host,
		store:     store,
		hasher:    hasher,
		hashCache: hashCache,
		tracer:    tracer,
		logger:    log,
	}
	s.resolver = resolve.NewResolver(toolchain)
	s.gate = domain.NewDebounceGate(cfg.DebounceWindow)
	s.coordinator = rebuild.NewCoordinator(s.runBuild, log)
	return s
}

// Run executes the session until ctx ends. Resolution and entry emission
// errors are fatal; build failures are reported and the session keeps
// watching. On shutdown the watcher stops accepting notifications and
// in-flight builds run to completion before Run returns.
func (s *Session) Run(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "session")
	defer span.End()

	buildCfg, err := s.resolveConfig(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	s.buildCfg = buildCfg
	s.configHash = s.hasher.HashConfig(buildCfg)

	s.tracer.EmitSession(ctx, buildCfg.Product, string(buildCfg.Configuration))
	s.logPreviousOutcome()

	if err := s.writeEntry(); err != nil {
		span.RecordError(err)
		return err
	}

	roots, err := s.watchRoots()
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.watcher.Start(ctx, roots); err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, domain.ErrSessionFailed.Error())
	}
	defer func() {
		_ = s.watcher.Stop()
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.coordinator.Request(gctx); err != nil {
			s.logger.Warn(fmt.Sprintf("initial build failed, watching for changes: %v", err))
		}
		s.watchLoop(gctx, g)
		return nil
	})

	return g.Wait()
}

// resolveConfig runs the resolver once under its own span. A resolution
// failure aborts the load attempt; no artifact is produced.
func (s *Session) resolveConfig(ctx context.Context) (domain.BuildConfig, error) {
	ctx, span := s.tracer.Start(ctx, "resolve")
	defer span.End()

	cfg, err := s.resolver.Resolve(ctx, s.cfg.Build)
	if err != nil {
		span.RecordError(err)
		return domain.BuildConfig{}, zerr.Wrap(err, "failed to resolve build configuration")
	}

	span.SetAttribute("kiln.product", cfg.Product)
	span.SetAttribute("kiln.sdk", cfg.SDKIdentifier)
	return cfg, nil
}

// watchLoop consumes notifications until the watcher closes. Each accepted
// trigger requests a rebuild on its own goroutine tracked by g, so shutdown
// waits for every pending rebuild.
func (s *Session) watchLoop(ctx context.Context, g *errgroup.Group) {
	for event := range s.watcher.Events() {
		if !s.shouldRebuild(event) {
			continue
		}
		g.Go(func() error {
			if err := s.coordinator.Request(ctx); err != nil {
				s.logger.Warn(fmt.Sprintf("rebuild failed, waiting for the next change: %v", err))
			}
			return nil
		})
	}
}

// shouldRebuild filters one notification through the content dedup cache and
// the shared debounce gate. The gate judges freshness against the moment the
// notification arrived, and it is global: rapid changes to two different
// files inside the window still collapse to a single acceptance.
func (s *Session) shouldRebuild(event ports.WatchEvent) bool {
	switch event.Operation {
	case ports.OpRemove, ports.OpRename:
		s.hashCache.Forget(event.Path)
	default:
		if !s.hashCache.Changed(event.Path) {
			return false
		}
	}

	return s.gate.ShouldAccept(event.At)
}

// runBuild performs one build attempt. The coordinator is its only caller.
// Compiler output streams into the active span; a success touches the entry
// module so the host observes exactly one change per successful rebuild.
func (s *Session) runBuild(ctx context.Context) error {
	seq := s.buildSeq.Add(1)
	ctx, span := s.tracer.Start(ctx, fmt.Sprintf("build#%d", seq))
	defer span.End()

	start := time.Now()
	buildErr := s.toolchain.Build(ctx, s.buildCfg, span)
	s.recordBuild(buildErr == nil, time.Since(start))

	if buildErr != nil {
		span.RecordError(buildErr)
		return buildErr
	}

	if err := s.host.Reload(ctx); err != nil {
		s.logger.Warn(fmt.Sprintf("artifact rebuilt but reload signal failed: %v", err))
	}
	return nil
}

// recordBuild persists the outcome of one build attempt. A store failure is
// reported and otherwise ignored; the record is a convenience, not a
// dependency of the loop.
func (s *Session) recordBuild(success bool, duration time.Duration) {
	record := domain.BuildRecord{
		ConfigHash:   s.configHash,
		Product:      s.buildCfg.Product,
		ArtifactPath: s.buildCfg.ArtifactPath,
		Duration:     duration,
		Success:      success,
		CompletedAt:  time.Now(),
	}
	if success {
		hash, err := s.hasher.HashFile(s.buildCfg.ArtifactPath)
		if err != nil {
			s.logger.Warn(fmt.Sprintf("%v: %v", domain.ErrArtifactHashFailed, err))
		} else {
			record.ArtifactHash = hash
		}
	}

	if err := s.store.Put(s.cfg.Root, record); err != nil {
		s.logger.Warn(fmt.Sprintf("failed to persist build record: %v", err))
	}
}

// logPreviousOutcome reports what the last build of this exact configuration
// did, if a record exists.
func (s *Session) logPreviousOutcome() {
	record, err := s.store.Get(s.cfg.Root, s.configHash)
	if err != nil || record == nil {
		return
	}

	if record.Success {
		s.logger.Info(fmt.Sprintf(
			"last build of %s succeeded in %s",
			record.Product, record.Duration.Round(time.Millisecond),
		))
		return
	}
	s.logger.Info(fmt.Sprintf("last build of %s failed", record.Product))
}

// writeEntry materializes the virtual entry module for the host dev server.
func (s *Session) writeEntry() error {
	entry := domain.EntryModule{ArtifactPath: s.buildCfg.ArtifactPath}
	path := filepath.Join(s.cfg.Root, domain.DefaultEntryPath())

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrEntryWriteFailed.Error())
	}
	if err := os.WriteFile(path, []byte(entry.Source()), domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrEntryWriteFailed.Error())
	}
	return nil
}

// watchRoots returns the configured watch directories that exist, relative to
// the package path. A session with nothing to watch is a configuration error.
func (s *Session) watchRoots() ([]string, error) {
	roots := make([]string, 0, len(s.cfg.WatchPaths))
	for _, dir := range s.cfg.WatchPaths {
		root := filepath.Join(s.cfg.Build.PackagePath, dir)
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			s.logger.Warn(fmt.Sprintf("watch path %s is not a directory, skipping", root))
			continue
		}
		roots = append(roots, root)
	}

	if len(roots) == 0 {
		return nil, zerr.With(domain.ErrNoWatchRoots, "package_path", s.cfg.Build.PackagePath)
	}
	return roots, nil
}
