// Package config provides the configuration loader for kiln.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader over a kiln.yaml found by walking up
// the directory tree.
type Loader struct {
	FS     FileSystem
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given filesystem and logger.
func NewLoader(fs FileSystem, logger ports.Logger) *Loader {
	return &Loader{FS: fs, Logger: logger}
}

// Load reads the project configuration starting from the given working
// directory. A missing kiln.yaml is not an error: the defaults apply with
// the project rooted at cwd.
func (l *Loader) Load(cwd string) (*domain.ProjectConfig, error) {
	cfg := domain.DefaultProjectConfig()

	configPath, found := l.findConfiguration(cwd)
	if !found {
		cfg.Root = filepath.Clean(cwd)
		applyEnvironment(&cfg)
		return &cfg, nil
	}

	kilnfile, err := l.readConfiguration(configPath)
	if err != nil {
		return nil, err
	}

	cfg.Root = filepath.Dir(configPath)
	if err := l.apply(&cfg, kilnfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	applyEnvironment(&cfg)
	return &cfg, nil
}

// DiscoverRoot walks up from cwd to find the directory containing kiln.yaml.
// It returns cwd unchanged when no configuration file exists.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	if configPath, found := l.findConfiguration(cwd); found {
		return filepath.Dir(configPath), nil
	}
	return filepath.Clean(cwd), nil
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := cwd

	for {
		configPath := filepath.Join(currentDir, domain.KilnFileName)
		if _, err := l.FS.Stat(configPath); err == nil {
			return configPath, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Filesystem root.
			break
		}
		currentDir = parentDir
	}

	return "", false
}

func (l *Loader) readConfiguration(configPath string) (*Kilnfile, error) {
	configFile, err := l.FS.ReadFile(configPath)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
		return nil, zerr.With(err, "path", configPath)
	}

	var kilnfile Kilnfile
	if parseErr := yaml.Unmarshal(configFile, &kilnfile); parseErr != nil {
		parseErr = zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
		return nil, zerr.With(parseErr, "path", configPath)
	}

	return &kilnfile, nil
}

// apply copies the file values over the defaults. Fields absent from the
// file keep their default; pointer fields carry explicit zero values.
func (l *Loader) apply(cfg *domain.ProjectConfig, kilnfile *Kilnfile) error {
	if kilnfile.PackagePath != "" {
		cfg.Build.PackagePath = kilnfile.PackagePath
	}
	cfg.Build.Product = kilnfile.Product
	cfg.Build.SDKOverride = kilnfile.SDK
	cfg.Build.Embedded = kilnfile.Embedded
	cfg.Build.ExtraArgs = kilnfile.ExtraArgs

	if kilnfile.UnicodeLinking != nil {
		cfg.Build.UnicodeLinking = *kilnfile.UnicodeLinking
		if !kilnfile.Embedded {
			l.Logger.Warn(fmt.Sprintf("'unicode_linking' defined in %s has no effect without 'embedded'", domain.KilnFileName))
		}
	}

	if kilnfile.Configuration != "" {
		mode := domain.Configuration(kilnfile.Configuration)
		if err := mode.Validate(); err != nil {
			return zerr.With(err, "configuration", kilnfile.Configuration)
		}
		cfg.Build.Configuration = mode
	}

	if kilnfile.Toolchain != "" {
		cfg.Toolchain = kilnfile.Toolchain
	}
	if kilnfile.Optimizer != "" {
		cfg.Optimizer = kilnfile.Optimizer
	}
	if kilnfile.Optimize != nil {
		cfg.Optimize = *kilnfile.Optimize
	}
	if kilnfile.OptimizerArgs != nil {
		cfg.OptimizerArgs = kilnfile.OptimizerArgs
	}
	if kilnfile.Watch != nil {
		cfg.WatchPaths = kilnfile.Watch
	}

	if kilnfile.DebounceMS != nil {
		if *kilnfile.DebounceMS < 0 {
			return zerr.With(domain.ErrInvalidDebounceWindow, "debounce_ms", *kilnfile.DebounceMS)
		}
		cfg.DebounceWindow = time.Duration(*kilnfile.DebounceMS) * time.Millisecond
	}

	return nil
}

// applyEnvironment applies process environment overrides on top of the file
// configuration. A non-empty KILN_SDK_ID replaces SDK detection verbatim.
func applyEnvironment(cfg *domain.ProjectConfig) {
	if sdk := os.Getenv(domain.EnvSDKOverride); sdk != "" {
		cfg.Build.SDKOverride = sdk
	}
}
