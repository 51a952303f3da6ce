// Package engine keeps the manifest and the bundle directory in step with each
// other: it installs, updates, removes, enables, disables and reconciles
// plugins, shelling out to git for every repository operation.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pathogo/internal/config"
	"pathogo/internal/git"
	"pathogo/internal/manifest"
)

// Result is the outcome of one entry of a (possibly bulk) operation.
type Result struct {
	Name   string
	RepoID string
	Stdout string
	Stderr string
	Err    error
	// Skipped is set when there was nothing to do for the entry.
	Skipped bool
	// NotFound is set when the entry's directory was not where it was expected.
	NotFound bool
	// Saved is set when the entry was written to the manifest.
	Saved bool
}

// Failed reports whether the entry ended in an error.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Option configures an Engine.
type Option func(*Engine)

// WithProgress registers fn to be called before each per-entry action starts.
func WithProgress(fn func(action, name string)) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// Engine performs synchronization operations for one resolved configuration.
type Engine struct {
	cfg      config.Config
	git      git.Runner
	progress func(action, name string)
}

// New creates an engine. The manifest is re-read at the start of every operation.
func New(cfg config.Config, runner git.Runner, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg,
		git: runner,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) notify(action, name string) {
	if e.progress != nil {
		e.progress(action, name)
	}
}

func (e *Engine) loadManifest() (*manifest.Manifest, error) {
	mf, err := manifest.Load(e.cfg.ManifestPath)
	if err != nil {
		return nil, &ConfigError{Op: "read", Path: e.cfg.ManifestPath, Err: err}
	}
	return mf, nil
}

func (e *Engine) saveManifest(mf *manifest.Manifest) error {
	if err := manifest.Save(e.cfg.ManifestPath, mf); err != nil {
		return &ConfigError{Op: "write", Path: e.cfg.ManifestPath, Err: err}
	}
	return nil
}

func (e *Engine) pluginDir(name string) string {
	return filepath.Join(e.cfg.BundleDir, name)
}

func (e *Engine) disabledDir(name string) string {
	return filepath.Join(e.cfg.DisabledDir, name)
}

// validateName rejects names that do not denote a single entry of the bundle
// directory.
func validateName(name string) error {
	switch {
	case name == "":
		return &InputError{Input: name, Reason: "name is empty"}
	case name == "." || name == "..":
		return &InputError{Input: name, Reason: "not a plugin name"}
	case strings.ContainsAny(name, `/\`):
		return &InputError{Input: name, Reason: "name contains a path separator"}
	case name == config.DisabledDirName:
		return &InputError{Input: name, Reason: "reserved for disabled plugins"}
	case name == manifest.DisabledKey:
		return &InputError{Input: name, Reason: "reserved manifest key"}
	}
	return nil
}

// fromCommand copies captured git output into r.
func fromCommand(r Result, res git.Result, err error) Result {
	r.Stdout = res.Stdout
	r.Stderr = res.Stderr
	r.Err = err
	return r
}

func logResult(logger *slog.Logger, action string, r Result) {
	if r.Err != nil {
		logger.Warn(action+" failed", slog.String("name", r.Name), slog.Any("error", r.Err))
		return
	}
	logger.Debug(action+" finished", slog.String("name", r.Name), slog.Bool("skipped", r.Skipped))
}

func ensureBundleDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create bundle directory: %w", err)
	}
	return nil
}

// IsInputError reports whether err is an InputError or ErrNoNames.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr) || errors.Is(err, ErrNoNames)
}
