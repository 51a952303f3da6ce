package engine

import (
	"context"
	"log/slog"

	slogcontext "github.com/veqryn/slog-context"

	"pathogo/internal/bundle"
	"pathogo/internal/manifest"
)

// Disable moves each named plugin into the disabled directory and, when it is
// tracked, into the manifest's disabled set. Names without a directory are
// reported NotFound and change nothing.
func (e *Engine) Disable(ctx context.Context, names []string) ([]Result, error) {
	if len(names) == 0 {
		return nil, ErrNoNames
	}
	if err := bundle.EnsureDir(e.cfg.DisabledDir); err != nil {
		return nil, err
	}
	return e.toggle(ctx, "disable", names, e.pluginDir, e.disabledDir, (*manifest.Manifest).Disable)
}

// Enable moves each named plugin out of the disabled directory and, when it is
// tracked, back into the manifest's enabled set.
func (e *Engine) Enable(ctx context.Context, names []string) ([]Result, error) {
	if len(names) == 0 {
		return nil, ErrNoNames
	}
	if err := bundle.EnsureDir(e.cfg.DisabledDir); err != nil {
		return nil, err
	}
	return e.toggle(ctx, "enable", names, e.disabledDir, e.pluginDir, (*manifest.Manifest).Enable)
}

// toggle moves each name from src to dst on disk, then applies flip to the
// manifest. The manifest is saved after every entry that changed it so a
// later failure leaves disk and manifest agreeing.
func (e *Engine) toggle(
	ctx context.Context,
	action string,
	names []string,
	src, dst func(string) string,
	flip func(*manifest.Manifest, string) bool,
) ([]Result, error) {
	logger := slogcontext.FromCtx(ctx)

	mf, err := e.loadManifest()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(names))
	for _, name := range names {
		r := Result{Name: name}
		if err := validateName(name); err != nil {
			r.Err = err
			results = append(results, r)
			continue
		}

		from := src(name)
		if !bundle.Exists(from) {
			logger.Debug("nothing to "+action, slog.String("name", name), slog.String("dir", from))
			r.NotFound = true
			results = append(results, r)
			continue
		}

		e.notify(action, name)
		if err := bundle.Move(from, dst(name)); err != nil {
			r.Err = err
			logResult(logger, action, r)
			results = append(results, r)
			continue
		}

		if flip(mf, name) {
			r.RepoID = repoOf(mf, name)
			if err := e.saveManifest(mf); err != nil {
				r.Err = err
				return append(results, r), err
			}
		}
		logResult(logger, action, r)
		results = append(results, r)
	}
	return results, nil
}

func repoOf(mf *manifest.Manifest, name string) string {
	if repo, ok := mf.Enabled[name]; ok {
		return repo
	}
	return mf.Disabled[name]
}
