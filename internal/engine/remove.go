package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	slogcontext "github.com/veqryn/slog-context"
)

// Remove deletes the plugin's directory, enabled or disabled, and drops it from
// both manifest sets. Removing something that is not there is not an error;
// the result is then marked Skipped.
func (e *Engine) Remove(ctx context.Context, name string) (Result, error) {
	r := Result{Name: name}
	if err := validateName(name); err != nil {
		return r, err
	}
	logger := slogcontext.FromCtx(ctx).With(slog.String("name", name))

	mf, err := e.loadManifest()
	if err != nil {
		return r, err
	}
	r.RepoID = repoOf(mf, name)

	e.notify("remove", name)
	removedDir := false
	for _, dir := range []string{e.pluginDir(name), e.disabledDir(name)} {
		if _, err := os.Lstat(dir); err != nil {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return r, fmt.Errorf("failed to remove %s: %w", dir, err)
		}
		logger.Debug("removed directory", slog.String("dir", dir))
		removedDir = true
	}

	removedEntry := mf.Remove(name)
	if removedEntry {
		if err := e.saveManifest(mf); err != nil {
			return r, err
		}
	}

	r.Skipped = !removedDir && !removedEntry
	r.NotFound = !removedDir
	return r, nil
}

