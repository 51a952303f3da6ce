package engine

import (
	"context"
	"log/slog"
	"strings"

	slogcontext "github.com/veqryn/slog-context"

	"pathogo/internal/bundle"
	"pathogo/internal/git"
)

// Update pulls the named plugin, or every enabled plugin when all is set.
// name may also be given as owner/repo. Plugins without a directory are
// skipped. With neither a name nor all, Update does nothing.
func (e *Engine) Update(ctx context.Context, name string, all bool) ([]Result, error) {
	if name != "" {
		if strings.Contains(name, "/") {
			name = git.NameFromRepoID(name)
		}
		if err := validateName(name); err != nil {
			return nil, err
		}
		return []Result{e.pull(ctx, name, "")}, nil
	}
	if !all {
		return nil, nil
	}

	mf, err := e.loadManifest()
	if err != nil {
		return nil, err
	}

	deps := mf.EnabledList()
	results := make([]Result, 0, len(deps))
	for _, dep := range deps {
		if err := validateName(dep.Name); err != nil {
			results = append(results, Result{Name: dep.Name, RepoID: dep.RepoID, Err: err})
			continue
		}
		results = append(results, e.pull(ctx, dep.Name, dep.RepoID))
	}
	return results, nil
}

func (e *Engine) pull(ctx context.Context, name, repoID string) Result {
	logger := slogcontext.FromCtx(ctx).With(slog.String("name", name))
	r := Result{Name: name, RepoID: repoID}

	dir := e.pluginDir(name)
	if !bundle.Exists(dir) {
		logger.Debug("not installed, skipping update", slog.String("dir", dir))
		r.Skipped = true
		r.NotFound = true
		return r
	}

	e.notify("update", name)
	logger.Debug("running git pull", slog.String("remote", e.cfg.Remote), slog.String("branch", e.cfg.Branch))
	res, err := git.Pull(ctx, e.git, dir, e.cfg.Remote, e.cfg.Branch)
	r = fromCommand(r, res, err)
	logResult(logger, "pull", r)
	return r
}
