package engine

import (
	"context"
	"log/slog"

	slogcontext "github.com/veqryn/slog-context"

	"pathogo/internal/bundle"
	"pathogo/internal/git"
	"pathogo/internal/manifest"
)

// InstallOptions controls Install.
type InstallOptions struct {
	// Save records the plugin in the manifest once its directory exists.
	Save bool
}

// Install clones repo into the bundle directory. With an empty repo every
// enabled manifest entry without a directory is cloned instead; a failed clone
// does not stop the remaining entries.
func (e *Engine) Install(ctx context.Context, repo string, opts InstallOptions) ([]Result, error) {
	if repo == "" {
		return e.installAll(ctx)
	}

	id, err := git.ParseRepoID(repo)
	if err != nil {
		return nil, &InputError{Input: repo, Reason: "expected owner/repo or a GitHub URL"}
	}
	if err := validateName(id.Name); err != nil {
		return nil, err
	}
	logger := slogcontext.FromCtx(ctx).With(slog.String("name", id.Name), slog.String("repo", id.RepoID))

	// A broken manifest is reported before anything is cloned.
	var mf *manifest.Manifest
	if opts.Save {
		if mf, err = e.loadManifest(); err != nil {
			return nil, err
		}
	}

	if err := ensureBundleDir(e.cfg.BundleDir); err != nil {
		return nil, err
	}

	r := e.clone(ctx, id)
	logResult(logger, "clone", r)

	if opts.Save && bundle.Exists(e.pluginDir(id.Name)) {
		mf.Add(id.Name, id.RepoID)
		if err := e.saveManifest(mf); err != nil {
			return []Result{r}, err
		}
		r.Saved = true
		logger.Debug("saved to manifest", slog.String("manifest", e.cfg.ManifestPath))
	}
	return []Result{r}, nil
}

func (e *Engine) installAll(ctx context.Context) ([]Result, error) {
	logger := slogcontext.FromCtx(ctx)

	mf, err := e.loadManifest()
	if err != nil {
		return nil, err
	}
	if err := ensureBundleDir(e.cfg.BundleDir); err != nil {
		return nil, err
	}

	deps := mf.EnabledList()
	results := make([]Result, 0, len(deps))
	for _, dep := range deps {
		r := Result{Name: dep.Name, RepoID: dep.RepoID}
		if err := validateName(dep.Name); err != nil {
			r.Err = err
			results = append(results, r)
			continue
		}
		if bundle.Exists(e.pluginDir(dep.Name)) {
			r.Skipped = true
			logger.Debug("already installed", slog.String("name", dep.Name))
			results = append(results, r)
			continue
		}
		// git names the clone after the repository, not the manifest key.
		if cloned := git.NameFromRepoID(dep.RepoID); cloned != dep.Name && bundle.Exists(e.pluginDir(cloned)) {
			r.Skipped = true
			logger.Warn("installed under the repository name, not the manifest key",
				slog.String("name", dep.Name), slog.String("dir", cloned))
			results = append(results, r)
			continue
		}

		r = e.clone(ctx, git.Identity{Name: dep.Name, RepoID: dep.RepoID})
		logResult(logger, "clone", r)
		results = append(results, r)
	}
	return results, nil
}

func (e *Engine) clone(ctx context.Context, id git.Identity) Result {
	e.notify("install", id.Name)
	url := git.CloneURL(e.cfg.CloneBaseURL, id.RepoID)
	slogcontext.FromCtx(ctx).Debug("running git clone", slog.String("url", url), slog.String("dir", e.cfg.BundleDir))

	res, err := git.Clone(ctx, e.git, e.cfg.BundleDir, url)
	return fromCommand(Result{Name: id.Name, RepoID: id.RepoID}, res, err)
}
