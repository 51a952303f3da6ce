package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	slogcontext "github.com/veqryn/slog-context"

	"pathogo/internal/bundle"
	"pathogo/internal/config"
	"pathogo/internal/git"
)

// BuildOptions controls Build.
type BuildOptions struct {
	// IncludeDisabled also scans the disabled directory into the disabled set.
	IncludeDisabled bool
}

// SkippedEntry is a bundle entry Build could not identify.
type SkippedEntry struct {
	Name   string
	Reason string
}

// BuildReport lists what a Build recorded and what it passed over.
type BuildReport struct {
	Enabled  []git.Identity
	Disabled []git.Identity
	Skipped  []SkippedEntry
}

// Build scans the bundle directory and merges every plugin it can identify
// from its git remote into the manifest. Entries without a recognizable remote
// are skipped. Existing manifest entries are never removed, and the manifest
// is written once after the scan.
func (e *Engine) Build(ctx context.Context, opts BuildOptions) (BuildReport, error) {
	var report BuildReport

	mf, err := e.loadManifest()
	if err != nil {
		return report, err
	}

	enabled, skipped, err := e.scan(ctx, e.cfg.BundleDir)
	if err != nil {
		return report, err
	}
	report.Enabled = enabled
	report.Skipped = skipped

	if opts.IncludeDisabled {
		disabled, skipped, err := e.scan(ctx, e.cfg.DisabledDir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return report, err
		}
		report.Disabled = disabled
		report.Skipped = append(report.Skipped, skipped...)
	}

	for _, id := range report.Enabled {
		mf.Add(id.Name, id.RepoID)
	}
	for _, id := range report.Disabled {
		mf.AddDisabled(id.Name, id.RepoID)
	}
	if err := e.saveManifest(mf); err != nil {
		return report, err
	}
	return report, nil
}

// scan identifies the plugin directories directly under dir.
func (e *Engine) scan(ctx context.Context, dir string) ([]git.Identity, []SkippedEntry, error) {
	logger := slogcontext.FromCtx(ctx)

	entries, err := bundle.ListEntries(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	var found []git.Identity
	var skipped []SkippedEntry
	for _, entry := range entries {
		if entry.Dangling {
			skipped = append(skipped, SkippedEntry{Name: entry.Name, Reason: "dangling symlink"})
			continue
		}
		if !entry.IsDir || entry.Name == config.DisabledDirName {
			continue
		}
		e.notify("build", entry.Name)

		url, err := bundle.ReadRemoteURLFor(entry.Path, e.cfg.Remote)
		if err != nil {
			logger.Debug("skipping entry", slog.String("name", entry.Name), slog.Any("reason", err))
			skipped = append(skipped, SkippedEntry{Name: entry.Name, Reason: "no git remote " + e.cfg.Remote})
			continue
		}
		id, ok := git.ParseRemote(url)
		if !ok {
			logger.Debug("skipping entry", slog.String("name", entry.Name), slog.String("url", url))
			skipped = append(skipped, SkippedEntry{Name: entry.Name, Reason: "unrecognized remote " + url})
			continue
		}
		if err := validateName(id.Name); err != nil {
			logger.Debug("skipping entry", slog.String("name", entry.Name), slog.Any("reason", err))
			skipped = append(skipped, SkippedEntry{Name: entry.Name, Reason: "repository name " + id.Name + " is reserved"})
			continue
		}
		found = append(found, id)
	}
	return found, skipped, nil
}
