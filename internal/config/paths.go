package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestLocation is a resolved manifest path and the tier it came from.
type ManifestLocation struct {
	Path   string
	Source ManifestSource
}

// ResolveManifestPath returns explicit if it is a readable file, else the
// $PATHOGO value if that is readable, else <home>/.pathogo.json. The default
// location is created holding an empty manifest when nothing exists there.
func ResolveManifestPath(explicit string, env Env) (ManifestLocation, error) {
	if explicit != "" && fileReadable(explicit) {
		return ManifestLocation{Path: explicit, Source: SourceExplicit}, nil
	}
	if env.ManifestEnv != "" && fileReadable(env.ManifestEnv) {
		return ManifestLocation{Path: env.ManifestEnv, Source: SourceEnv}, nil
	}

	p := DefaultManifestPath(env)
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return ManifestLocation{}, fmt.Errorf("failed to create manifest directory: %w", err)
		}
		if err := os.WriteFile(p, []byte("{}\n"), 0644); err != nil {
			return ManifestLocation{}, fmt.Errorf("failed to create manifest: %w", err)
		}
	}
	return ManifestLocation{Path: p, Source: SourceDefault}, nil
}

// DefaultManifestPath returns <home>/.pathogo.json
func DefaultManifestPath(env Env) string {
	return joinPlatform(env.GOOS, env.Home, ManifestFileName)
}

// ResolveBundlePath returns explicit when it is set and exists on disk,
// otherwise the platform default. The directory is never created here.
func ResolveBundlePath(explicit string, env Env) string {
	if explicit != "" && dirExists(explicit) {
		return explicit
	}
	return DefaultBundlePath(env)
}

// DefaultBundlePath returns ~/.vim/bundle, or <home>\vimfiles\bundle on Windows.
func DefaultBundlePath(env Env) string {
	if env.GOOS == "windows" {
		return joinPlatform(env.GOOS, env.Home, "vimfiles", "bundle")
	}
	return joinPlatform(env.GOOS, env.Home, ".vim", "bundle")
}

func fileReadable(p string) bool {
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return false
	}
	f, err := os.Open(p)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
