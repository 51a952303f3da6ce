// Package bundle reads and rearranges the plugin bundle directory.
package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/ini.v1"
)

// ErrNotAPlugin marks a bundle entry without readable git remote metadata.
var ErrNotAPlugin = errors.New("not a plugin repository")

// Entry is one item directly under the bundle directory
type Entry struct {
	Name  string
	Path  string
	IsDir bool

	// Dangling marks a symlink whose target is gone.
	Dangling bool
}

// ListEntries enumerates bundlePath one level deep, sorted by name. Symlinks
// are followed when deciding whether an entry is a directory; one pointing
// nowhere is listed as Dangling rather than failing the scan.
func ListEntries(bundlePath string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(bundlePath)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		p := filepath.Join(bundlePath, de.Name())
		info, err := os.Stat(p)
		if errors.Is(err, os.ErrNotExist) && de.Type()&os.ModeSymlink != 0 {
			entries = append(entries, Entry{Name: de.Name(), Path: p, Dangling: true})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		entries = append(entries, Entry{
			Name:  de.Name(),
			Path:  p,
			IsDir: info.IsDir(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// ReadRemoteURLFor returns the url of the named remote recorded in
// <entryPath>/.git/config. A missing or malformed file, or one without that
// remote's url, is reported as ErrNotAPlugin.
func ReadRemoteURLFor(entryPath, remote string) (string, error) {
	configPath := filepath.Join(entryPath, ".git", "config")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotAPlugin, entryPath, err)
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true}, data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotAPlugin, entryPath, err)
	}

	section, err := cfg.GetSection(fmt.Sprintf("remote %q", remote))
	if err != nil {
		return "", fmt.Errorf("%w: %s: no remote %q", ErrNotAPlugin, entryPath, remote)
	}
	url := section.Key("url").String()
	if url == "" {
		return "", fmt.Errorf("%w: %s: remote %q has no url", ErrNotAPlugin, entryPath, remote)
	}
	return url, nil
}

// Exists reports whether p is a directory.
func Exists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
