package engine

import (
	"pathogo/internal/bundle"
	"pathogo/internal/manifest"
)

// ListOptions restricts List to one group. Setting neither (or both) lists both.
type ListOptions struct {
	Enabled  bool
	Disabled bool
}

// ListEntry is one manifest dependency annotated with whether its directory
// is present where its group expects it.
type ListEntry struct {
	Name      string `json:"name" yaml:"name"`
	RepoID    string `json:"repo" yaml:"repo"`
	Installed bool   `json:"installed" yaml:"installed"`
}

// Listing is the manifest projected into its two groups. A nil group was not
// requested.
type Listing struct {
	Enabled  []ListEntry `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Disabled []ListEntry `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// List reads the manifest and never modifies anything.
func (e *Engine) List(opts ListOptions) (Listing, error) {
	mf, err := e.loadManifest()
	if err != nil {
		return Listing{}, err
	}

	both := opts.Enabled == opts.Disabled
	var out Listing
	if both || opts.Enabled {
		out.Enabled = project(mf.EnabledList(), e.pluginDir)
	}
	if both || opts.Disabled {
		out.Disabled = project(mf.DisabledList(), e.disabledDir)
	}
	return out, nil
}

func project(deps []manifest.Dependency, dir func(string) string) []ListEntry {
	out := make([]ListEntry, 0, len(deps))
	for _, d := range deps {
		out = append(out, ListEntry{
			Name:      d.Name,
			RepoID:    d.RepoID,
			Installed: validateName(d.Name) == nil && bundle.Exists(dir(d.Name)),
		})
	}
	return out
}
