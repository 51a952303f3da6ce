package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// DisabledKey is the reserved top-level key holding the disabled set on disk.
const DisabledKey = "disabled"

// Manifest represents the manifest file: two disjoint name -> "owner/repo" sets.
type Manifest struct {
	Enabled  map[string]string
	Disabled map[string]string
}

// Dependency is one tracked plugin.
type Dependency struct {
	Name   string `json:"name" yaml:"name"`
	RepoID string `json:"repo" yaml:"repo"`
}

// NewManifest creates an empty manifest
func NewManifest() *Manifest {
	return &Manifest{
		Enabled:  make(map[string]string),
		Disabled: make(map[string]string),
	}
}

// ParseError reports manifest content that is not a valid manifest document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid manifest: %v", e.Err)
	}
	return fmt.Sprintf("invalid manifest %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MarshalJSON writes enabled entries at the top level and disabled entries
// under the "disabled" key.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	if _, ok := m.Enabled[DisabledKey]; ok {
		return nil, fmt.Errorf("dependency name %q collides with the reserved key", DisabledKey)
	}
	doc := make(map[string]any, len(m.Enabled)+1)
	for name, repo := range m.Enabled {
		doc[name] = repo
	}
	if len(m.Disabled) > 0 {
		doc[DisabledKey] = m.Disabled
	}
	return json.Marshal(doc)
}

// UnmarshalJSON reads the on-disk shape. Every top-level value other than
// "disabled" must be a string.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = *NewManifest()
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := NewManifest()
	for key, value := range raw {
		if key == DisabledKey {
			var disabled map[string]string
			if err := json.Unmarshal(value, &disabled); err != nil {
				return fmt.Errorf("key %q: %w", DisabledKey, err)
			}
			for name, repo := range disabled {
				out.Disabled[name] = repo
			}
			continue
		}
		var repo string
		if err := json.Unmarshal(value, &repo); err != nil {
			return fmt.Errorf("key %q: expected a repository string", key)
		}
		out.Enabled[key] = repo
	}

	*m = *out
	return nil
}

// EnabledList returns the enabled set sorted by name.
func (m *Manifest) EnabledList() []Dependency {
	return sortedDeps(m.Enabled)
}

// DisabledList returns the disabled set sorted by name.
func (m *Manifest) DisabledList() []Dependency {
	return sortedDeps(m.Disabled)
}

func sortedDeps(set map[string]string) []Dependency {
	deps := make([]Dependency, 0, len(set))
	for name, repo := range set {
		deps = append(deps, Dependency{Name: name, RepoID: repo})
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return deps
}
