package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewManifest(), nil
		}
		return nil, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return NewManifest(), nil
	}

	mf := NewManifest()
	if err := json.Unmarshal(data, mf); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return mf, nil
}

// Save writes mf to path as two-space indented JSON. The content goes to a
// temporary file next to the real file, following symlinks, which is then
// renamed over it. An existing file keeps its permissions.
func Save(path string, mf *Manifest) error {
	data, err := json.MarshalIndent(mf, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	target, mode, err := resolveTarget(path)
	if err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".pathogo-*.json")
	if err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// resolveTarget returns the file a write to path should replace and the mode
// to give it. A path that does not exist yet is written as is with 0644.
func resolveTarget(path string) (string, os.FileMode, error) {
	target, err := filepath.EvalSymlinks(path)
	if errors.Is(err, os.ErrNotExist) {
		return path, 0644, nil
	}
	if err != nil {
		return "", 0, err
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", 0, err
	}
	return target, info.Mode().Perm(), nil
}

// Add records name as enabled, clearing any disabled entry of the same name.
func (mf *Manifest) Add(name, repo string) {
	delete(mf.Disabled, name)
	mf.Enabled[name] = repo
}

// AddDisabled records name as disabled, clearing any enabled entry of the same name.
func (mf *Manifest) AddDisabled(name, repo string) {
	delete(mf.Enabled, name)
	mf.Disabled[name] = repo
}

// Remove deletes name from both sets. It reports whether anything was removed.
func (mf *Manifest) Remove(name string) bool {
	_, inEnabled := mf.Enabled[name]
	_, inDisabled := mf.Disabled[name]
	delete(mf.Enabled, name)
	delete(mf.Disabled, name)
	return inEnabled || inDisabled
}

// Disable moves name from the enabled set to the disabled set. It reports
// false, leaving the manifest untouched, when name is not enabled.
func (mf *Manifest) Disable(name string) bool {
	repo, ok := mf.Enabled[name]
	if !ok {
		return false
	}
	mf.AddDisabled(name, repo)
	return true
}

// Enable moves name from the disabled set to the enabled set.
func (mf *Manifest) Enable(name string) bool {
	repo, ok := mf.Disabled[name]
	if !ok {
		return false
	}
	mf.Add(name, repo)
	return true
}
