package testing

import (
	"context"
	"sort"

	"pathogo/internal/engine"
)

// MockManager is an in-memory stand-in for the engine used by the browser.
type MockManager struct {
	Enabled  map[string]string
	Disabled map[string]string

	Calls   []string
	ListErr error
	FailOn  map[string]error // name -> error returned for that plugin
}

// NewMockManager creates a manager holding the given enabled and disabled sets.
func NewMockManager(enabled, disabled map[string]string) *MockManager {
	m := &MockManager{
		Enabled:  map[string]string{},
		Disabled: map[string]string{},
		FailOn:   map[string]error{},
	}
	for k, v := range enabled {
		m.Enabled[k] = v
	}
	for k, v := range disabled {
		m.Disabled[k] = v
	}
	return m
}

// List returns both groups sorted by name
func (m *MockManager) List(engine.ListOptions) (engine.Listing, error) {
	m.Calls = append(m.Calls, "list")
	if m.ListErr != nil {
		return engine.Listing{}, m.ListErr
	}
	return engine.Listing{Enabled: entries(m.Enabled), Disabled: entries(m.Disabled)}, nil
}

// Enable moves names from the disabled to the enabled set
func (m *MockManager) Enable(_ context.Context, names []string) ([]engine.Result, error) {
	return m.move("enable", names, m.Disabled, m.Enabled), nil
}

// Disable moves names from the enabled to the disabled set
func (m *MockManager) Disable(_ context.Context, names []string) ([]engine.Result, error) {
	return m.move("disable", names, m.Enabled, m.Disabled), nil
}

// Update records the call
func (m *MockManager) Update(_ context.Context, name string, _ bool) ([]engine.Result, error) {
	m.Calls = append(m.Calls, "update:"+name)
	return []engine.Result{{Name: name, RepoID: m.Enabled[name], Stdout: "Already up to date.\n", Err: m.FailOn[name]}}, nil
}

// Remove deletes name from both sets
func (m *MockManager) Remove(_ context.Context, name string) (engine.Result, error) {
	m.Calls = append(m.Calls, "remove:"+name)
	_, inEnabled := m.Enabled[name]
	_, inDisabled := m.Disabled[name]
	delete(m.Enabled, name)
	delete(m.Disabled, name)
	return engine.Result{Name: name, Skipped: !inEnabled && !inDisabled}, nil
}

func (m *MockManager) move(action string, names []string, from, to map[string]string) []engine.Result {
	results := make([]engine.Result, 0, len(names))
	for _, name := range names {
		m.Calls = append(m.Calls, action+":"+name)
		if err := m.FailOn[name]; err != nil {
			results = append(results, engine.Result{Name: name, Err: err})
			continue
		}
		repo, ok := from[name]
		if !ok {
			results = append(results, engine.Result{Name: name, NotFound: true})
			continue
		}
		delete(from, name)
		to[name] = repo
		results = append(results, engine.Result{Name: name, RepoID: repo})
	}
	return results
}

func entries(set map[string]string) []engine.ListEntry {
	out := make([]engine.ListEntry, 0, len(set))
	for name, repo := range set {
		out = append(out, engine.ListEntry{Name: name, RepoID: repo, Installed: true})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
