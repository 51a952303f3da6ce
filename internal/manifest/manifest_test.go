package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), ".pathogo.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_SplitsEnabledAndDisabled(t *testing.T) {
	p := writeManifest(t, `{
  "vim-sensible": "tpope/vim-sensible",
  "disabled": {
    "vim-fugitive": "tpope/vim-fugitive"
  }
}`)

	mf, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"vim-sensible": "tpope/vim-sensible"}, mf.Enabled)
	assert.Equal(t, map[string]string{"vim-fugitive": "tpope/vim-fugitive"}, mf.Disabled)
}

func TestLoad_MissingAndEmptyFiles(t *testing.T) {
	mf, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, mf.Enabled)
	assert.Empty(t, mf.Disabled)

	mf, err = Load(writeManifest(t, "  \n"))
	require.NoError(t, err)
	assert.Empty(t, mf.Enabled)
}

func TestLoad_ParseErrors(t *testing.T) {
	tests := map[string]string{
		"not json":          `{"vim-sensible": `,
		"array":             `["tpope/vim-sensible"]`,
		"non-string value":  `{"vim-sensible": 3}`,
		"bad disabled type": `{"disabled": "tpope/vim-sensible"}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			p := writeManifest(t, content)
			_, err := Load(p)
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected *ParseError, got %T", err)
			assert.Equal(t, p, perr.Path)
		})
	}
}

func TestSave_IndentedAndStable(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".pathogo.json")
	mf := NewManifest()
	mf.Add("vim-surround", "tpope/vim-surround")
	mf.Add("vim-sensible", "tpope/vim-sensible")
	mf.AddDisabled("vim-fugitive", "tpope/vim-fugitive")

	require.NoError(t, Save(p, mf))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	want := `{
  "disabled": {
    "vim-fugitive": "tpope/vim-fugitive"
  },
  "vim-sensible": "tpope/vim-sensible",
  "vim-surround": "tpope/vim-surround"
}
`
	assert.Equal(t, want, string(data))

	loaded, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, mf, loaded)
}

func TestSave_OmitsEmptyDisabled(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".pathogo.json")
	require.NoError(t, Save(p, NewManifest()))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestSave_UnwritableDirectory(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing-dir", ".pathogo.json")
	require.Error(t, Save(p, NewManifest()))
}

func TestManifest_DisableEnableKeepSetsDisjoint(t *testing.T) {
	mf := NewManifest()
	mf.Add("vim-sensible", "tpope/vim-sensible")

	require.True(t, mf.Disable("vim-sensible"))
	assert.NotContains(t, mf.Enabled, "vim-sensible")
	assert.Contains(t, mf.Disabled, "vim-sensible")

	assert.False(t, mf.Disable("vim-sensible"), "already disabled")

	require.True(t, mf.Enable("vim-sensible"))
	assert.Contains(t, mf.Enabled, "vim-sensible")
	assert.NotContains(t, mf.Disabled, "vim-sensible")

	assert.False(t, mf.Enable("unknown"))
}

func TestManifest_AddClearsDisabled(t *testing.T) {
	mf := NewManifest()
	mf.AddDisabled("vim-sensible", "tpope/vim-sensible")
	mf.Add("vim-sensible", "tpope/vim-sensible")

	assert.Contains(t, mf.Enabled, "vim-sensible")
	assert.NotContains(t, mf.Disabled, "vim-sensible")
}

func TestManifest_RemoveIsIdempotent(t *testing.T) {
	mf := NewManifest()
	mf.Add("vim-sensible", "tpope/vim-sensible")

	assert.True(t, mf.Remove("vim-sensible"))
	assert.False(t, mf.Remove("vim-sensible"))
	assert.Empty(t, mf.Enabled)
}

func TestManifest_SortedLists(t *testing.T) {
	mf := NewManifest()
	mf.Add("b", "o/b")
	mf.Add("a", "o/a")
	mf.AddDisabled("c", "o/c")

	assert.Equal(t, []Dependency{{Name: "a", RepoID: "o/a"}, {Name: "b", RepoID: "o/b"}}, mf.EnabledList())
	assert.Equal(t, []Dependency{{Name: "c", RepoID: "o/c"}}, mf.DisabledList())
}

func TestSave_WritesThroughSymlink(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "dotfiles", "pathogo.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("{}\n"), 0o600))
	link := filepath.Join(tmp, ".pathogo.json")
	require.NoError(t, os.Symlink(target, link))

	mf := NewManifest()
	mf.Add("vim-sensible", "tpope/vim-sensible")
	require.NoError(t, Save(link, mf))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link was replaced by a regular file")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"vim-sensible\": \"tpope/vim-sensible\"\n}\n", string(data))

	info, err = os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSave_NewFileMode(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".pathogo.json")
	require.NoError(t, Save(p, NewManifest()))

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestSave_RejectsReservedName(t *testing.T) {
	p := writeManifest(t, "{}\n")
	mf := NewManifest()
	mf.Add(DisabledKey, "someone/disabled")

	require.Error(t, Save(p, mf))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data), "manifest must be left untouched")
}
