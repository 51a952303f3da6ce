package bundle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sensibleConfig = `[core]
	repositoryformatversion = 0
	filemode = true
	bare = false
	logallrefupdates = true
[remote "origin"]
	url = https://github.com/tpope/vim-sensible.git
	fetch = +refs/heads/*:refs/remotes/origin/*
[branch "master"]
	remote = origin
	merge = refs/heads/master
`

// createPlugin creates <base>/<name>/.git/config with the given content
func createPlugin(t *testing.T, base, name, gitConfig string) string {
	t.Helper()
	dir := filepath.Join(base, name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "config"), []byte(gitConfig), 0o644))
	return dir
}

func TestListEntries_DistinguishesDirectories(t *testing.T) {
	tmp := t.TempDir()
	createPlugin(t, tmp, "vim-sensible", sensibleConfig)
	require.NoError(t, os.Mkdir(filepath.Join(tmp, "alpha"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "README.md"), []byte("notes"), 0o644))

	entries, err := ListEntries(tmp)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, Entry{Name: "README.md", Path: filepath.Join(tmp, "README.md"), IsDir: false}, entries[0])
	assert.Equal(t, "alpha", entries[1].Name)
	assert.True(t, entries[1].IsDir)
	assert.Equal(t, "vim-sensible", entries[2].Name)
	assert.True(t, entries[2].IsDir)
}

func TestListEntries_FollowsSymlinks(t *testing.T) {
	tmp := t.TempDir()
	target := t.TempDir()
	require.NoError(t, os.Symlink(target, filepath.Join(tmp, "linked")))

	entries, err := ListEntries(tmp)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir)
}

func TestListEntries_ReportsDanglingSymlink(t *testing.T) {
	tmp := t.TempDir()
	createPlugin(t, tmp, "vim-sensible", sensibleConfig)
	require.NoError(t, os.Symlink(filepath.Join(tmp, "gone"), filepath.Join(tmp, "broken")))

	entries, err := ListEntries(tmp)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Name: "broken", Path: filepath.Join(tmp, "broken"), Dangling: true}, entries[0])
	assert.False(t, entries[1].Dangling)
	assert.True(t, entries[1].IsDir)
}

func TestListEntries_MissingDirectory(t *testing.T) {
	_, err := ListEntries(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadRemoteURL(t *testing.T) {
	tmp := t.TempDir()
	dir := createPlugin(t, tmp, "vim-sensible", sensibleConfig)

	url, err := ReadRemoteURLFor(dir, "origin")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/tpope/vim-sensible.git", url)
}

func TestReadRemoteURLFor_OtherRemote(t *testing.T) {
	tmp := t.TempDir()
	dir := createPlugin(t, tmp, "fork", sensibleConfig+`[remote "upstream"]
	url = git://github.com/someone/fork
`)

	url, err := ReadRemoteURLFor(dir, "upstream")
	require.NoError(t, err)
	assert.Equal(t, "git://github.com/someone/fork", url)
}

func TestReadRemoteURL_NotAPlugin(t *testing.T) {
	tmp := t.TempDir()

	plain := filepath.Join(tmp, "plain")
	require.NoError(t, os.Mkdir(plain, 0o755))

	tests := map[string]string{
		"no git metadata":    plain,
		"malformed config":   createPlugin(t, tmp, "broken", "[remote \"origin\"\n\turl = x\n"),
		"no origin remote":   createPlugin(t, tmp, "local-only", "[core]\n\tbare = false\n"),
		"origin without url": createPlugin(t, tmp, "empty-origin", "[remote \"origin\"]\n\tfetch = +refs/heads/*:refs/remotes/origin/*\n"),
	}

	for name, dir := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadRemoteURLFor(dir, "origin")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotAPlugin), "got %v", err)
		})
	}
}

func TestMove_RenamesDirectory(t *testing.T) {
	tmp := t.TempDir()
	src := createPlugin(t, tmp, "vim-sensible", sensibleConfig)
	disabled := filepath.Join(tmp, ".disabled")
	require.NoError(t, EnsureDir(disabled))

	dst := filepath.Join(disabled, "vim-sensible")
	require.NoError(t, Move(src, dst))

	assert.False(t, Exists(src))
	assert.True(t, Exists(dst))
	url, err := ReadRemoteURLFor(dst, "origin")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/tpope/vim-sensible.git", url)
}

func TestMove_RefusesExistingDestination(t *testing.T) {
	tmp := t.TempDir()
	src := createPlugin(t, tmp, "vim-sensible", sensibleConfig)
	dst := createPlugin(t, filepath.Join(tmp, ".disabled"), "vim-sensible", sensibleConfig)

	err := Move(src, dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDestinationExists))
	assert.True(t, Exists(src))
}

func TestMove_MissingSource(t *testing.T) {
	tmp := t.TempDir()
	err := Move(filepath.Join(tmp, "absent"), filepath.Join(tmp, "dst"))
	require.Error(t, err)
}

func TestCopyRecursive_PreservesTree(t *testing.T) {
	tmp := t.TempDir()
	src := createPlugin(t, tmp, "src", sensibleConfig)
	require.NoError(t, os.MkdirAll(filepath.Join(src, "plugin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "plugin", "sensible.vim"), []byte("set nocompatible\n"), 0o644))
	require.NoError(t, os.Symlink("plugin/sensible.vim", filepath.Join(src, "link.vim")))

	dst := filepath.Join(tmp, "dst")
	require.NoError(t, copyRecursive(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "plugin", "sensible.vim"))
	require.NoError(t, err)
	assert.Equal(t, "set nocompatible\n", string(data))

	target, err := os.Readlink(filepath.Join(dst, "link.vim"))
	require.NoError(t, err)
	assert.Equal(t, "plugin/sensible.vim", target)
}
