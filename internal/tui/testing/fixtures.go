package testing

import "pathogo/internal/engine"

// TestListing returns a listing with two enabled plugins, one of them not
// cloned yet, and one disabled plugin.
func TestListing() engine.Listing {
	return engine.Listing{
		Enabled: []engine.ListEntry{
			{Name: "vim-fugitive", RepoID: "tpope/vim-fugitive", Installed: true},
			{Name: "vim-sensible", RepoID: "tpope/vim-sensible", Installed: false},
		},
		Disabled: []engine.ListEntry{
			{Name: "nerdtree", RepoID: "preservim/nerdtree", Installed: true},
		},
	}
}
