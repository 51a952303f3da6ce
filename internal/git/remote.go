package git

import (
	"fmt"
	"regexp"
	"strings"
)

// Identity names a plugin and the owner/repo it is cloned from.
type Identity struct {
	Name   string `json:"name" yaml:"name"`
	RepoID string `json:"repo" yaml:"repo"`
}

var (
	githubRemote = regexp.MustCompile(`^(?:git|https?)://(?:www\.)?github\.com/([\w.-]+/([\w.-]+?))(?:\.git)?$`)
	repoIDShape  = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)
)

// ParseRemote extracts the identity from a GitHub remote URL of the form
// {git,http,https}://[www.]github.com/<owner>/<repo>[.git]. Any other shape,
// including other hosts and scp-style addresses, reports false.
func ParseRemote(remoteURL string) (Identity, bool) {
	m := githubRemote.FindStringSubmatch(remoteURL)
	if m == nil || hasDotSegment(m[1]) {
		return Identity{}, false
	}
	return Identity{Name: m[2], RepoID: m[1]}, true
}

// ParseRepoID turns user input into an identity. It accepts "owner/repo",
// tolerating a trailing slash or ".git" suffix, or a GitHub remote URL.
func ParseRepoID(input string) (Identity, error) {
	input = strings.TrimSpace(input)
	if id, ok := ParseRemote(strings.TrimSuffix(input, "/")); ok {
		return id, nil
	}

	repoID := strings.Trim(input, "/")
	repoID = strings.TrimSuffix(repoID, ".git")
	if !repoIDShape.MatchString(repoID) || hasDotSegment(repoID) {
		return Identity{}, fmt.Errorf("invalid repository %q: expected owner/repo", input)
	}
	return Identity{Name: NameFromRepoID(repoID), RepoID: repoID}, nil
}

// NameFromRepoID returns the last non-empty path segment of a repo identifier,
// which is the directory git clone creates.
// "tpope/vim-fugitive" -> "vim-fugitive"
func NameFromRepoID(repoID string) string {
	parts := strings.Split(repoID, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return strings.TrimSuffix(parts[i], ".git")
		}
	}
	return ""
}

// hasDotSegment reports whether any segment of an owner/repo pair is "." or "..".
func hasDotSegment(repoID string) bool {
	for _, seg := range strings.Split(repoID, "/") {
		if seg == "." || seg == ".." {
			return true
		}
	}
	return false
}

// CloneURL joins the clone base URL and repo identifier.
func CloneURL(baseURL, repoID string) string {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + repoID
}
