package git

import (
	"fmt"
	"regexp"
	"strings"
)

// CommandError is a git invocation that did not exit cleanly.
type CommandError struct {
	Args     []string
	Dir      string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(e.Args, " "))
	if e.ExitCode >= 0 {
		msg = fmt.Sprintf("%s (exit status %d)", msg, e.ExitCode)
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if hint := Classify(e.Stderr); hint != nil {
		msg = fmt.Sprintf("%s: %s", msg, hint.Message)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Hint is a user-facing reading of git's stderr.
type Hint struct {
	Category   string
	Message    string
	Suggestion string
}

type hintPattern struct {
	pattern *regexp.Regexp
	hint    Hint
}

// Order matters: more specific patterns come before general ones.
var hintPatterns = []hintPattern{
	{
		pattern: regexp.MustCompile(`(?i)destination path .* already exists`),
		hint: Hint{
			Category:   "already_exists",
			Message:    "Plugin directory already exists",
			Suggestion: "Run 'pathogo update' to pull the existing clone instead",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)repository .* not found`),
		hint: Hint{
			Category:   "repository_not_found",
			Message:    "Repository not found",
			Suggestion: "Verify the owner/repo identifier is spelled correctly",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)SSL certificate problem|certificate verify failed`),
		hint: Hint{
			Category:   "ssl_error",
			Message:    "SSL certificate verification failed",
			Suggestion: "Check your system's SSL certificates are up to date",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)couldn't find remote ref|[Rr]emote branch .* not found`),
		hint: Hint{
			Category:   "ref_not_found",
			Message:    "Branch not found on remote",
			Suggestion: "Set 'branch' in the settings file to the plugin's default branch",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)Authentication failed|could not read (Username|Password)`),
		hint: Hint{
			Category:   "auth_required",
			Message:    "Authentication required",
			Suggestion: "Check the repository is public or configure git credentials",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)Could not resolve host|Temporary failure in name resolution`),
		hint: Hint{
			Category:   "dns_error",
			Message:    "Could not resolve hostname",
			Suggestion: "Check your network connection",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)Connection timed out|unable to connect|unable to access`),
		hint: Hint{
			Category:   "network_error",
			Message:    "Unable to access repository",
			Suggestion: "Check your network connection and proxy settings",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)not a git repository`),
		hint: Hint{
			Category:   "not_a_repository",
			Message:    "Plugin directory is not a git clone",
			Suggestion: "Remove and reinstall the plugin",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)Your local changes .* would be overwritten|Please commit your changes`),
		hint: Hint{
			Category:   "local_changes",
			Message:    "Plugin has local modifications",
			Suggestion: "Commit or discard the changes inside the plugin directory",
		},
	},
}

// Classify matches git stderr against known failure patterns.
// It returns nil when nothing matches.
func Classify(stderr string) *Hint {
	for _, p := range hintPatterns {
		if p.pattern.MatchString(stderr) {
			h := p.hint
			return &h
		}
	}
	return nil
}
