package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// ManifestEnvVar names the environment variable that may point at a manifest file.
	ManifestEnvVar = "PATHOGO"

	ManifestFileName = ".pathogo.json"
	SettingsDirName  = "pathogo"
	SettingsFileName = "config.toml"
	DisabledDirName  = ".disabled"

	DefaultGitBinary    = "git"
	DefaultRemote       = "origin"
	DefaultBranch       = "master"
	DefaultCloneBaseURL = "https://www.github.com/"
)

// ManifestSource records which tier of the lookup produced the manifest path.
type ManifestSource string

const (
	SourceExplicit ManifestSource = "explicit"
	SourceEnv      ManifestSource = "env"
	SourceDefault  ManifestSource = "default"
)

// Env is the slice of process state path resolution depends on. It is captured
// once at startup so nothing deeper in the program reads the environment.
type Env struct {
	GOOS        string
	Home        string
	ManifestEnv string // value of $PATHOGO
	ConfigHome  string // $XDG_CONFIG_HOME, may be empty
}

// EnvFromOS captures Env from the running process.
func EnvFromOS() (Env, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Env{}, fmt.Errorf("resolving home directory: %w", err)
	}
	return Env{
		GOOS:        runtime.GOOS,
		Home:        home,
		ManifestEnv: os.Getenv(ManifestEnvVar),
		ConfigHome:  os.Getenv("XDG_CONFIG_HOME"),
	}, nil
}

// Options carries the explicit overrides given on the command line.
type Options struct {
	ManifestPath string
	BundlePath   string
	SettingsPath string
}

// Settings represents the optional TOML settings file.
type Settings struct {
	BundleDir    string `toml:"bundle_dir,omitempty"`
	Git          string `toml:"git,omitempty"`
	Remote       string `toml:"remote,omitempty"`
	Branch       string `toml:"branch,omitempty"`
	CloneBaseURL string `toml:"clone_base_url,omitempty"`
}

// Config holds the runtime configuration, resolved once per invocation
type Config struct {
	ManifestPath   string
	ManifestSource ManifestSource
	BundleDir      string
	DisabledDir    string // <BundleDir>/.disabled
	SettingsPath   string
	GitBinary      string
	Remote         string
	Branch         string
	CloneBaseURL   string
}

// Load resolves every path and setting for one invocation. The manifest file is
// created empty when the default location has nothing yet.
func Load(opts Options, env Env) (*Config, error) {
	settingsPath := opts.SettingsPath
	if settingsPath == "" {
		settingsPath = DefaultSettingsPath(env)
	}

	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}

	loc, err := ResolveManifestPath(opts.ManifestPath, env)
	if err != nil {
		return nil, err
	}

	bundleOverride := opts.BundlePath
	if bundleOverride == "" || !dirExists(bundleOverride) {
		if settings.BundleDir != "" {
			bundleOverride = expandHome(settings.BundleDir, env.Home)
		}
	}
	bundleDir := ResolveBundlePath(bundleOverride, env)

	cfg := &Config{
		ManifestPath:   loc.Path,
		ManifestSource: loc.Source,
		BundleDir:      bundleDir,
		DisabledDir:    filepath.Join(bundleDir, DisabledDirName),
		SettingsPath:   settingsPath,
		GitBinary:      orDefault(settings.Git, DefaultGitBinary),
		Remote:         orDefault(settings.Remote, DefaultRemote),
		Branch:         orDefault(settings.Branch, DefaultBranch),
		CloneBaseURL:   orDefault(settings.CloneBaseURL, DefaultCloneBaseURL),
	}
	if !strings.HasSuffix(cfg.CloneBaseURL, "/") {
		cfg.CloneBaseURL += "/"
	}
	return cfg, nil
}

// DefaultSettingsPath returns <ConfigHome>/pathogo/config.toml, where ConfigHome
// falls back to <home>/.config.
func DefaultSettingsPath(env Env) string {
	base := env.ConfigHome
	if base == "" {
		base = joinPlatform(env.GOOS, env.Home, ".config")
	}
	return joinPlatform(env.GOOS, base, SettingsDirName, SettingsFileName)
}

// LoadSettings decodes the settings file. A missing file yields zero Settings.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return s, nil
}

// SaveSettings writes the settings file, creating its parent directory.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(s)
}

func expandHome(p, home string) string {
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		return filepath.Join(home, p[2:])
	}
	return p
}

// joinPlatform joins path elements with the separator of goos rather than the
// host separator, so Windows layouts can be computed anywhere.
func joinPlatform(goos string, elem ...string) string {
	if goos != "windows" {
		return path.Join(elem...)
	}
	parts := make([]string, 0, len(elem))
	for i, e := range elem {
		if i > 0 {
			e = strings.TrimLeft(e, `\/`)
		}
		if i < len(elem)-1 {
			e = strings.TrimRight(e, `\/`)
		}
		if e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, `\`)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
