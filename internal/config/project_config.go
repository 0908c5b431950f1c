package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the project config file, relative to the repository root
const FileName = ".featureflow.yml"

const (
	// DefaultBaseBranch is the branch features start from
	DefaultBaseBranch = "master"
	// DefaultRemote is the remote feature branches are pushed to
	DefaultRemote = "origin"
	// DefaultUpstreamRemote is the remote the base branch is refreshed from
	DefaultUpstreamRemote = "upstream"
	// DefaultHostname is the GitHub host
	DefaultHostname = "github.com"
	// DefaultTimeout is the GitHub request timeout
	DefaultTimeout = 5 * time.Second

	// SourceURLGit fetches pull request heads from the repository's git_url
	SourceURLGit = "git"
	// SourceURLHTTPS fetches pull request heads from the repository's clone_url
	SourceURLHTTPS = "https"
)

// ProjectConfig represents the project configuration
type ProjectConfig struct {
	// Repository is the upstream repository pull requests are listed from
	Repository RepositoryConfig `yaml:"repository"`
	Submit     SubmitConfig     `yaml:"submit"`
	BaseBranch string           `yaml:"baseBranch,omitempty"`
	// Remote receives pushed feature branches
	Remote string `yaml:"remote,omitempty"`
	// UpstreamRemote is pulled when refreshing the base branch
	UpstreamRemote string       `yaml:"upstreamRemote,omitempty"`
	GitHub         GitHubConfig `yaml:"github"`
	Test           TestConfig   `yaml:"test"`
}

// RepositoryConfig identifies a GitHub repository
type RepositoryConfig struct {
	Owner string `yaml:"owner,omitempty"`
	Name  string `yaml:"name,omitempty"`
}

// SubmitConfig holds the defaults for `feature submit`
type SubmitConfig struct {
	// Owner is the default owner pull requests are opened against
	Owner string `yaml:"owner,omitempty"`
	Base  string `yaml:"base,omitempty"`
}

// GitHubConfig configures the GitHub API client
type GitHubConfig struct {
	Hostname string `yaml:"hostname,omitempty"`
	Timeout  string `yaml:"timeout,omitempty"`
}

// TestConfig configures `feature test`
type TestConfig struct {
	Command   []string `yaml:"command,omitempty,flow"`
	SourceURL string   `yaml:"sourceURL,omitempty"`
}

// Default returns a config with every default applied
func Default() *ProjectConfig {
	cfg := &ProjectConfig{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the project config from repoRoot. A missing file yields defaults.
// Environment overrides are applied last.
func Load(repoRoot string) (*ProjectConfig, error) {
	cfg := &ProjectConfig{}

	data, err := os.ReadFile(Path(repoRoot))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if cfg.Test.SourceURL != SourceURLGit && cfg.Test.SourceURL != SourceURLHTTPS {
		return nil, fmt.Errorf("invalid test.sourceURL %q: must be %q or %q", cfg.Test.SourceURL, SourceURLGit, SourceURLHTTPS)
	}
	if _, err := time.ParseDuration(cfg.GitHub.Timeout); err != nil {
		return nil, fmt.Errorf("invalid github.timeout %q: %w", cfg.GitHub.Timeout, err)
	}

	return cfg, nil
}

// Save writes the config to repoRoot
func (c *ProjectConfig) Save(repoRoot string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(Path(repoRoot), data, 0644)
}

// Path returns the config file path for repoRoot
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, FileName)
}

// Exists reports whether repoRoot already has a project config
func Exists(repoRoot string) bool {
	_, err := os.Stat(Path(repoRoot))
	return err == nil
}

// RequestTimeout returns the GitHub request timeout
func (c *ProjectConfig) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.GitHub.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// FillRepository sets the repository owner and name when they are not configured.
// The submit owner falls back to the repository owner.
func (c *ProjectConfig) FillRepository(owner, name string) {
	if c.Repository.Owner == "" {
		c.Repository.Owner = owner
	}
	if c.Repository.Name == "" {
		c.Repository.Name = name
	}
	if c.Submit.Owner == "" {
		c.Submit.Owner = c.Repository.Owner
	}
}

func (c *ProjectConfig) applyEnv() {
	overrides := map[string]*string{
		"FEATUREFLOW_UPSTREAM_OWNER": &c.Repository.Owner,
		"FEATUREFLOW_REPO":           &c.Repository.Name,
		"FEATUREFLOW_SUBMIT_OWNER":   &c.Submit.Owner,
		"FEATUREFLOW_BASE_BRANCH":    &c.BaseBranch,
	}
	for key, field := range overrides {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
}

func (c *ProjectConfig) applyDefaults() {
	if c.BaseBranch == "" {
		c.BaseBranch = DefaultBaseBranch
	}
	if c.Remote == "" {
		c.Remote = DefaultRemote
	}
	if c.UpstreamRemote == "" {
		c.UpstreamRemote = DefaultUpstreamRemote
	}
	if c.Submit.Base == "" {
		c.Submit.Base = c.BaseBranch
	}
	if c.Submit.Owner == "" {
		c.Submit.Owner = c.Repository.Owner
	}
	if c.GitHub.Hostname == "" {
		c.GitHub.Hostname = DefaultHostname
	}
	if c.GitHub.Timeout == "" {
		c.GitHub.Timeout = DefaultTimeout.String()
	}
	if len(c.Test.Command) == 0 {
		c.Test.Command = []string{"make", "test"}
	}
	if c.Test.SourceURL == "" {
		c.Test.SourceURL = SourceURLGit
	}
}
