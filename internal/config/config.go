package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
	"git.home.luguber.info/inful/photofolio/internal/logfields"
)

// DefaultPath is the configuration file looked up when no --config flag is given.
const DefaultPath = "photofolio.yaml"

// Config is the root photofolio configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Locales LocalesConfig `yaml:"locales"`
	Paths   PathsConfig   `yaml:"paths"`
	Contact ContactConfig `yaml:"contact"`
	Build   BuildConfig   `yaml:"build"`
	Preview PreviewConfig `yaml:"preview"`

	// BaseDir is the directory relative paths were resolved against. The
	// output directory may never contain it.
	BaseDir string `yaml:"-"`
}

// SiteConfig holds site-wide settings that are not localized.
type SiteConfig struct {
	// BaseURL enables absolute links (canonical, sitemap). Empty keeps the site fully relative.
	BaseURL string `yaml:"base_url,omitempty"`
	Author  string `yaml:"author,omitempty"`
}

// LocalesConfig declares the supported locales and the default (unprefixed) one.
type LocalesConfig struct {
	Supported []string          `yaml:"supported"`
	Default   string            `yaml:"default"`
	Labels    map[string]string `yaml:"labels,omitempty"`
}

// PathsConfig locates the inputs and the output directory.
type PathsConfig struct {
	Content    string `yaml:"content"`
	Locales    string `yaml:"locales"`
	Public     string `yaml:"public"`
	Stylesheet string `yaml:"stylesheet"`
	Output     string `yaml:"output"`
}

// ContactConfig is the contact information printed on the contact page.
type ContactConfig struct {
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

// BuildConfig tunes optional build stages.
type BuildConfig struct {
	VerifyLinks *bool  `yaml:"verify_links,omitempty"`
	Sitemap     *bool  `yaml:"sitemap,omitempty"`
	ReportPath  string `yaml:"report_path,omitempty"`
}

// PreviewConfig configures the local preview server.
type PreviewConfig struct {
	Addr       string `yaml:"addr"`
	DebounceMS int    `yaml:"debounce_ms"`
	Metrics    bool   `yaml:"metrics"`
}

// LinkVerification reports whether the verify_links stage runs.
func (b BuildConfig) LinkVerification() bool {
	return b.VerifyLinks == nil || *b.VerifyLinks
}

// SitemapEnabled reports whether sitemap.xml is written. It requires a base URL.
func (c *Config) SitemapEnabled() bool {
	if c.Site.BaseURL == "" {
		return false
	}
	return c.Build.Sitemap == nil || *c.Build.Sitemap
}

// ResolvePaths makes every relative input and output path relative to base,
// normally the directory holding the configuration file.
func (c *Config) ResolvePaths(base string) {
	c.BaseDir = base
	for _, p := range []*string{
		&c.Paths.Content,
		&c.Paths.Locales,
		&c.Paths.Public,
		&c.Paths.Stylesheet,
		&c.Paths.Output,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	if c.Build.ReportPath != "" && !filepath.IsAbs(c.Build.ReportPath) {
		c.Build.ReportPath = filepath.Join(base, c.Build.ReportPath)
	}
}

// Load reads the configuration file at configPath. A missing file yields the
// built-in defaults; an unreadable or malformed file is fatal.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		slog.Debug("No .env file loaded", logfields.Error(err))
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		slog.Debug("Configuration file not found; using defaults", logfields.Path(configPath))
		cfg := Default()
		return cfg, cfg.Validate()
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}
	return Parse(data, configPath)
}

// Parse decodes YAML configuration content after expanding environment variables.
func Parse(data []byte, source string) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			WithContext("path", source).
			Fatal().
			Build()
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes an example configuration file mirroring the defaults.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.NewError(errors.CategoryValidation,
			fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath).
			Build()
	}

	example := Default()
	example.Site.Author = "Your Name"

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	header := "# photofolio site configuration\n# Values support ${ENV_VAR} expansion.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
