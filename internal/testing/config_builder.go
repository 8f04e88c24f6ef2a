package testing

import (
	"git.home.luguber.info/inful/photofolio/internal/config"
)

// ConfigBuilder provides a fluent interface for creating test configurations.
type ConfigBuilder struct {
	config *config.Config
}

// NewConfigBuilder starts from the built-in defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: config.Default()}
}

// WithLocales sets the supported locales and the default locale.
func (cb *ConfigBuilder) WithLocales(def string, supported ...string) *ConfigBuilder {
	cb.config.Locales.Supported = supported
	cb.config.Locales.Default = def
	return cb
}

// WithBaseURL enables absolute URLs (canonical links, sitemap).
func (cb *ConfigBuilder) WithBaseURL(u string) *ConfigBuilder {
	cb.config.Site.BaseURL = u
	return cb
}

// WithoutLinkVerification disables the verify_links stage.
func (cb *ConfigBuilder) WithoutLinkVerification() *ConfigBuilder {
	off := false
	cb.config.Build.VerifyLinks = &off
	return cb
}

// WithReportPath persists the build report under dir.
func (cb *ConfigBuilder) WithReportPath(dir string) *ConfigBuilder {
	cb.config.Build.ReportPath = dir
	return cb
}

// Build returns the configuration.
func (cb *ConfigBuilder) Build() *config.Config {
	return cb.config
}
