package config

// Built-in defaults reproduce the canonical portfolio layout so the CLI works
// without any configuration file.
const (
	DefaultLocale       = "zh"
	DefaultContentDir   = "src/content/works"
	DefaultLocalesDir   = "src/locales"
	DefaultPublicDir    = "public"
	DefaultStylesheet   = "styles/main.css"
	DefaultOutputDir    = "dist"
	DefaultContactEmail = "hello@example.com"
	DefaultContactPhone = "+86 138 0000 0000"
	DefaultPreviewAddr  = "127.0.0.1:4173"
	DefaultDebounceMS   = 300
)

// DefaultLocales lists the supported locales in switcher order.
func DefaultLocales() []string { return []string{"zh", "en"} }

// DefaultLabels returns the language switcher labels.
func DefaultLabels() map[string]string {
	return map[string]string{"zh": "中文", "en": "EN"}
}

// Default returns a fully populated configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills every unset field. Explicit values are never overwritten.
func applyDefaults(cfg *Config) {
	if len(cfg.Locales.Supported) == 0 {
		cfg.Locales.Supported = DefaultLocales()
	}
	if cfg.Locales.Default == "" {
		if contains(cfg.Locales.Supported, DefaultLocale) {
			cfg.Locales.Default = DefaultLocale
		} else {
			cfg.Locales.Default = cfg.Locales.Supported[0]
		}
	}
	if cfg.Locales.Labels == nil {
		cfg.Locales.Labels = make(map[string]string)
	}
	for code, label := range DefaultLabels() {
		if _, ok := cfg.Locales.Labels[code]; !ok && contains(cfg.Locales.Supported, code) {
			cfg.Locales.Labels[code] = label
		}
	}

	if cfg.Paths.Content == "" {
		cfg.Paths.Content = DefaultContentDir
	}
	if cfg.Paths.Locales == "" {
		cfg.Paths.Locales = DefaultLocalesDir
	}
	if cfg.Paths.Public == "" {
		cfg.Paths.Public = DefaultPublicDir
	}
	if cfg.Paths.Stylesheet == "" {
		cfg.Paths.Stylesheet = DefaultStylesheet
	}
	if cfg.Paths.Output == "" {
		cfg.Paths.Output = DefaultOutputDir
	}

	if cfg.Contact.Email == "" {
		cfg.Contact.Email = DefaultContactEmail
	}
	if cfg.Contact.Phone == "" {
		cfg.Contact.Phone = DefaultContactPhone
	}

	if cfg.Preview.Addr == "" {
		cfg.Preview.Addr = DefaultPreviewAddr
	}
	if cfg.Preview.DebounceMS <= 0 {
		cfg.Preview.DebounceMS = DefaultDebounceMS
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
