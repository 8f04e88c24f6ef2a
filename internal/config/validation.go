package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
)

// reservedSegments are first path segments used by default-locale pages and assets.
// A locale code equal to one of them would make two pages share an output path.
var reservedSegments = map[string]struct{}{
	"gallery": {},
	"works":   {},
	"assets":  {},
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if len(c.Locales.Supported) == 0 {
		return errors.ValidationError("at least one supported locale is required").Build()
	}
	seen := make(map[string]struct{}, len(c.Locales.Supported))
	for _, code := range c.Locales.Supported {
		if err := validateLocaleCode(code); err != nil {
			return err
		}
		if _, dup := seen[code]; dup {
			return errors.ValidationError("duplicate locale").WithContext("locale", code).Build()
		}
		seen[code] = struct{}{}
	}
	if _, ok := seen[c.Locales.Default]; !ok {
		return errors.ValidationError("default locale is not a supported locale").
			WithContext("locale", c.Locales.Default).
			Build()
	}

	if err := c.validateOutputDir(); err != nil {
		return err
	}

	if c.Site.BaseURL != "" {
		u, err := url.Parse(c.Site.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.ValidationError("site.base_url must be an absolute URL").
				WithContext("url", c.Site.BaseURL).
				Build()
		}
	}
	return nil
}

// validateOutputDir rejects an output directory that overlaps an input. The
// build removes the output directory first, so an overlap deletes sources.
func (c *Config) validateOutputDir() error {
	dedicated := func(reason string) error {
		return errors.ValidationError("output directory must be a dedicated directory").
			WithContext("path", c.Paths.Output).
			WithContext("reason", reason).
			Build()
	}
	if c.Paths.Output == "" {
		return dedicated("empty")
	}
	out, err := filepath.Abs(c.Paths.Output)
	if err != nil {
		return dedicated(err.Error())
	}
	if filepath.Dir(out) == out {
		return dedicated("filesystem root")
	}

	inputs := []struct{ name, path string }{
		{"paths.content", c.Paths.Content},
		{"paths.locales", c.Paths.Locales},
		{"paths.public", c.Paths.Public},
	}
	for _, in := range inputs {
		if in.path == "" {
			continue
		}
		abs, err := filepath.Abs(in.path)
		if err != nil {
			return dedicated(err.Error())
		}
		if isWithin(abs, out) || isWithin(out, abs) {
			return dedicated("overlaps " + in.name)
		}
	}

	// The stylesheet is a single file; only an output dir holding it is a conflict.
	if c.Paths.Stylesheet != "" {
		css, err := filepath.Abs(c.Paths.Stylesheet)
		if err != nil {
			return dedicated(err.Error())
		}
		if isWithin(css, out) {
			return dedicated("contains paths.stylesheet")
		}
	}

	if c.BaseDir != "" {
		base, err := filepath.Abs(c.BaseDir)
		if err != nil {
			return dedicated(err.Error())
		}
		if isWithin(base, out) {
			return dedicated("contains the configuration directory")
		}
	}
	return nil
}

// isWithin reports whether path equals dir or lies below it. Both must be
// absolute.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func validateLocaleCode(code string) error {
	if code == "" || strings.ContainsAny(code, `/\.`) {
		return errors.ValidationError(fmt.Sprintf("invalid locale code %q", code)).Build()
	}
	if _, reserved := reservedSegments[code]; reserved {
		return errors.ValidationError(fmt.Sprintf("locale code %q collides with a reserved path segment", code)).Build()
	}
	if _, err := language.Parse(code); err != nil {
		return errors.WrapError(err, errors.CategoryValidation, fmt.Sprintf("locale code %q is not a BCP 47 tag", code)).
			Fatal().
			Build()
	}
	return nil
}

// LanguageLabel returns the switcher label for a locale: the configured label,
// otherwise the language's own name for itself.
func (c *Config) LanguageLabel(code string) string {
	if label, ok := c.Locales.Labels[code]; ok && label != "" {
		return label
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(code)
}

// HTMLLang returns the canonical BCP 47 form of a locale for the lang attribute.
func HTMLLang(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	return tag.String()
}
