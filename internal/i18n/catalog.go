// Package i18n loads the per-locale UI message bundles.
package i18n

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
)

// ErrMissingMessage is returned when a key is absent from a bundle or is not a string.
var ErrMissingMessage = stderrors.New("missing message")

// RequiredKeys are read by the page renderers by fixed path. Every bundle must
// define each of them as a string.
var RequiredKeys = []string{
	"navigation.gallery", "navigation.about", "navigation.contact",
	"brand.title",
	"footer.copy",
	"gallery.title", "gallery.subtitle", "gallery.years", "gallery.allYears",
	"detail.date", "detail.camera", "detail.lens", "detail.focalLength",
	"detail.aperture", "detail.shutter", "detail.back",
	"about.title", "about.subtitle", "about.storyTitle", "about.story1", "about.story2",
	"about.highlightTitle", "about.highlight1", "about.highlight2", "about.highlight3",
	"contact.title", "contact.subtitle", "contact.infoTitle", "contact.infoDescription",
	"contact.emailLabel", "contact.phoneLabel", "contact.locationLabel", "contact.locationValue",
	"contact.form.name", "contact.form.email", "contact.form.message", "contact.form.submit",
}

// Bundle holds the messages of one locale, flattened to dotted keys.
type Bundle struct {
	Locale   string
	messages map[string]string
}

// Catalog is the table of bundles for every supported locale.
type Catalog struct {
	bundles map[string]*Bundle
}

// Load reads {dir}/{locale}.json for every locale. A missing or malformed file,
// or a bundle lacking a required key, fails the whole load.
func Load(dir string, locales []string) (*Catalog, error) {
	c := &Catalog{bundles: make(map[string]*Bundle, len(locales))}
	for _, locale := range locales {
		path := filepath.Join(dir, locale+".json")
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryLocale, "read locale bundle").
				WithContext("locale", locale).
				WithContext("path", path).
				Fatal().
				Build()
		}
		b, err := Parse(locale, raw)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryLocale, "parse locale bundle").
				WithContext("locale", locale).
				WithContext("path", path).
				Fatal().
				Build()
		}
		if missing := b.Missing(RequiredKeys); len(missing) > 0 {
			return nil, errors.LocaleError("locale bundle is missing required keys").
				WithContext("locale", locale).
				WithContext("path", path).
				WithContext("keys", strings.Join(missing, ", ")).
				Build()
		}
		c.bundles[locale] = b
	}
	return c, nil
}

// Parse decodes one nested JSON bundle.
func Parse(locale string, raw []byte) (*Bundle, error) {
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	b := &Bundle{Locale: locale, messages: make(map[string]string)}
	flatten("", tree, b.messages)
	return b, nil
}

// flatten copies string leaves into out under dotted keys. Other leaf types are skipped
// so that a lookup on them reports ErrMissingMessage.
func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			flatten(key, val, out)
		}
	}
}

// Bundle returns the bundle for locale.
func (c *Catalog) Bundle(locale string) (*Bundle, error) {
	b, ok := c.bundles[locale]
	if !ok {
		return nil, errors.LocaleError("no bundle loaded for locale").WithContext("locale", locale).Build()
	}
	return b, nil
}

// Locales returns the loaded locale codes, sorted.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.bundles))
	for l := range c.bundles {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the message stored under a dotted key.
func (b *Bundle) Lookup(key string) (string, error) {
	if msg, ok := b.messages[key]; ok {
		return msg, nil
	}
	return "", fmt.Errorf("%w: %s (locale %s)", ErrMissingMessage, key, b.Locale)
}

// Missing returns the keys from want that the bundle does not define.
func (b *Bundle) Missing(want []string) []string {
	var missing []string
	for _, k := range want {
		if _, ok := b.messages[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// Reader returns a lookup helper that records the first failure instead of
// returning it from every call.
func (b *Bundle) Reader() *Reader {
	return &Reader{bundle: b}
}

// Reader reads many keys and reports a single error at the end.
type Reader struct {
	bundle *Bundle
	err    error
}

// T returns the message for key, or "" after recording the failure.
func (r *Reader) T(key string) string {
	msg, err := r.bundle.Lookup(key)
	if err != nil && r.err == nil {
		r.err = err
	}
	return msg
}

// Err returns the first lookup failure, if any.
func (r *Reader) Err() error { return r.err }
