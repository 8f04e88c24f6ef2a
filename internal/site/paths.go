package site

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
)

// Locales is the supported locale list and the one served from the site root.
type Locales struct {
	Supported []string
	Default   string
}

// NewLocales constructs a Locales value.
func NewLocales(supported []string, def string) Locales {
	return Locales{Supported: supported, Default: def}
}

// Prefix is the directory prefix of locale's pages: "" for the default locale,
// "{locale}/" otherwise.
func (l Locales) Prefix(locale string) string {
	if locale == l.Default {
		return ""
	}
	return locale + "/"
}

// Resolve maps a logical path to its output path under locale.
func (l Locales) Resolve(locale, logical string) string {
	return l.Prefix(locale) + logical
}

// PathFor resolves a page identity for locale.
func (l Locales) PathFor(locale string, id PageID) string {
	return l.Resolve(locale, id.LogicalPath())
}

// Alternates maps every supported locale to the output path of the same page.
// The current locale keeps currentPath as given.
func (l Locales) Alternates(currentPath, currentLocale string, id PageID) map[string]string {
	out := make(map[string]string, len(l.Supported))
	for _, loc := range l.Supported {
		if loc == currentLocale {
			out[loc] = currentPath
			continue
		}
		out[loc] = l.PathFor(loc, id)
	}
	return out
}

// SwitcherTarget is the language switcher destination for locale: its alternate,
// or that locale's gallery root when no alternate exists.
func (l Locales) SwitcherTarget(alternates map[string]string, locale string) string {
	if p, ok := alternates[locale]; ok && p != "" {
		return p
	}
	return l.PathFor(locale, GalleryAll())
}

// CheckInjective fails when two (locale, page) pairs resolve to the same output path.
func (l Locales) CheckInjective(pages []PageID) error {
	owners := make(map[string]string, len(pages)*len(l.Supported))
	for _, loc := range l.Supported {
		for _, p := range pages {
			out := l.PathFor(loc, p)
			owner := loc + ":" + p.String()
			if prev, dup := owners[out]; dup && prev != owner {
				return errors.ValidationError("two pages resolve to the same output path").
					WithContext("path", out).
					WithContext("first", prev).
					WithContext("second", owner).
					Build()
			}
			owners[out] = owner
		}
	}
	return nil
}

// RelativeURL returns the href that reaches target from a page at from. Both are
// slash-separated paths relative to the site root. The result is never empty.
func RelativeURL(from, target string) string {
	var base []string
	if dir := path.Dir(from); dir != "." {
		base = strings.Split(dir, "/")
	}
	to := strings.Split(path.Clean(target), "/")

	i := 0
	for i < len(base) && i < len(to) && base[i] == to[i] {
		i++
	}
	parts := make([]string, 0, len(base)-i+len(to)-i)
	for range base[i:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[i:]...)
	if len(parts) == 0 {
		return path.Base(target)
	}
	return strings.Join(parts, "/")
}
