package build

import (
	"bytes"
	"context"
	"encoding/xml"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
	"git.home.luguber.info/inful/photofolio/internal/logfields"
)

// Sitemap and robots file names in the output root.
const (
	SitemapFile = "sitemap.xml"
	RobotsFile  = "robots.txt"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string           `xml:"loc"`
	Alternates []sitemapAltLink `xml:"xhtml:link"`
}

type sitemapAltLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// stageSitemap writes sitemap.xml with one entry per page and locale, each
// listing its language alternates, and a robots.txt pointing at it unless the
// public directory already provided one.
func stageSitemap(_ context.Context, bs *BuildState) error {
	cfg := bs.Generator.cfg
	base := strings.TrimRight(cfg.Site.BaseURL, "/")
	abs := func(p string) string { return base + "/" + p }

	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
	}
	for _, loc := range bs.Locales.Supported {
		for _, id := range bs.Pages {
			p := bs.Locales.PathFor(loc, id)
			alts := bs.Locales.Alternates(p, loc, id)
			entry := sitemapURL{Loc: abs(p)}
			for _, other := range bs.Locales.Supported {
				entry.Alternates = append(entry.Alternates, sitemapAltLink{Rel: "alternate", Hreflang: other, Href: abs(alts[other])})
			}
			entry.Alternates = append(entry.Alternates, sitemapAltLink{
				Rel:      "alternate",
				Hreflang: "x-default",
				Href:     abs(alts[bs.Locales.Default]),
			})
			set.URLs = append(set.URLs, entry)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return newFatalStageError(StageSitemap, errors.WrapError(err, errors.CategoryInternal, "failed to encode sitemap").Build())
	}
	buf.WriteString("\n")

	out := cfg.Paths.Output
	if err := os.WriteFile(filepath.Join(out, SitemapFile), buf.Bytes(), 0o644); err != nil {
		return newFatalStageError(StageSitemap, errors.WrapError(err, errors.CategoryFileSystem, "failed to write sitemap").
			WithContext("path", SitemapFile).
			Fatal().
			Build())
	}

	robots := filepath.Join(out, RobotsFile)
	if _, err := os.Stat(robots); err == nil {
		slog.Debug("Keeping robots.txt from public directory", logfields.Path(robots))
	} else {
		body := "User-agent: *\nAllow: /\n\nSitemap: " + abs(SitemapFile) + "\n"
		if err := os.WriteFile(robots, []byte(body), 0o644); err != nil {
			return newFatalStageError(StageSitemap, errors.WrapError(err, errors.CategoryFileSystem, "failed to write robots.txt").
				WithContext("path", RobotsFile).
				Fatal().
				Build())
		}
	}
	slog.Debug("Wrote sitemap", logfields.Count(len(set.URLs)), logfields.URL(abs(SitemapFile)))
	return nil
}
