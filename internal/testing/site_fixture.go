package testing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/photofolio/internal/config"
)

// SiteFixture lays out a complete project tree (works, locale bundles, public
// assets and stylesheet) under a temporary root.
type SiteFixture struct {
	t    *testing.T
	Root string
	cfg  *config.Config
}

// WorkSpec describes one work directory.
type WorkSpec struct {
	Folder       string
	Slug         string
	Year         int
	Orientation  string
	Title        map[string]string
	Location     map[string]string
	Summary      map[string]string
	FocalLength  string
	Descriptions map[string]string // locale -> Markdown source
}

// NewSiteFixture creates an empty project using cfg's relative paths. Locale
// bundles are written for every supported locale.
func NewSiteFixture(t *testing.T, cfg *config.Config) *SiteFixture {
	t.Helper()
	root := t.TempDir()
	f := &SiteFixture{t: t, Root: root, cfg: cfg}
	for _, locale := range cfg.Locales.Supported {
		f.WriteBundle(locale, Messages(locale))
	}
	f.mkdir(cfg.Paths.Content)
	f.WriteFile(cfg.Paths.Stylesheet, "body { margin: 0; }\n")
	return f
}

// Config returns a copy of the fixture configuration with all paths made absolute.
func (f *SiteFixture) Config() *config.Config {
	c := *f.cfg
	c.Paths.Content = f.Path(f.cfg.Paths.Content)
	c.Paths.Locales = f.Path(f.cfg.Paths.Locales)
	c.Paths.Public = f.Path(f.cfg.Paths.Public)
	c.Paths.Stylesheet = f.Path(f.cfg.Paths.Stylesheet)
	c.Paths.Output = f.Path(f.cfg.Paths.Output)
	return &c
}

// Path joins rel onto the fixture root.
func (f *SiteFixture) Path(rel string) string {
	return filepath.Join(f.Root, rel)
}

// WriteFile writes content at rel, creating parent directories.
func (f *SiteFixture) WriteFile(rel, content string) {
	f.t.Helper()
	full := f.Path(rel)
	f.mkdir(filepath.Dir(rel))
	if err := os.WriteFile(full, []byte(content), testFilePermissions); err != nil {
		f.t.Fatalf("write %s: %v", full, err)
	}
}

// WriteBundle writes {locales}/{locale}.json.
func (f *SiteFixture) WriteBundle(locale string, messages map[string]any) {
	f.t.Helper()
	raw, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		f.t.Fatalf("marshal bundle: %v", err)
	}
	f.WriteFile(filepath.Join(f.cfg.Paths.Locales, locale+".json"), string(raw))
}

// AddWork writes meta.json and the Markdown descriptions of one work.
func (f *SiteFixture) AddWork(w WorkSpec) {
	f.t.Helper()
	folder := w.Folder
	if folder == "" {
		folder = w.Slug
	}
	title := w.Title
	if title == nil {
		title = map[string]string{}
		for _, l := range f.cfg.Locales.Supported {
			title[l] = folder + " (" + l + ")"
		}
	}
	exif := map[string]any{
		"camera":   "Fujifilm X100V",
		"lens":     "23mm F2",
		"aperture": "f/5.6",
		"shutter":  "1/250",
		"iso":      "160",
	}
	if w.FocalLength != "" {
		exif["focalLength"] = w.FocalLength
	}
	meta := map[string]any{
		"year":         w.Year,
		"coverImage":   "/images/" + folder + "/cover.jpg",
		"previewImage": "/images/" + folder + "/preview.jpg",
		"thumbnail":    "/images/" + folder + "/thumb.jpg",
		"title":        title,
		"location":     w.Location,
		"summary":      w.Summary,
		"shootingDate": "2021-10-03",
		"exif":         exif,
	}
	if w.Slug != "" {
		meta["slug"] = w.Slug
	}
	if w.Orientation != "" {
		meta["orientation"] = w.Orientation
	}
	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		f.t.Fatalf("marshal meta: %v", err)
	}
	dir := filepath.Join(f.cfg.Paths.Content, folder)
	f.WriteFile(filepath.Join(dir, "meta.json"), string(raw))
	for locale, body := range w.Descriptions {
		f.WriteFile(filepath.Join(dir, locale+".md"), body)
	}
}

func (f *SiteFixture) mkdir(rel string) {
	f.t.Helper()
	if err := os.MkdirAll(f.Path(rel), testDirPermissions); err != nil {
		f.t.Fatalf("mkdir %s: %v", rel, err)
	}
}
