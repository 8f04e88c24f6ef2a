// Package render turns loaded works and message bundles into complete HTML
// documents. Templates are embedded in the binary; a Renderer holds no state
// between calls and is safe for concurrent use.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"git.home.luguber.info/inful/photofolio/internal/config"
	"git.home.luguber.info/inful/photofolio/internal/content"
	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
	"git.home.luguber.info/inful/photofolio/internal/i18n"
	"git.home.luguber.info/inful/photofolio/internal/site"
)

//go:embed templates/*.html
var templateFS embed.FS

// Output locations of the shared assets, relative to the site root.
const (
	FaviconPath    = "favicon.svg"
	StylesheetPath = "assets/main.css"
)

// Options are the site-wide, locale-independent inputs of every page.
type Options struct {
	Locales site.Locales
	// Labels maps a locale code to its language switcher label.
	Labels  map[string]string
	Contact config.ContactConfig
	// BaseURL enables canonical links and JSON-LD. Empty keeps pages fully relative.
	BaseURL string
	Author  string
}

// Renderer renders pages from the embedded templates.
type Renderer struct {
	tmpl *template.Template
	opts Options
}

// New parses the embedded templates.
func New(opts Options) (*Renderer, error) {
	tmpl, err := template.New("site").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to parse page templates").Build()
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Renderer{tmpl: tmpl, opts: opts}, nil
}

// Page is the resolved identity of one output document.
type Page struct {
	Locale string
	ID     site.PageID
	// Path is the output path relative to the site root, e.g. "en/works/foo.html".
	Path string
	// Alternates maps each locale to the output path of the same page.
	Alternates map[string]string
	Messages   *i18n.Bundle
}

// NewPage resolves id for locale.
func NewPage(locales site.Locales, locale string, id site.PageID, messages *i18n.Bundle) Page {
	p := locales.PathFor(locale, id)
	return Page{
		Locale:     locale,
		ID:         id,
		Path:       p,
		Alternates: locales.Alternates(p, locale, id),
		Messages:   messages,
	}
}

// href is the relative link from the page to target (a site-root path).
func (p Page) href(target string) string {
	return site.RelativeURL(p.Path, target)
}

// Head carries the per-page document metadata.
type Head struct {
	Title       string
	Description string
	JSONLD      template.JS
}

type alternateLink struct {
	Lang string
	Href string
}

type navItem struct {
	Label  string
	Href   string
	Active bool
}

type languageItem struct {
	Lang   string
	Label  string
	Href   string
	Active bool
}

type layoutView struct {
	Lang        string
	Title       string
	Description string
	Favicon     string
	Stylesheet  string
	Alternates  []alternateLink
	Canonical   string
	JSONLD      template.JS
	BrandHref   string
	BrandTitle  string
	Nav         []navItem
	Languages   []languageItem
	Body        template.HTML
	Footer      string
}

// Layout wraps body in the document shell: head, header with navigation and
// language switcher, and footer.
func (r *Renderer) Layout(p Page, head Head, body template.HTML) (string, error) {
	t := p.Messages.Reader()
	section := p.ID.Section()
	home := r.opts.Locales.PathFor(p.Locale, site.GalleryAll())

	view := layoutView{
		Lang:        config.HTMLLang(p.Locale),
		Title:       head.Title,
		Description: head.Description,
		Favicon:     p.href(FaviconPath),
		Stylesheet:  p.href(StylesheetPath),
		JSONLD:      head.JSONLD,
		BrandHref:   p.href(home),
		BrandTitle:  t.T("brand.title"),
		Nav: []navItem{
			{Label: t.T("navigation.gallery"), Href: p.href(home), Active: section == site.SectionGallery},
			{Label: t.T("navigation.about"), Href: p.href(r.opts.Locales.PathFor(p.Locale, site.About())), Active: section == site.SectionAbout},
			{Label: t.T("navigation.contact"), Href: p.href(r.opts.Locales.PathFor(p.Locale, site.Contact())), Active: section == site.SectionContact},
		},
		Body:   body,
		Footer: t.T("footer.copy"),
	}
	if r.opts.BaseURL != "" {
		view.Canonical = r.absoluteURL(p.Path)
	}
	for _, loc := range r.opts.Locales.Supported {
		if target, ok := p.Alternates[loc]; ok {
			view.Alternates = append(view.Alternates, alternateLink{Lang: loc, Href: "/" + target})
		}
		view.Languages = append(view.Languages, languageItem{
			Lang:   loc,
			Label:  r.label(loc),
			Href:   p.href(r.opts.Locales.SwitcherTarget(p.Alternates, loc)),
			Active: loc == p.Locale,
		})
	}
	if err := t.Err(); err != nil {
		return "", r.messageError(p, err)
	}
	return r.execute(p, "layout", view)
}

// Render dispatches on the page kind. works must be sorted; years is the
// distinct year list shared by every locale.
func (r *Renderer) Render(p Page, works []content.Work, years []int) (string, error) {
	switch p.ID.Kind {
	case site.KindGalleryAll:
		return r.Gallery(p, works, years, content.AllYears())
	case site.KindGalleryYear:
		return r.Gallery(p, works, years, content.OnlyYear(p.ID.Year))
	case site.KindWork:
		for _, w := range works {
			if w.Slug == p.ID.Slug {
				return r.Work(p, w)
			}
		}
		return "", errors.RenderError("no work for page").
			WithContext("slug", p.ID.Slug).
			WithContext("path", p.Path).
			Build()
	case site.KindAbout:
		return r.About(p)
	case site.KindContact:
		return r.Contact(p)
	default:
		return "", errors.RenderError(fmt.Sprintf("unknown page kind %q", p.ID.Kind)).
			WithContext("path", p.Path).
			Build()
	}
}

func (r *Renderer) label(locale string) string {
	if l, ok := r.opts.Labels[locale]; ok && l != "" {
		return l
	}
	return strings.ToUpper(locale)
}

// document renders a body template and wraps it in the layout.
func (r *Renderer) document(p Page, head Head, name string, view any) (string, error) {
	body, err := r.execute(p, name, view)
	if err != nil {
		return "", err
	}
	return r.Layout(p, head, template.HTML(body)) //nolint:gosec // output of html/template
}

func (r *Renderer) execute(p Page, name string, view any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, view); err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "failed to execute template").
			WithContext("template", name).
			WithContext("locale", p.Locale).
			WithContext("path", p.Path).
			Fatal().
			Build()
	}
	return buf.String(), nil
}

func (r *Renderer) messageError(p Page, err error) error {
	return errors.WrapError(err, errors.CategoryLocale, "message bundle incomplete").
		WithContext("locale", p.Locale).
		WithContext("path", p.Path).
		Fatal().
		Build()
}
