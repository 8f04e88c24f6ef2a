package render

import (
	"encoding/json"
	"html/template"
	"strings"

	"git.home.luguber.info/inful/photofolio/internal/config"
	"git.home.luguber.info/inful/photofolio/internal/content"
	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
)

type place struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type photograph struct {
	Context         string  `json:"@context"`
	Type            string  `json:"@type"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Image           string  `json:"image"`
	URL             string  `json:"url"`
	DateCreated     string  `json:"dateCreated,omitempty"`
	InLanguage      string  `json:"inLanguage"`
	ContentLocation *place  `json:"contentLocation,omitempty"`
	Author          *person `json:"author,omitempty"`
}

// absoluteURL joins the base URL with a site-root path. Values that already
// carry a scheme are returned unchanged.
func (r *Renderer) absoluteURL(p string) string {
	if strings.Contains(p, "://") {
		return p
	}
	return r.opts.BaseURL + "/" + strings.TrimLeft(p, "/")
}

// photographLD is the schema.org Photograph description of a work page.
func (r *Renderer) photographLD(p Page, w content.Work) (template.JS, error) {
	doc := photograph{
		Context:     "https://schema.org",
		Type:        "Photograph",
		Name:        w.Title.In(p.Locale),
		Description: w.Summary.In(p.Locale),
		Image:       r.absoluteURL(w.CoverImage),
		URL:         r.absoluteURL(p.Path),
		DateCreated: string(w.ShootingDate),
		InLanguage:  config.HTMLLang(p.Locale),
	}
	if loc := w.Location.In(p.Locale); loc != "" {
		doc.ContentLocation = &place{Type: "Place", Name: loc}
	}
	if r.opts.Author != "" {
		doc.Author = &person{Type: "Person", Name: r.opts.Author}
	}
	// json.Marshal escapes <, > and & so the payload cannot close the script element.
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "failed to encode structured data").
			WithContext("slug", w.Slug).
			Build()
	}
	return template.JS(raw), nil //nolint:gosec // JSON encoded above
}
