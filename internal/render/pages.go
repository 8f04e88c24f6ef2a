package render

import (
	"html/template"
	"strconv"

	"git.home.luguber.info/inful/photofolio/internal/content"
	"git.home.luguber.info/inful/photofolio/internal/site"
)

type yearLink struct {
	Label  string
	Href   string
	Active bool
}

type card struct {
	Href        string
	Image       string
	Title       string
	Location    string
	Orientation content.Orientation
}

type galleryView struct {
	YearsLabel string
	Title      string
	Subtitle   string
	Years      []yearLink
	Cards      []card
}

// Gallery renders the card grid of works matching sel with the year sidebar.
func (r *Renderer) Gallery(p Page, works []content.Work, years []int, sel content.YearSelection) (string, error) {
	t := p.Messages.Reader()
	loc := r.opts.Locales

	view := galleryView{
		YearsLabel: t.T("gallery.years"),
		Title:      t.T("gallery.title"),
		Subtitle:   t.T("gallery.subtitle"),
		Years: []yearLink{{
			Label:  t.T("gallery.allYears"),
			Href:   p.href(loc.PathFor(p.Locale, site.GalleryAll())),
			Active: sel.All(),
		}},
	}
	for _, y := range years {
		view.Years = append(view.Years, yearLink{
			Label:  strconv.Itoa(y),
			Href:   p.href(loc.PathFor(p.Locale, site.GalleryYear(y))),
			Active: !sel.All() && sel.Year() == y,
		})
	}
	for _, w := range content.Filter(works, sel) {
		view.Cards = append(view.Cards, card{
			Href:        p.href(loc.PathFor(p.Locale, site.WorkPage(w.Slug))),
			Image:       w.PreviewImage,
			Title:       w.Title.In(p.Locale),
			Location:    w.Location.In(p.Locale),
			Orientation: w.Orientation,
		})
	}
	head := Head{
		Title:       view.Title + " · " + t.T("brand.title"),
		Description: view.Subtitle,
	}
	if err := t.Err(); err != nil {
		return "", r.messageError(p, err)
	}
	return r.document(p, head, "gallery", view)
}

type metaItem struct {
	Label string
	Value content.DisplayValue
}

type workView struct {
	BackHref  string
	BackLabel string
	Image     string
	Title     string
	Year      string
	Location  string
	Summary   string
	Meta      []metaItem
	Content   template.HTML
}

// Work renders the detail page of w. The pre-rendered description is inserted
// without escaping.
func (r *Renderer) Work(p Page, w content.Work) (string, error) {
	t := p.Messages.Reader()

	meta := []metaItem{
		{Label: t.T("detail.date"), Value: w.ShootingDate},
		{Label: t.T("detail.camera"), Value: w.Exif.Camera},
		{Label: t.T("detail.lens"), Value: w.Exif.Lens},
	}
	if w.Exif.FocalLength != "" {
		meta = append(meta, metaItem{Label: t.T("detail.focalLength"), Value: w.Exif.FocalLength})
	}
	meta = append(meta,
		metaItem{Label: t.T("detail.aperture"), Value: w.Exif.Aperture},
		metaItem{Label: t.T("detail.shutter"), Value: w.Exif.Shutter},
		metaItem{Label: "ISO", Value: w.Exif.ISO},
	)

	view := workView{
		BackHref:  p.href(r.opts.Locales.PathFor(p.Locale, site.GalleryAll())),
		BackLabel: t.T("detail.back"),
		Image:     w.CoverImage,
		Title:     w.Title.In(p.Locale),
		Year:      w.YearLabel(),
		Location:  w.Location.In(p.Locale),
		Summary:   w.Summary.In(p.Locale),
		Meta:      meta,
		Content:   template.HTML(w.Content.In(p.Locale)), //nolint:gosec // produced by the markdown renderer
	}
	head := Head{
		Title:       view.Title + " · " + t.T("brand.title"),
		Description: view.Summary,
	}
	if err := t.Err(); err != nil {
		return "", r.messageError(p, err)
	}
	if r.opts.BaseURL != "" {
		ld, err := r.photographLD(p, w)
		if err != nil {
			return "", err
		}
		head.JSONLD = ld
	}
	return r.document(p, head, "work", view)
}

type aboutView struct {
	Title          string
	Subtitle       string
	StoryTitle     string
	Story          []string
	HighlightTitle string
	Highlights     []string
}

// About renders the about page from the message bundle.
func (r *Renderer) About(p Page) (string, error) {
	t := p.Messages.Reader()
	view := aboutView{
		Title:          t.T("about.title"),
		Subtitle:       t.T("about.subtitle"),
		StoryTitle:     t.T("about.storyTitle"),
		Story:          []string{t.T("about.story1"), t.T("about.story2")},
		HighlightTitle: t.T("about.highlightTitle"),
		Highlights:     []string{t.T("about.highlight1"), t.T("about.highlight2"), t.T("about.highlight3")},
	}
	head := Head{Title: view.Title + " · " + t.T("brand.title"), Description: view.Subtitle}
	if err := t.Err(); err != nil {
		return "", r.messageError(p, err)
	}
	return r.document(p, head, "about", view)
}

type formLabels struct {
	Name    string
	Email   string
	Message string
	Submit  string
}

type contactView struct {
	Title           string
	Subtitle        string
	InfoTitle       string
	InfoDescription string
	EmailLabel      string
	Email           string
	PhoneLabel      string
	Phone           string
	LocationLabel   string
	LocationValue   string
	Mailto          string
	Form            formLabels
}

// Contact renders the contact page. The form posts to a mailto: URL; there is
// no server-side handling.
func (r *Renderer) Contact(p Page) (string, error) {
	t := p.Messages.Reader()
	view := contactView{
		Title:           t.T("contact.title"),
		Subtitle:        t.T("contact.subtitle"),
		InfoTitle:       t.T("contact.infoTitle"),
		InfoDescription: t.T("contact.infoDescription"),
		EmailLabel:      t.T("contact.emailLabel"),
		Email:           r.opts.Contact.Email,
		PhoneLabel:      t.T("contact.phoneLabel"),
		Phone:           r.opts.Contact.Phone,
		LocationLabel:   t.T("contact.locationLabel"),
		LocationValue:   t.T("contact.locationValue"),
		Mailto:          "mailto:" + r.opts.Contact.Email,
		Form: formLabels{
			Name:    t.T("contact.form.name"),
			Email:   t.T("contact.form.email"),
			Message: t.T("contact.form.message"),
			Submit:  t.T("contact.form.submit"),
		},
	}
	head := Head{Title: view.Title + " · " + t.T("brand.title"), Description: view.Subtitle}
	if err := t.Err(); err != nil {
		return "", r.messageError(p, err)
	}
	return r.document(p, head, "contact", view)
}
