// Package site maps logical pages to output paths for every locale.
package site

import (
	"fmt"
	"strconv"

	"git.home.luguber.info/inful/photofolio/internal/content"
)

// PageKind distinguishes the page shapes the site is made of.
type PageKind string

const (
	KindGalleryAll  PageKind = "gallery-all"
	KindGalleryYear PageKind = "gallery-year"
	KindWork        PageKind = "work"
	KindAbout       PageKind = "about"
	KindContact     PageKind = "contact"
)

// Navigation section keys, matched exactly against the nav items.
const (
	SectionGallery = "gallery"
	SectionAbout   = "about"
	SectionContact = "contact"
)

// PageID identifies a logical page independent of locale.
type PageID struct {
	Kind PageKind
	Year int    // KindGalleryYear only
	Slug string // KindWork only
}

// GalleryAll is the unfiltered gallery at the locale root.
func GalleryAll() PageID { return PageID{Kind: KindGalleryAll} }

// GalleryYear is the gallery filtered to one year.
func GalleryYear(year int) PageID { return PageID{Kind: KindGalleryYear, Year: year} }

// WorkPage is the detail page of one work.
func WorkPage(slug string) PageID { return PageID{Kind: KindWork, Slug: slug} }

func About() PageID { return PageID{Kind: KindAbout} }

func Contact() PageID { return PageID{Kind: KindContact} }

// Gallery returns the gallery page showing sel.
func Gallery(sel content.YearSelection) PageID {
	if sel.All() {
		return GalleryAll()
	}
	return GalleryYear(sel.Year())
}

// LogicalPath is the page's path under a locale root. Unknown kinds fall back
// to the gallery root.
func (p PageID) LogicalPath() string {
	switch p.Kind {
	case KindGalleryYear:
		return "gallery/" + strconv.Itoa(p.Year) + ".html"
	case KindWork:
		return "works/" + p.Slug + ".html"
	case KindAbout:
		return "about.html"
	case KindContact:
		return "contact.html"
	default:
		return "index.html"
	}
}

// Section is the navigation key marked active on this page.
func (p PageID) Section() string {
	switch p.Kind {
	case KindAbout:
		return SectionAbout
	case KindContact:
		return SectionContact
	default:
		return SectionGallery
	}
}

func (p PageID) String() string {
	switch p.Kind {
	case KindGalleryYear:
		return fmt.Sprintf("%s(%d)", p.Kind, p.Year)
	case KindWork:
		return fmt.Sprintf("%s(%s)", p.Kind, p.Slug)
	default:
		return string(p.Kind)
	}
}

// Enumerate lists every logical page of one locale in write order: the gallery
// root, one page per year, one per work, then about and contact.
func Enumerate(works []content.Work, years []int) []PageID {
	pages := make([]PageID, 0, len(works)+len(years)+3)
	pages = append(pages, GalleryAll())
	for _, y := range years {
		pages = append(pages, GalleryYear(y))
	}
	for _, w := range works {
		pages = append(pages, WorkPage(w.Slug))
	}
	return append(pages, About(), Contact())
}
