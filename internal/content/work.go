// Package content loads the portfolio works from the content directory.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Orientation selects the card layout class of a work.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
	Square    Orientation = "square"
)

// Valid reports whether o is one of the known orientations.
func (o Orientation) Valid() bool {
	switch o {
	case Landscape, Portrait, Square:
		return true
	}
	return false
}

// LocaleText maps a locale code to a string.
type LocaleText map[string]string

// In returns the text for locale, or "" when there is none.
func (t LocaleText) In(locale string) string { return t[locale] }

// DisplayValue is a metadata string shown verbatim. Numbers in meta.json are
// accepted and kept in their literal form (e.g. "iso": 400).
type DisplayValue string

func (v *DisplayValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = DisplayValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*v = DisplayValue(n.String())
	return nil
}

// ExifMetadata holds the camera settings shown on a detail page.
type ExifMetadata struct {
	Camera      DisplayValue `json:"camera"`
	Lens        DisplayValue `json:"lens"`
	Aperture    DisplayValue `json:"aperture"`
	Shutter     DisplayValue `json:"shutter"`
	ISO         DisplayValue `json:"iso"`
	FocalLength DisplayValue `json:"focalLength,omitempty"`
}

// Meta is the on-disk shape of meta.json.
type Meta struct {
	Slug         string       `json:"slug"`
	Year         int          `json:"year"`
	Orientation  Orientation  `json:"orientation"`
	CoverImage   string       `json:"coverImage"`
	PreviewImage string       `json:"previewImage"`
	Thumbnail    string       `json:"thumbnail"`
	Title        LocaleText   `json:"title"`
	Location     LocaleText   `json:"location"`
	Summary      LocaleText   `json:"summary"`
	ShootingDate DisplayValue `json:"shootingDate"`
	Exif         ExifMetadata `json:"exif"`
}

// Work is a loaded gallery entry: metadata plus rendered per-locale descriptions.
type Work struct {
	Meta
	// Folder is the directory name the work was loaded from.
	Folder string
	// Content maps locale to the HTML rendered from {locale}.md ("" when absent).
	Content LocaleText
}

// YearLabel is the year as shown on pages and used in gallery paths.
func (w Work) YearLabel() string { return strconv.Itoa(w.Year) }
