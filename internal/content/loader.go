package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
	"git.home.luguber.info/inful/photofolio/internal/logfields"
	"git.home.luguber.info/inful/photofolio/internal/util/sets"
)

// MetaFile is the metadata file every work directory must contain.
const MetaFile = "meta.json"

// MarkdownRenderer turns a Markdown description into an HTML fragment.
type MarkdownRenderer interface {
	Render(src []byte) (string, error)
}

// Loader reads works from a content root where each immediate subdirectory is one work.
type Loader struct {
	Root     string
	Locales  []string
	Markdown MarkdownRenderer
}

// NewLoader constructs a Loader.
func NewLoader(root string, locales []string, md MarkdownRenderer) *Loader {
	return &Loader{Root: root, Locales: locales, Markdown: md}
}

// Load reads every work and returns them sorted by year descending, slug ascending.
// A missing or malformed meta.json, an unknown orientation or a duplicate slug is fatal.
// A missing {locale}.md yields empty content for that locale.
func (l *Loader) Load(ctx context.Context) ([]Work, error) {
	entries, err := os.ReadDir(l.Root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryContent, "read content directory").
			WithContext("path", l.Root).
			Fatal().
			Build()
	}

	works := make([]Work, 0, len(entries))
	slugs := sets.New[string]()
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w, err := l.loadWork(entry.Name())
		if err != nil {
			return nil, err
		}
		if !slugs.AddNew(w.Slug) {
			return nil, errors.ContentError("duplicate work slug").
				WithContext("slug", w.Slug).
				WithContext("path", filepath.Join(l.Root, entry.Name())).
				Build()
		}
		works = append(works, w)
	}

	SortWorks(works)
	slog.Debug("Loaded works", logfields.Path(l.Root), logfields.Count(len(works)))
	return works, nil
}

func (l *Loader) loadWork(folder string) (Work, error) {
	dir := filepath.Join(l.Root, folder)
	metaPath := filepath.Join(dir, MetaFile)

	raw, err := os.ReadFile(metaPath)
	if err != nil {
		return Work{}, errors.WrapError(err, errors.CategoryContent, "read work metadata").
			WithContext("path", metaPath).
			Fatal().
			Build()
	}
	var meta Meta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Work{}, errors.WrapError(err, errors.CategoryContent, "parse work metadata").
			WithContext("path", metaPath).
			Fatal().
			Build()
	}

	if meta.Slug == "" {
		meta.Slug = folder
	}
	if err := validateSlug(meta.Slug); err != nil {
		return Work{}, errors.WrapError(err, errors.CategoryContent, "invalid work slug").
			WithContext("path", metaPath).
			Fatal().
			Build()
	}
	if meta.Orientation == "" {
		meta.Orientation = Landscape
	}
	if !meta.Orientation.Valid() {
		return Work{}, errors.ContentError(fmt.Sprintf("unknown orientation %q", meta.Orientation)).
			WithContext("path", metaPath).
			Build()
	}
	meta.Title = l.complete(meta.Title)
	meta.Location = l.complete(meta.Location)
	meta.Summary = l.complete(meta.Summary)

	w := Work{Meta: meta, Folder: folder, Content: make(LocaleText, len(l.Locales))}
	for _, locale := range l.Locales {
		html, err := l.loadDescription(dir, locale)
		if err != nil {
			return Work{}, err
		}
		w.Content[locale] = html
	}
	return w, nil
}

// loadDescription renders {locale}.md; absence is a valid, empty description.
func (l *Loader) loadDescription(dir, locale string) (string, error) {
	mdPath := filepath.Join(dir, locale+".md")
	src, err := os.ReadFile(mdPath)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("No description for locale", logfields.Path(mdPath), logfields.Locale(locale))
			return "", nil
		}
		return "", errors.WrapError(err, errors.CategoryContent, "read work description").
			WithContext("path", mdPath).
			Fatal().
			Build()
	}
	html, err := l.Markdown.Render(src)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryContent, "render work description").
			WithContext("path", mdPath).
			Fatal().
			Build()
	}
	return html, nil
}

// complete returns t with an entry (possibly empty) for every supported locale.
func (l *Loader) complete(t LocaleText) LocaleText {
	out := make(LocaleText, len(l.Locales))
	for _, locale := range l.Locales {
		out[locale] = t[locale]
	}
	return out
}

// validateSlug rejects slugs that cannot be used as a single path segment.
func validateSlug(slug string) error {
	if !fs.ValidPath(slug) || slug == "." || filepath.Base(slug) != slug {
		return fmt.Errorf("slug %q must be a single path segment", slug)
	}
	return nil
}
