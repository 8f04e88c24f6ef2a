package site

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/photofolio/internal/content"
)

var zhEn = NewLocales([]string{"zh", "en"}, "zh")

func TestLogicalPath(t *testing.T) {
	tests := []struct {
		id   PageID
		want string
	}{
		{GalleryAll(), "index.html"},
		{GalleryYear(2021), "gallery/2021.html"},
		{WorkPage("foo"), "works/foo.html"},
		{About(), "about.html"},
		{Contact(), "contact.html"},
		{PageID{Kind: "unknown"}, "index.html"},
	}
	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.LogicalPath())
		})
	}
}

func TestResolve_PrefixRule(t *testing.T) {
	assert.Equal(t, "index.html", zhEn.Resolve("zh", "index.html"))
	assert.Equal(t, "en/index.html", zhEn.Resolve("en", "index.html"))
	assert.Equal(t, "works/foo.html", zhEn.PathFor("zh", WorkPage("foo")))
	assert.Equal(t, "en/works/foo.html", zhEn.PathFor("en", WorkPage("foo")))

	// Non-default locale paths always start with the locale segment; default ones never do.
	for _, id := range []PageID{GalleryAll(), GalleryYear(2020), WorkPage("x"), About(), Contact()} {
		assert.True(t, strings.HasPrefix(zhEn.PathFor("en", id), "en/"))
		assert.False(t, strings.HasPrefix(zhEn.PathFor("zh", id), "zh/"))
	}
}

func TestAlternates_Bijection(t *testing.T) {
	ids := []PageID{GalleryAll(), GalleryYear(2021), WorkPage("foo"), About(), Contact()}
	for _, id := range ids {
		for _, loc := range zhEn.Supported {
			current := zhEn.PathFor(loc, id)
			alts := zhEn.Alternates(current, loc, id)
			require.Len(t, alts, 2)
			assert.Equal(t, current, alts[loc], "current locale maps to itself")

			for other, otherPath := range alts {
				back := zhEn.Alternates(otherPath, other, id)
				assert.Equal(t, current, back[loc], "alternates of %s must point back to %s", otherPath, current)
			}
		}
	}
}

func TestAlternates_WorkExample(t *testing.T) {
	alts := zhEn.Alternates("works/foo.html", "zh", WorkPage("foo"))
	assert.Equal(t, map[string]string{"zh": "works/foo.html", "en": "en/works/foo.html"}, alts)

	alts = zhEn.Alternates("en/works/foo.html", "en", WorkPage("foo"))
	assert.Equal(t, map[string]string{"zh": "works/foo.html", "en": "en/works/foo.html"}, alts)
}

func TestAlternates_CurrentPathNotRecomputed(t *testing.T) {
	alts := zhEn.Alternates("custom/path.html", "zh", About())
	assert.Equal(t, "custom/path.html", alts["zh"])
	assert.Equal(t, "en/about.html", alts["en"])
}

func TestSwitcherTarget_FallsBackToGalleryRoot(t *testing.T) {
	alts := map[string]string{"zh": "about.html"}
	assert.Equal(t, "about.html", zhEn.SwitcherTarget(alts, "zh"))
	assert.Equal(t, "en/index.html", zhEn.SwitcherTarget(alts, "en"))
	assert.Equal(t, "index.html", zhEn.SwitcherTarget(nil, "zh"))
}

func TestRelativeURL(t *testing.T) {
	tests := []struct {
		from, to, want string
	}{
		{"index.html", "assets/main.css", "assets/main.css"},
		{"index.html", "index.html", "index.html"},
		{"works/foo.html", "assets/main.css", "../assets/main.css"},
		{"works/foo.html", "works/bar.html", "bar.html"},
		{"gallery/2021.html", "index.html", "../index.html"},
		{"en/index.html", "en/about.html", "about.html"},
		{"en/index.html", "index.html", "../index.html"},
		{"en/works/foo.html", "index.html", "../../index.html"},
		{"en/works/foo.html", "en/index.html", "../index.html"},
		{"en/works/foo.html", "works/foo.html", "../../works/foo.html"},
		{"index.html", "en/works/foo.html", "en/works/foo.html"},
		{"en/gallery/2020.html", "favicon.svg", "../../favicon.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeURL(tt.from, tt.to))
		})
	}
}

func TestEnumerateAndInjective(t *testing.T) {
	works := []content.Work{
		{Meta: content.Meta{Slug: "c", Year: 2021}},
		{Meta: content.Meta{Slug: "a", Year: 2020}},
	}
	pages := Enumerate(works, []int{2021, 2020})
	require.Len(t, pages, 7)
	assert.Equal(t, GalleryAll(), pages[0])
	assert.Equal(t, GalleryYear(2021), pages[1])
	assert.Equal(t, WorkPage("c"), pages[3])
	assert.Equal(t, Contact(), pages[6])

	require.NoError(t, zhEn.CheckInjective(pages))

	seen := map[string]bool{}
	for _, loc := range zhEn.Supported {
		for _, p := range pages {
			out := zhEn.PathFor(loc, p)
			assert.False(t, seen[out], "duplicate output %s", out)
			seen[out] = true
		}
	}
	assert.Len(t, seen, 14)
}

func TestCheckInjective_DetectsCollision(t *testing.T) {
	// A locale named like a first path segment shadows default-locale pages.
	bad := NewLocales([]string{"zh", "works"}, "zh")
	err := bad.CheckInjective([]PageID{GalleryAll(), WorkPage("index")})
	require.Error(t, err)

	// Unknown kinds fall back to the gallery root and collide with it.
	err = zhEn.CheckInjective([]PageID{GalleryAll(), {Kind: "other"}})
	require.Error(t, err)

	// Listing the same page twice is not a collision.
	require.NoError(t, zhEn.CheckInjective([]PageID{WorkPage("x"), WorkPage("x")}))
}

func TestSection(t *testing.T) {
	assert.Equal(t, SectionGallery, GalleryAll().Section())
	assert.Equal(t, SectionGallery, GalleryYear(2020).Section())
	assert.Equal(t, SectionGallery, WorkPage("x").Section())
	assert.Equal(t, SectionAbout, About().Section())
	assert.Equal(t, SectionContact, Contact().Section())
}

func TestGalleryFromSelection(t *testing.T) {
	assert.Equal(t, GalleryAll(), Gallery(content.AllYears()))
	assert.Equal(t, GalleryYear(2019), Gallery(content.OnlyYear(2019)))
}
