package linkverify

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// BrokenLink is a relative link that does not resolve to an output file.
type BrokenLink struct {
	Page   string `json:"page"`   // output path of the referring page
	URL    string `json:"url"`    // link as written
	Target string `json:"target"` // resolved site-root path
	Reason string `json:"reason"`
}

// Result summarizes a verification run.
type Result struct {
	Pages   int
	Checked int
	Broken  []BrokenLink
}

// Checker resolves relative links against an output directory.
type Checker struct {
	root string
}

// NewChecker returns a Checker for the site written to root.
func NewChecker(root string) *Checker {
	return &Checker{root: root}
}

// Verify checks every relative link of pages. Pages are slash-separated paths
// relative to the root. An error is returned only when a page cannot be read
// or the context is canceled; broken links are reported in the Result.
func (c *Checker) Verify(ctx context.Context, pages []string) (*Result, error) {
	res := &Result{}
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		links, err := ExtractLinks(filepath.Join(c.root, filepath.FromSlash(page)))
		if err != nil {
			return res, err
		}
		res.Pages++
		for _, l := range links {
			if !ShouldVerifyLink(l) {
				continue
			}
			res.Checked++
			if b, ok := c.check(page, l.URL); !ok {
				res.Broken = append(res.Broken, b)
			}
		}
	}
	return res, nil
}

func (c *Checker) check(page, raw string) (BrokenLink, bool) {
	broken := BrokenLink{Page: page, URL: raw}
	u, err := url.Parse(raw)
	if err != nil {
		broken.Reason = "unparseable URL"
		return broken, false
	}
	if u.Path == "" {
		return broken, true
	}
	target := path.Join(path.Dir(page), u.Path)
	broken.Target = target
	if target == ".." || strings.HasPrefix(target, "../") {
		broken.Reason = "escapes the site root"
		return broken, false
	}

	local := filepath.Join(c.root, filepath.FromSlash(target))
	info, err := os.Stat(local)
	if err != nil {
		broken.Reason = "file not found"
		return broken, false
	}
	if info.IsDir() {
		if _, err := os.Stat(filepath.Join(local, "index.html")); err != nil {
			broken.Reason = "directory without index.html"
			return broken, false
		}
	}
	return broken, true
}
