// Package markdown renders work descriptions to HTML fragments.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Renderer converts CommonMark source to an HTML fragment. Bare URLs become links,
// typographic quotes and dashes are substituted, and raw HTML in the source is
// emitted escaped rather than passed through.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer configures the Markdown engine once; the result is reused for every file.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&escapedHTMLRenderer{}, 100)),
		),
	)
	return &Renderer{md: md}
}

// Render converts src to HTML. Empty input yields an empty string.
func (r *Renderer) Render(src []byte) (string, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
