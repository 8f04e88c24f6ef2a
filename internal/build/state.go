package build

import (
	"git.home.luguber.info/inful/photofolio/internal/content"
	"git.home.luguber.info/inful/photofolio/internal/i18n"
	"git.home.luguber.info/inful/photofolio/internal/render"
	"git.home.luguber.info/inful/photofolio/internal/site"
)

// BuildState carries the loaded inputs and the written outputs across stages.
// Everything loaded is read-only once render_pages starts.
type BuildState struct {
	Generator *Generator
	Report    *Report
	Locales   site.Locales

	Catalog  *i18n.Catalog
	Works    []content.Work
	Years    []int
	Pages    []site.PageID
	Renderer *render.Renderer

	// Written lists the HTML pages written, as slash paths relative to the output dir.
	Written []string
}

func newBuildState(g *Generator, report *Report) *BuildState {
	return &BuildState{
		Generator: g,
		Report:    report,
		Locales:   site.NewLocales(g.cfg.Locales.Supported, g.cfg.Locales.Default),
	}
}
