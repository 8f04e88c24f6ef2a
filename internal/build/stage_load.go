package build

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/photofolio/internal/content"
	"git.home.luguber.info/inful/photofolio/internal/i18n"
	"git.home.luguber.info/inful/photofolio/internal/logfields"
	"git.home.luguber.info/inful/photofolio/internal/render"
	"git.home.luguber.info/inful/photofolio/internal/site"
)

// stageLoadLocales loads and validates one message bundle per supported locale.
func stageLoadLocales(_ context.Context, bs *BuildState) error {
	cfg := bs.Generator.cfg
	cat, err := i18n.Load(cfg.Paths.Locales, cfg.Locales.Supported)
	if err != nil {
		return newFatalStageError(StageLoadLocales, err)
	}
	bs.Catalog = cat
	slog.Debug("Loaded locale bundles", logfields.Path(cfg.Paths.Locales), logfields.Count(len(cat.Locales())))
	return nil
}

// stageLoadContent loads every work, sorted.
func stageLoadContent(ctx context.Context, bs *BuildState) error {
	cfg := bs.Generator.cfg
	works, err := content.NewLoader(cfg.Paths.Content, cfg.Locales.Supported, bs.Generator.markdown).Load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return newCanceledStageError(StageLoadContent, err)
		}
		return newFatalStageError(StageLoadContent, err)
	}
	bs.Works = works
	bs.Report.Works = len(works)
	slog.Debug("Loaded works", logfields.Path(cfg.Paths.Content), logfields.Count(len(works)))
	return nil
}

// stagePlanPages computes the year list once, enumerates the page set and
// checks that every (locale, page) pair has its own output path.
func stagePlanPages(_ context.Context, bs *BuildState) error {
	bs.Years = content.Years(bs.Works)
	bs.Pages = site.Enumerate(bs.Works, bs.Years)
	bs.Report.Years = len(bs.Years)
	if err := bs.Locales.CheckInjective(bs.Pages); err != nil {
		return newFatalStageError(StagePlanPages, err)
	}

	cfg := bs.Generator.cfg
	labels := make(map[string]string, len(cfg.Locales.Supported))
	for _, loc := range cfg.Locales.Supported {
		labels[loc] = cfg.LanguageLabel(loc)
	}
	r, err := render.New(render.Options{
		Locales: bs.Locales,
		Labels:  labels,
		Contact: cfg.Contact,
		BaseURL: cfg.Site.BaseURL,
		Author:  cfg.Site.Author,
	})
	if err != nil {
		return newFatalStageError(StagePlanPages, err)
	}
	bs.Renderer = r
	slog.Debug("Planned pages",
		logfields.Count(len(bs.Pages)*len(cfg.Locales.Supported)),
		slog.Any("years", bs.Years))
	return nil
}

