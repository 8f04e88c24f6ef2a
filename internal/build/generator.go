package build

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/photofolio/internal/config"
	"git.home.luguber.info/inful/photofolio/internal/content"
	"git.home.luguber.info/inful/photofolio/internal/logfields"
	"git.home.luguber.info/inful/photofolio/internal/markdown"
	"git.home.luguber.info/inful/photofolio/internal/metrics"
)

// Generator writes the site described by a Config.
type Generator struct {
	cfg      *config.Config
	recorder metrics.Recorder
	markdown content.MarkdownRenderer
}

// NewGenerator creates a Generator with metrics disabled.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		markdown: markdown.NewRenderer(),
	}
}

// WithRecorder sets the metrics recorder; nil restores the no-op recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	g.recorder = r
	return g
}

// Config returns the configuration the generator builds from.
func (g *Generator) Config() *config.Config { return g.cfg }

func (g *Generator) stages() []StageDef {
	return NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageCopyStatic, stageCopyStatic).
		Add(StageCopyStylesheet, stageCopyStylesheet).
		Add(StageLoadLocales, stageLoadLocales).
		Add(StageLoadContent, stageLoadContent).
		Add(StagePlanPages, stagePlanPages).
		Add(StageRenderPages, stageRenderPages).
		AddIf(g.cfg.SitemapEnabled(), StageSitemap, stageSitemap).
		AddIf(g.cfg.Build.LinkVerification(), StageVerifyLinks, stageVerifyLinks).
		Build()
}

// Generate runs a full build. The returned Report is non-nil even when the
// build fails; the error is the fatal (or canceled) StageError.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	report := newReport()
	report.Locales = g.cfg.Locales.Supported
	bs := newBuildState(g, report)

	slog.Info("Starting build",
		logfields.BuildID(report.BuildID),
		logfields.Path(g.cfg.Paths.Output),
		slog.Any("locales", g.cfg.Locales.Supported))

	err := runStages(ctx, bs, g.stages())
	report.finish()
	report.deriveOutcome()

	g.recorder.ObserveBuildDuration(report.Duration())
	g.recorder.IncBuildOutcome(string(report.Outcome))

	if dir := g.cfg.Build.ReportPath; dir != "" {
		if perr := report.Persist(dir); perr != nil {
			slog.Warn("Failed to persist build report", logfields.Path(dir), logfields.Error(perr))
		}
	}

	if err != nil {
		slog.Error("Build failed",
			logfields.BuildID(report.BuildID),
			slog.String("outcome", string(report.Outcome)),
			logfields.Error(err))
		return report, err
	}
	slog.Info("Build complete",
		logfields.BuildID(report.BuildID),
		logfields.Count(report.Pages),
		logfields.DurationMS(millis(report.Duration())),
		slog.String("outcome", string(report.Outcome)))
	return report, nil
}
