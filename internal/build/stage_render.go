package build

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
	"git.home.luguber.info/inful/photofolio/internal/logfields"
	"git.home.luguber.info/inful/photofolio/internal/render"
)

// stageRenderPages writes every page of every locale: the gallery root, one
// gallery per year, one detail page per work, then about and contact.
func stageRenderPages(ctx context.Context, bs *BuildState) error {
	out := bs.Generator.cfg.Paths.Output
	for _, loc := range bs.Locales.Supported {
		bundle, err := bs.Catalog.Bundle(loc)
		if err != nil {
			return newFatalStageError(StageRenderPages, err)
		}
		written := 0
		for _, id := range bs.Pages {
			if err := ctx.Err(); err != nil {
				return newCanceledStageError(StageRenderPages, err)
			}
			page := render.NewPage(bs.Locales, loc, id, bundle)
			doc, err := bs.Renderer.Render(page, bs.Works, bs.Years)
			if err != nil {
				return newFatalStageError(StageRenderPages, err)
			}
			if err := writePage(out, page.Path, doc); err != nil {
				return newFatalStageError(StageRenderPages, err)
			}
			bs.Written = append(bs.Written, page.Path)
			written++
			slog.Debug("Wrote page", logfields.Locale(loc), logfields.Page(id.String()), logfields.Path(page.Path))
		}
		bs.Report.Pages += written
		bs.Report.PagesByLocale[loc] = written
		bs.Generator.recorder.AddPagesWritten(loc, written)
	}
	return nil
}

// writePage writes doc to rel (a slash path) under the output directory.
func writePage(out, rel, doc string) error {
	dst := filepath.Join(out, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create page directory").
			WithContext("path", filepath.Dir(dst)).
			Fatal().
			Build()
	}
	if err := os.WriteFile(dst, []byte(doc), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write page").
			WithContext("path", rel).
			Fatal().
			Build()
	}
	return nil
}
