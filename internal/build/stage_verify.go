package build

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/photofolio/internal/foundation/errors"
	"git.home.luguber.info/inful/photofolio/internal/linkverify"
	"git.home.luguber.info/inful/photofolio/internal/logfields"
)

// stageVerifyLinks checks that every relative link of the written pages
// resolves to a file in the output tree. Broken links are warnings.
func stageVerifyLinks(ctx context.Context, bs *BuildState) error {
	res, err := linkverify.NewChecker(bs.Generator.cfg.Paths.Output).Verify(ctx, bs.Written)
	if err != nil {
		if ctx.Err() != nil {
			return newCanceledStageError(StageVerifyLinks, err)
		}
		return newWarnStageError(StageVerifyLinks, err)
	}
	bs.Report.LinksChecked = res.Checked
	bs.Report.BrokenLinks = res.Broken
	bs.Generator.recorder.AddBrokenLinks(len(res.Broken))

	if len(res.Broken) == 0 {
		slog.Debug("Links verified", logfields.Count(res.Checked))
		return nil
	}
	for _, b := range res.Broken {
		slog.Warn("Broken link",
			logfields.Page(b.Page),
			logfields.URL(b.URL),
			slog.String("reason", b.Reason))
	}
	return newWarnStageError(StageVerifyLinks, errors.ValidationError(
		fmt.Sprintf("%d of %d links do not resolve", len(res.Broken), res.Checked)).
		Warning().
		Build())
}
