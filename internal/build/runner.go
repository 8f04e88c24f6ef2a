package build

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/photofolio/internal/logfields"
	"git.home.luguber.info/inful/photofolio/internal/metrics"
)

// runStages executes stages in order, recording timing and stopping on the
// first fatal or canceled stage.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	rec := bs.Generator.recorder
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := newCanceledStageError(st.Name, err)
			bs.Report.StageErrorKinds[st.Name] = se.Kind
			bs.Report.Errors = append(bs.Report.Errors, se)
			bs.Report.recordStageResult(st.Name, StageResultCanceled)
			rec.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		}

		slog.Debug("Stage started", logfields.Stage(string(st.Name)))
		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Report.StageDurations[string(st.Name)] = dur
		rec.ObserveStageDuration(string(st.Name), dur)

		se, res := classifyStageResult(st.Name, err)
		bs.Report.recordStageResult(st.Name, res)
		rec.IncStageResult(string(st.Name), resultLabel(res))
		slog.Debug("Stage finished",
			logfields.Stage(string(st.Name)),
			logfields.DurationMS(millis(dur)),
			slog.String("result", string(res)))

		if se == nil {
			continue
		}
		bs.Report.StageErrorKinds[st.Name] = se.Kind
		if se.Kind == StageErrorWarning {
			bs.Report.Warnings = append(bs.Report.Warnings, se)
			slog.Warn("Stage completed with warnings", logfields.Stage(string(st.Name)), logfields.Error(se.Err))
			continue
		}
		bs.Report.Errors = append(bs.Report.Errors, se)
		return se
	}
	return nil
}

// classifyStageResult converts a raw stage error into a StageError and result.
// Errors that are not StageErrors are fatal.
func classifyStageResult(stage StageName, err error) (*StageError, StageResult) {
	if err == nil {
		return nil, StageResultSuccess
	}
	var se *StageError
	if !stdErrors.As(err, &se) {
		if stdErrors.Is(err, context.Canceled) || stdErrors.Is(err, context.DeadlineExceeded) {
			return newCanceledStageError(stage, err), StageResultCanceled
		}
		return newFatalStageError(stage, err), StageResultFatal
	}
	switch se.Kind {
	case StageErrorWarning:
		return se, StageResultWarning
	case StageErrorCanceled:
		return se, StageResultCanceled
	default:
		return se, StageResultFatal
	}
}

func resultLabel(res StageResult) metrics.ResultLabel {
	switch res {
	case StageResultWarning:
		return metrics.ResultWarning
	case StageResultFatal:
		return metrics.ResultFatal
	case StageResultCanceled:
		return metrics.ResultCanceled
	default:
		return metrics.ResultSuccess
	}
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
