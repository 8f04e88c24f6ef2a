package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.ObserveStageDuration("prepare_output", time.Millisecond)
		r.ObserveBuildDuration(time.Second)
		r.IncStageResult("prepare_output", ResultSuccess)
		r.IncBuildOutcome("success")
		r.AddPagesWritten("en", 3)
		r.AddBrokenLinks(0)
	})
}
