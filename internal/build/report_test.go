package build

import (
	"encoding/json"
	stdErrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/photofolio/internal/linkverify"
)

func TestReport_DeriveOutcome(t *testing.T) {
	r := newReport()
	r.deriveOutcome()
	assert.Equal(t, OutcomeSuccess, r.Outcome)

	r.Warnings = append(r.Warnings, stdErrors.New("w"))
	r.deriveOutcome()
	assert.Equal(t, OutcomeWarning, r.Outcome)

	r.Errors = append(r.Errors, newFatalStageError(StageRenderPages, stdErrors.New("boom")))
	r.deriveOutcome()
	assert.Equal(t, OutcomeFailed, r.Outcome)

	r.Errors = []error{newCanceledStageError(StageRenderPages, stdErrors.New("stop"))}
	r.deriveOutcome()
	assert.Equal(t, OutcomeCanceled, r.Outcome)
}

func TestReport_PersistWritesBothFiles(t *testing.T) {
	r := newReport()
	r.Locales = []string{"zh", "en"}
	r.Pages = 4
	r.StageDurations[string(StageRenderPages)] = 1500 * time.Millisecond
	r.BrokenLinks = []linkverify.BrokenLink{{Page: "index.html", URL: "x.html", Target: "x.html", Reason: "file not found"}}
	r.Warnings = append(r.Warnings, newWarnStageError(StageVerifyLinks, stdErrors.New("1 of 3 links do not resolve")))

	dir := filepath.Join(t.TempDir(), "reports")
	require.NoError(t, r.Persist(dir))
	assert.Equal(t, OutcomeWarning, r.Outcome, "Persist finishes an open report")

	raw, err := os.ReadFile(filepath.Join(dir, ReportJSONFile))
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, r.BuildID, got["build_id"])
	assert.Equal(t, "warning", got["outcome"])
	assert.InDelta(t, 1500, got["stage_durations_ms"].(map[string]any)["render_pages"], 0)
	assert.Len(t, got["broken_links"], 1)
	assert.Len(t, got["warnings"], 1)

	_, err = os.Stat(filepath.Join(dir, ReportJSONFile+".tmp"))
	assert.True(t, os.IsNotExist(err), "temp file renamed away")

	txt, err := os.ReadFile(filepath.Join(dir, ReportTextFile))
	require.NoError(t, err)
	assert.Contains(t, string(txt), "pages=4")
	assert.Contains(t, string(txt), "broken_links=1")
}

func TestReport_EmptyBrokenLinksSerializeAsList(t *testing.T) {
	s := newReport().serializable()
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"broken_links":[]`)
}
