package build

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/photofolio/internal/linkverify"
)

// Report file names written by Persist.
const (
	ReportJSONFile = "build-report.json"
	ReportTextFile = "build-report.txt"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// StageCount aggregates counts of outcomes for a stage.
type StageCount struct {
	Success  int `json:"success"`
	Warning  int `json:"warning"`
	Fatal    int `json:"fatal"`
	Canceled int `json:"canceled"`
}

// Report captures high-level metrics about a site generation run.
type Report struct {
	SchemaVersion   int
	BuildID         string
	Start           time.Time
	End             time.Time
	Locales         []string
	Works           int
	Years           int
	Pages           int            // HTML pages written, all locales
	PagesByLocale   map[string]int // locale -> pages written
	StaticFiles     int            // files copied from the public directory
	LinksChecked    int
	BrokenLinks     []linkverify.BrokenLink
	Errors          []error // fatal errors causing build abortion (at most one)
	Warnings        []error // non-fatal issues
	StageDurations  map[string]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Outcome         BuildOutcome
}

func newReport() *Report {
	return &Report{
		SchemaVersion:   1,
		BuildID:         uuid.NewString(),
		Start:           time.Now(),
		PagesByLocale:   make(map[string]int),
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

func (r *Report) finish() { r.End = time.Now() }

// Duration is the wall time of the build.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("build=%s locales=%d works=%d years=%d pages=%d static=%d broken_links=%d duration=%s errors=%d warnings=%d outcome=%s",
		r.BuildID, len(r.Locales), r.Works, r.Years, r.Pages, r.StaticFiles, len(r.BrokenLinks),
		r.Duration().Truncate(time.Millisecond), len(r.Errors), len(r.Warnings), r.Outcome)
}

// deriveOutcome sets the Outcome field based on recorded errors/warnings.
func (r *Report) deriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if stdErrors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// recordStageResult updates the per-stage counters.
func (r *Report) recordStageResult(stage StageName, res StageResult) {
	sc := r.StageCounts[stage]
	switch res {
	case StageResultSuccess:
		sc.Success++
	case StageResultWarning:
		sc.Warning++
	case StageResultFatal:
		sc.Fatal++
	case StageResultCanceled:
		sc.Canceled++
	}
	r.StageCounts[stage] = sc
}

// Persist writes the report atomically into dir:
//
//	build-report.json  (machine readable)
//	build-report.txt   (human summary)
//
// Errors are returned for caller logging but do not change the build outcome.
func (r *Report) Persist(dir string) error {
	if r.End.IsZero() {
		r.finish()
		r.deriveOutcome()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure report dir: %w", err)
	}
	jb, err := json.MarshalIndent(r.serializable(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if err := writeAtomic(filepath.Join(dir, ReportJSONFile), jb); err != nil {
		return err
	}
	return writeAtomic(filepath.Join(dir, ReportTextFile), []byte(r.Summary()+"\n"))
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReportSerializable mirrors Report with string errors for JSON output.
type ReportSerializable struct {
	SchemaVersion   int                     `json:"schema_version"`
	BuildID         string                  `json:"build_id"`
	Start           time.Time               `json:"start"`
	End             time.Time               `json:"end"`
	Locales         []string                `json:"locales"`
	Works           int                     `json:"works"`
	Years           int                     `json:"years"`
	Pages           int                     `json:"pages"`
	PagesByLocale   map[string]int          `json:"pages_by_locale"`
	StaticFiles     int                     `json:"static_files"`
	LinksChecked    int                     `json:"links_checked"`
	BrokenLinks     []linkverify.BrokenLink `json:"broken_links"`
	Errors          []string                `json:"errors"`
	Warnings        []string                `json:"warnings"`
	StageDurations  map[string]int64        `json:"stage_durations_ms"`
	StageErrorKinds map[string]string       `json:"stage_error_kinds"`
	StageCounts     map[string]StageCount   `json:"stage_counts"`
	Outcome         string                  `json:"outcome"`
}

func (r *Report) serializable() *ReportSerializable {
	s := &ReportSerializable{
		SchemaVersion:   r.SchemaVersion,
		BuildID:         r.BuildID,
		Start:           r.Start,
		End:             r.End,
		Locales:         r.Locales,
		Works:           r.Works,
		Years:           r.Years,
		Pages:           r.Pages,
		PagesByLocale:   r.PagesByLocale,
		StaticFiles:     r.StaticFiles,
		LinksChecked:    r.LinksChecked,
		BrokenLinks:     r.BrokenLinks,
		Errors:          make([]string, len(r.Errors)),
		Warnings:        make([]string, len(r.Warnings)),
		StageDurations:  make(map[string]int64, len(r.StageDurations)),
		StageErrorKinds: make(map[string]string, len(r.StageErrorKinds)),
		StageCounts:     make(map[string]StageCount, len(r.StageCounts)),
		Outcome:         string(r.Outcome),
	}
	if s.BrokenLinks == nil {
		s.BrokenLinks = []linkverify.BrokenLink{}
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	for k, v := range r.StageDurations {
		s.StageDurations[k] = v.Milliseconds()
	}
	for k, v := range r.StageErrorKinds {
		s.StageErrorKinds[string(k)] = string(v)
	}
	for k, v := range r.StageCounts {
		s.StageCounts[string(k)] = v
	}
	return s
}
