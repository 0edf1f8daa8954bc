package orbitalguard

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/orbitalguard/internal/importer"
	"github.com/agentstation/orbitalguard/internal/report"
	"github.com/agentstation/orbitalguard/internal/sources"
)

// StageTiming records how long one stage took.
type StageTiming struct {
	Stage    string        `json:"stage" yaml:"stage"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Result is the outcome of a build run.
type Result struct {
	RunID            string           `json:"run_id" yaml:"run_id"`
	Started          time.Time        `json:"started" yaml:"started"`
	Finished         time.Time        `json:"finished" yaml:"finished"`
	Database         string           `json:"database" yaml:"database"`
	ForeignKeyPolicy ForeignKeyPolicy `json:"fk_policy" yaml:"fk_policy"`
	TieBreak         TieBreak         `json:"tie_break" yaml:"tie_break"`

	Precheck *PrecheckResult `json:"precheck,omitempty" yaml:"precheck,omitempty"`

	// Per-table import outcomes
	SpaceObjects *importer.BatchReport `json:"space_objects,omitempty" yaml:"space_objects,omitempty"`
	Orbits       *importer.BatchReport `json:"orbits,omitempty" yaml:"orbits,omitempty"`
	Details      *importer.BatchReport `json:"details,omitempty" yaml:"details,omitempty"`
	Missions     *importer.BatchReport `json:"missions,omitempty" yaml:"missions,omitempty"`

	// Element-set sources left out of the merge
	Warnings []sources.SourceWarning `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	Stages    []StageTiming    `json:"stages,omitempty" yaml:"stages,omitempty"`
	Integrity *IntegrityReport `json:"integrity,omitempty" yaml:"integrity,omitempty"`
}

// Batches returns the import reports that were produced, in stage order.
func (r *Result) Batches() []*importer.BatchReport {
	var out []*importer.BatchReport
	for _, b := range []*importer.BatchReport{r.SpaceObjects, r.Orbits, r.Details, r.Missions} {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// HasSkips returns true if any source row was not imported.
func (r *Result) HasSkips() bool {
	for _, b := range r.Batches() {
		if b.HasSkips() {
			return true
		}
	}
	return false
}

// Duration returns the wall time of the run.
func (r *Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	parts := make([]string, 0, 5)
	for _, b := range r.Batches() {
		parts = append(parts, b.Summary())
	}
	if r.Integrity != nil {
		parts = append(parts, r.Integrity.Summary())
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Run %s: nothing imported", r.RunID)
	}
	return fmt.Sprintf("Run %s: %s", r.RunID, strings.Join(parts, "; "))
}

func (r *Result) reportRun() report.Run {
	run := report.Run{
		RunID:            r.RunID,
		Started:          r.Started,
		Finished:         r.Finished,
		Database:         r.Database,
		ForeignKeyPolicy: string(r.ForeignKeyPolicy),
		TieBreak:         string(r.TieBreak),
		Precheck:         r.Precheck,
		Warnings:         r.Warnings,
		Integrity:        r.Integrity,
	}
	for _, b := range []*importer.BatchReport{r.SpaceObjects, r.Orbits, r.Details} {
		if b != nil {
			run.Batches = append(run.Batches, b)
		}
	}
	if r.Missions != nil {
		run.Missions = r.Missions.Imported
	}
	return run
}
