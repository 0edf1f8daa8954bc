// Package importer loads source records into the catalog store. Each importer
// normalizes one source, writes it row by row and returns a BatchReport; a row
// that cannot be written is counted under a SkipReason and the batch carries on.
package importer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentstation/orbitalguard/pkg/columns"
)

// SkipReason classifies why a source row was not written.
type SkipReason string

const (
	// SkipMissingField marks a record without an identifying field.
	SkipMissingField SkipReason = "missing_field"
	// SkipForeignKey marks a row referencing an unknown space object.
	SkipForeignKey SkipReason = "foreign_key"
	// SkipInvalidData marks an element set the store rejected for any other reason.
	SkipInvalidData SkipReason = "invalid_data"
	// SkipInvalidID marks a record whose NORAD id is not an integer.
	SkipInvalidID SkipReason = "invalid_id"
	// SkipStoreError marks a row the store failed to write.
	SkipStoreError SkipReason = "store_error"
)

// BatchReport is the outcome of importing one source into one table.
type BatchReport struct {
	Table    string             `json:"table" yaml:"table"`       // Destination table
	Total    int                `json:"total" yaml:"total"`       // Rows read from the source
	Imported int                `json:"imported" yaml:"imported"` // Rows written
	Skipped  map[SkipReason]int `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	// Registry imports only
	MissingColumns  []string        `json:"missing_columns,omitempty" yaml:"missing_columns,omitempty"`
	ResolvedColumns []columns.Match `json:"resolved_columns,omitempty" yaml:"resolved_columns,omitempty"`
	Imputed         int             `json:"imputed,omitempty" yaml:"imputed,omitempty"`

	// Sources left out of the batch
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewBatchReport returns an empty report for table.
func NewBatchReport(table string) *BatchReport {
	return &BatchReport{Table: table, Skipped: make(map[SkipReason]int)}
}

func (r *BatchReport) skip(reason SkipReason) {
	r.Skipped[reason]++
}

// SkippedTotal returns the number of rows skipped for any reason.
func (r *BatchReport) SkippedTotal() int {
	n := 0
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

// HasSkips returns true if any row was skipped.
func (r *BatchReport) HasSkips() bool {
	return r.SkippedTotal() > 0
}

// Reasons returns the skip reasons that occurred, sorted.
func (r *BatchReport) Reasons() []SkipReason {
	out := make([]SkipReason, 0, len(r.Skipped))
	for reason, n := range r.Skipped {
		if n > 0 {
			out = append(out, reason)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Summary returns a human-readable summary of the batch.
func (r *BatchReport) Summary() string {
	summary := fmt.Sprintf("%s: %d of %d imported", r.Table, r.Imported, r.Total)
	if r.HasSkips() {
		parts := make([]string, 0, len(r.Skipped))
		for _, reason := range r.Reasons() {
			parts = append(parts, fmt.Sprintf("%d %s", r.Skipped[reason], reason))
		}
		summary += ", skipped " + strings.Join(parts, ", ")
	}
	if r.Imputed > 0 {
		summary += fmt.Sprintf(", %d imputed", r.Imputed)
	}
	if len(r.MissingColumns) > 0 {
		summary += fmt.Sprintf(", %d columns unavailable", len(r.MissingColumns))
	}
	return summary
}
