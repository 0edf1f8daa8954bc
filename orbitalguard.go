// Package orbitalguard consolidates a catalog of tracked space objects, their
// orbital element sets and a satellite registry spreadsheet into a single
// SQLite store.
//
// A build run checks every input up front, recreates the store from scratch
// and then imports each source in its own stage:
//
//	p, err := orbitalguard.New(orbitalguard.WithDataDir("data"))
//	if err != nil {
//		return err
//	}
//	result, err := p.Run(ctx)
//
// Rows that cannot be imported never stop a run; they are counted in the
// per-table BatchReports of the returned Result.
package orbitalguard

import (
	"context"
	"fmt"

	"github.com/agentstation/orbitalguard/internal/aggregate"
	"github.com/agentstation/orbitalguard/internal/sources"
	"github.com/agentstation/orbitalguard/internal/store"
	"github.com/agentstation/orbitalguard/internal/validate"
)

// Pipeline builds and checks a catalog store.
type Pipeline interface {
	// Precheck verifies the inputs without touching the store
	Precheck(ctx context.Context) (*PrecheckResult, error)

	// Run rebuilds the store from the inputs
	Run(ctx context.Context) (*Result, error)

	// Validate runs the integrity checks against an existing store
	Validate(ctx context.Context) (*IntegrityReport, error)

	// OnStageComplete registers a callback invoked after every stage
	OnStageComplete(StageHook)
}

// Re-exported types of the packages a Pipeline is assembled from.
type (
	Inputs           = sources.Inputs
	PrecheckResult   = sources.PrecheckResult
	IntegrityReport  = validate.IntegrityReport
	ForeignKeyPolicy = store.ForeignKeyPolicy
	TieBreak         = aggregate.TieBreak
)

// Foreign key policies.
const (
	PolicyEnforce = store.PolicyEnforce
	PolicyReport  = store.PolicyReport
)

// Mission tie-break rules.
const (
	TieBreakMax          = aggregate.TieBreakMax
	TieBreakMostFrequent = aggregate.TieBreakMostFrequent
)

// DefaultInputs returns the conventional input file names inside dir.
func DefaultInputs(dir string) Inputs {
	return sources.DefaultInputs(dir)
}

// pipeline is the internal implementation of the Pipeline interface
type pipeline struct {
	config *config
	hooks  *hooks
}

// New creates a Pipeline with the given options
func New(opts ...Option) (Pipeline, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &pipeline{
		config: cfg,
		hooks:  newHooks(),
	}, nil
}

// OnStageComplete registers a callback invoked after every stage
func (p *pipeline) OnStageComplete(fn StageHook) {
	p.hooks.OnStageComplete(fn)
}
