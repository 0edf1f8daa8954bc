package orbitalguard

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/orbitalguard/internal/aggregate"
	"github.com/agentstation/orbitalguard/internal/importer"
	"github.com/agentstation/orbitalguard/internal/metrics"
	"github.com/agentstation/orbitalguard/internal/report"
	"github.com/agentstation/orbitalguard/internal/sources"
	"github.com/agentstation/orbitalguard/internal/store"
	"github.com/agentstation/orbitalguard/internal/validate"
	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/errors"
	"github.com/agentstation/orbitalguard/pkg/logging"
)

// Stage names.
const (
	StageSchema       = "schema"
	StageSpaceObjects = "space_objects"
	StageOrbits       = "orbits"
	StageDetails      = "satellite_details"
	StageMissions     = "launch_missions"
	StageIntegrity    = "integrity"
)

// withLogger attaches the configured logger, if any.
func (p *pipeline) withLogger(ctx context.Context) context.Context {
	if p.config.Logger != nil {
		ctx = logging.WithLogger(ctx, p.config.Logger)
	}
	return ctx
}

// Precheck verifies the inputs without touching the store
func (p *pipeline) Precheck(ctx context.Context) (*PrecheckResult, error) {
	return sources.Precheck(p.withLogger(ctx), p.config.inputs())
}

// Run rebuilds the store: pre-flight, remove the old file, create the schema,
// import objects, element sets and registry rows, aggregate missions and
// validate. Anything that fails before the store is opened leaves the old
// file in place.
func (p *pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(p.withLogger(ctx), runID)
	logger := logging.FromContext(ctx)
	cfg := p.config
	in := cfg.inputs()

	result := &Result{
		RunID:            runID,
		Started:          time.Now(),
		Database:         cfg.DatabasePath,
		ForeignKeyPolicy: cfg.Policy,
		TieBreak:         cfg.TieBreak,
	}
	recorder := metrics.NewRecorder()

	logger.Info().
		Str("database", cfg.DatabasePath).
		Str("fk_policy", string(cfg.Policy)).
		Str("tie_break", string(cfg.TieBreak)).
		Msg("Starting build")

	pre, err := sources.Precheck(ctx, in)
	result.Precheck = pre
	if err != nil {
		return result, err
	}

	if err := store.Remove(cfg.DatabasePath); err != nil {
		return result, err
	}
	st, err := store.Open(ctx, cfg.DatabasePath, cfg.Policy)
	if err != nil {
		return result, err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn().Err(err).Msg("Closing store")
		}
	}()

	run := func(name string, fn func(context.Context) (*importer.BatchReport, error)) (*importer.BatchReport, error) {
		if err := ctx.Err(); err != nil {
			return nil, errors.NewStageError(name, fmt.Errorf("%w: %w", errors.ErrCanceled, err))
		}
		start := time.Now()
		rep, err := fn(ctx)
		elapsed := time.Since(start)

		result.Stages = append(result.Stages, StageTiming{Stage: name, Duration: elapsed})
		recorder.ObserveStage(name, elapsed)
		recorder.ObserveReport(rep)
		p.hooks.triggerStage(StageEvent{RunID: runID, Stage: name, Duration: elapsed, Report: rep, Err: err})
		if rep != nil {
			logger.Info().Str("stage", name).Dur("elapsed", elapsed).Msg(rep.Summary())
		}
		return rep, err
	}

	if _, err := run(StageSchema, func(ctx context.Context) (*importer.BatchReport, error) {
		return nil, st.CreateSchema(ctx)
	}); err != nil {
		return result, err
	}

	result.SpaceObjects, err = run(StageSpaceObjects, func(ctx context.Context) (*importer.BatchReport, error) {
		records, err := sources.ReadRecords(in.Catalog)
		if err != nil {
			return nil, err
		}
		return stageReport(ctx, st, StageSpaceObjects, func(ctx context.Context, tx *store.Tx) (*importer.BatchReport, error) {
			return importer.ImportSpaceObjects(ctx, tx, records)
		})
	})
	if err != nil {
		return result, err
	}

	result.Orbits, err = run(StageOrbits, func(ctx context.Context) (*importer.BatchReport, error) {
		records, warnings := sources.LoadElementSets(ctx, in.ActiveElements, in.Debris)
		result.Warnings = warnings
		rep, err := stageReport(ctx, st, StageOrbits, func(ctx context.Context, tx *store.Tx) (*importer.BatchReport, error) {
			return importer.ImportOrbitalElements(ctx, tx, records)
		})
		if rep != nil {
			for _, w := range warnings {
				rep.Warnings = append(rep.Warnings, w.Path+": "+w.Message)
			}
		}
		return rep, err
	})
	if err != nil {
		return result, err
	}

	result.Details, err = run(StageDetails, func(ctx context.Context) (*importer.BatchReport, error) {
		sheet, err := sources.ReadSheet(in.Details)
		if err != nil {
			return nil, err
		}
		return stageReport(ctx, st, StageDetails, func(ctx context.Context, tx *store.Tx) (*importer.BatchReport, error) {
			return importer.ImportSatelliteDetails(ctx, tx, sheet, cfg.Strata)
		})
	})
	if err != nil {
		return result, err
	}

	result.Missions, err = run(StageMissions, func(ctx context.Context) (*importer.BatchReport, error) {
		return stageReport(ctx, st, StageMissions, func(ctx context.Context, tx *store.Tx) (*importer.BatchReport, error) {
			objects, err := tx.SpaceObjects(ctx)
			if err != nil {
				return nil, err
			}
			missions := aggregate.Aggregate(objects, cfg.TieBreak)
			if err := tx.ReplaceLaunchMissions(ctx, missions); err != nil {
				return nil, err
			}
			rep := importer.NewBatchReport(catalog.TableLaunchMissions)
			rep.Total, rep.Imported = len(missions), len(missions)
			return rep, nil
		})
	})
	if err != nil {
		return result, err
	}

	if _, err := run(StageIntegrity, func(ctx context.Context) (*importer.BatchReport, error) {
		integrity, err := validate.Validate(ctx, st)
		result.Integrity = integrity
		return nil, err
	}); err != nil {
		return result, err
	}
	recorder.ObserveIntegrity(result.Integrity)

	result.Finished = time.Now()
	recorder.MarkSuccess(result.Finished)

	if cfg.MetricsFile != "" {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			return result, err
		}
		logger.Debug().Str("path", cfg.MetricsFile).Msg("Wrote metrics")
	}
	if cfg.ReportFile != "" {
		if err := report.WriteFile(cfg.ReportFile, result.reportRun()); err != nil {
			return result, err
		}
		logger.Debug().Str("path", cfg.ReportFile).Msg("Wrote report")
	}

	logger.Info().Dur("elapsed", result.Duration()).Bool("skips", result.HasSkips()).Msg("Build complete")
	return result, nil
}

// stageReport runs fn in one store transaction and hands back its report.
func stageReport(ctx context.Context, st *store.Store, name string, fn func(context.Context, *store.Tx) (*importer.BatchReport, error)) (*importer.BatchReport, error) {
	var rep *importer.BatchReport
	err := st.Stage(ctx, name, func(ctx context.Context, tx *store.Tx) error {
		var err error
		rep, err = fn(ctx, tx)
		return err
	})
	return rep, err
}

// Validate runs the integrity checks against an existing store
func (p *pipeline) Validate(ctx context.Context) (*IntegrityReport, error) {
	ctx = p.withLogger(ctx)
	path := p.config.DatabasePath

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("store", path)
		}
		return nil, errors.WrapIO("stat", path, err)
	}

	st, err := store.Open(ctx, path, p.config.Policy)
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()

	return validate.Validate(ctx, st)
}
