package importer

import (
	"context"

	"github.com/agentstation/orbitalguard/internal/sources"
	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/columns"
	"github.com/agentstation/orbitalguard/pkg/imputation"
	"github.com/agentstation/orbitalguard/pkg/logging"
	"github.com/agentstation/orbitalguard/pkg/normalize"
)

// DetailOptions tune ImportSatelliteDetails.
type DetailOptions struct {
	// Resolver locates registry headers; exact then normalized matching when nil.
	Resolver *columns.Resolver
	// Columns maps headers to fields; catalog.DetailColumns when nil.
	Columns []catalog.DetailColumn
}

// ImportSatelliteDetails resolves the registry headers, normalizes each row,
// fills a missing expected lifetime from strata by orbit class and upserts the
// row by NORAD id. A column that cannot be resolved is left null for every
// row and reported once. The returned error is non-nil only when ctx is
// canceled mid-batch.
func ImportSatelliteDetails(ctx context.Context, w DetailWriter, sheet sources.Sheet, strata imputation.Strata, opts ...DetailOptions) (*BatchReport, error) {
	ctx = logging.WithTable(ctx, catalog.TableSatelliteDetails)
	logger := logging.FromContext(ctx)
	report := NewBatchReport(catalog.TableSatelliteDetails)

	var opt DetailOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Resolver == nil {
		opt.Resolver = columns.NewResolver()
	}
	if opt.Columns == nil {
		opt.Columns = catalog.DetailColumns
	}

	index := make(map[string]int, len(opt.Columns))
	for _, col := range opt.Columns {
		m := opt.Resolver.Resolve(col.Header, sheet.Headers)
		report.ResolvedColumns = append(report.ResolvedColumns, m)
		switch m.Kind {
		case columns.KindUnavailable:
			report.MissingColumns = append(report.MissingColumns, col.Header)
			logger.Warn().Str("column", col.Header).Msg("Registry column not found, field left empty")
			continue
		case columns.KindNormalized:
			logger.Info().Str("column", col.Header).Str("header", m.Header).Msg("Registry column matched after normalization")
		}
		index[col.Column] = m.Index
	}

	cell := func(row []string, column string) any {
		i, ok := index[column]
		if !ok {
			return nil
		}
		return sheet.Cell(row, i)
	}

	for _, row := range sheet.Rows {
		if err := canceled(ctx); err != nil {
			return report, err
		}
		report.Total++

		rawID := cell(row, "norad_id")
		id, ok := normalize.Int(rawID)
		if !ok {
			report.skip(SkipInvalidID)
			logger.Debug().Interface("norad_id", rawID).Str("reason", string(SkipInvalidID)).Msg("Skipping registry row")
			continue
		}

		d := catalog.SatelliteDetail{
			NoradID:               id,
			LaunchMassKg:          normalize.Float(cell(row, "launch_mass_kg")),
			DryMassKg:             normalize.Float(cell(row, "dry_mass_kg")),
			PowerWatts:            normalize.Float(cell(row, "power_watts")),
			ExpectedLifetimeYears: normalize.Float(cell(row, "expected_lifetime_years")),
			Purpose:               normalize.Strip(cell(row, "purpose")),
			Users:                 normalize.Strip(cell(row, "users")),
			Contractor:            normalize.Strip(cell(row, "contractor")),
			OperatorOwner:         normalize.Strip(cell(row, "operator_owner")),
			ClassOfOrbit:          normalize.Upper(cell(row, "class_of_orbit")),
			CountryOperator:       normalize.Upper(cell(row, "country_operator")),
		}

		imputed := false
		if d.ExpectedLifetimeYears == nil {
			v := strata.Lookup(d.ClassOfOrbit)
			d.ExpectedLifetimeYears = &v
			imputed = true
		}

		if err := w.UpsertSatelliteDetail(ctx, d); err != nil {
			reason := classify(err, SkipStoreError)
			report.skip(reason)
			logger.Debug().Err(err).Int64("norad_id", id).Str("reason", string(reason)).Msg("Skipping registry row")
			continue
		}
		report.Imported++
		if imputed {
			report.Imputed++
		}
	}

	logger.Info().
		Int("imported", report.Imported).
		Int("imputed", report.Imputed).
		Int("skipped", report.SkippedTotal()).
		Msg("Imported satellite details")
	return report, nil
}
