package importer

import (
	"context"

	"github.com/spf13/cast"

	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/logging"
	"github.com/agentstation/orbitalguard/pkg/normalize"
)

// ImportOrbitalElements appends every merged element-set record that carries
// both a NORAD id and an epoch. An id of zero counts as missing. Rows for unknown objects are counted under
// SkipForeignKey; any other rejection counts as SkipInvalidData. The returned
// error is non-nil only when ctx is canceled mid-batch.
func ImportOrbitalElements(ctx context.Context, w OrbitWriter, records []catalog.Record) (*BatchReport, error) {
	ctx = logging.WithTable(ctx, catalog.TableOrbits)
	logger := logging.FromContext(ctx)
	report := NewBatchReport(catalog.TableOrbits)

	for _, r := range records {
		if err := canceled(ctx); err != nil {
			return report, err
		}
		report.Total++

		rawID, rawEpoch := r[catalog.FieldNoradID], r[catalog.FieldEpoch]
		if empty(rawID) || empty(rawEpoch) {
			report.skip(SkipMissingField)
			logger.Debug().Interface("norad_id", rawID).Str("reason", string(SkipMissingField)).Msg("Skipping element set")
			continue
		}

		id, ok := normalize.Int(rawID)
		if ok && id == 0 {
			report.skip(SkipMissingField)
			logger.Debug().Interface("norad_id", rawID).Str("reason", string(SkipMissingField)).Msg("Skipping element set")
			continue
		}
		epoch, err := cast.ToStringE(rawEpoch)
		if !ok || err != nil {
			report.skip(SkipInvalidData)
			logger.Debug().Interface("norad_id", rawID).Str("reason", string(SkipInvalidData)).Msg("Skipping element set")
			continue
		}

		e := catalog.OrbitalElementSet{
			NoradID:         id,
			Epoch:           epoch,
			InclinationDeg:  normalize.Float(r[catalog.FieldInclination]),
			Eccentricity:    normalize.Float(r[catalog.FieldEccentricity]),
			MeanMotion:      normalize.Float(r[catalog.FieldMeanMotion]),
			RAOfAscNode:     normalize.Float(r[catalog.FieldRAAN]),
			ArgOfPericenter: normalize.Float(r[catalog.FieldArgOfPericenter]),
			MeanAnomaly:     normalize.Float(r[catalog.FieldMeanAnomaly]),
			BStar:           normalize.Float(r[catalog.FieldBStar]),
		}
		if _, err := w.InsertOrbitalElementSet(ctx, e); err != nil {
			reason := classify(err, SkipInvalidData)
			report.skip(reason)
			logger.Debug().Err(err).Int64("norad_id", id).Str("reason", string(reason)).Msg("Skipping element set")
			continue
		}
		report.Imported++
	}

	logger.Info().
		Int("imported", report.Imported).
		Int("foreign_key", report.Skipped[SkipForeignKey]).
		Int("missing_field", report.Skipped[SkipMissingField]).
		Int("invalid_data", report.Skipped[SkipInvalidData]).
		Msg("Imported element sets")
	return report, nil
}

// empty reports a field that is absent or carries no value.
func empty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
