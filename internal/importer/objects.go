package importer

import (
	"context"

	"github.com/spf13/cast"

	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/constants"
	"github.com/agentstation/orbitalguard/pkg/logging"
	"github.com/agentstation/orbitalguard/pkg/normalize"
)

// ImportSpaceObjects normalizes catalog records and upserts them, so a later
// duplicate of a NORAD id replaces an earlier one. The returned error is
// non-nil only when ctx is canceled mid-batch.
func ImportSpaceObjects(ctx context.Context, w SpaceObjectWriter, records []catalog.Record) (*BatchReport, error) {
	ctx = logging.WithTable(ctx, catalog.TableSpaceObjects)
	logger := logging.FromContext(ctx)
	report := NewBatchReport(catalog.TableSpaceObjects)

	for _, r := range records {
		if err := canceled(ctx); err != nil {
			return report, err
		}
		report.Total++

		raw, ok := r[catalog.FieldNoradID]
		if !ok || raw == nil || raw == "" {
			report.skip(SkipMissingField)
			logger.Debug().Str("reason", string(SkipMissingField)).Msg("Skipping space object")
			continue
		}
		id, ok := normalize.Int(raw)
		if !ok {
			report.skip(SkipInvalidID)
			logger.Debug().Interface("norad_id", raw).Str("reason", string(SkipInvalidID)).Msg("Skipping space object")
			continue
		}

		o := SpaceObjectFromRecord(id, r)
		if err := w.UpsertSpaceObject(ctx, o); err != nil {
			reason := classify(err, SkipStoreError)
			report.skip(reason)
			logger.Debug().Err(err).Int64("norad_id", id).Str("reason", string(reason)).Msg("Skipping space object")
			continue
		}
		report.Imported++
	}

	logger.Info().Int("imported", report.Imported).Int("skipped", report.SkippedTotal()).Msg("Imported space objects")
	return report, nil
}

// SpaceObjectFromRecord maps a catalog record onto a SpaceObject with id as its key.
func SpaceObjectFromRecord(id int64, r catalog.Record) catalog.SpaceObject {
	return catalog.SpaceObject{
		NoradID:                 id,
		ObjectName:              normalize.Strip(r[catalog.FieldName]),
		InternationalDesignator: normalize.Upper(r[catalog.FieldDesignator]),
		ObjectType:              normalize.Upper(r[catalog.FieldObjectType]),
		Country:                 normalize.Upper(r[catalog.FieldCountry]),
		LaunchDate:              normalize.Date(r[catalog.FieldLaunch]),
		DecayDate:               normalize.Date(r[catalog.FieldDecay]),
		RCSSize:                 normalize.Upper(r[catalog.FieldRCSSize]),
		LaunchSite:              normalize.Upper(r[catalog.FieldSite]),
		LaunchMissionID:         MissionID(r[catalog.FieldDesignator]),
	}
}

// MissionID derives the launch correlation key from a raw international
// designator: its first eight characters, "1998-067A" giving "1998-067".
// The designator is used as found, without trimming or case folding. A null
// or empty designator has no mission.
func MissionID(designator any) *string {
	if designator == nil {
		return nil
	}
	s, err := cast.ToStringE(designator)
	if err != nil || s == "" {
		return nil
	}
	if runes := []rune(s); len(runes) > constants.MissionIDLength {
		s = string(runes[:constants.MissionIDLength])
	}
	return &s
}
