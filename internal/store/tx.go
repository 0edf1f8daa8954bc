package store

import (
	"context"
	"strconv"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/errors"
)

// Tx is the write handle passed to a stage.
type Tx struct {
	tx *sqlx.Tx
}

var spaceObjectCols = []string{
	"norad_id", "object_name", "intl_designator", "object_type", "country",
	"launch_date", "decay_date", "rcs_size", "launch_site", "launch_mission_id",
}

var orbitCols = []string{
	"norad_id", "epoch", "inclination_deg", "eccentricity", "mean_motion",
	"ra_of_asc_node", "arg_of_pericenter", "mean_anomaly", "bstar",
}

var detailCols = []string{
	"norad_id", "launch_mass_kg", "dry_mass_kg", "power_watts", "expected_lifetime_years",
	"purpose", "users", "contractor", "operator_owner", "class_of_orbit", "country_operator",
}

var missionCols = []string{"launch_mission_id", "launch_date", "country", "launch_site", "payload_count"}

// UpsertSpaceObject writes o, replacing any row with the same norad_id.
func (t *Tx) UpsertSpaceObject(ctx context.Context, o catalog.SpaceObject) error {
	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.ReplaceInto(catalog.TableSpaceObjects)
	ib.Cols(spaceObjectCols...)
	ib.Values(o.NoradID, o.ObjectName, o.InternationalDesignator, o.ObjectType, o.Country,
		o.LaunchDate, o.DecayDate, o.RCSSize, o.LaunchSite, o.LaunchMissionID)

	query, args := ib.Build()
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return errors.WrapResource("replace", catalog.TableSpaceObjects, id(o.NoradID), classify(err))
	}
	return nil
}

// InsertOrbitalElementSet appends e and returns its orbit_id. A reference to an
// unknown space object fails with an error matching errors.ErrForeignKey when
// the store enforces the relation.
func (t *Tx) InsertOrbitalElementSet(ctx context.Context, e catalog.OrbitalElementSet) (int64, error) {
	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.InsertInto(catalog.TableOrbits)
	ib.Cols(orbitCols...)
	ib.Values(e.NoradID, e.Epoch, e.InclinationDeg, e.Eccentricity, e.MeanMotion,
		e.RAOfAscNode, e.ArgOfPericenter, e.MeanAnomaly, e.BStar)

	query, args := ib.Build()
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.WrapResource("insert", catalog.TableOrbits, id(e.NoradID), classify(err))
	}
	orbitID, err := res.LastInsertId()
	if err != nil {
		return 0, errors.WrapResource("insert", catalog.TableOrbits, id(e.NoradID), err)
	}
	return orbitID, nil
}

// UpsertSatelliteDetail writes d, replacing any row with the same norad_id.
func (t *Tx) UpsertSatelliteDetail(ctx context.Context, d catalog.SatelliteDetail) error {
	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.ReplaceInto(catalog.TableSatelliteDetails)
	ib.Cols(detailCols...)
	ib.Values(d.NoradID, d.LaunchMassKg, d.DryMassKg, d.PowerWatts, d.ExpectedLifetimeYears,
		d.Purpose, d.Users, d.Contractor, d.OperatorOwner, d.ClassOfOrbit, d.CountryOperator)

	query, args := ib.Build()
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return errors.WrapResource("replace", catalog.TableSatelliteDetails, id(d.NoradID), classify(err))
	}
	return nil
}

// ReplaceLaunchMissions discards every existing mission and writes missions.
func (t *Tx) ReplaceLaunchMissions(ctx context.Context, missions []catalog.LaunchMission) error {
	del := sqlbuilder.SQLite.NewDeleteBuilder()
	del.DeleteFrom(catalog.TableLaunchMissions)
	query, args := del.Build()
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return errors.WrapResource("delete", catalog.TableLaunchMissions, "", err)
	}

	for _, m := range missions {
		ib := sqlbuilder.SQLite.NewInsertBuilder()
		ib.InsertInto(catalog.TableLaunchMissions)
		ib.Cols(missionCols...)
		ib.Values(m.LaunchMissionID, m.LaunchDate, m.Country, m.LaunchSite, m.PayloadCount)

		query, args := ib.Build()
		if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
			return errors.WrapResource("insert", catalog.TableLaunchMissions, m.LaunchMissionID, err)
		}
	}
	return nil
}

// SpaceObjects returns the space objects visible to the stage.
func (t *Tx) SpaceObjects(ctx context.Context) ([]catalog.SpaceObject, error) {
	return selectSpaceObjects(ctx, t.tx)
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}
