package store

import (
	"context"
	"fmt"

	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/errors"
)

const spaceObjectsDDL = `CREATE TABLE IF NOT EXISTS SpaceObjects (
	norad_id INTEGER PRIMARY KEY,
	object_name TEXT,
	intl_designator TEXT,
	object_type TEXT,
	country TEXT,
	launch_date TEXT,
	decay_date TEXT,
	rcs_size TEXT,
	launch_site TEXT,
	launch_mission_id TEXT
)`

const orbitsDDL = `CREATE TABLE IF NOT EXISTS Orbits (
	orbit_id INTEGER PRIMARY KEY AUTOINCREMENT,
	norad_id INTEGER NOT NULL,
	epoch TEXT NOT NULL,
	inclination_deg REAL,
	eccentricity REAL,
	mean_motion REAL,
	ra_of_asc_node REAL,
	arg_of_pericenter REAL,
	mean_anomaly REAL,
	bstar REAL%s
)`

const satelliteDetailsDDL = `CREATE TABLE IF NOT EXISTS SatelliteDetails (
	norad_id INTEGER PRIMARY KEY,
	launch_mass_kg REAL,
	dry_mass_kg REAL,
	power_watts REAL,
	expected_lifetime_years REAL,
	purpose TEXT,
	users TEXT,
	contractor TEXT,
	operator_owner TEXT,
	class_of_orbit TEXT,
	country_operator TEXT%s
)`

const launchMissionsDDL = `CREATE TABLE IF NOT EXISTS LaunchMissions (
	launch_mission_id TEXT PRIMARY KEY,
	launch_date TEXT,
	country TEXT,
	launch_site TEXT,
	payload_count INTEGER
)`

const noradReference = `,
	FOREIGN KEY (norad_id) REFERENCES SpaceObjects(norad_id)`

// Schema returns the DDL for the four tables in creation order. Foreign keys
// are only declared under PolicyEnforce.
func Schema(policy ForeignKeyPolicy) []string {
	ref := ""
	if policy != PolicyReport {
		ref = noradReference
	}
	return []string{
		spaceObjectsDDL,
		fmt.Sprintf(orbitsDDL, ref),
		fmt.Sprintf(satelliteDetailsDDL, ref),
		launchMissionsDDL,
		`CREATE INDEX IF NOT EXISTS idx_orbits_norad_id ON Orbits(norad_id)`,
		`CREATE INDEX IF NOT EXISTS idx_space_objects_mission ON SpaceObjects(launch_mission_id)`,
	}
}

// CreateSchema creates any missing tables. It is safe to call on an existing store.
func (s *Store) CreateSchema(ctx context.Context) error {
	return s.Stage(ctx, "schema", func(ctx context.Context, tx *Tx) error {
		for _, ddl := range Schema(s.policy) {
			if _, err := tx.tx.ExecContext(ctx, ddl); err != nil {
				return errors.WrapResource("create", "schema", "", err)
			}
		}
		return nil
	})
}

// Tables returns the names of the catalog tables present in the store.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.SelectContext(ctx, &names,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN (?, ?, ?, ?) ORDER BY name`,
		catalog.TableLaunchMissions, catalog.TableOrbits, catalog.TableSatelliteDetails, catalog.TableSpaceObjects)
	if err != nil {
		return nil, errors.WrapResource("query", "schema", "", err)
	}
	return names, nil
}
