package store

import (
	"context"
	"database/sql"
	"slices"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/errors"
)

// SpaceObjects returns every space object ordered by norad_id.
func (s *Store) SpaceObjects(ctx context.Context) ([]catalog.SpaceObject, error) {
	return selectSpaceObjects(ctx, s.db)
}

// OrbitalElementSets returns the element sets of one object in insertion order.
func (s *Store) OrbitalElementSets(ctx context.Context, noradID int64) ([]catalog.OrbitalElementSet, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(append([]string{"orbit_id"}, orbitCols...)...)
	sb.From(catalog.TableOrbits)
	sb.Where(sb.Equal("norad_id", noradID))
	sb.OrderBy("orbit_id")

	var out []catalog.OrbitalElementSet
	query, args := sb.Build()
	if err := sqlx.SelectContext(ctx, s.db, &out, query, args...); err != nil {
		return nil, errors.WrapResource("query", catalog.TableOrbits, id(noradID), err)
	}
	return out, nil
}

// SatelliteDetail returns the registry row for one object.
func (s *Store) SatelliteDetail(ctx context.Context, noradID int64) (*catalog.SatelliteDetail, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(detailCols...)
	sb.From(catalog.TableSatelliteDetails)
	sb.Where(sb.Equal("norad_id", noradID))

	var d catalog.SatelliteDetail
	query, args := sb.Build()
	if err := sqlx.GetContext(ctx, s.db, &d, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("satellite detail", id(noradID))
		}
		return nil, errors.WrapResource("query", catalog.TableSatelliteDetails, id(noradID), err)
	}
	return &d, nil
}

// LaunchMissions returns every mission ordered by id.
func (s *Store) LaunchMissions(ctx context.Context) ([]catalog.LaunchMission, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(missionCols...)
	sb.From(catalog.TableLaunchMissions)
	sb.OrderBy("launch_mission_id")

	var out []catalog.LaunchMission
	query, args := sb.Build()
	if err := sqlx.SelectContext(ctx, s.db, &out, query, args...); err != nil {
		return nil, errors.WrapResource("query", catalog.TableLaunchMissions, "", err)
	}
	return out, nil
}

// Count returns the number of rows in one of the catalog tables.
func (s *Store) Count(ctx context.Context, table string) (int, error) {
	if !slices.Contains(catalog.Tables, table) {
		return 0, errors.NewValidationError("table", table, "not a catalog table")
	}

	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(table)

	var n int
	query, args := sb.Build()
	if err := sqlx.GetContext(ctx, s.db, &n, query, args...); err != nil {
		return 0, errors.WrapResource("query", table, "", err)
	}
	return n, nil
}

func selectSpaceObjects(ctx context.Context, q sqlx.QueryerContext) ([]catalog.SpaceObject, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(spaceObjectCols...)
	sb.From(catalog.TableSpaceObjects)
	sb.OrderBy("norad_id")

	var out []catalog.SpaceObject
	query, args := sb.Build()
	if err := sqlx.SelectContext(ctx, q, &out, query, args...); err != nil {
		return nil, errors.WrapResource("query", catalog.TableSpaceObjects, "", err)
	}
	return out, nil
}
