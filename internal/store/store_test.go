package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/orbitalguard/internal/store"
	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/errors"
)

func openStore(t *testing.T, policy store.ForeignKeyPolicy) *store.Store {
	t.Helper()
	ctx := context.Background()

	s, err := store.Open(ctx, filepath.Join(t.TempDir(), "test.db"), policy)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.CreateSchema(ctx))
	return s
}

func str(s string) *string { return &s }

func num(f float64) *float64 { return &f }

func TestParsePolicy(t *testing.T) {
	p, err := store.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, store.PolicyEnforce, p)

	p, err = store.ParsePolicy("report")
	require.NoError(t, err)
	assert.Equal(t, store.PolicyReport, p)

	_, err = store.ParsePolicy("ignore")
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateSchemaIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, store.PolicyEnforce)

	require.NoError(t, s.CreateSchema(ctx))

	tables, err := s.Tables(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, catalog.Tables, tables)
}

func TestSchemaDeclaresForeignKeysOnlyWhenEnforced(t *testing.T) {
	enforce := store.Schema(store.PolicyEnforce)
	report := store.Schema(store.PolicyReport)

	assert.Contains(t, enforce[1], "FOREIGN KEY (norad_id) REFERENCES SpaceObjects(norad_id)")
	assert.Contains(t, enforce[2], "FOREIGN KEY")
	assert.NotContains(t, report[1], "FOREIGN KEY")
	assert.NotContains(t, report[2], "FOREIGN KEY")
}

func TestUpsertSpaceObjectLastWins(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, store.PolicyEnforce)

	err := s.Stage(ctx, "objects", func(ctx context.Context, tx *store.Tx) error {
		require.NoError(t, tx.UpsertSpaceObject(ctx, catalog.SpaceObject{NoradID: 25544, ObjectName: str("ISS")}))
		require.NoError(t, tx.UpsertSpaceObject(ctx, catalog.SpaceObject{NoradID: 25544, ObjectName: str("ISS (ZARYA)"), Country: str("ISS")}))
		return nil
	})
	require.NoError(t, err)

	objects, err := s.SpaceObjects(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "ISS (ZARYA)", *objects[0].ObjectName)
	assert.Equal(t, "ISS", *objects[0].Country)
	assert.Nil(t, objects[0].LaunchDate)
}

func TestOrbitForeignKeyPolicies(t *testing.T) {
	ctx := context.Background()
	orphan := catalog.OrbitalElementSet{NoradID: 99999, Epoch: "2024-01-01T00:00:00", MeanMotion: num(15.5)}

	t.Run("enforce rejects orphan", func(t *testing.T) {
		s := openStore(t, store.PolicyEnforce)

		var insertErr error
		require.NoError(t, s.Stage(ctx, "orbits", func(ctx context.Context, tx *store.Tx) error {
			_, insertErr = tx.InsertOrbitalElementSet(ctx, orphan)
			return nil
		}))

		require.Error(t, insertErr)
		assert.True(t, errors.IsForeignKey(insertErr))
		assert.True(t, store.IsForeignKeyViolation(insertErr))

		n, err := s.Count(ctx, catalog.TableOrbits)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("report keeps orphan", func(t *testing.T) {
		s := openStore(t, store.PolicyReport)

		require.NoError(t, s.Stage(ctx, "orbits", func(ctx context.Context, tx *store.Tx) error {
			orbitID, err := tx.InsertOrbitalElementSet(ctx, orphan)
			require.NoError(t, err)
			assert.Equal(t, int64(1), orbitID)
			return nil
		}))

		sets, err := s.OrbitalElementSets(ctx, 99999)
		require.NoError(t, err)
		require.Len(t, sets, 1)
		assert.Equal(t, 15.5, *sets[0].MeanMotion)
		assert.Nil(t, sets[0].BStar)
	})
}

func TestStageKeepsRowsAfterRowFailure(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, store.PolicyEnforce)

	require.NoError(t, s.Stage(ctx, "objects", func(ctx context.Context, tx *store.Tx) error {
		return tx.UpsertSpaceObject(ctx, catalog.SpaceObject{NoradID: 1})
	}))

	require.NoError(t, s.Stage(ctx, "orbits", func(ctx context.Context, tx *store.Tx) error {
		_, err := tx.InsertOrbitalElementSet(ctx, catalog.OrbitalElementSet{NoradID: 1, Epoch: "e1"})
		require.NoError(t, err)
		_, err = tx.InsertOrbitalElementSet(ctx, catalog.OrbitalElementSet{NoradID: 2, Epoch: "e1"})
		require.Error(t, err)
		_, err = tx.InsertOrbitalElementSet(ctx, catalog.OrbitalElementSet{NoradID: 1, Epoch: "e2"})
		require.NoError(t, err)
		return nil
	}))

	n, err := s.Count(ctx, catalog.TableOrbits)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStageRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, store.PolicyEnforce)

	err := s.Stage(ctx, "objects", func(ctx context.Context, tx *store.Tx) error {
		require.NoError(t, tx.UpsertSpaceObject(ctx, catalog.SpaceObject{NoradID: 7}))
		return errors.ErrCanceled
	})

	var stageErr *errors.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "objects", stageErr.Stage)
	assert.True(t, errors.IsCanceled(err))

	n, err := s.Count(ctx, catalog.TableSpaceObjects)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSatelliteDetail(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, store.PolicyEnforce)

	require.NoError(t, s.Stage(ctx, "seed", func(ctx context.Context, tx *store.Tx) error {
		require.NoError(t, tx.UpsertSpaceObject(ctx, catalog.SpaceObject{NoradID: 43013}))
		require.NoError(t, tx.UpsertSatelliteDetail(ctx, catalog.SatelliteDetail{NoradID: 43013, ClassOfOrbit: str("LEO"), ExpectedLifetimeYears: num(4)}))
		require.NoError(t, tx.UpsertSatelliteDetail(ctx, catalog.SatelliteDetail{NoradID: 43013, ClassOfOrbit: str("GEO"), ExpectedLifetimeYears: num(15)}))

		err := tx.UpsertSatelliteDetail(ctx, catalog.SatelliteDetail{NoradID: 1})
		assert.True(t, errors.IsForeignKey(err))
		return nil
	}))

	d, err := s.SatelliteDetail(ctx, 43013)
	require.NoError(t, err)
	assert.Equal(t, "GEO", *d.ClassOfOrbit)
	assert.Equal(t, 15.0, *d.ExpectedLifetimeYears)

	_, err = s.SatelliteDetail(ctx, 1)
	assert.True(t, errors.IsNotFound(err))
}

func TestReplaceLaunchMissions(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, store.PolicyEnforce)

	write := func(ms []catalog.LaunchMission) {
		require.NoError(t, s.Stage(ctx, "missions", func(ctx context.Context, tx *store.Tx) error {
			return tx.ReplaceLaunchMissions(ctx, ms)
		}))
	}

	write([]catalog.LaunchMission{{LaunchMissionID: "1998-067", PayloadCount: 3}, {LaunchMissionID: "1999-025", PayloadCount: 1}})
	write([]catalog.LaunchMission{{LaunchMissionID: "1998-067", LaunchDate: str("1998-11-20"), PayloadCount: 2}})

	missions, err := s.LaunchMissions(ctx)
	require.NoError(t, err)
	require.Len(t, missions, 1)
	assert.Equal(t, 2, missions[0].PayloadCount)
	assert.Equal(t, "1998-11-20", *missions[0].LaunchDate)
}

func TestCountRejectsUnknownTable(t *testing.T) {
	s := openStore(t, store.PolicyEnforce)
	_, err := s.Count(context.Background(), "sqlite_master; DROP TABLE Orbits")
	assert.True(t, errors.IsValidationError(err))
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.db")

	require.NoError(t, store.Remove(path))

	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, os.WriteFile(path+"-wal", []byte("stale"), 0o644))
	require.NoError(t, store.Remove(path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path + "-wal")
	assert.True(t, os.IsNotExist(err))
}
