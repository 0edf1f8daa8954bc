package importer

import (
	"context"
	"fmt"

	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/errors"
)

// SpaceObjectWriter upserts catalog rows.
type SpaceObjectWriter interface {
	UpsertSpaceObject(ctx context.Context, o catalog.SpaceObject) error
}

// OrbitWriter appends element sets.
type OrbitWriter interface {
	InsertOrbitalElementSet(ctx context.Context, e catalog.OrbitalElementSet) (int64, error)
}

// DetailWriter upserts registry rows.
type DetailWriter interface {
	UpsertSatelliteDetail(ctx context.Context, d catalog.SatelliteDetail) error
}

// classify maps a write failure to a skip reason, using fallback for anything
// that is not a foreign key violation.
func classify(err error, fallback SkipReason) SkipReason {
	if errors.IsForeignKey(err) {
		return SkipForeignKey
	}
	return fallback
}

func canceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	}
	return nil
}
