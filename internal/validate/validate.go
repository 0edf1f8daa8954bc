// Package validate runs read-only consistency checks over a built catalog store.
package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/huandu/go-sqlbuilder"

	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/errors"
	"github.com/agentstation/orbitalguard/pkg/logging"
)

// Querier is the read access Validate needs.
type Querier interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// IntegrityReport holds the statistics and residual problems of a store.
type IntegrityReport struct {
	Counts map[string]int `json:"counts" yaml:"counts"` // Rows per table

	StillInOrbit int `json:"still_in_orbit" yaml:"still_in_orbit"` // Objects without a decay date
	Debris       int `json:"debris" yaml:"debris"`

	DetailRows       int     `json:"detail_rows" yaml:"detail_rows"`
	LifetimeFilled   int     `json:"lifetime_filled" yaml:"lifetime_filled"`
	LifetimeCoverage float64 `json:"lifetime_coverage" yaml:"lifetime_coverage"` // LifetimeFilled / DetailRows

	LowercaseClassOfOrbit int      `json:"lowercase_class_of_orbit" yaml:"lowercase_class_of_orbit"`
	LowercaseObjectType   int      `json:"lowercase_object_type" yaml:"lowercase_object_type"`
	OrbitClasses          []string `json:"orbit_classes" yaml:"orbit_classes"`

	OrphanOrbits    int `json:"orphan_orbits" yaml:"orphan_orbits"`         // Distinct unknown NORAD ids in Orbits
	OrphanOrbitRows int `json:"orphan_orbit_rows" yaml:"orphan_orbit_rows"` // Element sets referencing them
	OrphanDetails   int `json:"orphan_details" yaml:"orphan_details"`
}

// HasIssues returns true if the store holds orphan rows or categorical values
// that escaped normalization.
func (r *IntegrityReport) HasIssues() bool {
	return r.OrphanOrbits > 0 || r.OrphanDetails > 0 ||
		r.LowercaseClassOfOrbit > 0 || r.LowercaseObjectType > 0
}

// Summary returns a human-readable summary of the report.
func (r *IntegrityReport) Summary() string {
	summary := fmt.Sprintf("%d objects, %d element sets, %d details, %d missions",
		r.Counts[catalog.TableSpaceObjects], r.Counts[catalog.TableOrbits],
		r.Counts[catalog.TableSatelliteDetails], r.Counts[catalog.TableLaunchMissions])
	if !r.HasIssues() {
		return summary + "; no integrity issues"
	}

	var issues []string
	if r.OrphanOrbits > 0 {
		issues = append(issues, fmt.Sprintf("%d orphan NORAD ids in %s", r.OrphanOrbits, catalog.TableOrbits))
	}
	if r.OrphanDetails > 0 {
		issues = append(issues, fmt.Sprintf("%d orphan %s rows", r.OrphanDetails, catalog.TableSatelliteDetails))
	}
	if n := r.LowercaseClassOfOrbit + r.LowercaseObjectType; n > 0 {
		issues = append(issues, fmt.Sprintf("%d lowercase categorical values", n))
	}
	return summary + "; " + strings.Join(issues, ", ")
}

// Validate computes an IntegrityReport. It only reads from q.
func Validate(ctx context.Context, q Querier) (*IntegrityReport, error) {
	logger := logging.FromContext(ctx)
	r := &IntegrityReport{Counts: make(map[string]int, len(catalog.Tables))}

	for _, table := range catalog.Tables {
		sb := countFrom(table)
		n, err := count(ctx, q, sb)
		if err != nil {
			return nil, err
		}
		r.Counts[table] = n
	}
	r.DetailRows = r.Counts[catalog.TableSatelliteDetails]

	checks := []struct {
		dest *int
		sb   *sqlbuilder.SelectBuilder
	}{
		{&r.StillInOrbit, where(countFrom(catalog.TableSpaceObjects), func(sb *sqlbuilder.SelectBuilder) string {
			return sb.IsNull("decay_date")
		})},
		{&r.Debris, where(countFrom(catalog.TableSpaceObjects), func(sb *sqlbuilder.SelectBuilder) string {
			return sb.Equal("object_type", catalog.ObjectTypeDebris)
		})},
		{&r.LifetimeFilled, where(countFrom(catalog.TableSatelliteDetails), func(sb *sqlbuilder.SelectBuilder) string {
			return sb.IsNotNull("expected_lifetime_years")
		})},
		{&r.LowercaseClassOfOrbit, where(countFrom(catalog.TableSatelliteDetails), func(*sqlbuilder.SelectBuilder) string {
			return "class_of_orbit <> UPPER(class_of_orbit)"
		})},
		{&r.LowercaseObjectType, where(countFrom(catalog.TableSpaceObjects), func(*sqlbuilder.SelectBuilder) string {
			return "object_type <> UPPER(object_type)"
		})},
		{&r.OrphanOrbits, orphans(catalog.TableOrbits, "COUNT(DISTINCT o.norad_id)")},
		{&r.OrphanOrbitRows, orphans(catalog.TableOrbits, "COUNT(*)")},
		{&r.OrphanDetails, orphans(catalog.TableSatelliteDetails, "COUNT(*)")},
	}
	for _, c := range checks {
		n, err := count(ctx, q, c.sb)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	if r.DetailRows > 0 {
		r.LifetimeCoverage = float64(r.LifetimeFilled) / float64(r.DetailRows)
	}

	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Distinct().Select("class_of_orbit").From(catalog.TableSatelliteDetails).
		Where(sb.IsNotNull("class_of_orbit")).
		OrderBy("class_of_orbit")
	query, args := sb.Build()
	if err := q.SelectContext(ctx, &r.OrbitClasses, query, args...); err != nil {
		return nil, errors.WrapResource("query", catalog.TableSatelliteDetails, "", err)
	}

	event := logger.Info()
	if r.HasIssues() {
		event = logger.Warn()
	}
	event.
		Int("orphan_orbits", r.OrphanOrbits).
		Int("orphan_details", r.OrphanDetails).
		Int("lowercase_class_of_orbit", r.LowercaseClassOfOrbit).
		Int("lowercase_object_type", r.LowercaseObjectType).
		Float64("lifetime_coverage", r.LifetimeCoverage).
		Msg("Integrity check complete")

	return r, nil
}

func countFrom(table string) *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("COUNT(*)").From(table)
	return sb
}

func where(sb *sqlbuilder.SelectBuilder, cond func(*sqlbuilder.SelectBuilder) string) *sqlbuilder.SelectBuilder {
	sb.Where(cond(sb))
	return sb
}

// orphans counts rows of table whose norad_id has no space object.
func orphans(table, expr string) *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(expr).
		From(sb.As(table, "o")).
		JoinWithOption(sqlbuilder.LeftJoin, sb.As(catalog.TableSpaceObjects, "s"), "o.norad_id = s.norad_id").
		Where(sb.IsNull("s.norad_id"))
	return sb
}

func count(ctx context.Context, q Querier, sb *sqlbuilder.SelectBuilder) (int, error) {
	var n int
	query, args := sb.Build()
	if err := q.GetContext(ctx, &n, query, args...); err != nil {
		return 0, errors.WrapResource("query", "integrity", query, err)
	}
	return n, nil
}
