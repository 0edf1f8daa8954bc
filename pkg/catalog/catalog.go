// Package catalog defines the entities of the consolidated store and the
// field names used by the raw catalog and element set sources.
package catalog

// Record is one raw source record keyed by source field name.
type Record map[string]any

// Table names in the relational store.
const (
	TableSpaceObjects     = "SpaceObjects"
	TableOrbits           = "Orbits"
	TableSatelliteDetails = "SatelliteDetails"
	TableLaunchMissions   = "LaunchMissions"
)

// Tables lists every table in dependency order.
var Tables = []string{TableSpaceObjects, TableOrbits, TableSatelliteDetails, TableLaunchMissions}

// Catalog source field keys.
const (
	FieldNoradID    = "NORAD_CAT_ID"
	FieldName       = "SATNAME"
	FieldDesignator = "INTLDES"
	FieldObjectType = "OBJECT_TYPE"
	FieldCountry    = "COUNTRY"
	FieldLaunch     = "LAUNCH"
	FieldDecay      = "DECAY"
	FieldRCSSize    = "RCS_SIZE"
	FieldSite       = "SITE"
)

// Element set source field keys.
const (
	FieldEpoch           = "EPOCH"
	FieldInclination     = "INCLINATION"
	FieldEccentricity    = "ECCENTRICITY"
	FieldMeanMotion      = "MEAN_MOTION"
	FieldRAAN            = "RA_OF_ASC_NODE"
	FieldArgOfPericenter = "ARG_OF_PERICENTER"
	FieldMeanAnomaly     = "MEAN_ANOMALY"
	FieldBStar           = "BSTAR"
)

// CatalogFields lists the keys the space object importer reads.
var CatalogFields = []string{
	FieldNoradID, FieldName, FieldDesignator, FieldObjectType, FieldCountry,
	FieldLaunch, FieldDecay, FieldRCSSize, FieldSite,
}

// ElementFields lists the keys the orbital element importer reads.
var ElementFields = []string{
	FieldNoradID, FieldEpoch, FieldInclination, FieldEccentricity, FieldMeanMotion,
	FieldRAAN, FieldArgOfPericenter, FieldMeanAnomaly, FieldBStar,
}

// Object types the validator counts.
const ObjectTypeDebris = "DEBRIS"

// SpaceObject is one tracked object from the master catalog.
type SpaceObject struct {
	NoradID                 int64   `db:"norad_id" json:"norad_id" yaml:"norad_id"`
	ObjectName              *string `db:"object_name" json:"object_name,omitempty" yaml:"object_name,omitempty"`
	InternationalDesignator *string `db:"intl_designator" json:"intl_designator,omitempty" yaml:"intl_designator,omitempty"`
	ObjectType              *string `db:"object_type" json:"object_type,omitempty" yaml:"object_type,omitempty"`
	Country                 *string `db:"country" json:"country,omitempty" yaml:"country,omitempty"`
	LaunchDate              *string `db:"launch_date" json:"launch_date,omitempty" yaml:"launch_date,omitempty"`
	DecayDate               *string `db:"decay_date" json:"decay_date,omitempty" yaml:"decay_date,omitempty"`
	RCSSize                 *string `db:"rcs_size" json:"rcs_size,omitempty" yaml:"rcs_size,omitempty"`
	LaunchSite              *string `db:"launch_site" json:"launch_site,omitempty" yaml:"launch_site,omitempty"`
	LaunchMissionID         *string `db:"launch_mission_id" json:"launch_mission_id,omitempty" yaml:"launch_mission_id,omitempty"`
}

// OrbitalElementSet is one element set snapshot at an epoch.
type OrbitalElementSet struct {
	OrbitID         int64    `db:"orbit_id" json:"orbit_id" yaml:"orbit_id"`
	NoradID         int64    `db:"norad_id" json:"norad_id" yaml:"norad_id"`
	Epoch           string   `db:"epoch" json:"epoch" yaml:"epoch"`
	InclinationDeg  *float64 `db:"inclination_deg" json:"inclination_deg,omitempty" yaml:"inclination_deg,omitempty"`
	Eccentricity    *float64 `db:"eccentricity" json:"eccentricity,omitempty" yaml:"eccentricity,omitempty"`
	MeanMotion      *float64 `db:"mean_motion" json:"mean_motion,omitempty" yaml:"mean_motion,omitempty"`
	RAOfAscNode     *float64 `db:"ra_of_asc_node" json:"ra_of_asc_node,omitempty" yaml:"ra_of_asc_node,omitempty"`
	ArgOfPericenter *float64 `db:"arg_of_pericenter" json:"arg_of_pericenter,omitempty" yaml:"arg_of_pericenter,omitempty"`
	MeanAnomaly     *float64 `db:"mean_anomaly" json:"mean_anomaly,omitempty" yaml:"mean_anomaly,omitempty"`
	BStar           *float64 `db:"bstar" json:"bstar,omitempty" yaml:"bstar,omitempty"`
}

// SatelliteDetail extends a space object with registry data.
type SatelliteDetail struct {
	NoradID               int64    `db:"norad_id" json:"norad_id" yaml:"norad_id"`
	LaunchMassKg          *float64 `db:"launch_mass_kg" json:"launch_mass_kg,omitempty" yaml:"launch_mass_kg,omitempty"`
	DryMassKg             *float64 `db:"dry_mass_kg" json:"dry_mass_kg,omitempty" yaml:"dry_mass_kg,omitempty"`
	PowerWatts            *float64 `db:"power_watts" json:"power_watts,omitempty" yaml:"power_watts,omitempty"`
	ExpectedLifetimeYears *float64 `db:"expected_lifetime_years" json:"expected_lifetime_years,omitempty" yaml:"expected_lifetime_years,omitempty"`
	Purpose               *string  `db:"purpose" json:"purpose,omitempty" yaml:"purpose,omitempty"`
	Users                 *string  `db:"users" json:"users,omitempty" yaml:"users,omitempty"`
	Contractor            *string  `db:"contractor" json:"contractor,omitempty" yaml:"contractor,omitempty"`
	OperatorOwner         *string  `db:"operator_owner" json:"operator_owner,omitempty" yaml:"operator_owner,omitempty"`
	ClassOfOrbit          *string  `db:"class_of_orbit" json:"class_of_orbit,omitempty" yaml:"class_of_orbit,omitempty"`
	CountryOperator       *string  `db:"country_operator" json:"country_operator,omitempty" yaml:"country_operator,omitempty"`
}

// LaunchMission is derived by grouping space objects on their mission id.
type LaunchMission struct {
	LaunchMissionID string  `db:"launch_mission_id" json:"launch_mission_id" yaml:"launch_mission_id"`
	LaunchDate      *string `db:"launch_date" json:"launch_date,omitempty" yaml:"launch_date,omitempty"`
	Country         *string `db:"country" json:"country,omitempty" yaml:"country,omitempty"`
	LaunchSite      *string `db:"launch_site" json:"launch_site,omitempty" yaml:"launch_site,omitempty"`
	PayloadCount    int     `db:"payload_count" json:"payload_count" yaml:"payload_count"`
}
