package catalog

// DetailColumn maps a registry spreadsheet header to a SatelliteDetail column.
type DetailColumn struct {
	Header string
	Column string
}

// Registry spreadsheet columns, in the order they are resolved.
var DetailColumns = []DetailColumn{
	{Header: "NORAD Number", Column: "norad_id"},
	{Header: "Launch Mass (kg.)", Column: "launch_mass_kg"},
	{Header: "Dry Mass (kg.)", Column: "dry_mass_kg"},
	{Header: "Power (watts)", Column: "power_watts"},
	{Header: "Expected Lifetime (yrs.)", Column: "expected_lifetime_years"},
	{Header: "Purpose", Column: "purpose"},
	{Header: "Users", Column: "users"},
	{Header: "Contractor", Column: "contractor"},
	{Header: "Operator/Owner", Column: "operator_owner"},
	{Header: "Class of Orbit", Column: "class_of_orbit"},
	{Header: "Country of Operator/Owner", Column: "country_operator"},
}

// Headers returns the expected registry headers.
func Headers(cols []DetailColumn) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header
	}
	return out
}
