// Package constants provides shared constants used throughout the orbitalguard codebase.
// This includes default input file names, store settings, file permissions and
// the normalization tokens that every importer agrees on.
package constants

// Default input and output file names, relative to the data directory
const (
	// DefaultCatalogFile is the master catalog of tracked space objects
	DefaultCatalogFile = "data_satcat.json"

	// DefaultActiveElementsFile is the primary orbital element set source
	DefaultActiveElementsFile = "data_active_gp.json"

	// DefaultDetailsFile is the satellite registry spreadsheet
	DefaultDetailsFile = "data_ucs_database.xlsx"

	// DefaultDatabaseFile is the relational store written by a build run
	DefaultDatabaseFile = "orbitalguard.db"

	// DefaultDataDir is where input files are looked up when no directory is configured
	DefaultDataDir = "."
)

// DefaultDebrisFiles lists the supplementary element set sources merged after the active set.
var DefaultDebrisFiles = []string{
	"data_fengyun1c_debris.json",
	"data_cosmos2251_debris.json",
	"data_iridium33_debris.json",
}

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Normalization constants
const (
	// NotAvailable is the source token treated the same as an empty value
	NotAvailable = "N/A"

	// MissionIDLength is how many designator characters identify a launch
	MissionIDLength = 8

	// DateLength is the length of an ISO YYYY-MM-DD date
	DateLength = 10
)

// Store constants
const (
	// SQLiteDriver is the database/sql driver name registered by modernc.org/sqlite
	SQLiteDriver = "sqlite"

	// ForeignKeyPolicyEnforce rejects orphan rows at insert time
	ForeignKeyPolicyEnforce = "enforce"

	// ForeignKeyPolicyReport keeps orphan rows and leaves them to the validator
	ForeignKeyPolicyReport = "report"
)

// Format constants
const (
	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"

	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "20060102-150405"
)
