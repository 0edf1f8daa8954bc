// Package sources reads the pipeline inputs from local files: the JSON record
// arrays of the catalog and element-set sources, and the first worksheet of
// the satellite registry workbook.
package sources

import (
	"path/filepath"

	"github.com/agentstation/orbitalguard/pkg/constants"
)

// Kind is the on-disk format of an input file.
type Kind string

const (
	// KindJSON is a file holding a single top-level JSON array.
	KindJSON Kind = "json"
	// KindXLSX is a spreadsheet workbook.
	KindXLSX Kind = "xlsx"
)

// Role names the part an input file plays in a build.
type Role string

const (
	RoleCatalog        Role = "catalog"
	RoleActiveElements Role = "active_elements"
	RoleDebrisElements Role = "debris_elements"
	RoleDetails        Role = "details"
)

// Inputs is the set of files a build reads.
type Inputs struct {
	Catalog        string   `json:"catalog" yaml:"catalog"`
	ActiveElements string   `json:"active_elements" yaml:"active_elements"`
	Debris         []string `json:"debris" yaml:"debris"`
	Details        string   `json:"details" yaml:"details"`
}

// DefaultInputs returns the conventional file names resolved against dir.
func DefaultInputs(dir string) Inputs {
	if dir == "" {
		dir = constants.DefaultDataDir
	}
	debris := make([]string, 0, len(constants.DefaultDebrisFiles))
	for _, name := range constants.DefaultDebrisFiles {
		debris = append(debris, filepath.Join(dir, name))
	}
	return Inputs{
		Catalog:        filepath.Join(dir, constants.DefaultCatalogFile),
		ActiveElements: filepath.Join(dir, constants.DefaultActiveElementsFile),
		Debris:         debris,
		Details:        filepath.Join(dir, constants.DefaultDetailsFile),
	}
}

// Input is one file of a build together with its role and format.
type Input struct {
	Role Role
	Path string
	Kind Kind
}

// Files lists the inputs in the order a build reads them. Catalog, active
// elements and details are always listed, even with an empty path, so that
// Precheck reports them as unconfigured.
func (in Inputs) Files() []Input {
	var files []Input
	add := func(role Role, path string, kind Kind) {
		files = append(files, Input{Role: role, Path: path, Kind: kind})
	}
	add(RoleCatalog, in.Catalog, KindJSON)
	add(RoleActiveElements, in.ActiveElements, KindJSON)
	for _, p := range in.Debris {
		add(RoleDebrisElements, p, KindJSON)
	}
	add(RoleDetails, in.Details, KindXLSX)
	return files
}
