package constants_test

import (
	"fmt"
	"path/filepath"

	"github.com/agentstation/orbitalguard/pkg/constants"
)

// Example demonstrates resolving the default inputs against a data directory
func Example() {
	dir := "data"
	fmt.Println(filepath.Join(dir, constants.DefaultCatalogFile))
	fmt.Println(filepath.Join(dir, constants.DefaultActiveElementsFile))
	for _, name := range constants.DefaultDebrisFiles {
		fmt.Println(filepath.Join(dir, name))
	}
	fmt.Println(filepath.Join(dir, constants.DefaultDetailsFile))
	// Output:
	// data/data_satcat.json
	// data/data_active_gp.json
	// data/data_fengyun1c_debris.json
	// data/data_cosmos2251_debris.json
	// data/data_iridium33_debris.json
	// data/data_ucs_database.xlsx
}

// Example_missionID shows how many designator characters make up a launch key
func Example_missionID() {
	designator := "1998-067A"
	fmt.Println(designator[:constants.MissionIDLength])
	// Output: 1998-067
}
