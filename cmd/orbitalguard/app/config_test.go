package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/agentstation/orbitalguard/pkg/constants"
	"github.com/agentstation/orbitalguard/pkg/errors"
)

// isolate keeps a developer's own config file out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

// TestLoadConfig verifies the defaults.
func TestLoadConfig(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Database != constants.DefaultDatabaseFile {
		t.Errorf("Database = %q, want %q", config.Database, constants.DefaultDatabaseFile)
	}
	if config.DataDir != constants.DefaultDataDir {
		t.Errorf("DataDir = %q, want %q", config.DataDir, constants.DefaultDataDir)
	}
	if config.FKPolicy != "enforce" {
		t.Errorf("FKPolicy = %q, want enforce", config.FKPolicy)
	}
	if config.TieBreak != "max" {
		t.Errorf("TieBreak = %q, want max", config.TieBreak)
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

// TestConfig_EnvironmentVariables verifies prefixed environment variables.
func TestConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)
	t.Setenv("ORBITALGUARD_DATABASE", "/tmp/catalog.db")
	t.Setenv("ORBITALGUARD_DATA_DIR", "/srv/data")
	t.Setenv("ORBITALGUARD_FK_POLICY", "report")
	t.Setenv("ORBITALGUARD_VERBOSE", "true")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Database != "/tmp/catalog.db" {
		t.Errorf("Database = %q, want /tmp/catalog.db", config.Database)
	}
	if config.DataDir != "/srv/data" {
		t.Errorf("DataDir = %q, want /srv/data", config.DataDir)
	}
	if config.FKPolicy != "report" {
		t.Errorf("FKPolicy = %q, want report", config.FKPolicy)
	}
	if !config.Verbose {
		t.Error("ORBITALGUARD_VERBOSE not loaded")
	}
}

// TestLoadConfig_File verifies reading an explicit config file.
func TestLoadConfig_File(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "orbitalguard.yaml")
	content := "database: built.db\ntie_break: most_frequent\nstrata_file: strata.yaml\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), constants.FilePermissions); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", config.ConfigFile, path)
	}
	if config.Database != "built.db" {
		t.Errorf("Database = %q, want built.db", config.Database)
	}
	if config.TieBreak != "most_frequent" {
		t.Errorf("TieBreak = %q, want most_frequent", config.TieBreak)
	}
	if config.StrataFile != "strata.yaml" {
		t.Errorf("StrataFile = %q, want strata.yaml", config.StrataFile)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", config.LogLevel)
	}
	// Keys absent from the file keep their defaults
	if config.FKPolicy != "enforce" {
		t.Errorf("FKPolicy = %q, want enforce", config.FKPolicy)
	}
}

// TestLoadConfig_MissingFile verifies that an explicit file must exist.
func TestLoadConfig_MissingFile(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadConfig() succeeded for a missing file")
	}
	var cfgErr *errors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("error = %T, want *errors.ConfigError", err)
	}
}

// TestConfig_Validate verifies the struct validation rules.
func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{Database: "a.db", DataDir: ".", FKPolicy: "enforce", TieBreak: "max"}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "report policy", mutate: func(c *Config) { c.FKPolicy = "report" }},
		{name: "most frequent", mutate: func(c *Config) { c.TieBreak = "most_frequent" }},
		{name: "yaml format", mutate: func(c *Config) { c.Format = "yaml" }},
		{name: "unknown policy", mutate: func(c *Config) { c.FKPolicy = "ignore" }, wantErr: true},
		{name: "unknown tie break", mutate: func(c *Config) { c.TieBreak = "min" }, wantErr: true},
		{name: "unknown format", mutate: func(c *Config) { c.Format = "csv" }, wantErr: true},
		{name: "no database", mutate: func(c *Config) { c.Database = "" }, wantErr: true},
		{name: "no data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() succeeded, want error")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("error %v does not match ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() failed: %v", err)
			}
		})
	}
}

// TestConfig_UpdateFromFlags verifies that only flags the user set override the config.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Database: "from-file.db", DataDir: "data", Format: "yaml"}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.BoolP("verbose", "v", false, "")
	flags.Bool("quiet", false, "")
	flags.StringP("format", "o", "", "")
	flags.String("log-level", "", "")
	flags.String("db", "", "")
	flags.String("data-dir", "", "")
	if err := flags.Parse([]string{"--db", "flag.db", "-v", "--log-level", "trace"}); err != nil {
		t.Fatal(err)
	}

	config.UpdateFromFlags(flags)

	if config.Database != "flag.db" {
		t.Errorf("Database = %q, want flag.db", config.Database)
	}
	if config.DataDir != "data" {
		t.Errorf("DataDir = %q, want data (unset flag must not override)", config.DataDir)
	}
	if config.Format != "yaml" {
		t.Errorf("Format = %q, want yaml", config.Format)
	}
	if !config.Verbose {
		t.Error("Verbose not set from flag")
	}
	if config.LogLevelFlag != "trace" {
		t.Errorf("LogLevelFlag = %q, want trace", config.LogLevelFlag)
	}
}
