package app

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/orbitalguard/pkg/constants"
	"github.com/agentstation/orbitalguard/pkg/errors"
)

// EnvPrefix is prepended to every configuration key read from the environment.
const EnvPrefix = "ORBITALGUARD"

// Config holds the application configuration loaded from config files,
// environment variables, .env files and command-line flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string `validate:"omitempty,oneof=table json yaml wide"`

	// Config file
	ConfigFile string

	// Pipeline configuration
	Database    string `validate:"required"`
	DataDir     string `validate:"required"`
	StrataFile  string
	FKPolicy    string `validate:"oneof=enforce report"`
	TieBreak    string `validate:"oneof=max most_frequent"`
	MetricsFile string
	ReportFile  string

	// Logging configuration
	LogLevel  string // from the config file or environment
	LogFormat string
	LogOutput string

	// LogLevelFlag is the explicit --log-level, which outranks -v and -q
	LogLevelFlag string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (ORBITALGUARD_DATABASE, ...)
// 3. .env files
// 4. Config file (configFile, or .orbitalguard.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".orbitalguard")

		// A missing config file is not an error
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Database:    v.GetString("database"),
		DataDir:     v.GetString("data_dir"),
		StrataFile:  v.GetString("strata_file"),
		FKPolicy:    v.GetString("fk_policy"),
		TieBreak:    v.GetString("tie_break"),
		MetricsFile: v.GetString("metrics_file"),
		ReportFile:  v.GetString("report_file"),

		LogLevel:  firstNonEmpty(v.GetString("log_level"), os.Getenv("LOG_LEVEL")),
		LogFormat: firstNonEmpty(v.GetString("log_format"), getEnvOrDefault("LOG_FORMAT", "auto")),
		LogOutput: firstNonEmpty(v.GetString("log_output"), getEnvOrDefault("LOG_OUTPUT", "stderr")),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database", constants.DefaultDatabaseFile)
	v.SetDefault("data_dir", constants.DefaultDataDir)
	v.SetDefault("fk_policy", constants.ForeignKeyPolicyEnforce)
	v.SetDefault("tie_break", "max")
}

var configValidator = validator.New()

// Validate checks the configuration after flags have been applied.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return errors.NewConfigError("cli", err.Error(), errors.ErrInvalidInput)
	}
	return nil
}

// UpdateFromFlags copies the global flags the user actually set into the
// config, so flag values take precedence over config file and env vars.
// Command flags such as build's --fk-policy are applied by the command itself.
func (c *Config) UpdateFromFlags(flags *pflag.FlagSet) {
	flags.Visit(func(f *pflag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "verbose":
			c.Verbose = value == "true"
		case "quiet":
			c.Quiet = value == "true"
		case "no-color":
			c.NoColor = value == "true"
		case "format":
			c.Format = value
		case "log-level":
			c.LogLevelFlag = value
		case "db":
			c.Database = value
		case "data-dir":
			c.DataDir = value
		}
	})
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
