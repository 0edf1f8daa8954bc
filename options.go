package orbitalguard

import (
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/agentstation/orbitalguard/internal/aggregate"
	"github.com/agentstation/orbitalguard/internal/sources"
	"github.com/agentstation/orbitalguard/internal/store"
	"github.com/agentstation/orbitalguard/pkg/constants"
	"github.com/agentstation/orbitalguard/pkg/errors"
	"github.com/agentstation/orbitalguard/pkg/imputation"
)

// Option is a function that configures a Pipeline
type Option func(*config) error

// config holds the settings of a Pipeline
type config struct {
	DatabasePath string                 `validate:"required"`
	DataDir      string                 `validate:"required"`
	Inputs       *sources.Inputs        `validate:"-"`
	Strata       imputation.Strata      `validate:"-"`
	Policy       store.ForeignKeyPolicy `validate:"oneof=enforce report"`
	TieBreak     aggregate.TieBreak     `validate:"oneof=max most_frequent"`
	MetricsFile  string
	ReportFile   string
	Logger       *zerolog.Logger `validate:"-"`
}

func defaultConfig() *config {
	return &config{
		DatabasePath: constants.DefaultDatabaseFile,
		DataDir:      constants.DefaultDataDir,
		Strata:       imputation.DefaultLifetimeStrata(),
		Policy:       store.PolicyEnforce,
		TieBreak:     aggregate.TieBreakMax,
	}
}

var structValidator = validator.New()

func (c *config) validate() error {
	if err := structValidator.Struct(c); err != nil {
		return errors.NewConfigError("pipeline", err.Error(), errors.ErrInvalidInput)
	}
	if err := c.Strata.Validate(); err != nil {
		return errors.NewConfigError("strata", err.Error(), err)
	}
	return nil
}

// inputs returns the configured inputs, or the defaults inside DataDir.
func (c *config) inputs() sources.Inputs {
	if c.Inputs != nil {
		return *c.Inputs
	}
	return sources.DefaultInputs(c.DataDir)
}

// WithDatabasePath sets the store file. It is removed and recreated by Run.
func WithDatabasePath(path string) Option {
	return func(c *config) error {
		c.DatabasePath = path
		return nil
	}
}

// WithDataDir sets the directory the default input files are read from
func WithDataDir(dir string) Option {
	return func(c *config) error {
		c.DataDir = filepath.Clean(dir)
		return nil
	}
}

// WithInputs sets every input path explicitly, overriding WithDataDir
func WithInputs(in Inputs) Option {
	return func(c *config) error {
		c.Inputs = &in
		return nil
	}
}

// WithLifetimeStrata sets the per orbit class lifetimes used to fill missing values
func WithLifetimeStrata(s imputation.Strata) Option {
	return func(c *config) error {
		c.Strata = s
		return nil
	}
}

// WithForeignKeyPolicy sets how rows referencing unknown space objects are handled
func WithForeignKeyPolicy(policy ForeignKeyPolicy) Option {
	return func(c *config) error {
		c.Policy = policy
		return nil
	}
}

// WithTieBreak sets how a mission's country and launch site are chosen
func WithTieBreak(tb TieBreak) Option {
	return func(c *config) error {
		c.TieBreak = tb
		return nil
	}
}

// WithLogger sets the logger of every run, replacing any carried by the context
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.Logger = logger
		return nil
	}
}

// WithMetricsFile writes run metrics in the node exporter textfile format to path
func WithMetricsFile(path string) Option {
	return func(c *config) error {
		c.MetricsFile = path
		return nil
	}
}

// WithReportFile writes a Markdown run report to path
func WithReportFile(path string) Option {
	return func(c *config) error {
		c.ReportFile = path
		return nil
	}
}
