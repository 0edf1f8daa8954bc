// Package app provides the application context and dependency management
// for the orbitalguard CLI. It centralizes configuration, logging and the
// construction of the pipeline the commands run.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/orbitalguard"
	"github.com/agentstation/orbitalguard/internal/cmd/application"
	"github.com/agentstation/orbitalguard/internal/cmd/output"
	"github.com/agentstation/orbitalguard/pkg/errors"
	"github.com/agentstation/orbitalguard/pkg/imputation"
)

// App represents the orbitalguard application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config       *Config
	logger       *zerolog.Logger
	customLogger bool

	// Default pipeline (lazy-initialized)
	mu       sync.RWMutex
	pipeline orbitalguard.Pipeline
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and the default config file
// locations; functional options may replace it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the explicit --format, or table on a terminal and
// json otherwise.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// DatabasePath returns the configured store file.
func (a *App) DatabasePath() string {
	return a.config.Database
}

// Inputs returns the default input files inside the configured data directory.
func (a *App) Inputs() orbitalguard.Inputs {
	return orbitalguard.DefaultInputs(a.config.DataDir)
}

// Strata returns the lifetime strata from the configured strata file, or the
// built-in defaults when none is set.
func (a *App) Strata() (imputation.Strata, error) {
	if a.config.StrataFile == "" {
		return imputation.DefaultLifetimeStrata(), nil
	}
	return imputation.LoadStrata(a.config.StrataFile)
}

// Pipeline returns a pipeline built from the configuration. Without options
// the instance is cached; options are applied after the configured ones and
// always yield a new pipeline.
func (a *App) Pipeline(opts ...orbitalguard.Option) (orbitalguard.Pipeline, error) {
	if len(opts) == 0 {
		a.mu.RLock()
		if a.pipeline != nil {
			p := a.pipeline
			a.mu.RUnlock()
			return p, nil
		}
		a.mu.RUnlock()
	}

	base, err := a.pipelineOptions()
	if err != nil {
		return nil, err
	}
	p, err := orbitalguard.New(append(base, opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "pipeline", "", err)
	}
	if len(opts) > 0 {
		return p, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pipeline == nil {
		a.pipeline = p
	}
	return a.pipeline, nil
}

// pipelineOptions constructs pipeline options from the app configuration.
func (a *App) pipelineOptions() ([]orbitalguard.Option, error) {
	opts := []orbitalguard.Option{
		orbitalguard.WithDatabasePath(a.config.Database),
		orbitalguard.WithDataDir(a.config.DataDir),
		orbitalguard.WithForeignKeyPolicy(orbitalguard.ForeignKeyPolicy(a.config.FKPolicy)),
		orbitalguard.WithTieBreak(orbitalguard.TieBreak(a.config.TieBreak)),
		orbitalguard.WithLogger(a.logger),
	}

	if a.config.StrataFile != "" {
		strata, err := a.Strata()
		if err != nil {
			return nil, err
		}
		opts = append(opts, orbitalguard.WithLifetimeStrata(strata))
	}
	if a.config.MetricsFile != "" {
		opts = append(opts, orbitalguard.WithMetricsFile(a.config.MetricsFile))
	}
	if a.config.ReportFile != "" {
		opts = append(opts, orbitalguard.WithReportFile(a.config.ReportFile))
	}

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.customLogger = true
		return nil
	}
}
