// Package application provides the application interface for orbitalguard commands.
//
// The Application interface is the contract between the application layer and
// the command implementations. Commands accept it rather than the concrete App
// so they can be exercised with a Mock:
//
//	mock := &application.Mock{
//	    PipelineFunc: func(opts ...orbitalguard.Option) (orbitalguard.Pipeline, error) {
//	        return orbitalguard.New(append(opts, orbitalguard.WithDataDir(dir))...)
//	    },
//	}
//	cmd := build.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/orbitalguard"
	"github.com/agentstation/orbitalguard/pkg/imputation"
)

// Application provides what commands need from the running CLI.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Pipeline returns a pipeline configured from the loaded configuration.
	// When called without options, returns the default cached instance.
	// When called with options, they are applied after the configured ones
	// and a new instance is created.
	Pipeline(opts ...orbitalguard.Option) (orbitalguard.Pipeline, error)

	// Inputs returns the input files resolved from the configuration.
	Inputs() orbitalguard.Inputs

	// Strata returns the lifetime strata, read from the configured strata
	// file when one is set.
	Strata() (imputation.Strata, error)

	// DatabasePath returns the configured store file.
	DatabasePath() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
