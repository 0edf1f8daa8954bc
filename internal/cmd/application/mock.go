package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/orbitalguard"
	"github.com/agentstation/orbitalguard/pkg/constants"
	"github.com/agentstation/orbitalguard/pkg/imputation"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	PipelineFunc     func(opts ...orbitalguard.Option) (orbitalguard.Pipeline, error)
	InputsFunc       func() orbitalguard.Inputs
	StrataFunc       func() (imputation.Strata, error)
	DatabasePathFunc func() string
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Pipeline returns a pipeline using the mock function or one built from opts.
func (m *Mock) Pipeline(opts ...orbitalguard.Option) (orbitalguard.Pipeline, error) {
	if m.PipelineFunc != nil {
		return m.PipelineFunc(opts...)
	}
	return orbitalguard.New(opts...)
}

// Inputs returns inputs using the mock function or the defaults in the working directory.
func (m *Mock) Inputs() orbitalguard.Inputs {
	if m.InputsFunc != nil {
		return m.InputsFunc()
	}
	return orbitalguard.DefaultInputs(constants.DefaultDataDir)
}

// Strata returns strata using the mock function or the default lifetimes.
func (m *Mock) Strata() (imputation.Strata, error) {
	if m.StrataFunc != nil {
		return m.StrataFunc()
	}
	return imputation.DefaultLifetimeStrata(), nil
}

// DatabasePath returns the store path using the mock function or the default file.
func (m *Mock) DatabasePath() string {
	if m.DatabasePathFunc != nil {
		return m.DatabasePathFunc()
	}
	return constants.DefaultDatabaseFile
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
