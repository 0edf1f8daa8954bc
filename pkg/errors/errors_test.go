package errors_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	pkgerrors "github.com/agentstation/orbitalguard/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "space object", ID: "25544"}
		assert.Equal(t, "space object 25544 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("store", "orbitalguard.db")
		wrapped := fmt.Errorf("validate: %w", base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("data_satcat.json", nil, "not a JSON array")
		assert.Equal(t, "validation failed for data_satcat.json: not a JSON array", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "no inputs"}
		assert.Equal(t, "validation failed: no inputs", err.Error())
	})

	t.Run("wraps sentinel", func(t *testing.T) {
		err := pkgerrors.WrapValidation("data_active_gp.json", pkgerrors.ErrNotArray)
		assert.True(t, errors.Is(err, pkgerrors.ErrNotArray))
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("unknown policy")
	err := pkgerrors.NewConfigError("fk_policy", "must be enforce or report", base)
	assert.Contains(t, err.Error(), "fk_policy")
	assert.Equal(t, base, err.Unwrap())
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestIOError(t *testing.T) {
	err := pkgerrors.NewIOError("open", "data_ucs_database.xlsx", fs.ErrNotExist)
	assert.Equal(t, "IO error during open of data_ucs_database.xlsx: file does not exist", err.Error())
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	noPath := &pkgerrors.IOError{Operation: "read", Message: "short read"}
	assert.Equal(t, "IO error during read: short read", noPath.Error())
}

func TestParseError(t *testing.T) {
	base := errors.New("unexpected EOF")
	err := pkgerrors.NewParseError("json", "data_satcat.json", "truncated document", base)
	assert.Equal(t, "parse error in json file data_satcat.json: truncated document", err.Error())
	assert.Equal(t, base, errors.Unwrap(err))

	anon := &pkgerrors.ParseError{Format: "yaml", Message: "bad indent"}
	assert.Equal(t, "yaml parse error: bad indent", anon.Error())
}

func TestResourceError(t *testing.T) {
	base := errors.New("database is locked")
	err := pkgerrors.NewResourceError("insert", "Orbits", "25544", base)
	assert.Equal(t, "failed to insert Orbits 25544: database is locked", err.Error())
	assert.ErrorIs(t, err, base)

	noID := pkgerrors.NewResourceError("create", "schema", "", base)
	assert.Equal(t, "failed to create schema: database is locked", noID.Error())
}

func TestStageError(t *testing.T) {
	err := pkgerrors.NewStageError("orbits", interrupted(pkgerrors.ErrCanceled))
	assert.Contains(t, err.Error(), "stage orbits")
	assert.True(t, pkgerrors.IsCanceled(err))
}

func TestWrapHelpers(t *testing.T) {
	tests := []struct {
		name string
		wrap func(error) error
	}{
		{"validation", func(err error) error { return pkgerrors.WrapValidation("f", err) }},
		{"io", func(err error) error { return pkgerrors.WrapIO("read", "p", err) }},
		{"resource", func(err error) error { return pkgerrors.WrapResource("query", "store", "", err) }},
		{"parse", func(err error) error { return pkgerrors.WrapParse("json", "p", err) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, tt.wrap(nil))

			base := errors.New("boom")
			wrapped := tt.wrap(base)
			require.Error(t, wrapped)
			assert.ErrorIs(t, wrapped, base)
		})
	}
}

func TestIsForeignKey(t *testing.T) {
	err := fmt.Errorf("insert orbit: %w", pkgerrors.ErrForeignKey)
	assert.True(t, pkgerrors.IsForeignKey(err))
	assert.False(t, pkgerrors.IsForeignKey(pkgerrors.ErrMissingField))
}

func interrupted(err error) error {
	return fmt.Errorf("stage interrupted: %w", err)
}
