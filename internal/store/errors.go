package store

import (
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/agentstation/orbitalguard/pkg/errors"
)

const foreignKeyMessage = "FOREIGN KEY constraint failed"

// IsForeignKeyViolation reports whether err is SQLite rejecting a row for an
// unknown referenced key.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return strings.Contains(err.Error(), foreignKeyMessage)
}

// classify tags driver errors with the package sentinels callers match on.
func classify(err error) error {
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", errors.ErrForeignKey, err)
	}
	return err
}
