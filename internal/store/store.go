// Package store persists the consolidated catalog in a single SQLite file.
//
// Writes happen inside stages: each stage runs in one transaction that is
// committed once, however many individual rows failed inside it. A failed
// statement in SQLite does not abort the surrounding transaction, so row-level
// errors are returned to the caller and the stage carries on.
package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/agentstation/orbitalguard/pkg/constants"
	"github.com/agentstation/orbitalguard/pkg/errors"
	"github.com/agentstation/orbitalguard/pkg/logging"
)

// ForeignKeyPolicy decides how rows referencing an unknown space object are handled.
type ForeignKeyPolicy string

const (
	// PolicyEnforce declares foreign keys and rejects orphan rows at insert time.
	PolicyEnforce ForeignKeyPolicy = constants.ForeignKeyPolicyEnforce
	// PolicyReport keeps orphan rows; the validator reports them afterwards.
	PolicyReport ForeignKeyPolicy = constants.ForeignKeyPolicyReport
)

// ParsePolicy converts a configuration string into a ForeignKeyPolicy.
// An empty string selects PolicyEnforce.
func ParsePolicy(s string) (ForeignKeyPolicy, error) {
	switch ForeignKeyPolicy(s) {
	case "", PolicyEnforce:
		return PolicyEnforce, nil
	case PolicyReport:
		return PolicyReport, nil
	default:
		return "", errors.NewConfigError("fk_policy", fmt.Sprintf("unknown policy %q: must be enforce or report", s), errors.ErrInvalidInput)
	}
}

// Store is an open catalog database.
type Store struct {
	db     *sqlx.DB
	path   string
	policy ForeignKeyPolicy
}

// Open opens or creates the database at path. Under PolicyEnforce the
// connection runs with foreign key checks switched on.
func Open(ctx context.Context, path string, policy ForeignKeyPolicy) (*Store, error) {
	if policy == "" {
		policy = PolicyEnforce
	}

	db, err := sqlx.Open(constants.SQLiteDriver, dsn(path, policy))
	if err != nil {
		return nil, errors.WrapResource("open", "store", path, err)
	}
	// Pragmas are per connection and the pipeline is single-writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("open", "store", path, err)
	}

	logging.FromContext(ctx).Debug().
		Str("path", path).
		Str("fk_policy", string(policy)).
		Msg("Opened store")

	return &Store{db: db, path: path, policy: policy}, nil
}

// Remove deletes a previous store file. A missing file is not an error.
func Remove(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm", path + "-journal"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return errors.WrapIO("remove", p, err)
		}
	}
	return nil
}

func dsn(path string, policy ForeignKeyPolicy) string {
	fk := 0
	if policy == PolicyEnforce {
		fk = 1
	}
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(%d)&_pragma=busy_timeout(5000)", path, fk)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Policy returns the foreign key policy the store was opened with.
func (s *Store) Policy() ForeignKeyPolicy {
	return s.policy
}

// GetContext runs a single-row query against the store.
func (s *Store) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return s.db.GetContext(ctx, dest, query, args...)
}

// SelectContext runs a multi-row query against the store.
func (s *Store) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return s.db.SelectContext(ctx, dest, query, args...)
}

// Stage runs fn inside one transaction and commits it once. An error returned
// by fn rolls the stage back; row-level failures fn chooses to absorb do not.
func (s *Store) Stage(ctx context.Context, name string, fn func(context.Context, *Tx) error) error {
	ctx = logging.WithStage(ctx, name)
	logger := logging.FromContext(ctx)
	start := time.Now()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.NewStageError(name, errors.WrapResource("begin", "transaction", "", err))
	}

	if err := fn(ctx, &Tx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Warn().Err(rbErr).Msg("Rollback failed")
		}
		return errors.NewStageError(name, err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStageError(name, errors.WrapResource("commit", "transaction", "", err))
	}

	logger.Debug().Dur("elapsed", time.Since(start)).Msg("Stage committed")
	return nil
}
