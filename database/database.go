package database

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/cursoshub/elearning/config"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrNotFound is returned by store functions when the requested
// row does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrUniqueViolation is returned by store functions when an insert
// hits a unique constraint.
var ErrUniqueViolation = errors.New("unique constraint violated")

func Open(cfg config.DB) (*sqlx.DB, error) {
	sslMode := "require"
	if cfg.DisableTLS {
		sslMode = "disable"
	}

	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host,
		Path:     cfg.Name,
		RawQuery: q.Encode(),
	}

	db, err := sqlx.Connect("postgres", u.String())
	if err != nil {
		return nil, fmt.Errorf("connecting to database %s: %w", cfg.Host, err)
	}

	return db, nil
}

// Transaction runs fn inside a single transaction, rolling back on
// any error. Store functions take sqlx.ExtContext so they can run
// both on the bare handle and inside a transaction.
func Transaction(db *sqlx.DB, fn func(tx sqlx.ExtContext) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("rolling back transaction: %v (original error: %w)", rerr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err is a postgres unique
// constraint violation (optionally on the named constraint).
func IsUniqueViolation(err error, constraint string) bool {
	var pqerr *pq.Error
	if !errors.As(err, &pqerr) {
		return false
	}
	if pqerr.Code != "23505" {
		return false
	}
	return constraint == "" || pqerr.Constraint == constraint
}
