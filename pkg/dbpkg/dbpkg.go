// Package dbpkg provides helpers to make db initialization, querying and testing easier.
package dbpkg

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Setup sets up connection with database.
func Setup(driver, source string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, source)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// SQLInterface provides neccessary db methods to perform queries.
//
// Both *sqlx.DB and *sqlx.Tx satisfy it.
type SQLInterface interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}
