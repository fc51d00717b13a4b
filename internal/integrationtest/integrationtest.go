// Package integrationtest provides db helpers used in repository and integration tests.
package integrationtest

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/go-petr/bank-admin/pkg/dbpkg"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteSchema mirrors db/migration for SQLite.
const sqliteSchema = `
CREATE TABLE users (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name      VARCHAR NOT NULL,
    last_name       VARCHAR NOT NULL,
    email           VARCHAR NOT NULL,
    username        VARCHAR NOT NULL,
    password        VARCHAR NOT NULL,
    role            VARCHAR NOT NULL DEFAULT 'USER' CHECK (role IN ('ADMIN', 'USER')),
    status          VARCHAR NOT NULL DEFAULT 'Active' CHECK (status IN ('Active', 'Suspended')),
    is_kyc_verified BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMP NOT NULL,
    updated_at      TIMESTAMP NOT NULL,
    CONSTRAINT users_email_key UNIQUE (email),
    CONSTRAINT users_username_key UNIQUE (username)
);

CREATE TABLE deposits (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    deposit_id  VARCHAR NOT NULL,
    asset       VARCHAR NOT NULL,
    amount      NUMERIC(36, 18) NOT NULL CHECK (amount >= 0),
    amount_nett NUMERIC(36, 18) NOT NULL CHECK (amount_nett >= 0),
    status      VARCHAR NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'SUCCESS', 'REJECTED')),
    user_id     BIGINT NOT NULL REFERENCES users (id),
    created_at  TIMESTAMP NOT NULL,
    updated_at  TIMESTAMP NOT NULL,
    CONSTRAINT deposits_deposit_id_key UNIQUE (deposit_id)
);

CREATE TABLE withdraws (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    withdraw_id VARCHAR NOT NULL,
    asset       VARCHAR NOT NULL,
    amount      NUMERIC(36, 18) NOT NULL CHECK (amount >= 0),
    amount_nett NUMERIC(36, 18) NOT NULL CHECK (amount_nett >= 0),
    status      VARCHAR NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'SUCCESS', 'REJECTED')),
    user_id     BIGINT NOT NULL REFERENCES users (id),
    created_at  TIMESTAMP NOT NULL,
    updated_at  TIMESTAMP NOT NULL,
    CONSTRAINT withdraws_withdraw_id_key UNIQUE (withdraw_id)
);
`

// SetupSQLite returns a fresh in-memory SQLite database with the app schema.
//
// The pool is limited to one connection since every connection to :memory: opens a new database.
func SetupSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := dbpkg.Setup("sqlite3", ":memory:?_foreign_keys=1")
	if err != nil {
		t.Fatalf("sqlite initialization failed. err: %v", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		t.Fatalf("sqlite schema creation failed. err: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("db.Close() failed: %v", err)
		}
	})

	return db
}

// Flush flushes all db tables without droping.
func Flush(t *testing.T, db *sqlx.DB) {
	t.Helper()

	var tables string

	const query = `
	SELECT string_agg(table_name, ', ')
	FROM information_schema.tables 
	WHERE table_schema='public' AND table_name <> 'schema_migrations';`

	if err := db.Get(&tables, query); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}

	if _, err := db.Exec(`TRUNCATE TABLE ` + tables + " RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB sets up migrated connection with database for testing and then cleans it.
func SetupDB(t *testing.T, driver, source string) *sqlx.DB {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	if err := dbpkg.MigrateUp(db.DB); err != nil {
		t.Fatalf("db migration failed. err: %v", err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// SetupTX sets up a database transaction over the migrated schema to be used in tests.
//
// Once the tests are done it will rollback the transaction.
func SetupTX(t *testing.T, driver, source string) *sqlx.Tx {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	if err := dbpkg.MigrateUp(db.DB); err != nil {
		t.Fatalf("db migration failed. err: %v", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		t.Fatalf("db.Beginx() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Fatalf("tx.Rollback() failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}
