package dialect

import (
	"context"
)

// Supported dialect names. The name is also the driver name passed
// to database/sql.Open unless the driver was registered differently.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// ExecQuerier wraps the two standard database operations.
//
// The v argument of Exec is either nil or a *sql.Result, and the
// v argument of Query is a *sql.Rows. Using any here keeps the
// interface implementable by drivers that are not backed by
// database/sql at all.
type ExecQuerier interface {
	// Exec executes a statement that does not return rows.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a statement that returns rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the minimal interface a database connection must provide
// for executing resolved relations.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx is the transaction interface returned by Driver.Tx.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}
