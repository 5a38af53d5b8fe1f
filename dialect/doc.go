// Package dialect provides the database dialect abstraction used by Rowan.
//
// It defines the interfaces and dialect names that allow the relation
// resolver to target multiple database backends, including PostgreSQL,
// MySQL, and SQLite.
//
// # Dialect Constants
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Driver Interface
//
// The Driver interface is the handle everything in Rowan executes
// against. It is implemented by dialect/sql.Driver for databases
// reachable through database/sql:
//
//	import (
//	    "github.com/rowandb/rowan/dialect"
//	    "github.com/rowandb/rowan/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.SQLite, "file:demo?mode=memory")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// The Tx interface extends ExecQuerier with Commit and Rollback, so a
// transaction can be used anywhere a plain connection is accepted.
//
// # Sub-packages
//
//   - dialect/sql: SQL selector builder and driver implementation
//   - dialect/sql/relgraph: association chains and relation resolution
package dialect
