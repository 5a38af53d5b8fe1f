// Package sql provides the SQL selector builder and the
// database/sql-backed driver used to execute resolved relations.
//
// The Selector renders a single-rooted SELECT statement with
// dialect-aware identifier quoting and placeholders. Predicates are
// composable fragments over rendered column expressions; the Field*
// helpers and the generic typed fields in predicate.go build them from
// plain column names against whichever selector they are applied to.
//
// The Driver adapts a database/sql connection to the dialect.Driver
// interface, and LogDriver instruments any driver with slog-based
// query logging and counters.
package sql
