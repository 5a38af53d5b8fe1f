package relgraph

import (
	"errors"
	"strings"

	"github.com/rowandb/rowan"
)

// errorCoder is implemented by database errors carrying a string error
// code (pq.Error, pgx, modernc.org/sqlite).
type errorCoder interface {
	Code() string
}

// errorNumberer is implemented by database errors carrying a numeric
// error code (mysql.MySQLError).
type errorNumberer interface {
	Number() uint16
}

// sqlStateError is implemented by errors exposing a SQLSTATE code.
type sqlStateError interface {
	SQLState() string
}

// constraintClass describes how one class of constraint violation
// surfaces across the supported drivers: the PostgreSQL SQLSTATE code,
// the MySQL error numbers, and message fragments for drivers that
// expose neither.
type constraintClass struct {
	sqlState   string
	mysqlCodes []uint16
	fallbacks  []string
}

var (
	uniqueViolation = constraintClass{
		sqlState:   "23505",
		mysqlCodes: []uint16{1062},
		fallbacks: []string{
			"Error 1062",                 // MySQL
			"violates unique constraint", // Postgres
			"UNIQUE constraint failed",   // SQLite
		},
	}
	foreignKeyViolation = constraintClass{
		sqlState:   "23503",
		mysqlCodes: []uint16{1451, 1452},
		fallbacks: []string{
			"Error 1451", // MySQL, parent row restricted
			"Error 1452", // MySQL, child row rejected
			"violates foreign key constraint", // Postgres
			"FOREIGN KEY constraint failed",   // SQLite
		},
	}
	checkViolation = constraintClass{
		sqlState:   "23514",
		mysqlCodes: []uint16{3819},
		fallbacks: []string{
			"Error 3819",                // MySQL
			"violates check constraint", // Postgres
			"CHECK constraint failed",   // SQLite
		},
	}
)

func (c constraintClass) matches(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := asError[sqlStateError](err); ok && e.SQLState() == c.sqlState {
		return true
	}
	if e, ok := asError[errorCoder](err); ok && e.Code() == c.sqlState {
		return true
	}
	if e, ok := asError[errorNumberer](err); ok {
		for _, code := range c.mysqlCodes {
			if e.Number() == code {
				return true
			}
		}
	}
	return containsAny(err.Error(), c.fallbacks...)
}

// IsUniqueConstraintError reports if the error resulted from a DB
// uniqueness constraint violation, e.g. duplicate value in a unique
// index.
func IsUniqueConstraintError(err error) bool {
	return uniqueViolation.matches(err)
}

// IsForeignKeyConstraintError reports if the error resulted from a
// database foreign-key constraint violation, e.g. a missing parent
// row.
func IsForeignKeyConstraintError(err error) bool {
	return foreignKeyViolation.matches(err)
}

// IsCheckConstraintError reports if the error resulted from a database
// check constraint violation.
func IsCheckConstraintError(err error) bool {
	return checkViolation.matches(err)
}

// IsConstraintError returns true if the error resulted from any
// database constraint violation.
func IsConstraintError(err error) bool {
	return rowan.IsConstraintError(err) ||
		IsUniqueConstraintError(err) ||
		IsForeignKeyConstraintError(err) ||
		IsCheckConstraintError(err)
}

// asError attempts to extract an error implementing interface T from
// the error chain.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}

// containsAny returns true if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
