package sql

import (
	"strconv"
	"strings"

	"github.com/rowandb/rowan/dialect"
)

// Builder is the low-level query writer. It accumulates the SQL text
// and its arguments, and renders identifiers and placeholders according
// to the configured dialect. A single Builder is shared by a selector
// and all of its nested subqueries so that argument numbering stays
// consistent on PostgreSQL.
type Builder struct {
	sb      strings.Builder
	dialect string
	args    []any
}

// WriteString appends raw SQL text.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// Ident appends a quoted identifier.
func (b *Builder) Ident(s string) *Builder {
	b.sb.WriteString(quoteWith(b.dialect, s))
	return b
}

// Arg appends a placeholder for the given value and records it.
func (b *Builder) Arg(v any) *Builder {
	b.args = append(b.args, v)
	if b.dialect == dialect.Postgres {
		b.sb.WriteString("$" + strconv.Itoa(len(b.args)))
	} else {
		b.sb.WriteString("?")
	}
	return b
}

// Args appends a comma-separated list of placeholders.
func (b *Builder) Args(vs ...any) *Builder {
	for i, v := range vs {
		if i > 0 {
			b.sb.WriteString(", ")
		}
		b.Arg(v)
	}
	return b
}

// String returns the accumulated SQL text.
func (b *Builder) String() string { return b.sb.String() }

// quoteWith quotes an identifier for the given dialect. The asterisk
// is passed through for star-selects.
func quoteWith(d, ident string) string {
	if ident == "*" {
		return ident
	}
	if d == dialect.MySQL {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

// Predicate is a composable WHERE fragment. Predicates operate on
// already-rendered column expressions (usually produced by
// Selector.C), which keeps them independent of any particular
// selector.
type Predicate struct {
	fns []func(*Builder)
}

// P returns a new empty predicate.
func P(fns ...func(*Builder)) *Predicate {
	return &Predicate{fns: fns}
}

func (p *Predicate) append(f func(*Builder)) *Predicate {
	p.fns = append(p.fns, f)
	return p
}

func (p *Predicate) query(b *Builder) {
	for _, f := range p.fns {
		f(b)
	}
}

func binary(col, op string, v any) *Predicate {
	return P(func(b *Builder) {
		b.WriteString(col).WriteString(" ").WriteString(op).WriteString(" ").Arg(v)
	})
}

// EQ returns a `column = value` predicate.
func EQ(col string, v any) *Predicate { return binary(col, "=", v) }

// NEQ returns a `column <> value` predicate.
func NEQ(col string, v any) *Predicate { return binary(col, "<>", v) }

// GT returns a `column > value` predicate.
func GT(col string, v any) *Predicate { return binary(col, ">", v) }

// GTE returns a `column >= value` predicate.
func GTE(col string, v any) *Predicate { return binary(col, ">=", v) }

// LT returns a `column < value` predicate.
func LT(col string, v any) *Predicate { return binary(col, "<", v) }

// LTE returns a `column <= value` predicate.
func LTE(col string, v any) *Predicate { return binary(col, "<=", v) }

// ColumnsEQ returns a `column = column` predicate without arguments.
// Both sides must be rendered column expressions.
func ColumnsEQ(c1, c2 string) *Predicate {
	return P(func(b *Builder) {
		b.WriteString(c1).WriteString(" = ").WriteString(c2)
	})
}

// In returns a `column IN (...)` predicate. An empty value list renders
// as FALSE, matching no rows.
func In(col string, vs ...any) *Predicate {
	if len(vs) == 0 {
		return False()
	}
	return P(func(b *Builder) {
		b.WriteString(col).WriteString(" IN (").Args(vs...).WriteString(")")
	})
}

// NotIn returns a `column NOT IN (...)` predicate. An empty value list
// matches all rows.
func NotIn(col string, vs ...any) *Predicate {
	if len(vs) == 0 {
		return P(func(b *Builder) { b.WriteString("TRUE") })
	}
	return P(func(b *Builder) {
		b.WriteString(col).WriteString(" NOT IN (").Args(vs...).WriteString(")")
	})
}

// IsNull returns a `column IS NULL` predicate.
func IsNull(col string) *Predicate {
	return P(func(b *Builder) { b.WriteString(col).WriteString(" IS NULL") })
}

// NotNull returns a `column IS NOT NULL` predicate.
func NotNull(col string) *Predicate {
	return P(func(b *Builder) { b.WriteString(col).WriteString(" IS NOT NULL") })
}

// Like returns a `column LIKE pattern` predicate.
func Like(col, pattern string) *Predicate {
	return P(func(b *Builder) {
		b.WriteString(col).WriteString(" LIKE ").Arg(pattern)
	})
}

// False returns a predicate that matches no rows.
func False() *Predicate {
	return P(func(b *Builder) { b.WriteString("FALSE") })
}

// And joins predicates with AND. Nil entries are skipped.
func And(ps ...*Predicate) *Predicate {
	return joined(" AND ", ps)
}

// Or joins predicates with OR. Nil entries are skipped.
func Or(ps ...*Predicate) *Predicate {
	return joined(" OR ", ps)
}

func joined(sep string, ps []*Predicate) *Predicate {
	var nonNil []*Predicate
	for _, p := range ps {
		if p != nil {
			nonNil = append(nonNil, p)
		}
	}
	if len(nonNil) == 1 {
		return nonNil[0]
	}
	return P(func(b *Builder) {
		for i, p := range nonNil {
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteString("(")
			p.query(b)
			b.WriteString(")")
		}
	})
}

// Not negates a predicate.
func Not(p *Predicate) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("NOT (")
		p.query(b)
		b.WriteString(")")
	})
}

// Exists returns an `EXISTS (subquery)` predicate. The subquery is
// rendered into the same builder, so correlated references to outer
// selectors and argument numbering both work.
func Exists(s *Selector) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("EXISTS (")
		s.query(b)
		b.WriteString(")")
	})
}

// Selector builds a SELECT statement rooted at a single table.
type Selector struct {
	dialect string
	table   string
	as      string
	columns []string // rendered expressions; empty means *
	where   *Predicate
	orderBy []string
	limit   *int
}

// Select returns a selector for the given rendered column expressions.
// With no columns it selects everything.
func Select(cols ...string) *Selector {
	return &Selector{columns: cols}
}

// Dialect sets the dialect the statement is rendered for.
func (s *Selector) Dialect(d string) *Selector {
	s.dialect = d
	return s
}

// From sets the table the statement selects from.
func (s *Selector) From(table string) *Selector {
	s.table = table
	return s
}

// As sets the table alias.
func (s *Selector) As(alias string) *Selector {
	s.as = alias
	return s
}

// Alias returns the effective alias of the selector.
func (s *Selector) Alias() string {
	if s.as != "" {
		return s.as
	}
	return s.table
}

// C returns the rendered, alias-qualified column expression for the
// given column name.
func (s *Selector) C(column string) string {
	return quoteWith(s.dialect, s.Alias()) + "." + quoteWith(s.dialect, column)
}

// SelectExpr replaces the selected expressions.
func (s *Selector) SelectExpr(exprs ...string) *Selector {
	s.columns = exprs
	return s
}

// Where appends a predicate; multiple calls are combined with AND.
func (s *Selector) Where(p *Predicate) *Selector {
	if p == nil {
		return s
	}
	if s.where == nil {
		s.where = p
	} else {
		s.where = And(s.where, p)
	}
	return s
}

// OrderBy appends ordering by the given rendered expressions.
func (s *Selector) OrderBy(exprs ...string) *Selector {
	s.orderBy = append(s.orderBy, exprs...)
	return s
}

// Limit caps the number of returned rows.
func (s *Selector) Limit(n int) *Selector {
	s.limit = &n
	return s
}

// Query renders the statement and returns it with its arguments.
func (s *Selector) Query() (string, []any) {
	b := &Builder{dialect: s.dialect}
	s.query(b)
	return b.String(), b.args
}

func (s *Selector) query(b *Builder) {
	b.WriteString("SELECT ")
	if len(s.columns) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(s.columns, ", "))
	}
	b.WriteString(" FROM ").Ident(s.table)
	if s.as != "" {
		b.WriteString(" AS ").Ident(s.as)
	}
	if s.where != nil {
		b.WriteString(" WHERE ")
		s.where.query(b)
	}
	if len(s.orderBy) > 0 {
		b.WriteString(" ORDER BY ").WriteString(strings.Join(s.orderBy, ", "))
	}
	if s.limit != nil {
		b.WriteString(" LIMIT ").WriteString(strconv.Itoa(*s.limit))
	}
}

// Field predicates apply a condition on a named column of the selector
// they run against. They are the building blocks consumed by the typed
// field helpers in predicate.go and by relation filters.

// FieldEQ returns a predicate checking the field equals the value.
func FieldEQ(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(EQ(s.C(name), v)) }
}

// FieldNEQ returns a predicate checking the field differs from the value.
func FieldNEQ(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(NEQ(s.C(name), v)) }
}

// FieldGT returns a predicate checking the field is greater than the value.
func FieldGT(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(GT(s.C(name), v)) }
}

// FieldGTE returns a predicate checking the field is at least the value.
func FieldGTE(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(GTE(s.C(name), v)) }
}

// FieldLT returns a predicate checking the field is less than the value.
func FieldLT(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(LT(s.C(name), v)) }
}

// FieldLTE returns a predicate checking the field is at most the value.
func FieldLTE(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(LTE(s.C(name), v)) }
}

// FieldIn returns a predicate checking the field value is in the list.
func FieldIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) {
		v := make([]any, len(vs))
		for i := range vs {
			v[i] = vs[i]
		}
		s.Where(In(s.C(name), v...))
	}
}

// FieldNotIn returns a predicate checking the field value is not in the list.
func FieldNotIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) {
		v := make([]any, len(vs))
		for i := range vs {
			v[i] = vs[i]
		}
		s.Where(NotIn(s.C(name), v...))
	}
}

// FieldIsNull returns a predicate checking the field is NULL.
func FieldIsNull(name string) func(*Selector) {
	return func(s *Selector) { s.Where(IsNull(s.C(name))) }
}

// FieldNotNull returns a predicate checking the field is not NULL.
func FieldNotNull(name string) func(*Selector) {
	return func(s *Selector) { s.Where(NotNull(s.C(name))) }
}

// FieldContains returns a predicate checking the field contains the substring.
func FieldContains(name, substr string) func(*Selector) {
	return func(s *Selector) { s.Where(Like(s.C(name), "%"+substr+"%")) }
}

// FieldHasPrefix returns a predicate checking the field starts with the prefix.
func FieldHasPrefix(name, prefix string) func(*Selector) {
	return func(s *Selector) { s.Where(Like(s.C(name), prefix+"%")) }
}

// FieldHasSuffix returns a predicate checking the field ends with the suffix.
func FieldHasSuffix(name, suffix string) func(*Selector) {
	return func(s *Selector) { s.Where(Like(s.C(name), "%"+suffix)) }
}
