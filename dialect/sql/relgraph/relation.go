package relgraph

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rowandb/rowan/dialect"
	"github.com/rowandb/rowan/dialect/sql"
)

func errUnresolved(table string) error {
	return fmt.Errorf("relgraph: relation %q has unresolved deferred filters", table)
}

// Predicate is an immediate filter applied to the selector a relation
// renders into.
type Predicate = func(*sql.Selector)

// DeferredPredicate produces a predicate at execution time. It is how
// the origin-row filter stays suspended until the surrounding relation
// actually runs.
type DeferredPredicate func(ctx context.Context, drv dialect.Driver) (Predicate, error)

// Row is a single database row keyed by column name.
type Row map[string]any

// RowsProvider produces the current set of origin rows for a database
// handle. Errors propagate unchanged to the caller executing the
// relation.
type RowsProvider func(ctx context.Context, drv dialect.Driver) ([]Row, error)

// ChildKind classifies a nested child relation.
type ChildKind uint8

const (
	// RequireOne children must match exactly one row per parent row.
	// They are the only kind that survives join reversal.
	RequireOne ChildKind = iota
	// FetchAll children prefetch every matching row. They are dropped
	// when their parent becomes an invisible join-through hop.
	FetchAll
)

// String returns the kind name.
func (k ChildKind) String() string {
	switch k {
	case RequireOne:
		return "require-one"
	case FetchAll:
		return "fetch-all"
	}
	return "unknown"
}

// Child is a nested relation attached under a parent, described by the
// association chain leading from the parent to the child rows.
type Child struct {
	Kind  ChildKind
	Assoc Association
}

// Relation describes a query rooted at a single table: its filters,
// selected columns, nested children, and the single-row narrowing
// flag. Relations are immutable; every operation returns a copy and
// untouched substructure is shared.
type Relation struct {
	table     string
	columns   []string
	selected  bool // false: all columns; true: exactly the columns slice
	preds     []Predicate
	deferred  []DeferredPredicate
	children  []Child
	singleRow bool
}

// NewRelation returns a relation selecting all columns of the table.
func NewRelation(table string) *Relation {
	return &Relation{table: table}
}

// Table returns the table the relation is rooted at.
func (r *Relation) Table() string { return r.table }

// SingleRow reports whether the relation was narrowed to at most one
// row.
func (r *Relation) SingleRow() bool { return r.singleRow }

// Selected returns the selected columns and whether the selection was
// restricted. An unrestricted relation selects all columns.
func (r *Relation) Selected() ([]string, bool) {
	if !r.selected {
		return nil, false
	}
	cols := make([]string, len(r.columns))
	copy(cols, r.columns)
	return cols, true
}

// Children returns a copy of the nested children, in append order.
func (r *Relation) Children() []Child {
	cs := make([]Child, len(r.children))
	copy(cs, r.children)
	return cs
}

func (r *Relation) clone() *Relation {
	c := *r
	c.columns = append([]string(nil), r.columns...)
	c.preds = append([]Predicate(nil), r.preds...)
	c.deferred = append([]DeferredPredicate(nil), r.deferred...)
	c.children = append([]Child(nil), r.children...)
	return &c
}

// Filter returns a copy with the given predicates appended.
func (r *Relation) Filter(ps ...Predicate) *Relation {
	c := r.clone()
	c.preds = append(c.preds, ps...)
	return c
}

// FilterDeferred returns a copy with a predicate that is computed only
// when the relation executes.
func (r *Relation) FilterDeferred(dp DeferredPredicate) *Relation {
	c := r.clone()
	c.deferred = append(c.deferred, dp)
	return c
}

// SelectOnly returns a copy selecting exactly the given columns. With
// no arguments, the relation contributes no output columns at all.
func (r *Relation) SelectOnly(cols ...string) *Relation {
	c := r.clone()
	c.columns = append([]string(nil), cols...)
	c.selected = true
	return c
}

// FilteringChildren returns a copy keeping only the children whose
// kind the predicate accepts.
func (r *Relation) FilteringChildren(keep func(ChildKind) bool) *Relation {
	c := r.clone()
	kept := c.children[:0:0]
	for _, ch := range c.children {
		if keep(ch.Kind) {
			kept = append(kept, ch)
		}
	}
	c.children = kept
	return c
}

// AppendingChild returns a copy with a nested child relation described
// by the association chain.
func (r *Relation) AppendingChild(a Association, kind ChildKind) *Relation {
	c := r.clone()
	c.children = append(c.children, Child{Kind: kind, Assoc: a})
	return c
}

// WithSingleRow returns a copy narrowed to at most one row.
func (r *Relation) WithSingleRow() *Relation {
	c := r.clone()
	c.singleRow = true
	return c
}

// resolve materializes every deferred predicate in the relation tree,
// including those buried in child association steps. The returned
// relation renders without touching the database again.
func (r *Relation) resolve(ctx context.Context, drv dialect.Driver) (*Relation, error) {
	c := r.clone()
	for _, dp := range c.deferred {
		p, err := dp(ctx, drv)
		if err != nil {
			return nil, err
		}
		c.preds = append(c.preds, p)
	}
	c.deferred = nil
	for i, ch := range c.children {
		steps := ch.Assoc.Steps()
		for j := range steps {
			rel, err := steps[j].Relation.resolve(ctx, drv)
			if err != nil {
				return nil, err
			}
			steps[j].Relation = rel
		}
		c.children[i] = Child{Kind: ch.Kind, Assoc: FromSteps(steps...)}
	}
	return c, nil
}

// aliases hands out table aliases t0, t1, ... within one rendering.
type aliases struct{ n int }

func (a *aliases) next() string {
	s := "t" + strconv.Itoa(a.n)
	a.n++
	return s
}

// selector renders the relation into a sql.Selector. Deferred
// predicates must have been resolved first.
func (r *Relation) selector(d string, al *aliases) *sql.Selector {
	s := sql.Select().Dialect(d).From(r.table).As(al.next())
	switch {
	case !r.selected:
		// All columns.
	case len(r.columns) == 0:
		s.SelectExpr("1")
	default:
		exprs := make([]string, len(r.columns))
		for i, c := range r.columns {
			exprs[i] = s.C(c)
		}
		s.SelectExpr(exprs...)
	}
	for _, p := range r.preds {
		p(s)
	}
	for _, ch := range r.children {
		s.Where(existsChain(d, ch.Assoc.Steps(), s, al))
	}
	if r.singleRow {
		s.Limit(1)
	}
	return s
}

// existsChain renders a child association chain as nested correlated
// EXISTS subqueries. The first step is adjacent to the parent; each
// step's condition joins its own table to the preceding one.
func existsChain(d string, steps []Step, parent *sql.Selector, al *aliases) *sql.Predicate {
	st := steps[0]
	inner := st.Relation.selector(d, al)
	inner.SelectExpr("1")
	inner.Where(st.Condition.joinPredicate(inner, parent))
	if len(steps) > 1 {
		inner.Where(existsChain(d, steps[1:], inner, al))
	}
	return sql.Exists(inner)
}

// Selector renders the relation for the given dialect. It fails if any
// deferred predicate has not been resolved, which callers do through
// the execution helpers in this package.
func (r *Relation) Selector(d string) (*sql.Selector, error) {
	if err := r.checkResolved(); err != nil {
		return nil, err
	}
	return r.selector(d, &aliases{}), nil
}

func (r *Relation) checkResolved() error {
	if len(r.deferred) > 0 {
		return errUnresolved(r.table)
	}
	for _, ch := range r.children {
		for _, st := range ch.Assoc.Steps() {
			if err := st.Relation.checkResolved(); err != nil {
				return err
			}
		}
	}
	return nil
}
