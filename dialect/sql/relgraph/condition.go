package relgraph

import (
	"github.com/rowandb/rowan/dialect/sql"
)

// ColumnPair is one column equality of a join condition. Own is the
// column on the step's own table; Parent is the column on the
// preceding table in the chain (the origin, for a chain's first step).
type ColumnPair struct {
	Own    string
	Parent string
}

// Condition is a foreign-key join condition between a step's table and
// the preceding one, as an ordered list of column pairs. Column names
// are unqualified; they are rendered against whichever tables the
// condition ends up joining, which is what keeps a condition valid for
// the relation it was declared with.
type Condition struct {
	pairs []ColumnPair
}

// OnColumns returns a condition equating the step's own column with a
// column of the preceding table.
func OnColumns(own, parent string) Condition {
	return Condition{pairs: []ColumnPair{{Own: own, Parent: parent}}}
}

// AndColumns returns a copy of the condition with an additional column
// pair, for composite foreign keys.
func (c Condition) AndColumns(own, parent string) Condition {
	pairs := make([]ColumnPair, len(c.pairs), len(c.pairs)+1)
	copy(pairs, c.pairs)
	return Condition{pairs: append(pairs, ColumnPair{Own: own, Parent: parent})}
}

// Pairs returns a copy of the condition's column pairs.
func (c Condition) Pairs() []ColumnPair {
	pairs := make([]ColumnPair, len(c.pairs))
	copy(pairs, c.pairs)
	return pairs
}

// Reversed returns the condition with the roles of its two sides
// swapped. Reversing twice yields a condition that filters
// identically to the original.
func (c Condition) Reversed() Condition {
	pairs := make([]ColumnPair, len(c.pairs))
	for i, p := range c.pairs {
		pairs[i] = ColumnPair{Own: p.Parent, Parent: p.Own}
	}
	return Condition{pairs: pairs}
}

// FilteringPredicate renders the condition as a filter on the step's
// own table given a fixed set of parent-side rows: `own = v` for one
// row, `own IN (...)` for several, FALSE for none. Composite-key
// conditions expand to one equality group per row.
func (c Condition) FilteringPredicate(rows []Row) Predicate {
	if len(rows) == 0 {
		return func(s *sql.Selector) { s.Where(sql.False()) }
	}
	if len(c.pairs) == 1 {
		p := c.pairs[0]
		if len(rows) == 1 {
			return sql.FieldEQ(p.Own, rows[0][p.Parent])
		}
		vs := make([]any, len(rows))
		for i, row := range rows {
			vs[i] = row[p.Parent]
		}
		return sql.FieldIn(p.Own, vs...)
	}
	pairs := c.Pairs()
	return func(s *sql.Selector) {
		groups := make([]*sql.Predicate, len(rows))
		for i, row := range rows {
			eqs := make([]*sql.Predicate, len(pairs))
			for j, p := range pairs {
				eqs[j] = sql.EQ(s.C(p.Own), row[p.Parent])
			}
			groups[i] = sql.And(eqs...)
		}
		s.Where(sql.Or(groups...))
	}
}

// joinPredicate renders the column equalities between the step's own
// selector and its parent selector.
func (c Condition) joinPredicate(own, parent *sql.Selector) *sql.Predicate {
	eqs := make([]*sql.Predicate, len(c.pairs))
	for i, p := range c.pairs {
		eqs[i] = sql.ColumnsEQ(own.C(p.Own), parent.C(p.Parent))
	}
	return sql.And(eqs...)
}
