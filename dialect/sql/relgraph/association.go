package relgraph

import (
	"github.com/rowandb/rowan/naming"
)

// Cardinality is the structural row-count shape of a step: whether it
// can yield at most one row per parent row, or possibly many.
type Cardinality uint8

const (
	// ToOne steps yield at most one row per parent row.
	ToOne Cardinality = iota
	// ToMany steps may yield any number of rows per parent row.
	ToMany
)

// String returns the cardinality name.
func (c Cardinality) String() string {
	if c == ToOne {
		return "to-one"
	}
	return "to-many"
}

// Step is one link of an association chain. Its condition joins its
// relation's table to the preceding step's table, or to the origin for
// a chain's first step.
type Step struct {
	Key         naming.Key
	Condition   Condition
	Relation    *Relation
	Cardinality Cardinality
}

// Singular reports the naming context of the step. A ToMany step
// narrowed to a single row reads as singular even though its
// cardinality is unchanged: cardinality describes the structural row
// shape, the single-row flag a query-level narrowing, and naming
// follows the narrowing.
func (s Step) Singular() bool {
	return s.Cardinality == ToOne || s.Relation.SingleRow()
}

// KeyName resolves the step's key under its own naming context.
func (s Step) KeyName() string {
	return s.Key.Name(s.Singular())
}

// Association is a non-empty ordered chain of steps from the outermost
// pivot to the destination. A direct association has exactly one step,
// which is both pivot and destination. Associations are immutable
// values; every transformation returns a new one.
type Association struct {
	steps []Step
}

// New returns a direct, single-step association.
func New(key naming.Key, cond Condition, rel *Relation, card Cardinality) Association {
	return Association{steps: []Step{{
		Key:         key,
		Condition:   cond,
		Relation:    rel,
		Cardinality: card,
	}}}
}

// FromSteps builds an association from an explicit chain. It panics on
// an empty chain: an association without steps is a programming error,
// not a recoverable condition, and every construction path enforces
// it.
func FromSteps(steps ...Step) Association {
	if len(steps) == 0 {
		panic("relgraph: association requires at least one step")
	}
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return Association{steps: cp}
}

// Len returns the number of steps in the chain.
func (a Association) Len() int { return len(a.steps) }

// Steps returns a copy of the chain, pivot first.
func (a Association) Steps() []Step {
	steps := make([]Step, len(a.steps))
	copy(steps, a.steps)
	return steps
}

// Pivot returns the first step of the chain.
func (a Association) Pivot() Step { return a.steps[0] }

// Destination returns the last step of the chain.
func (a Association) Destination() Step { return a.steps[len(a.steps)-1] }

// WithDestinationKey returns a copy whose destination key is replaced.
func (a Association) WithDestinationKey(k naming.Key) Association {
	steps := a.Steps()
	steps[len(steps)-1].Key = k
	return Association{steps: steps}
}

// Through returns a new association whose chain is the prefix
// association's steps followed by this one's. It is how "through"
// associations compose: origin-has-many-destination through pivot is
// the pivot chain prepended to the pivot-to-destination chain.
func (a Association) Through(prefix Association) Association {
	steps := make([]Step, 0, len(prefix.steps)+len(a.steps))
	steps = append(steps, prefix.steps...)
	steps = append(steps, a.steps...)
	return Association{steps: steps}
}

// ForFirst returns a copy narrowed to at most one destination row:
// every ToMany step's relation gets the single-row flag, ToOne steps
// pass through unchanged. Cardinality tags are untouched.
func (a Association) ForFirst() Association {
	steps := a.Steps()
	for i, st := range steps {
		if st.Cardinality == ToMany {
			steps[i].Relation = st.Relation.WithSingleRow()
		}
	}
	return Association{steps: steps}
}

// KeyPath returns the resolved name of every step in chain order.
// Used for diagnostics and decoding paths.
func (a Association) KeyPath() []string {
	path := make([]string, len(a.steps))
	for i, st := range a.steps {
		path[i] = st.KeyName()
	}
	return path
}

// DestinationKeyName resolves the name under which the association's
// results are exposed.
func (a Association) DestinationKeyName() string {
	return a.Destination().KeyName()
}
