package relgraph

import (
	"context"
	"slices"

	"github.com/rowandb/rowan/dialect"
)

// reservedKeyPrefix marks keys of reversed join-through steps so they
// can never collide with user-declared keys.
const reservedKeyPrefix = "rowan_"

// DestinationRelation resolves the association into a relation rooted
// at the destination table, filtered to rows reachable from the given
// origin rows. The origin filter stays deferred until execution.
//
// For a direct association the result is the pivot relation itself,
// filtered by the pivot condition over the origins. For longer chains
// the intermediate hops are reversed: walking origin-to-destination is
// rewritten as a destination-rooted chain walking back toward the
// origin, attached as a required child so that only destination rows
// with a complete path back to an origin row survive.
func (a Association) DestinationRelation(origins RowsProvider) *Relation {
	pivot := a.Pivot()
	filtered := pivot.Relation.FilterDeferred(func(ctx context.Context, drv dialect.Driver) (Predicate, error) {
		rows, err := origins(ctx, drv)
		if err != nil {
			return nil, err
		}
		return pivot.Condition.FilteringPredicate(rows), nil
	})
	if a.Len() == 1 {
		return filtered
	}

	steps := a.Steps()
	steps[0].Relation = filtered
	reversed := make([]Step, 0, len(steps)-1)
	for i := 0; i < len(steps)-1; i++ {
		next := steps[i+1]
		reversed = append(reversed, Step{
			Key:       steps[i].Key.WithPrefix(reservedKeyPrefix),
			Condition: next.Condition.Reversed(),
			Relation: steps[i].Relation.
				SelectOnly().
				FilteringChildren(func(k ChildKind) bool { return k == RequireOne }),
			Cardinality: ToOne,
		})
	}
	slices.Reverse(reversed)

	return a.Destination().Relation.AppendingChild(FromSteps(reversed...), RequireOne)
}
