// Package rowan provides the shared surface of the rowan query engine:
// sentinel errors, error wrappers, and the result-cache contract.
//
// The engine itself lives under dialect/sql/relgraph, which models
// associations between tables as ordered chains of joins and resolves
// them into executable SQL. The schema/assoc package offers the
// declarative builders most applications start from.
package rowan
