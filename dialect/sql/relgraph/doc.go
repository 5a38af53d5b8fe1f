// Package relgraph models associations between tables as ordered
// chains of joins and resolves them into executable SQL.
//
// An Association is a non-empty chain of steps from an outermost pivot
// table to a destination table; each step carries a naming key, a join
// condition against the preceding table, the relation it selects from,
// and a cardinality. Chains compose with Through, narrow with
// ForFirst, and resolve with DestinationRelation, which rewrites any
// intermediate hops into a destination-rooted chain walking back
// toward the origin rows.
//
// A Relation is an immutable description of a query over one table.
// Resolved relations render to dialect/sql selectors; nested children
// become correlated EXISTS subqueries. The execution helpers (AllRows,
// OneRow, FirstRow, CachedRows, LoadAll) resolve deferred origin
// filters and run the query through a dialect.Driver.
package relgraph
