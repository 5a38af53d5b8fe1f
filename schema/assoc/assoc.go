package assoc

import (
	"github.com/rowandb/rowan/dialect/sql/relgraph"
	"github.com/rowandb/rowan/naming"
)

// Table identifies a database table and its primary key columns.
type Table struct {
	name string
	pk   []string
}

// T returns a table descriptor. Without explicit primary key columns
// the conventional "id" is assumed.
func T(name string, pk ...string) Table {
	if len(pk) == 0 {
		pk = []string{"id"}
	}
	return Table{name: name, pk: pk}
}

// Name returns the table name.
func (t Table) Name() string { return t.name }

// PrimaryKey returns the primary key columns.
func (t Table) PrimaryKey() []string {
	pk := make([]string, len(t.pk))
	copy(pk, t.pk)
	return pk
}

// Relation returns a relation selecting all rows of the table.
func (t Table) Relation() *relgraph.Relation {
	return relgraph.NewRelation(t.name)
}

// foreignKey returns the conventional foreign key columns referencing
// the table: its singularized name joined to each primary key column.
func (t Table) foreignKey() []string {
	base := naming.Singularize(t.name)
	fk := make([]string, len(t.pk))
	for i, c := range t.pk {
		fk[i] = base + "_" + c
	}
	return fk
}

// Option configures an association builder.
type Option func(*config)

type config struct {
	fk  []string
	key *naming.Key
}

// WithForeignKey overrides the conventional foreign key columns. The
// columns pair positionally with the referenced primary key.
func WithForeignKey(cols ...string) Option {
	return func(c *config) { c.fk = cols }
}

// WithKey overrides the conventional association key.
func WithKey(k naming.Key) Option {
	return func(c *config) { c.key = &k }
}

func build(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func condition(own, parent []string) relgraph.Condition {
	cond := relgraph.OnColumns(own[0], parent[0])
	for i := 1; i < len(own); i++ {
		cond = cond.AndColumns(own[i], parent[i])
	}
	return cond
}

// HasMany declares a one-to-many association from t to dest. By
// convention dest carries a foreign key named after t's singularized
// name, and the association is exposed under dest's inflected table
// name.
//
//	authors := assoc.T("authors")
//	books := authors.HasMany(assoc.T("books")) // books.author_id
func (t Table) HasMany(dest Table, opts ...Option) relgraph.Association {
	c := build(opts)
	fk := c.fk
	if fk == nil {
		fk = t.foreignKey()
	}
	key := naming.Inflected(dest.name)
	if c.key != nil {
		key = *c.key
	}
	return relgraph.New(key, condition(fk, t.pk), dest.Relation(), relgraph.ToMany)
}

// HasOne declares a one-to-one association from t to dest, with the
// foreign key on dest's side, exposed under dest's singularized name.
func (t Table) HasOne(dest Table, opts ...Option) relgraph.Association {
	c := build(opts)
	fk := c.fk
	if fk == nil {
		fk = t.foreignKey()
	}
	key := naming.Inflected(naming.Singularize(dest.name))
	if c.key != nil {
		key = *c.key
	}
	return relgraph.New(key, condition(fk, t.pk), dest.Relation(), relgraph.ToOne)
}

// BelongsTo declares a to-one association from t to dest, with the
// foreign key on t's own side, exposed under dest's singularized name.
//
//	books := assoc.T("books")
//	author := books.BelongsTo(assoc.T("authors")) // books.author_id
func (t Table) BelongsTo(dest Table, opts ...Option) relgraph.Association {
	c := build(opts)
	fk := c.fk
	if fk == nil {
		fk = dest.foreignKey()
	}
	key := naming.Inflected(naming.Singularize(dest.name))
	if c.key != nil {
		key = *c.key
	}
	return relgraph.New(key, condition(dest.pk, fk), dest.Relation(), relgraph.ToOne)
}

// Through composes an association reached through a pivot association:
// the pivot chain is walked first, then the target chain. The result
// is exposed under the target's key.
//
//	countries := assoc.T("countries")
//	passports := countries.HasMany(assoc.T("passports"))
//	citizens := assoc.Through(passports, assoc.T("passports").BelongsTo(assoc.T("citizens")))
func Through(pivot, target relgraph.Association) relgraph.Association {
	return target.Through(pivot)
}

// First narrows an association to at most one destination row. A
// narrowed to-many association reads as singular.
func First(a relgraph.Association) relgraph.Association {
	return a.ForFirst()
}
