// Package assoc provides declarative builders for table associations.
//
// Associations connect tables through foreign keys. The builders
// follow the conventional naming scheme: a foreign key is the
// singularized referenced table name joined to its primary key column.
//
// # Association Types
//
//	authors := assoc.T("authors")
//	books := assoc.T("books")
//
//	// One-to-Many: Author has many Books (books.author_id)
//	authors.HasMany(books)
//
//	// One-to-One: Author has one Biography
//	authors.HasOne(assoc.T("biographies"))
//
//	// Many-to-One: Book belongs to Author (books.author_id)
//	books.BelongsTo(authors)
//
// # Through Associations
//
// Indirect associations compose through pivot tables:
//
//	countries := assoc.T("countries")
//	passports := countries.HasMany(assoc.T("passports"))
//	citizens := assoc.Through(passports,
//		assoc.T("passports").BelongsTo(assoc.T("citizens")))
//
// # Customization
//
// Conventional names can be overridden per association:
//
//	authors.HasMany(books,
//		assoc.WithForeignKey("writer_id"),
//		assoc.WithKey(naming.FixedPlural("works")))
package assoc
