package sql

// PredicateFunc is a constraint for predicate function types, allowing
// the generic field types below to produce any predicate type based on
// func(*Selector).
type PredicateFunc interface {
	~func(*Selector)
}

// StringField is a generic string field with type-safe predicate
// methods. Declaring the field once gives every comparison for free:
//
//	var Title = sql.StringField[func(*sql.Selector)]("title")
//	rel.Filter(Title.Contains("Moby"))
type StringField[P PredicateFunc] string

// Name returns the field name.
func (f StringField[P]) Name() string { return string(f) }

// EQ checks the field equals the given value.
func (f StringField[P]) EQ(v string) P { return P(FieldEQ(string(f), v)) }

// NEQ checks the field does not equal the given value.
func (f StringField[P]) NEQ(v string) P { return P(FieldNEQ(string(f), v)) }

// In checks the field value is in the given list.
func (f StringField[P]) In(vs ...string) P { return P(FieldIn(string(f), vs...)) }

// NotIn checks the field value is not in the given list.
func (f StringField[P]) NotIn(vs ...string) P { return P(FieldNotIn(string(f), vs...)) }

// Contains checks the field contains the given substring.
func (f StringField[P]) Contains(v string) P { return P(FieldContains(string(f), v)) }

// HasPrefix checks the field starts with the given prefix.
func (f StringField[P]) HasPrefix(v string) P { return P(FieldHasPrefix(string(f), v)) }

// HasSuffix checks the field ends with the given suffix.
func (f StringField[P]) HasSuffix(v string) P { return P(FieldHasSuffix(string(f), v)) }

// IsNull checks the field is NULL.
func (f StringField[P]) IsNull() P { return P(FieldIsNull(string(f))) }

// NotNull checks the field is not NULL.
func (f StringField[P]) NotNull() P { return P(FieldNotNull(string(f))) }

// Int64Field is a generic integer field with type-safe predicate methods.
type Int64Field[P PredicateFunc] string

// Name returns the field name.
func (f Int64Field[P]) Name() string { return string(f) }

// EQ checks the field equals the given value.
func (f Int64Field[P]) EQ(v int64) P { return P(FieldEQ(string(f), v)) }

// NEQ checks the field does not equal the given value.
func (f Int64Field[P]) NEQ(v int64) P { return P(FieldNEQ(string(f), v)) }

// In checks the field value is in the given list.
func (f Int64Field[P]) In(vs ...int64) P { return P(FieldIn(string(f), vs...)) }

// NotIn checks the field value is not in the given list.
func (f Int64Field[P]) NotIn(vs ...int64) P { return P(FieldNotIn(string(f), vs...)) }

// GT checks the field is greater than the given value.
func (f Int64Field[P]) GT(v int64) P { return P(FieldGT(string(f), v)) }

// GTE checks the field is greater than or equal to the given value.
func (f Int64Field[P]) GTE(v int64) P { return P(FieldGTE(string(f), v)) }

// LT checks the field is less than the given value.
func (f Int64Field[P]) LT(v int64) P { return P(FieldLT(string(f), v)) }

// LTE checks the field is less than or equal to the given value.
func (f Int64Field[P]) LTE(v int64) P { return P(FieldLTE(string(f), v)) }

// IsNull checks the field is NULL.
func (f Int64Field[P]) IsNull() P { return P(FieldIsNull(string(f))) }

// NotNull checks the field is not NULL.
func (f Int64Field[P]) NotNull() P { return P(FieldNotNull(string(f))) }

// BoolField is a generic boolean field with type-safe predicate methods.
type BoolField[P PredicateFunc] string

// Name returns the field name.
func (f BoolField[P]) Name() string { return string(f) }

// EQ checks the field equals the given value.
func (f BoolField[P]) EQ(v bool) P { return P(FieldEQ(string(f), v)) }

// NEQ checks the field does not equal the given value.
func (f BoolField[P]) NEQ(v bool) P { return P(FieldNEQ(string(f), v)) }

// OtherField is a generic field for custom types (UUIDs, enums, time
// values) with the basic predicate methods.
type OtherField[P PredicateFunc, T any] string

// Name returns the field name.
func (f OtherField[P, T]) Name() string { return string(f) }

// EQ checks the field equals the given value.
func (f OtherField[P, T]) EQ(v T) P { return P(FieldEQ(string(f), v)) }

// NEQ checks the field does not equal the given value.
func (f OtherField[P, T]) NEQ(v T) P { return P(FieldNEQ(string(f), v)) }

// In checks the field value is in the given list.
func (f OtherField[P, T]) In(vs ...T) P { return P(FieldIn(string(f), vs...)) }

// NotIn checks the field value is not in the given list.
func (f OtherField[P, T]) NotIn(vs ...T) P { return P(FieldNotIn(string(f), vs...)) }

// IsNull checks the field is NULL.
func (f OtherField[P, T]) IsNull() P { return P(FieldIsNull(string(f))) }

// NotNull checks the field is not NULL.
func (f OtherField[P, T]) NotNull() P { return P(FieldNotNull(string(f))) }
