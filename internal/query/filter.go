package query

import (
	"strings"
	"time"
)

// Operator is a store-neutral comparison.
type Operator int

const (
	// OpEq matches the field value exactly, case-sensitive.
	OpEq Operator = iota + 1
	// OpEqFold matches the whole field value case-insensitively (anchored).
	OpEqFold
	// OpContainsFold matches a case-insensitive substring.
	OpContainsFold
	// OpGte matches field >= value.
	OpGte
	// OpLte matches field <= value.
	OpLte
	// OpHas matches when value is an element of an array field.
	OpHas
)

func (o Operator) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpEqFold:
		return "eq_fold"
	case OpContainsFold:
		return "contains_fold"
	case OpGte:
		return "gte"
	case OpLte:
		return "lte"
	case OpHas:
		return "has"
	default:
		return "unknown"
	}
}

// Condition is a single field predicate.
type Condition struct {
	Field string
	Op    Operator
	Value any
}

// Clause is a disjunction of conditions.
type Clause []Condition

// Filter is a conjunction of clauses. The empty filter matches everything.
type Filter []Clause

// MatchAll reports whether the filter has no predicates.
func (f Filter) MatchAll() bool {
	return len(f) == 0
}

// FilterBuilder accumulates clauses. Methods given an empty value add nothing.
type FilterBuilder struct {
	clauses []Clause
}

// NewFilterBuilder returns an empty builder.
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{}
}

// Search ORs a case-insensitive substring match across fields.
func (b *FilterBuilder) Search(fields []string, term string) *FilterBuilder {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return b
	}
	clause := make(Clause, 0, len(fields))
	for _, field := range fields {
		clause = append(clause, Condition{Field: field, Op: OpContainsFold, Value: term})
	}
	b.clauses = append(b.clauses, clause)
	return b
}

// Equal adds an exact, case-sensitive match.
func (b *FilterBuilder) Equal(field, value string) *FilterBuilder {
	return b.single(field, OpEq, value)
}

// EqualFold adds an anchored, case-insensitive match.
func (b *FilterBuilder) EqualFold(field, value string) *FilterBuilder {
	return b.single(field, OpEqFold, value)
}

// Has adds an array membership test.
func (b *FilterBuilder) Has(field, value string) *FilterBuilder {
	return b.single(field, OpHas, value)
}

// Range adds >= from and <= to for whichever bounds are set.
func (b *FilterBuilder) Range(field string, from, to *time.Time) *FilterBuilder {
	if from != nil {
		b.clauses = append(b.clauses, Clause{{Field: field, Op: OpGte, Value: *from}})
	}
	if to != nil {
		b.clauses = append(b.clauses, Clause{{Field: field, Op: OpLte, Value: *to}})
	}
	return b
}

// AnyOf adds one clause satisfied when any of the conditions holds.
func (b *FilterBuilder) AnyOf(conditions ...Condition) *FilterBuilder {
	if len(conditions) == 0 {
		return b
	}
	b.clauses = append(b.clauses, Clause(conditions))
	return b
}

// Build returns the accumulated filter.
func (b *FilterBuilder) Build() Filter {
	out := make(Filter, len(b.clauses))
	copy(out, b.clauses)
	return out
}

// anyOfValue fills value into each template and adds them as one clause.
func (b *FilterBuilder) anyOfValue(value string, templates ...Condition) *FilterBuilder {
	value = strings.TrimSpace(value)
	if value == "" {
		return b
	}
	clause := make(Clause, len(templates))
	for i, tmpl := range templates {
		tmpl.Value = value
		clause[i] = tmpl
	}
	return b.AnyOf(clause...)
}

func (b *FilterBuilder) single(field string, op Operator, value string) *FilterBuilder {
	value = strings.TrimSpace(value)
	if value == "" {
		return b
	}
	b.clauses = append(b.clauses, Clause{{Field: field, Op: op, Value: value}})
	return b
}
