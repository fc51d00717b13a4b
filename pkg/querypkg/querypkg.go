// Package querypkg provides a store-agnostic filter condition algebra.
//
// Conditions name logical fields only. Storage adapters translate them into
// their native query form at the boundary.
package querypkg

import (
	"strings"
	"time"
)

// Field is a logical field name of an entity, e.g. "email" or "user.email".
type Field string

// Condition is a filter predicate.
// It is one of Contains, Equals, Between, And or Or.
type Condition interface {
	condition()
}

// Contains matches records whose field contains Text, ignoring case.
type Contains struct {
	Field Field
	Text  string
}

// Equals matches records whose field is exactly Value.
type Equals struct {
	Field Field
	Value any
}

// Between matches records whose time field lies in [From, To].
type Between struct {
	Field Field
	From  time.Time
	To    time.Time
}

// And matches records matching all of its conditions. An empty And matches everything.
type And []Condition

// Or matches records matching any of its conditions. An empty Or matches nothing.
type Or []Condition

func (Contains) condition() {}
func (Equals) condition()   {}
func (Between) condition()  {}
func (And) condition()      {}
func (Or) condition()       {}

// All returns the condition matching every record.
func All() Condition {
	return And{}
}

// Spec describes how a collection can be searched and filtered.
type Spec struct {
	// Search lists the fields a search text is looked up in.
	Search []Field
	// Filters lists the categorical fields that accept exact-match filters.
	Filters []Field
}

// Build returns the condition for the given search text and filters.
//
// A blank search or filter value imposes no constraint, as does a filter on a
// field the spec does not list. A search that is not blank is matched as given.
func (s Spec) Build(search string, filters map[Field]string) Condition {
	cond := And{}

	if strings.TrimSpace(search) != "" && len(s.Search) > 0 {
		or := make(Or, 0, len(s.Search))
		for _, f := range s.Search {
			or = append(or, Contains{Field: f, Text: search})
		}

		cond = append(cond, or)
	}

	for _, f := range s.Filters {
		if v := filters[f]; v != "" {
			cond = append(cond, Equals{Field: f, Value: v})
		}
	}

	return cond
}
