package query

import (
	"strings"

	"golang.org/x/text/cases"
)

// Predicate reports whether a row passes a filter.
type Predicate[T any] func(*T) bool

// And accepts a row when every non-nil predicate does.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v *T) bool {
		for _, p := range preds {
			if p != nil && !p(v) {
				return false
			}
		}
		return true
	}
}

// Equals accepts rows whose field equals want.
func Equals[T any, V comparable](get func(*T) V, want V) Predicate[T] {
	return func(v *T) bool { return get(v) == want }
}

// PtrEquals accepts rows whose nullable field is set and equals want.
func PtrEquals[T any, V comparable](get func(*T) *V, want V) Predicate[T] {
	return func(v *T) bool {
		p := get(v)
		return p != nil && *p == want
	}
}

// ContainsFold accepts rows whose field contains needle, ignoring case. An
// empty needle accepts everything.
func ContainsFold[T any](get func(*T) string, needle string) Predicate[T] {
	if needle == "" {
		return nil
	}
	fold := cases.Fold()
	want := fold.String(needle)
	return func(v *T) bool {
		return strings.Contains(fold.String(get(v)), want)
	}
}

// All is the filter value that disables a filter.
const All = "all"

// Optional builds a predicate from value unless value is empty or "all",
// in which case the filter is off and Optional returns nil.
func Optional[T any](value string, build func(string) Predicate[T]) Predicate[T] {
	if value == "" || value == All {
		return nil
	}
	return build(value)
}
