package query

import (
	"cmp"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders two rows: negative when a sorts first.
type Comparator[T any] func(a, b *T) int

// Ordered compares a plain field.
func Ordered[T any, V cmp.Ordered](get func(*T) V) Comparator[T] {
	return func(a, b *T) int { return cmp.Compare(get(a), get(b)) }
}

// NullsFirst compares a nullable field; unset values sort before set ones.
func NullsFirst[T any, V cmp.Ordered](get func(*T) *V) Comparator[T] {
	return func(a, b *T) int {
		x, y := get(a), get(b)
		switch {
		case x == nil && y == nil:
			return 0
		case x == nil:
			return -1
		case y == nil:
			return 1
		}
		return cmp.Compare(*x, *y)
	}
}

// Bools sorts false before true.
func Bools[T any](get func(*T) bool) Comparator[T] {
	return func(a, b *T) int {
		x, y := get(a), get(b)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	}
}

// Natural compares text with embedded numbers by numeric value, so "A2"
// sorts before "A10".
func Natural[T any](get func(*T) string) Comparator[T] {
	var mu sync.Mutex
	c := collate.New(language.Und, collate.Numeric)
	return func(a, b *T) int {
		mu.Lock()
		defer mu.Unlock()
		return c.CompareString(get(a), get(b))
	}
}
