package state

import "slices"

// clone copies s. cp deep-copies each element when the type needs it.
func clone[T any](s []T, cp func(T) T) []T {
	out := make([]T, len(s))
	for i, v := range s {
		if cp != nil {
			v = cp(v)
		}
		out[i] = v
	}
	return out
}

// prepend returns a new slice with v first.
func prepend[T any](s []T, v T) []T {
	return append([]T{v}, s...)
}

func indexOf[T any](s []T, id string, idOf func(T) string) int {
	return slices.IndexFunc(s, func(v T) bool { return idOf(v) == id })
}

// update applies fn to the element with id. It reports whether one existed.
func update[T any](s []T, id string, idOf func(T) string, fn func(*T)) bool {
	i := indexOf(s, id, idOf)
	if i < 0 {
		return false
	}
	fn(&s[i])
	return true
}

// replace swaps the element with id for v in place.
func replace[T any](s []T, id string, idOf func(T) string, v T) bool {
	return update(s, id, idOf, func(p *T) { *p = v })
}

// remove drops the element with id and reports whether it was there.
func remove[T any](s []T, id string, idOf func(T) string) ([]T, bool) {
	i := indexOf(s, id, idOf)
	if i < 0 {
		return s, false
	}
	return slices.Delete(s, i, i+1), true
}
