package listing

import (
	"sort"
	"time"
)

type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Count is the number of items satisfying pred.
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return n
}

// First returns the first item satisfying pred, in collection order.
func First[T any](items []T, pred func(T) bool) (T, bool) {
	for _, it := range items {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// CountBy groups items by key and counts each group.
func CountBy[T any, K comparable](items []T, key func(T) K) map[K]int {
	out := make(map[K]int)
	for _, it := range items {
		out[key(it)]++
	}
	return out
}

func Sum[T any, N Number](items []T, val func(T) N) N {
	var total N
	for _, it := range items {
		total += val(it)
	}
	return total
}

// Latest returns up to n items ordered by date, newest first. Ties keep
// collection order.
func Latest[T any](items []T, date func(T) time.Time, n int) []T {
	if n <= 0 || len(items) == 0 {
		return []T{}
	}
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return date(sorted[i]).After(date(sorted[j]))
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Earliest is Latest in the other direction, restricted to items on or after since.
func Earliest[T any](items []T, date func(T) time.Time, since time.Time, n int) []T {
	if n <= 0 {
		return []T{}
	}
	upcoming := make([]T, 0, len(items))
	for _, it := range items {
		if !date(it).Before(since) {
			upcoming = append(upcoming, it)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return date(upcoming[i]).Before(date(upcoming[j]))
	})
	if len(upcoming) > n {
		upcoming = upcoming[:n]
	}
	return upcoming
}
