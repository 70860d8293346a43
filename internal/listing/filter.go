package listing

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Spec tells Filter which fields of T take part in each kind of match.
type Spec[T any] struct {
	// Text fields are searched with a case-insensitive substring match; an
	// item matches when any one of them contains the search text.
	Text []func(T) string
	// Selectors map a criteria key to the field it compares against.
	// Criteria keys with no entry here are ignored.
	Selectors map[string]func(T) string
	// Normalize rewrites a criteria value into the form its selector
	// returns, for keys the API accepts in more than one spelling.
	Normalize map[string]func(string) string
	// Date is compared against Criteria.From/To, both inclusive. Items with
	// no date never match a bounded range.
	Date func(T) *time.Time
}

// Match reports whether item satisfies every active part of c.
func (s Spec[T]) Match(item T, c Criteria) bool {
	return s.compile(c)(item)
}

func (s Spec[T]) compile(c Criteria) func(T) bool {
	caser := cases.Fold()
	needle := caser.String(strings.TrimSpace(c.Search))

	type sel struct {
		get  func(T) string
		want string
	}
	sels := make([]sel, 0, len(c.Selectors))
	for key := range c.Selectors {
		want, ok := c.Selector(key)
		if !ok {
			continue
		}
		get, ok := s.Selectors[key]
		if !ok {
			continue
		}
		if norm, ok := s.Normalize[key]; ok {
			want = norm(want)
		}
		sels = append(sels, sel{get: get, want: caser.String(want)})
	}

	return func(item T) bool {
		if needle != "" {
			hit := false
			for _, f := range s.Text {
				if strings.Contains(caser.String(f(item)), needle) {
					hit = true
					break
				}
			}
			if !hit {
				return false
			}
		}
		for _, sl := range sels {
			if caser.String(strings.TrimSpace(sl.get(item))) != sl.want {
				return false
			}
		}
		if (c.From != nil || c.To != nil) && s.Date != nil {
			d := s.Date(item)
			if d == nil {
				return false
			}
			if c.From != nil && d.Before(*c.From) {
				return false
			}
			if c.To != nil && d.After(*c.To) {
				return false
			}
		}
		return true
	}
}

// Filter returns the items matching c in their original order. The input is
// never modified and the result is always a fresh slice.
func Filter[T any](items []T, spec Spec[T], c Criteria) []T {
	out := make([]T, 0, len(items))
	if !c.Active() {
		return append(out, items...)
	}
	match := spec.compile(c)
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}
