package listing

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"adminhub/internal/domain"
)

const (
	ParamSearch = "q"
	ParamFrom   = "from"
	ParamTo     = "to"
)

// Criteria is the value a list page edits while the user types: a free-text
// search, exact-match selectors keyed by name and an optional date range.
// The zero value matches everything.
type Criteria struct {
	Search    string
	Selectors map[string]string
	From      *time.Time
	To        *time.Time
}

// With returns a copy of c with selector key set to value. An empty value
// clears the selector.
func (c Criteria) With(key, value string) Criteria {
	out := c
	out.Selectors = make(map[string]string, len(c.Selectors)+1)
	for k, v := range c.Selectors {
		out.Selectors[k] = v
	}
	value = strings.TrimSpace(value)
	if value == "" {
		delete(out.Selectors, key)
	} else {
		out.Selectors[key] = value
	}
	return out
}

// WithSearch returns a copy of c with the search text replaced.
func (c Criteria) WithSearch(s string) Criteria {
	out := c
	out.Search = s
	return out
}

// Selector returns the trimmed value of key and whether it is set.
func (c Criteria) Selector(key string) (string, bool) {
	v := strings.TrimSpace(c.Selectors[key])
	return v, v != ""
}

// Active reports whether any field would narrow a collection.
func (c Criteria) Active() bool {
	if strings.TrimSpace(c.Search) != "" || c.From != nil || c.To != nil {
		return true
	}
	for _, v := range c.Selectors {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// Key is a deterministic encoding of c, used for memoization and cache keys.
// Two criteria that filter identically produce the same key.
func (c Criteria) Key() string {
	return c.Values().Encode()
}

// Values renders c as query parameters. Unset fields are omitted.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(c.Search); s != "" {
		v.Set(ParamSearch, s)
	}
	keys := make([]string, 0, len(c.Selectors))
	for k := range c.Selectors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if val, ok := c.Selector(k); ok {
			v.Set(k, val)
		}
	}
	if c.From != nil {
		v.Set(ParamFrom, c.From.UTC().Format(time.RFC3339Nano))
	}
	if c.To != nil {
		v.Set(ParamTo, c.To.UTC().Format(time.RFC3339Nano))
	}
	return v
}

// ParseCriteria reads criteria from query parameters. Only the named selector
// keys are picked up; anything else in q is ignored.
func ParseCriteria(q url.Values, selectorKeys ...string) (Criteria, error) {
	c := Criteria{
		Search:    strings.TrimSpace(q.Get(ParamSearch)),
		Selectors: map[string]string{},
	}
	for _, k := range selectorKeys {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			c.Selectors[k] = v
		}
	}
	if raw := strings.TrimSpace(q.Get(ParamFrom)); raw != "" {
		t, err := ParseBound(raw, false)
		if err != nil {
			return Criteria{}, err
		}
		c.From = &t
	}
	if raw := strings.TrimSpace(q.Get(ParamTo)); raw != "" {
		t, err := ParseBound(raw, true)
		if err != nil {
			return Criteria{}, err
		}
		c.To = &t
	}
	if c.From != nil && c.To != nil && c.To.Before(*c.From) {
		return Criteria{}, domain.ValidationError{Field: ParamTo, Msg: "bitiş tarihi başlangıçtan önce olamaz"}
	}
	return c, nil
}

// ParseBound accepts RFC3339 or YYYY-MM-DD. A bare date used as an upper
// bound covers the whole day.
func ParseBound(raw string, upper bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, domain.ValidationError{Field: "date", Msg: fmt.Sprintf("tarih biçimi geçersiz: %q", raw), Err: err}
	}
	if upper {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}
