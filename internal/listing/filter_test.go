package listing

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID       int
	Name     string
	Code     string
	Category string
	Status   string
	When     *time.Time
}

func day(s string) *time.Time {
	t, _ := time.ParseInLocation("2006-01-02", s, time.Local)
	return &t
}

var itemSpec = Spec[item]{
	Text: []func(item) string{
		func(i item) string { return i.Name },
		func(i item) string { return i.Code },
	},
	Selectors: map[string]func(item) string{
		"categoryId": func(i item) string { return i.Category },
		"status":     func(i item) string { return i.Status },
	},
	Date: func(i item) *time.Time { return i.When },
}

func sample() []item {
	return []item{
		{ID: 1, Name: "Dell Laptop", Code: "DMB-001", Category: "1", Status: "1", When: day("2024-01-10")},
		{ID: 2, Name: "HP Yazıcı", Code: "DMB-002", Category: "2", Status: "2", When: day("2024-02-01")},
		{ID: 3, Name: "Projeksiyon", Code: "PRJ-003", Category: "1", Status: "3"},
		{ID: 4, Name: "İŞLEMCİ Kartı", Code: "ELK-004", Category: "3", Status: "1", When: day("2024-03-15")},
	}
}

func ids(items []item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFilterIdentityWhenNothingActive(t *testing.T) {
	in := sample()
	for _, c := range []Criteria{
		{},
		{Search: "   "},
		{Selectors: map[string]string{"status": "", "categoryId": " "}},
	} {
		out := Filter(in, itemSpec, c)
		assert.Equal(t, in, out)
	}
	assert.NotNil(t, Filter([]item(nil), itemSpec, Criteria{}))
}

func TestFilterSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	in := sample()
	for _, s := range []string{"dmb", "LAPTOP", "elk-", "a", "zzz", "kartı"} {
		out := Filter(in, itemSpec, Criteria{Search: s})
		matched := map[int]bool{}
		for _, it := range out {
			matched[it.ID] = true
			assert.True(t, itemSpec.Match(it, Criteria{Search: s}), "search %q item %d", s, it.ID)
		}
		for _, it := range in {
			if !matched[it.ID] {
				assert.False(t, itemSpec.Match(it, Criteria{Search: s}), "search %q item %d", s, it.ID)
			}
		}
	}
	assert.Equal(t, []int{1, 2}, ids(Filter(in, itemSpec, Criteria{Search: "dmb"})))
	assert.Empty(t, Filter(in, itemSpec, Criteria{Search: "zzz"}))
}

func TestFilterConjunctionPreservesOrder(t *testing.T) {
	in := sample()
	c := Criteria{}.With("categoryId", "1")
	assert.Equal(t, []int{1, 3}, ids(Filter(in, itemSpec, c)))

	c = c.With("status", "3")
	assert.Equal(t, []int{3}, ids(Filter(in, itemSpec, c)))

	c = c.WithSearch("laptop")
	assert.Empty(t, Filter(in, itemSpec, c))

	// clearing a selector widens again
	c = c.With("status", "")
	assert.Equal(t, []int{1}, ids(Filter(in, itemSpec, c)))
}

func TestFilterStatusScenario(t *testing.T) {
	in := []item{
		{ID: 1, Name: "A", Status: "1"},
		{ID: 2, Name: "B", Status: "2"},
		{ID: 3, Name: "C", Status: "3"},
	}
	assert.Equal(t, []int{1}, ids(Filter(in, itemSpec, Criteria{}.With("status", "1"))))
	assert.Len(t, Filter(in, itemSpec, Criteria{Search: ""}), 3)
}

func TestFilterNormalizesSelectorValue(t *testing.T) {
	names := map[string]string{"available": "1", "assigned": "2", "maintenance": "3"}
	spec := itemSpec
	spec.Normalize = map[string]func(string) string{
		"status": func(v string) string {
			if code, ok := names[strings.ToLower(v)]; ok {
				return code
			}
			return v
		},
	}
	in := sample()
	byName := Filter(in, spec, Criteria{}.With("status", "Available"))
	byCode := Filter(in, spec, Criteria{}.With("status", "1"))
	assert.Equal(t, []int{1, 4}, ids(byName))
	assert.Equal(t, ids(byCode), ids(byName))
	assert.True(t, spec.Match(in[2], Criteria{}.With("status", "MAINTENANCE")))
	assert.Empty(t, Filter(in, spec, Criteria{}.With("status", "lost")))
}

func TestFilterUnknownSelectorIgnored(t *testing.T) {
	in := sample()
	out := Filter(in, itemSpec, Criteria{}.With("nope", "x"))
	assert.Len(t, out, len(in))
}

func TestFilterDateRangeInclusive(t *testing.T) {
	in := sample()
	from := *day("2024-01-10")
	to := *day("2024-02-01")
	out := Filter(in, itemSpec, Criteria{From: &from, To: &to})
	assert.Equal(t, []int{1, 2}, ids(out))

	out = Filter(in, itemSpec, Criteria{From: day("2024-02-02")})
	assert.Equal(t, []int{4}, ids(out))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := sample()
	before := ids(in)
	_ = Filter(in, itemSpec, Criteria{Search: "dmb"})
	assert.Equal(t, before, ids(in))
}

func TestParseCriteria(t *testing.T) {
	q := url.Values{}
	q.Set("q", "  laptop ")
	q.Set("status", "1")
	q.Set("other", "x")
	q.Set("from", "2024-01-01")
	q.Set("to", "2024-01-31")

	c, err := ParseCriteria(q, "status", "categoryId")
	require.NoError(t, err)
	assert.Equal(t, "laptop", c.Search)
	assert.Equal(t, map[string]string{"status": "1"}, c.Selectors)
	require.NotNil(t, c.From)
	require.NotNil(t, c.To)
	assert.Equal(t, 31, c.To.Day())
	assert.Equal(t, 23, c.To.Hour())

	_, err = ParseCriteria(url.Values{"from": {"yesterday"}})
	assert.Error(t, err)

	_, err = ParseCriteria(url.Values{"from": {"2024-02-01"}, "to": {"2024-01-01"}})
	assert.Error(t, err)
}

func TestCriteriaKeyIsDeterministic(t *testing.T) {
	a := Criteria{Search: "x"}.With("b", "2").With("a", "1")
	b := Criteria{Search: "x"}.With("a", "1").With("b", "2")
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), a.With("a", "3").Key())
	assert.Equal(t, "", Criteria{}.Key())
	assert.False(t, Criteria{}.Active())
	assert.True(t, a.Active())
}
