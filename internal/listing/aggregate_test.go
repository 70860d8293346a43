package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type assignment struct {
	ID       int
	Type     int
	Returned bool
	At       time.Time
}

func TestCountsAreBoundedByTotal(t *testing.T) {
	in := sample()
	byStatus := CountBy(in, func(i item) string { return i.Status })
	sum := 0
	for _, n := range byStatus {
		assert.GreaterOrEqual(t, n, 0)
		sum += n
	}
	assert.Equal(t, len(in), sum)

	a := Count(in, func(i item) bool { return i.Status == "1" })
	b := Count(in, func(i item) bool { return i.Status == "2" })
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)
	assert.LessOrEqual(t, a+b, len(in))
	assert.Equal(t, 0, Count([]item{}, func(item) bool { return true }))
}

func TestFirstOnEmptyCollection(t *testing.T) {
	active := func(a assignment) bool { return a.Type == 1 && !a.Returned }

	_, ok := First([]assignment{}, active)
	assert.False(t, ok)
	assert.Equal(t, 0, Count([]assignment{}, active))

	got, ok := First([]assignment{{ID: 1, Type: 2}, {ID: 2, Type: 1}, {ID: 3, Type: 1}}, active)
	assert.True(t, ok)
	assert.Equal(t, 2, got.ID)
}

func TestSum(t *testing.T) {
	prices := []float64{10.5, 20, 0}
	assert.InDelta(t, 30.5, Sum(prices, func(f float64) float64 { return f }), 0.0001)
	assert.Equal(t, 0, Sum([]int{}, func(i int) int { return i }))
}

func TestLatestAndEarliest(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	in := []assignment{
		{ID: 1, At: base},
		{ID: 2, At: base.Add(48 * time.Hour)},
		{ID: 3, At: base.Add(24 * time.Hour)},
		{ID: 4, At: base.Add(48 * time.Hour)},
	}
	at := func(a assignment) time.Time { return a.At }

	latest := Latest(in, at, 3)
	assert.Equal(t, []int{2, 4, 3}, []int{latest[0].ID, latest[1].ID, latest[2].ID})
	assert.Equal(t, 1, in[0].ID, "input order untouched")
	assert.Len(t, Latest(in, at, 10), 4)
	assert.Empty(t, Latest(in, at, 0))

	next := Earliest(in, at, base.Add(time.Hour), 2)
	assert.Equal(t, []int{3, 2}, []int{next[0].ID, next[1].ID})
}

func TestMemoRecomputesOnVersionOrCriteriaChange(t *testing.T) {
	var m Memo[item]
	calls := 0
	compute := func() []item { calls++; return sample() }

	c := Criteria{Search: "dmb"}
	m.Get(1, c, compute)
	m.Get(1, Criteria{Search: "dmb"}, compute)
	assert.Equal(t, 1, calls)

	m.Get(2, c, compute)
	assert.Equal(t, 2, calls)

	m.Get(2, c.With("status", "1"), compute)
	assert.Equal(t, 3, calls)

	m.Reset()
	m.Get(2, c.With("status", "1"), compute)
	assert.Equal(t, 4, calls)
}

func TestMemoCallerCannotAlterCachedResult(t *testing.T) {
	var m Memo[item]
	calls := 0
	compute := func() []item { calls++; return sample() }

	first := m.Get(1, Criteria{}, compute)
	first[0].Name = "changed"
	first = append(first[:1], first[2:]...)

	second := m.Get(1, Criteria{}, compute)
	assert.Equal(t, 1, calls)
	assert.Len(t, second, 4)
	assert.Equal(t, "Dell Laptop", second[0].Name)
}
