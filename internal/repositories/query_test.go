package repositories

import (
	"errors"
	"testing"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/listing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyBuildsConjunction(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := listing.Criteria{Search: "50%_off", From: &from}.
		With("status", "available").
		With("categoryId", "4").
		With("unknown", "x")

	var w whereBuilder
	require.NoError(t, AssetFilters.apply(&w, c))

	assert.Equal(t, " WHERE (a.name LIKE ? OR a.asset_code LIKE ? OR a.brand LIKE ? OR a.model LIKE ? OR a.serial_number LIKE ?)"+
		" AND a.category_id = ? AND a.status = ? AND a.purchase_date >= ?", w.clause())
	require.Len(t, w.args, 8)
	assert.Equal(t, `%50\%\_off%`, w.args[0])
	assert.Equal(t, int64(4), w.args[5])
	assert.Equal(t, int(domain.AssetAvailable), w.args[6])
	assert.Equal(t, from, w.args[7])
}

func TestApplyEmptyCriteriaIsWildcard(t *testing.T) {
	var w whereBuilder
	require.NoError(t, MatchFilters.apply(&w, listing.Criteria{Search: "  ", Selectors: map[string]string{"status": ""}}))
	assert.Empty(t, w.clause())
	assert.Empty(t, w.args)
}

func TestApplyRejectsBadSelectorValues(t *testing.T) {
	var w whereBuilder
	err := AssetFilters.apply(&w, listing.Criteria{}.With("categoryId", "abc"))
	assert.True(t, domain.IsValidation(err))

	err = VenueFilters.apply(&w, listing.Criteria{}.With("indoor", "maybe"))
	assert.True(t, domain.IsValidation(err))
}

func TestSelectorKeysSorted(t *testing.T) {
	assert.Equal(t, []string{"competitionId", "gender", "payment", "status"}, ParticipantFilters.SelectorKeys())
}

func TestMapWriteError(t *testing.T) {
	dup := mapWriteError("kategori", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	assert.True(t, domain.IsConflict(dup))

	fk := mapWriteError("kullanıcı", &mysql.MySQLError{Number: 1451})
	assert.True(t, domain.IsConflict(fk))

	missing := mapWriteError("maç", &mysql.MySQLError{Number: 1452})
	assert.True(t, domain.IsValidation(missing))

	other := errors.New("boom")
	assert.Equal(t, other, mapWriteError("x", other))
}

func TestReservationFiltersUseStartTime(t *testing.T) {
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 5, 31, 23, 59, 59, 0, time.UTC)
	c := listing.Criteria{From: &from, To: &to}.With("venueId", "3").With("status", "confirmed")

	var w whereBuilder
	require.NoError(t, ReservationFilters.apply(&w, c))
	assert.Equal(t, " WHERE r.status = ? AND r.venue_id = ? AND r.start_time >= ? AND r.start_time <= ?", w.clause())
	assert.Equal(t, []any{"CONFIRMED", int64(3), from, to}, w.args)
	assert.Equal(t, []string{"status", "userId", "venueId"}, ReservationFilters.SelectorKeys())

	w = whereBuilder{}
	err := ReservationFilters.apply(&w, listing.Criteria{}.With("venueId", "abc"))
	assert.True(t, domain.IsValidation(err))
}
