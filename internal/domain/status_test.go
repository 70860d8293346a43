package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertTotal[T comparable](t *testing.T, e *Enum[T], want int) {
	t.Helper()
	vals := e.Values()
	assert.Len(t, vals, want, e.Name())
	for _, v := range vals {
		d := e.Display(v)
		assert.NotEqual(t, unknownDisplay.Label, d.Label, "%s %v has no label", e.Name(), v)
		assert.NotEmpty(t, d.Color, "%s %v has no color", e.Name(), v)
	}
}

func TestEnumTablesAreTotal(t *testing.T) {
	assertTotal(t, AssetStatuses, 5)
	assertTotal(t, AssignmentTypes, 2)
	assertTotal(t, UserRoles, 6)
	assertTotal(t, UserStatuses, 4)
	assertTotal(t, CompetitionStatuses, 6)
	assertTotal(t, SportTypes, 12)
	assertTotal(t, GenderCategories, 3)
	assertTotal(t, Genders, 3)
	assertTotal(t, MatchStatuses, 5)
	assertTotal(t, ParticipantStatuses, 6)
	assertTotal(t, PaymentStatuses, 3)
	assertTotal(t, VenueStatuses, 4)
	assertTotal(t, ReservationStatuses, 5)
}

func TestUnknownValueFallsBack(t *testing.T) {
	assert.Equal(t, "Bilinmiyor", AssetStatuses.Label(AssetStatus(42)))
	assert.Equal(t, "gray", MatchStatuses.Color("NOPE"))
	assert.Nil(t, MatchStatuses.Next("NOPE"))
}

func TestCompetitionLifecycle(t *testing.T) {
	assert.Equal(t, []CompetitionStatus{CompetitionRegistrationOpen, CompetitionCancelled},
		CompetitionStatuses.Next(CompetitionPlanned))
	assert.True(t, CompetitionStatuses.CanTransition(CompetitionInProgress, CompetitionCompleted))
	assert.False(t, CompetitionStatuses.CanTransition(CompetitionPlanned, CompetitionCompleted))
	assert.Empty(t, CompetitionStatuses.Next(CompetitionCompleted))
	assert.Empty(t, CompetitionStatuses.Next(CompetitionCancelled))
	assert.True(t, CompetitionStatuses.CanTransition(CompetitionCompleted, CompetitionCompleted))
}

func TestReservationLifecycle(t *testing.T) {
	assert.True(t, ReservationStatuses.CanTransition(ReservationConfirmed, ReservationCancelled))
	assert.True(t, ReservationStatuses.CanTransition(ReservationPending, ReservationConfirmed))
	assert.False(t, ReservationStatuses.CanTransition(ReservationCancelled, ReservationConfirmed))
	assert.False(t, ReservationStatuses.CanTransition(ReservationPending, ReservationCompleted))
	assert.Empty(t, ReservationStatuses.Next(ReservationNoShow))

	assert.True(t, ReservationConfirmed.HoldsSlot())
	assert.True(t, ReservationCompleted.HoldsSlot())
	assert.False(t, ReservationCancelled.HoldsSlot())
	assert.False(t, ReservationNoShow.HoldsSlot())
}

func TestAssetStatusNeverEntersAssignedDirectly(t *testing.T) {
	for _, s := range AssetStatuses.Values() {
		if s == AssetAssigned {
			assert.Empty(t, AssetStatuses.Next(s))
			continue
		}
		assert.NotContains(t, AssetStatuses.Next(s), AssetAssigned)
	}
	assert.Empty(t, AssetStatuses.Next(AssetDisposed))
}

func TestCheckTransitionErrorKinds(t *testing.T) {
	err := MatchStatuses.CheckTransition(MatchCompleted, MatchScheduled)
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	err = MatchStatuses.CheckTransition(MatchScheduled, "FINISHED")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	assert.NoError(t, MatchStatuses.CheckTransition(MatchPostponed, MatchScheduled))
	assert.NoError(t, VenueStatuses.CheckTransition(VenueClosed, VenueActive))
}

func TestParseAssetStatus(t *testing.T) {
	for raw, want := range map[string]AssetStatus{
		"1": AssetAvailable, " 3 ": AssetMaintenance, "damaged": AssetDamaged, "Disposed": AssetDisposed,
	} {
		got, err := ParseAssetStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseAssetStatus("9")
	assert.True(t, IsValidation(err))
}

func TestAssetStatusJSON(t *testing.T) {
	var payload struct {
		Status AssetStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"3"}`), &payload))
	assert.Equal(t, AssetMaintenance, payload.Status)
	require.NoError(t, json.Unmarshal([]byte(`{"status":4}`), &payload))
	assert.Equal(t, AssetDamaged, payload.Status)

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":4}`, string(b))
}

func TestRequestContext(t *testing.T) {
	admin := RequestContext{UserID: 1, Role: RoleAdmin}
	staff := RequestContext{UserID: 7, Role: RolePersonnel}
	assert.True(t, admin.CanActOn(99))
	assert.True(t, staff.CanActOn(7))
	assert.False(t, staff.CanActOn(8))
	assert.False(t, RequestContext{}.CanActOn(0))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, MatchInProgress, NormalizeCode[MatchStatus](" in_progress "))
}
