package models

import (
	"testing"
	"time"

	"adminhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func TestNewAssetDetail(t *testing.T) {
	ret := t0
	history := []Assignment{
		{ID: 3, Type: domain.AssignmentIssue, AssignmentDate: t0},
		{ID: 2, Type: domain.AssignmentReturn, AssignmentDate: t0.Add(-time.Hour), ReturnDate: &ret},
		{ID: 1, Type: domain.AssignmentIssue, AssignmentDate: t0.Add(-2 * time.Hour), ReturnDate: &ret},
	}
	d := NewAssetDetail(Asset{ID: 5}, history)
	assert.Equal(t, 2, d.AssignmentCount)
	assert.Equal(t, 1, d.ReturnCount)
	require.NotNil(t, d.ActiveAssignment)
	assert.Equal(t, domain.ID(3), d.ActiveAssignment.ID)

	empty := NewAssetDetail(Asset{ID: 6}, nil)
	assert.Nil(t, empty.ActiveAssignment)
	assert.NotNil(t, empty.History)
	assert.Zero(t, empty.AssignmentCount)
}

func TestNewInventoryDashboard(t *testing.T) {
	assets := []Asset{
		{ID: 1, Status: domain.AssetAvailable, PurchasePrice: 100},
		{ID: 2, Status: domain.AssetAssigned, PurchasePrice: 250.5},
		{ID: 3, Status: domain.AssetMaintenance},
	}
	var assignments []Assignment
	for i := 0; i < 7; i++ {
		assignments = append(assignments, Assignment{ID: domain.ID(i + 1), AssignmentDate: t0.Add(time.Duration(i) * time.Hour)})
	}

	d := NewInventoryDashboard(assets, 4, 9, assignments)
	assert.Equal(t, 3, d.TotalAssets)
	assert.Equal(t, 1, d.AvailableAssets)
	assert.Equal(t, 1, d.AssignedAssets)
	assert.Equal(t, 1, d.MaintenanceAssets)
	assert.Equal(t, 0, d.DamagedAssets)
	assert.Equal(t, 4, d.TotalCategories)
	assert.Equal(t, 9, d.TotalUsers)
	assert.InDelta(t, 350.5, d.TotalValue, 0.001)
	require.Len(t, d.RecentAssignments, RecentLimit)
	assert.Equal(t, domain.ID(7), d.RecentAssignments[0].ID)
}

func TestNewSportsDashboard(t *testing.T) {
	comps := []Competition{
		{ID: 1, Status: domain.CompetitionPlanned, StartDate: t0},
		{ID: 2, Status: domain.CompetitionInProgress, StartDate: t0.Add(24 * time.Hour)},
		{ID: 3, Status: domain.CompetitionRegistrationOpen, StartDate: t0.Add(-24 * time.Hour)},
	}
	matches := []Match{
		{ID: 1, Status: domain.MatchCompleted, MatchDate: t0.Add(-time.Hour)},
		{ID: 2, Status: domain.MatchScheduled, MatchDate: t0.Add(3 * time.Hour)},
		{ID: 3, Status: domain.MatchScheduled, MatchDate: t0.Add(time.Hour)},
		{ID: 4, Status: domain.MatchScheduled, MatchDate: t0.Add(-2 * time.Hour)},
		{ID: 5, Status: domain.MatchCancelled, MatchDate: t0.Add(2 * time.Hour)},
	}
	venues := []Venue{{ID: 1, Status: domain.VenueActive}, {ID: 2, Status: domain.VenueClosed}}

	d := NewSportsDashboard(comps, 12, matches, venues, t0)
	assert.Equal(t, 3, d.TotalCompetitions)
	assert.Equal(t, 2, d.ActiveCompetitions)
	assert.Equal(t, 12, d.TotalParticipants)
	assert.Equal(t, 5, d.TotalMatches)
	assert.Equal(t, 1, d.CompletedMatches)
	assert.Equal(t, 2, d.TotalVenues)
	assert.Equal(t, 1, d.ActiveVenues)
	require.Len(t, d.RecentCompetitions, 3)
	assert.Equal(t, domain.ID(2), d.RecentCompetitions[0].ID)
	require.Len(t, d.UpcomingMatches, 2)
	assert.Equal(t, domain.ID(3), d.UpcomingMatches[0].ID)
	assert.Equal(t, domain.ID(2), d.UpcomingMatches[1].ID)
}

func TestReservationOverlaps(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2026, 5, 10, h, 0, 0, 0, time.UTC) }
	r := Reservation{StartTime: at(10), EndTime: at(12), Status: domain.ReservationConfirmed}

	assert.True(t, r.Overlaps(at(11), at(13)))
	assert.True(t, r.Overlaps(at(9), at(11)))
	assert.True(t, r.Overlaps(at(9), at(13)))
	assert.True(t, r.Overlaps(at(10), at(11)))
	assert.False(t, r.Overlaps(at(12), at(14)), "starts when the other ends")
	assert.False(t, r.Overlaps(at(8), at(10)))

	r.Status = domain.ReservationCancelled
	assert.False(t, r.Overlaps(at(11), at(13)))
}

func TestReservationPrice(t *testing.T) {
	start := time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)
	assert.InDelta(t, 375.0, ReservationPrice(250, start, start.Add(90*time.Minute)), 0.001)
	assert.InDelta(t, 83.33, ReservationPrice(250, start, start.Add(20*time.Minute)), 0.001)
	assert.Zero(t, ReservationPrice(0, start, start.Add(time.Hour)))
	assert.Zero(t, ReservationPrice(250, start, start))
}
