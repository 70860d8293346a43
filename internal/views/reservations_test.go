package views

import (
	"context"
	"net/http"
	"testing"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var morning = time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

func reservationFixture(t *testing.T, rc domain.RequestContext) (*fakeAPI, *ReservationsPage) {
	t.Helper()
	api, c := newFakeAPI(t)
	api.reply("GET /api/reservations", http.StatusOK, []models.Reservation{
		{ID: 1, VenueID: 3, VenueName: "Kapalı Salon", UserID: 7, StartTime: morning, EndTime: morning.Add(2 * time.Hour),
			Status: domain.ReservationConfirmed, TotalPrice: 300},
		{ID: 2, VenueID: 3, VenueName: "Kapalı Salon", UserID: 7, StartTime: morning.Add(4 * time.Hour), EndTime: morning.Add(5 * time.Hour),
			Status: domain.ReservationCancelled, TotalPrice: 150},
		{ID: 3, VenueID: 4, VenueName: "Açık Saha", UserID: 8, StartTime: morning, EndTime: morning.Add(time.Hour),
			Status: domain.ReservationPending, TotalPrice: 80},
	})
	api.reply("GET /api/venues", http.StatusOK, []models.Venue{
		{ID: 3, Name: "Kapalı Salon", Status: domain.VenueActive},
		{ID: 4, Name: "Açık Saha", Status: domain.VenueMaintenance},
	})
	p := NewReservationsPage(c, rc, always)
	t.Cleanup(p.Close)
	require.NoError(t, p.Load(context.Background()))
	return api, p
}

func TestReservationSlotGuard(t *testing.T) {
	member := domain.RequestContext{UserID: 7, Role: domain.RoleParticipant}
	api, p := reservationFixture(t, member)
	api.reply("POST /api/reservations", http.StatusCreated, models.Reservation{ID: 9})
	api.reply("PUT /api/reservations/1", http.StatusOK, models.Reservation{ID: 1})
	ctx := context.Background()

	clash := models.ReservationRequest{VenueID: 3, StartTime: morning.Add(time.Hour), EndTime: morning.Add(3 * time.Hour)}
	res := p.Book(ctx, clash)
	assert.True(t, domain.IsConflict(res.Err))

	reversed := models.ReservationRequest{VenueID: 3, StartTime: morning.Add(3 * time.Hour), EndTime: morning.Add(2 * time.Hour)}
	res = p.Book(ctx, reversed)
	assert.True(t, domain.IsValidation(res.Err))
	assert.Zero(t, api.count("POST /api/reservations"))

	// back to back with #1 and over the cancelled #2
	other := domain.ID(8)
	free := models.ReservationRequest{VenueID: 3, UserID: &other, StartTime: morning.Add(2 * time.Hour), EndTime: morning.Add(5 * time.Hour)}
	res = p.Book(ctx, free)
	require.True(t, res.OK, res.Message)
	var sent models.ReservationRequest
	api.body(t, "POST /api/reservations", &sent)
	assert.Nil(t, sent.UserID)

	// moving #1 later overlaps only itself
	res = p.Reschedule(ctx, 1, models.ReservationRequest{VenueID: 3, StartTime: morning.Add(time.Hour), EndTime: morning.Add(2 * time.Hour)})
	require.True(t, res.OK, res.Message)

	res = p.SetStatus(ctx, 1, domain.ReservationCompleted)
	assert.True(t, domain.IsForbidden(res.Err))
	res = p.Delete(ctx, 1)
	assert.True(t, domain.IsForbidden(res.Err))
}

func TestReservationCancelFollowsLifecycle(t *testing.T) {
	api, p := reservationFixture(t, admin)
	api.reply("PATCH /api/reservations/1/cancel", http.StatusOK, models.Reservation{ID: 1})
	api.reply("PATCH /api/reservations/3/status", http.StatusOK, models.Reservation{ID: 3})
	ctx := context.Background()

	assert.Empty(t, p.NextStatuses(2))

	res := p.Cancel(ctx, 1)
	require.True(t, res.OK, res.Message)
	assert.Equal(t, 1, api.count("PATCH /api/reservations/1/cancel"))

	assert.Equal(t, []domain.ReservationStatus{domain.ReservationConfirmed, domain.ReservationCancelled}, p.NextStatuses(3))
	res = p.SetStatus(ctx, 3, domain.ReservationCompleted)
	assert.True(t, domain.IsConflict(res.Err))
	res = p.SetStatus(ctx, 3, domain.ReservationConfirmed)
	require.True(t, res.OK, res.Message)
	var sent models.StatusRequest[domain.ReservationStatus]
	api.body(t, "PATCH /api/reservations/3/status", &sent)
	assert.Equal(t, domain.ReservationConfirmed, sent.Status)
}

func TestReservationFiltersAndStats(t *testing.T) {
	_, p := reservationFixture(t, admin)

	require.Len(t, p.BookableVenues(), 1)
	assert.Len(t, p.Filtered(everything.With("venueId", "3")), 2)
	assert.Len(t, p.Filtered(everything.With("status", "pending")), 1)
	assert.Len(t, p.Filtered(everything.WithSearch("saha")), 1)
	assert.Len(t, p.Conflicts(3, morning, morning.Add(6*time.Hour), 0), 1)

	d, _ := p.data()
	assert.Equal(t, ReservationStats{Total: 3, Confirmed: 1, Pending: 1, Cancelled: 1, Revenue: 300},
		ReservationStatsOf(d.Reservations))
}

func TestReservationSpecDateUsesStart(t *testing.T) {
	r := models.Reservation{StartTime: morning, EndTime: morning.Add(time.Hour)}
	from := morning.Truncate(24 * time.Hour)
	to := from.Add(24*time.Hour - time.Nanosecond)
	assert.True(t, ReservationSpec.Match(r, listing.Criteria{From: &from, To: &to}))

	before := from.Add(-time.Nanosecond)
	assert.False(t, ReservationSpec.Match(r, listing.Criteria{To: &before}))
}
