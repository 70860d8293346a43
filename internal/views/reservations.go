package views

import (
	"context"
	"fmt"
	"time"

	"adminhub/internal/client"
	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
	"adminhub/internal/utils"
)

func reservationID(r models.Reservation) domain.ID { return r.ID }

type ReservationsData struct {
	Reservations []models.Reservation
	Venues       []models.Venue
}

type ReservationsPage struct {
	page[ReservationsData]
	list collection[models.Reservation]
}

func NewReservationsPage(api *client.Client, rc domain.RequestContext, confirm Confirmer) *ReservationsPage {
	return &ReservationsPage{
		page: newPage("reservations", api, rc, confirm,
			listTask(api.Reservations().List, func(d *ReservationsData) *[]models.Reservation { return &d.Reservations }),
			listTask(api.Venues().List, func(d *ReservationsData) *[]models.Venue { return &d.Venues })),
		list: collection[models.Reservation]{spec: ReservationSpec},
	}
}

func (p *ReservationsPage) Filtered(cr listing.Criteria) []models.Reservation {
	d, v := p.data()
	return p.list.filter(v, d.Reservations, cr)
}

type ReservationStats struct {
	Total     int
	Confirmed int
	Pending   int
	Cancelled int
	Revenue   float64
}

// ReservationStatsOf counts revenue from bookings that were or will be used.
func ReservationStatsOf(items []models.Reservation) ReservationStats {
	by := listing.CountBy(items, func(r models.Reservation) domain.ReservationStatus { return r.Status })
	return ReservationStats{
		Total:     len(items),
		Confirmed: by[domain.ReservationConfirmed],
		Pending:   by[domain.ReservationPending],
		Cancelled: by[domain.ReservationCancelled],
		Revenue: listing.Sum(items, func(r models.Reservation) float64 {
			if r.Status == domain.ReservationConfirmed || r.Status == domain.ReservationCompleted {
				return r.TotalPrice
			}
			return 0
		}),
	}
}

// BookableVenues are the venues open for reservations.
func (p *ReservationsPage) BookableVenues() []models.Venue {
	d, _ := p.data()
	return listing.Filter(d.Venues, VenueSpec, listing.Criteria{}.With("status", string(domain.VenueActive)))
}

// Conflicts lists the loaded bookings of venueID that hold part of
// [start, end), leaving out exceptID.
func (p *ReservationsPage) Conflicts(venueID domain.ID, start, end time.Time, exceptID domain.ID) []models.Reservation {
	d, _ := p.data()
	out := []models.Reservation{}
	for _, r := range d.Reservations {
		if r.VenueID == venueID && r.ID != exceptID && r.Overlaps(start, end) {
			out = append(out, r)
		}
	}
	return out
}

func (p *ReservationsPage) NextStatuses(id domain.ID) []domain.ReservationStatus {
	d, _ := p.data()
	r, known := find(d.Reservations, id, reservationID)
	return nextStatuses(domain.ReservationStatuses, r.Status, known)
}

// checkSlot rejects a window that is reversed or collides with a booking
// already in the snapshot. Bookings the caller cannot see are left to the server.
func (p *ReservationsPage) checkSlot(req models.ReservationRequest, exceptID domain.ID) func() error {
	return func() error {
		if !req.EndTime.After(req.StartTime) {
			return domain.ValidationError{Field: "endTime", Msg: "bitiş zamanı başlangıçtan sonra olmalı"}
		}
		if len(p.Conflicts(req.VenueID, req.StartTime, req.EndTime, exceptID)) > 0 {
			return domain.ConflictError{Resource: "rezervasyon", Msg: "seçilen zaman dilimi müsait değil"}
		}
		return nil
	}
}

func (p *ReservationsPage) Book(ctx context.Context, req models.ReservationRequest) Result {
	if !p.Caps.Can(domain.ActManageReservations) {
		req.UserID = nil
	}
	return p.disp.Dispatch(ctx, Mutation{
		Action: "reservation.create",
		Guard:  p.guard(domain.ActReserveVenues, req, p.checkSlot(req, 0)),
		Do:     func(ctx context.Context) error { return ignore(p.api.Reservations().Create(ctx, req)) },
	})
}

func (p *ReservationsPage) Reschedule(ctx context.Context, id domain.ID, req models.ReservationRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "reservation.update",
		Guard:  p.guard(domain.ActReserveVenues, req, p.checkSlot(req, id)),
		Do:     func(ctx context.Context) error { return ignore(p.api.Reservations().Update(ctx, id, req)) },
	})
}

func (p *ReservationsPage) Cancel(ctx context.Context, id domain.ID) Result {
	d, _ := p.data()
	r, known := find(d.Reservations, id, reservationID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "reservation.cancel",
		Prompt: fmt.Sprintf("%s rezervasyonu (%s) iptal edilsin mi?", r.VenueName, utils.FormatDateTime(r.StartTime)),
		Guard:  p.guard(domain.ActReserveVenues, nil, transition(domain.ReservationStatuses, r.Status, known, domain.ReservationCancelled)),
		Do:     func(ctx context.Context) error { return ignore(p.api.CancelReservation(ctx, id)) },
	})
}

func (p *ReservationsPage) SetStatus(ctx context.Context, id domain.ID, status domain.ReservationStatus) Result {
	d, _ := p.data()
	r, known := find(d.Reservations, id, reservationID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "reservation.status",
		Guard:  p.guard(domain.ActManageReservations, nil, transition(domain.ReservationStatuses, r.Status, known, status)),
		Do: func(ctx context.Context) error {
			return ignore(client.SetStatus(ctx, p.api.Reservations(), id, status))
		},
	})
}

func (p *ReservationsPage) Delete(ctx context.Context, id domain.ID) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "reservation.delete",
		Prompt: fmt.Sprintf("%d numaralı rezervasyon silinsin mi?", id),
		Guard:  p.guard(domain.ActManageReservations, nil),
		Do:     func(ctx context.Context) error { return p.api.Reservations().Delete(ctx, id) },
	})
}
