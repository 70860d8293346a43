package services

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"adminhub/internal/cache"
	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
	"adminhub/internal/repositories"
)

type ReservationService struct {
	DB        *sql.DB
	Cache     cache.ListCache
	RequestID string
	Now       func() time.Time
}

func (s ReservationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s ReservationService) repo() repositories.ReservationRepository {
	return repositories.ReservationRepository{DB: s.DB}
}

func canManageReservations(rc domain.RequestContext) bool {
	return domain.Can(rc.Role, domain.ActManageReservations)
}

// owns reports whether rc may read or change r.
func owns(rc domain.RequestContext, r models.Reservation) bool {
	return canManageReservations(rc) || (rc.UserID != 0 && rc.UserID == r.UserID)
}

// List returns every reservation to managers and only the caller's own to
// everyone else.
func (s ReservationService) List(ctx context.Context, rc domain.RequestContext, c listing.Criteria) ([]models.Reservation, error) {
	if !canManageReservations(rc) {
		c = c.With("userId", strconv.FormatInt(rc.UserID, 10))
	}
	return cachedList(ctx, s.Cache, s.RequestID, colReservations, c, func() ([]models.Reservation, error) {
		return s.repo().List(ctx, c)
	})
}

func (s ReservationService) Get(ctx context.Context, rc domain.RequestContext, id domain.ID) (models.Reservation, error) {
	r, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return r, err
	}
	if !owns(rc, r) {
		return models.Reservation{}, domain.ForbiddenError{Msg: "yalnızca kendi rezervasyonlarınızı görebilirsiniz"}
	}
	return r, nil
}

func checkWindow(start, end time.Time) error {
	if start.IsZero() {
		return domain.ValidationError{Field: "startTime", Msg: "başlangıç zamanı gerekli"}
	}
	if !end.After(start) {
		return domain.ValidationError{Field: "endTime", Msg: "bitiş zamanı başlangıçtan sonra olmalı"}
	}
	return nil
}

// Availability reports whether [start, end) is free at the venue and lists
// the bookings in the way.
func (s ReservationService) Availability(ctx context.Context, venueID domain.ID, start, end time.Time) (models.Availability, error) {
	if err := requirePositiveID("venueId", venueID); err != nil {
		return models.Availability{}, err
	}
	if err := checkWindow(start, end); err != nil {
		return models.Availability{}, err
	}
	if _, err := (repositories.VenueRepository{DB: s.DB}).GetByID(ctx, venueID); err != nil {
		return models.Availability{}, err
	}
	conflicts, err := s.repo().Overlapping(ctx, venueID, start, end, 0)
	if err != nil {
		return models.Availability{}, err
	}
	return models.Availability{
		VenueID:   venueID,
		StartTime: start,
		EndTime:   end,
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

// book locks the venue and checks that r fits: the venue is active and no
// other live booking intersects the window. It fills in the price.
func book(ctx context.Context, tx *sql.Tx, r *models.Reservation) error {
	venue, err := repositories.VenueRepository{DB: tx}.GetForUpdate(ctx, r.VenueID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.ValidationError{Field: "venueId", Msg: "tesis bulunamadı", Err: err}
		}
		return err
	}
	if venue.Status != domain.VenueActive {
		return domain.ConflictError{Resource: "rezervasyon",
			Msg: "tesis rezervasyona açık değil: " + domain.VenueStatuses.Label(venue.Status)}
	}
	clash, err := repositories.ReservationRepository{DB: tx}.Overlapping(ctx, r.VenueID, r.StartTime, r.EndTime, r.ID)
	if err != nil {
		return err
	}
	if len(clash) > 0 {
		return domain.ConflictError{Resource: "rezervasyon", Msg: "seçilen zaman dilimi müsait değil"}
	}
	r.TotalPrice = models.ReservationPrice(venue.HourlyRate, r.StartTime, r.EndTime)
	return nil
}

// Create books a venue as CONFIRMED. Managers may book for another user;
// everyone else books for themselves.
func (s ReservationService) Create(ctx context.Context, rc domain.RequestContext, req models.ReservationRequest) (models.Reservation, error) {
	r := models.Reservation{
		VenueID:   req.VenueID,
		UserID:    rc.UserID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    domain.ReservationConfirmed,
		Notes:     strings.TrimSpace(req.Notes),
	}
	if req.UserID != nil && *req.UserID != rc.UserID {
		if !canManageReservations(rc) {
			return models.Reservation{}, record(s.RequestID, "reservation", "create", 0,
				domain.ForbiddenError{Msg: "başkası adına rezervasyon yapamazsınız"})
		}
		r.UserID = *req.UserID
	}
	if err := requirePositiveID("userId", r.UserID); err != nil {
		return models.Reservation{}, err
	}
	if err := checkWindow(r.StartTime, r.EndTime); err != nil {
		return models.Reservation{}, record(s.RequestID, "reservation", "create", 0, err)
	}
	if r.StartTime.Before(s.now()) {
		return models.Reservation{}, record(s.RequestID, "reservation", "create", 0,
			domain.ValidationError{Field: "startTime", Msg: "geçmiş bir zamana rezervasyon yapılamaz"})
	}

	var id domain.ID
	err := withTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := book(ctx, tx, &r); err != nil {
			return err
		}
		var err error
		id, err = repositories.ReservationRepository{DB: tx}.Create(ctx, r)
		return err
	})
	if err = record(s.RequestID, "reservation", "create", id, err); err != nil {
		return models.Reservation{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colReservations)
	return s.repo().GetByID(ctx, id)
}

// Update moves a live reservation to another window or venue; the new slot
// is checked like a new booking, ignoring the reservation itself.
func (s ReservationService) Update(ctx context.Context, rc domain.RequestContext, id domain.ID, req models.ReservationRequest) (models.Reservation, error) {
	existing, err := s.Get(ctx, rc, id)
	if err != nil {
		return models.Reservation{}, err
	}
	switch existing.Status {
	case domain.ReservationPending, domain.ReservationConfirmed:
	default:
		return models.Reservation{}, record(s.RequestID, "reservation", "update", id, domain.ConflictError{
			Resource: "rezervasyon",
			Msg:      "rezervasyon değiştirilemez: " + domain.ReservationStatuses.Label(existing.Status),
		})
	}
	r := existing
	r.VenueID = req.VenueID
	r.StartTime = req.StartTime
	r.EndTime = req.EndTime
	r.Notes = strings.TrimSpace(req.Notes)
	if err := checkWindow(r.StartTime, r.EndTime); err != nil {
		return models.Reservation{}, record(s.RequestID, "reservation", "update", id, err)
	}

	err = withTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := book(ctx, tx, &r); err != nil {
			return err
		}
		return repositories.ReservationRepository{DB: tx}.Update(ctx, r)
	})
	if err := record(s.RequestID, "reservation", "update", id, err); err != nil {
		return models.Reservation{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colReservations)
	return s.repo().GetByID(ctx, id)
}

// Cancel frees the slot. Owners may cancel their own reservations.
func (s ReservationService) Cancel(ctx context.Context, rc domain.RequestContext, id domain.ID) (models.Reservation, error) {
	r, err := s.Get(ctx, rc, id)
	if err != nil {
		return models.Reservation{}, err
	}
	return s.moveTo(ctx, r, domain.ReservationCancelled, "cancel")
}

// UpdateStatus is the manager's move: confirm, complete or mark a no-show.
func (s ReservationService) UpdateStatus(ctx context.Context, id domain.ID, status domain.ReservationStatus) (models.Reservation, error) {
	r, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Reservation{}, err
	}
	return s.moveTo(ctx, r, domain.NormalizeCode[domain.ReservationStatus](string(status)), "status")
}

func (s ReservationService) moveTo(ctx context.Context, r models.Reservation, status domain.ReservationStatus, op string) (models.Reservation, error) {
	if err := domain.ReservationStatuses.CheckTransition(r.Status, status); err != nil {
		return models.Reservation{}, record(s.RequestID, "reservation", op, r.ID, err)
	}
	if err := record(s.RequestID, "reservation", op, r.ID, s.repo().UpdateStatus(ctx, r.ID, status)); err != nil {
		return models.Reservation{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colReservations)
	r.Status = status
	return r, nil
}

func (s ReservationService) Delete(ctx context.Context, id domain.ID) error {
	if err := record(s.RequestID, "reservation", "delete", id, s.repo().Delete(ctx, id)); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, s.RequestID, colReservations)
	return nil
}
