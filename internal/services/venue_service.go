package services

import (
	"context"
	"database/sql"
	"strings"

	"adminhub/internal/cache"
	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
	"adminhub/internal/repositories"
)

type VenueService struct {
	DB        *sql.DB
	Cache     cache.ListCache
	RequestID string
}

func (s VenueService) repo() repositories.VenueRepository {
	return repositories.VenueRepository{DB: s.DB}
}

func (s VenueService) List(ctx context.Context, c listing.Criteria) ([]models.Venue, error) {
	return cachedList(ctx, s.Cache, s.RequestID, colVenues, c, func() ([]models.Venue, error) {
		return s.repo().List(ctx, c)
	})
}

func (s VenueService) Get(ctx context.Context, id domain.ID) (models.Venue, error) {
	return s.repo().GetByID(ctx, id)
}

func venueFromRequest(req models.VenueRequest) models.Venue {
	return models.Venue{
		Name:             strings.TrimSpace(req.Name),
		Description:      strings.TrimSpace(req.Description),
		Address:          strings.TrimSpace(req.Address),
		City:             strings.TrimSpace(req.City),
		PostalCode:       strings.TrimSpace(req.PostalCode),
		PhoneNumber:      strings.TrimSpace(req.PhoneNumber),
		Email:            strings.TrimSpace(req.Email),
		Capacity:         req.Capacity,
		ParkingCapacity:  req.ParkingCapacity,
		IsIndoor:         req.IsIndoor,
		HasLighting:      req.HasLighting,
		HasChangingRooms: req.HasChangingRooms,
		HasMedicalRoom:   req.HasMedicalRoom,
		HourlyRate:       req.HourlyRate,
		Status:           domain.NormalizeCode[domain.VenueStatus](string(req.Status)),
	}
}

func (s VenueService) Create(ctx context.Context, req models.VenueRequest) (models.Venue, error) {
	v := venueFromRequest(req)
	if v.Status == "" {
		v.Status = domain.VenueActive
	}
	if !domain.VenueStatuses.Valid(v.Status) {
		return models.Venue{}, record(s.RequestID, "venue", "create", 0,
			domain.ValidationError{Field: "status", Msg: "geçersiz tesis durumu"})
	}
	id, err := s.repo().Create(ctx, v)
	if err = record(s.RequestID, "venue", "create", id, err); err != nil {
		return models.Venue{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colVenues)
	return s.repo().GetByID(ctx, id)
}

func (s VenueService) Update(ctx context.Context, id domain.ID, req models.VenueRequest) (models.Venue, error) {
	existing, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Venue{}, err
	}
	v := venueFromRequest(req)
	v.ID = id
	v.Status = existing.Status
	v.CreatedAt = existing.CreatedAt
	if err := record(s.RequestID, "venue", "update", id, s.repo().Update(ctx, v)); err != nil {
		return models.Venue{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colVenues, colCompetitions, colReservations)
	return v, nil
}

func (s VenueService) UpdateStatus(ctx context.Context, id domain.ID, status domain.VenueStatus) (models.Venue, error) {
	v, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Venue{}, err
	}
	status = domain.NormalizeCode[domain.VenueStatus](string(status))
	if err := domain.VenueStatuses.CheckTransition(v.Status, status); err != nil {
		return models.Venue{}, record(s.RequestID, "venue", "status", id, err)
	}
	if err := record(s.RequestID, "venue", "status", id, s.repo().UpdateStatus(ctx, id, status)); err != nil {
		return models.Venue{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colVenues)
	v.Status = status
	return v, nil
}

// Delete removes the venue; competitions held there keep running without one.
// A venue with reservations on record cannot be deleted.
func (s VenueService) Delete(ctx context.Context, id domain.ID) error {
	if err := record(s.RequestID, "venue", "delete", id, s.repo().Delete(ctx, id)); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, s.RequestID, colVenues, colCompetitions, colReservations)
	return nil
}
