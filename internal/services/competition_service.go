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

type CompetitionService struct {
	DB        *sql.DB
	Cache     cache.ListCache
	RequestID string
}

func (s CompetitionService) repo() repositories.CompetitionRepository {
	return repositories.CompetitionRepository{DB: s.DB}
}

func (s CompetitionService) List(ctx context.Context, c listing.Criteria) ([]models.Competition, error) {
	return cachedList(ctx, s.Cache, s.RequestID, colCompetitions, c, func() ([]models.Competition, error) {
		return s.repo().List(ctx, c)
	})
}

func (s CompetitionService) Get(ctx context.Context, id domain.ID) (models.Competition, error) {
	return s.repo().GetByID(ctx, id)
}

func competitionFromRequest(req models.CompetitionRequest) models.Competition {
	c := models.Competition{
		Name:                 strings.TrimSpace(req.Name),
		Description:          strings.TrimSpace(req.Description),
		SportType:            domain.NormalizeCode[domain.SportType](string(req.SportType)),
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		RegistrationDeadline: req.RegistrationDeadline,
		MaxParticipants:      req.MaxParticipants,
		MinAge:               req.MinAge,
		MaxAge:               req.MaxAge,
		GenderCategory:       domain.NormalizeCode[domain.GenderCategory](string(req.GenderCategory)),
		EntryFee:             req.EntryFee,
		PrizePool:            req.PrizePool,
		VenueID:              req.VenueID,
		OrganizerID:          req.OrganizerID,
	}
	if c.GenderCategory == "" {
		c.GenderCategory = domain.GenderCategoryMixed
	}
	return c
}

func validateCompetition(c models.Competition) error {
	switch {
	case !domain.SportTypes.Valid(c.SportType):
		return domain.ValidationError{Field: "sportType", Msg: "geçersiz spor türü"}
	case !domain.GenderCategories.Valid(c.GenderCategory):
		return domain.ValidationError{Field: "genderCategory", Msg: "geçersiz cinsiyet kategorisi"}
	case c.EndDate.Before(c.StartDate):
		return domain.ValidationError{Field: "endDate", Msg: "bitiş tarihi başlangıçtan önce olamaz"}
	case c.RegistrationDeadline != nil && c.RegistrationDeadline.After(c.StartDate):
		return domain.ValidationError{Field: "registrationDeadline", Msg: "kayıt son tarihi başlangıçtan sonra olamaz"}
	case c.MaxAge > 0 && c.MinAge > c.MaxAge:
		return domain.ValidationError{Field: "maxAge", Msg: "yaş aralığı geçersiz"}
	}
	return nil
}

// Create stores a new competition in PLANNED. organizerID defaults to the caller.
func (s CompetitionService) Create(ctx context.Context, rc domain.RequestContext, req models.CompetitionRequest) (models.Competition, error) {
	c := competitionFromRequest(req)
	c.Status = domain.CompetitionPlanned
	if c.OrganizerID == nil && rc.UserID > 0 {
		uid := rc.UserID
		c.OrganizerID = &uid
	}
	if err := validateCompetition(c); err != nil {
		return models.Competition{}, record(s.RequestID, "competition", "create", 0, err)
	}
	id, err := s.repo().Create(ctx, c)
	if err = record(s.RequestID, "competition", "create", id, err); err != nil {
		return models.Competition{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colCompetitions)
	return s.repo().GetByID(ctx, id)
}

func (s CompetitionService) Update(ctx context.Context, id domain.ID, req models.CompetitionRequest) (models.Competition, error) {
	existing, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Competition{}, err
	}
	c := competitionFromRequest(req)
	c.ID = id
	c.Status = existing.Status
	if c.OrganizerID == nil {
		c.OrganizerID = existing.OrganizerID
	}
	if err := validateCompetition(c); err != nil {
		return models.Competition{}, record(s.RequestID, "competition", "update", id, err)
	}
	if err := record(s.RequestID, "competition", "update", id, s.repo().Update(ctx, c)); err != nil {
		return models.Competition{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colCompetitions, colParticipants, colMatches)
	return s.repo().GetByID(ctx, id)
}

func (s CompetitionService) UpdateStatus(ctx context.Context, id domain.ID, status domain.CompetitionStatus) (models.Competition, error) {
	c, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Competition{}, err
	}
	status = domain.NormalizeCode[domain.CompetitionStatus](string(status))
	if err := domain.CompetitionStatuses.CheckTransition(c.Status, status); err != nil {
		return models.Competition{}, record(s.RequestID, "competition", "status", id, err)
	}
	if err := record(s.RequestID, "competition", "status", id, s.repo().UpdateStatus(ctx, id, status)); err != nil {
		return models.Competition{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colCompetitions)
	c.Status = status
	return c, nil
}

// Delete removes the competition together with its participants and matches.
func (s CompetitionService) Delete(ctx context.Context, id domain.ID) error {
	if err := record(s.RequestID, "competition", "delete", id, s.repo().Delete(ctx, id)); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, s.RequestID, colCompetitions, colParticipants, colMatches)
	return nil
}
