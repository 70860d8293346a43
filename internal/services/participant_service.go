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
	"adminhub/internal/utils"
)

type ParticipantService struct {
	DB        *sql.DB
	Cache     cache.ListCache
	RequestID string
}

func (s ParticipantService) repo() repositories.ParticipantRepository {
	return repositories.ParticipantRepository{DB: s.DB}
}

func (s ParticipantService) List(ctx context.Context, c listing.Criteria) ([]models.Participant, error) {
	return cachedList(ctx, s.Cache, s.RequestID, colParticipants, c, func() ([]models.Participant, error) {
		return s.repo().List(ctx, c)
	})
}

func (s ParticipantService) Get(ctx context.Context, id domain.ID) (models.Participant, error) {
	return s.repo().GetByID(ctx, id)
}

func participantFromRequest(req models.ParticipantRequest) models.Participant {
	return models.Participant{
		CompetitionID:      req.CompetitionID,
		UserID:             req.UserID,
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Email:              strings.TrimSpace(req.Email),
		PhoneNumber:        strings.TrimSpace(req.PhoneNumber),
		DateOfBirth:        req.DateOfBirth,
		Nationality:        strings.TrimSpace(req.Nationality),
		ClubName:           strings.TrimSpace(req.ClubName),
		LicenseNumber:      strings.TrimSpace(req.LicenseNumber),
		Gender:             domain.NormalizeCode[domain.Gender](string(req.Gender)),
		MedicalCertificate: req.MedicalCertificate,
		InsuranceStatus:    req.InsuranceStatus,
		Notes:              strings.TrimSpace(req.Notes),
	}
}

// checkEligibility validates a participant against the competition it enters.
func checkEligibility(p models.Participant, c models.Competition) error {
	if !domain.Genders.Valid(p.Gender) {
		return domain.ValidationError{Field: "gender", Msg: "geçersiz cinsiyet"}
	}
	if c.GenderCategory != domain.GenderCategoryMixed && string(c.GenderCategory) != string(p.Gender) {
		return domain.ValidationError{Field: "gender", Msg: "müsabakanın cinsiyet kategorisine uymuyor: " +
			domain.GenderCategories.Label(c.GenderCategory)}
	}
	if p.DateOfBirth != nil && (c.MinAge > 0 || c.MaxAge > 0) {
		age := utils.AgeAt(*p.DateOfBirth, c.StartDate)
		if (c.MinAge > 0 && age < c.MinAge) || (c.MaxAge > 0 && age > c.MaxAge) {
			return domain.ValidationError{Field: "dateOfBirth", Msg: "yaş sınırına uymuyor"}
		}
	}
	return nil
}

// admit checks p against the competition it enters. With room set it also
// locks the competition row and requires open registration and a free slot,
// so it must run inside the transaction that writes p.
func admit(ctx context.Context, tx *sql.Tx, p models.Participant, room bool) error {
	competitions := repositories.CompetitionRepository{DB: tx}
	get := competitions.GetByID
	if room {
		get = competitions.GetForUpdate
	}
	comp, err := get(ctx, p.CompetitionID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.ValidationError{Field: "competitionId", Msg: "müsabaka bulunamadı", Err: err}
		}
		return err
	}
	if err := checkEligibility(p, comp); err != nil {
		return err
	}
	if !room {
		return nil
	}
	switch comp.Status {
	case domain.CompetitionPlanned, domain.CompetitionRegistrationOpen:
	default:
		return domain.ConflictError{
			Resource: "katılımcı",
			Msg:      "müsabaka kayıt kabul etmiyor: " + domain.CompetitionStatuses.Label(comp.Status),
		}
	}
	if comp.MaxParticipants > 0 {
		n, err := repositories.ParticipantRepository{DB: tx}.CountActive(ctx, comp.ID)
		if err != nil {
			return err
		}
		if n >= comp.MaxParticipants {
			return domain.ConflictError{Resource: "katılımcı", Msg: "müsabaka kontenjanı dolu"}
		}
	}
	return nil
}

// Create registers a participant as REGISTERED with a PENDING payment. The
// competition must still accept entries and have a free slot.
func (s ParticipantService) Create(ctx context.Context, req models.ParticipantRequest) (models.Participant, error) {
	p := participantFromRequest(req)
	p.Status = domain.ParticipantRegistered
	p.PaymentStatus = domain.PaymentPending

	var id domain.ID
	err := withTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := admit(ctx, tx, p, true); err != nil {
			return err
		}
		var err error
		id, err = repositories.ParticipantRepository{DB: tx}.Create(ctx, p)
		return err
	})
	if err = record(s.RequestID, "participant", "create", id, err); err != nil {
		return models.Participant{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colParticipants, colCompetitions)
	return s.repo().GetByID(ctx, id)
}

// Update edits a participant. Moving to another competition is admitted the
// same way as a new registration.
func (s ParticipantService) Update(ctx context.Context, id domain.ID, req models.ParticipantRequest) (models.Participant, error) {
	existing, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Participant{}, err
	}
	p := participantFromRequest(req)
	p.ID = id
	p.Status = existing.Status
	p.PaymentStatus = existing.PaymentStatus
	p.RegistrationDate = existing.RegistrationDate

	moved := p.CompetitionID != existing.CompetitionID
	err = withTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := admit(ctx, tx, p, moved); err != nil {
			return err
		}
		return repositories.ParticipantRepository{DB: tx}.Update(ctx, p)
	})
	if err := record(s.RequestID, "participant", "update", id, err); err != nil {
		return models.Participant{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colParticipants, colCompetitions, colMatches)
	return s.repo().GetByID(ctx, id)
}

func (s ParticipantService) UpdateStatus(ctx context.Context, id domain.ID, status domain.ParticipantStatus) (models.Participant, error) {
	p, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Participant{}, err
	}
	status = domain.NormalizeCode[domain.ParticipantStatus](string(status))
	if err := domain.ParticipantStatuses.CheckTransition(p.Status, status); err != nil {
		return models.Participant{}, record(s.RequestID, "participant", "status", id, err)
	}
	if err := record(s.RequestID, "participant", "status", id, s.repo().UpdateStatus(ctx, id, status)); err != nil {
		return models.Participant{}, err
	}
	// participantCount only counts active entries.
	invalidate(ctx, s.Cache, s.RequestID, colParticipants, colCompetitions)
	p.Status = status
	return p, nil
}

func (s ParticipantService) UpdatePayment(ctx context.Context, id domain.ID, status domain.PaymentStatus) (models.Participant, error) {
	p, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Participant{}, err
	}
	status = domain.NormalizeCode[domain.PaymentStatus](string(status))
	if err := domain.PaymentStatuses.CheckTransition(p.PaymentStatus, status); err != nil {
		return models.Participant{}, record(s.RequestID, "participant", "payment", id, err)
	}
	if err := record(s.RequestID, "participant", "payment", id, s.repo().UpdatePayment(ctx, id, status)); err != nil {
		return models.Participant{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colParticipants)
	p.PaymentStatus = status
	return p, nil
}

func (s ParticipantService) Delete(ctx context.Context, id domain.ID) error {
	if err := record(s.RequestID, "participant", "delete", id, s.repo().Delete(ctx, id)); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, s.RequestID, colParticipants, colCompetitions, colMatches)
	return nil
}
