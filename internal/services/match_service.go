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

type MatchService struct {
	DB        *sql.DB
	Cache     cache.ListCache
	RequestID string
}

func (s MatchService) repo() repositories.MatchRepository {
	return repositories.MatchRepository{DB: s.DB}
}

func (s MatchService) List(ctx context.Context, c listing.Criteria) ([]models.Match, error) {
	return cachedList(ctx, s.Cache, s.RequestID, colMatches, c, func() ([]models.Match, error) {
		return s.repo().List(ctx, c)
	})
}

func (s MatchService) Get(ctx context.Context, id domain.ID) (models.Match, error) {
	return s.repo().GetByID(ctx, id)
}

func matchFromRequest(req models.MatchRequest) repositories.MatchWrite {
	return repositories.MatchWrite{
		Match: models.Match{
			CompetitionID:   req.CompetitionID,
			MatchDate:       req.MatchDate,
			DurationMinutes: req.DurationMinutes,
			MatchNumber:     req.MatchNumber,
			RoundNumber:     req.RoundNumber,
			CourtNumber:     strings.TrimSpace(req.CourtNumber),
			Notes:           strings.TrimSpace(req.Notes),
		},
		Participant1ID: req.Participant1ID,
		Participant2ID: req.Participant2ID,
		RefereeID:      req.RefereeID,
	}
}

// checkRefs makes sure the competition exists, both sides are distinct entries
// of that competition and the referee can officiate.
func (s MatchService) checkRefs(ctx context.Context, m repositories.MatchWrite) error {
	if _, err := (repositories.CompetitionRepository{DB: s.DB}).GetByID(ctx, m.CompetitionID); err != nil {
		if domain.IsNotFound(err) {
			return domain.ValidationError{Field: "competitionId", Msg: "müsabaka bulunamadı", Err: err}
		}
		return err
	}
	if m.Participant1ID != nil && m.Participant2ID != nil && *m.Participant1ID == *m.Participant2ID {
		return domain.ValidationError{Field: "participant2Id", Msg: "bir katılımcı kendisiyle eşleşemez"}
	}
	participants := repositories.ParticipantRepository{DB: s.DB}
	sides := []struct {
		field string
		id    *domain.ID
	}{{"participant1Id", m.Participant1ID}, {"participant2Id", m.Participant2ID}}
	for _, side := range sides {
		field, pid := side.field, side.id
		if pid == nil {
			continue
		}
		p, err := participants.GetByID(ctx, *pid)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.ValidationError{Field: field, Msg: "katılımcı bulunamadı", Err: err}
			}
			return err
		}
		if p.CompetitionID != m.CompetitionID {
			return domain.ValidationError{Field: field, Msg: "katılımcı bu müsabakaya kayıtlı değil"}
		}
	}
	if m.RefereeID != nil {
		u, err := repositories.UserRepository{DB: s.DB}.GetByID(ctx, *m.RefereeID)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.ValidationError{Field: "refereeId", Msg: "hakem bulunamadı", Err: err}
			}
			return err
		}
		if u.Role != domain.RoleReferee && u.Role != domain.RoleAdmin {
			return domain.ValidationError{Field: "refereeId", Msg: "kullanıcı hakem değil"}
		}
	}
	return nil
}

func (s MatchService) Create(ctx context.Context, req models.MatchRequest) (models.Match, error) {
	m := matchFromRequest(req)
	m.Status = domain.MatchScheduled
	if err := s.checkRefs(ctx, m); err != nil {
		return models.Match{}, record(s.RequestID, "match", "create", 0, err)
	}
	id, err := s.repo().Create(ctx, m)
	if err = record(s.RequestID, "match", "create", id, err); err != nil {
		return models.Match{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colMatches)
	return s.repo().GetByID(ctx, id)
}

func (s MatchService) Update(ctx context.Context, id domain.ID, req models.MatchRequest) (models.Match, error) {
	existing, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Match{}, err
	}
	m := matchFromRequest(req)
	m.ID = id
	m.Status = existing.Status
	if err := s.checkRefs(ctx, m); err != nil {
		return models.Match{}, record(s.RequestID, "match", "update", id, err)
	}
	if err := record(s.RequestID, "match", "update", id, s.repo().Update(ctx, m)); err != nil {
		return models.Match{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colMatches)
	return s.repo().GetByID(ctx, id)
}

func (s MatchService) UpdateStatus(ctx context.Context, id domain.ID, status domain.MatchStatus) (models.Match, error) {
	m, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Match{}, err
	}
	status = domain.NormalizeCode[domain.MatchStatus](string(status))
	if err := domain.MatchStatuses.CheckTransition(m.Status, status); err != nil {
		return models.Match{}, record(s.RequestID, "match", "status", id, err)
	}
	if err := record(s.RequestID, "match", "status", id, s.repo().UpdateStatus(ctx, id, status)); err != nil {
		return models.Match{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colMatches)
	m.Status = status
	return m, nil
}

// UpdateScore records both scores. Only running or finished matches carry a score.
func (s MatchService) UpdateScore(ctx context.Context, id domain.ID, req models.ScoreRequest) (models.Match, error) {
	if req.ScoreParticipant1 == nil || req.ScoreParticipant2 == nil {
		return models.Match{}, domain.ValidationError{Field: "score", Msg: "iki skor da gerekli"}
	}
	s1, s2 := *req.ScoreParticipant1, *req.ScoreParticipant2
	if s1 < 0 || s2 < 0 {
		return models.Match{}, domain.ValidationError{Field: "score", Msg: "skor negatif olamaz"}
	}
	m, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Match{}, err
	}
	if m.Status != domain.MatchInProgress && m.Status != domain.MatchCompleted {
		return models.Match{}, record(s.RequestID, "match", "score", id, domain.ConflictError{
			Resource: "maç",
			Msg:      "skor yalnızca devam eden veya tamamlanan maça girilebilir",
		})
	}
	if err := record(s.RequestID, "match", "score", id, s.repo().UpdateScore(ctx, id, s1, s2)); err != nil {
		return models.Match{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colMatches)
	m.ScoreParticipant1, m.ScoreParticipant2 = &s1, &s2
	return m, nil
}

func (s MatchService) Delete(ctx context.Context, id domain.ID) error {
	if err := record(s.RequestID, "match", "delete", id, s.repo().Delete(ctx, id)); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, s.RequestID, colMatches)
	return nil
}
