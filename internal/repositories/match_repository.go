package repositories

import (
	"context"
	"database/sql"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
)

var MatchFilters = filterColumns{
	search: []string{
		"CONCAT(p1.first_name, ' ', p1.last_name)",
		"CONCAT(p2.first_name, ' ', p2.last_name)",
		"c.name",
	},
	selectors: map[string]column{
		"status":        upperCol("m.status"),
		"competitionId": idCol("m.competition_id"),
		"refereeId":     idCol("m.referee_id"),
	},
	date: "m.match_date",
}

const matchSelect = `SELECT m.id, m.competition_id, c.name,
	m.participant1_id, p1.first_name, p1.last_name,
	m.participant2_id, p2.first_name, p2.last_name,
	m.referee_id, r.first_name, r.last_name,
	m.match_date, m.duration_minutes, m.score_participant1, m.score_participant2, m.status,
	m.match_number, m.round_number, m.court_number, m.notes
	FROM matches m
	LEFT JOIN competitions c ON c.id = m.competition_id
	LEFT JOIN participants p1 ON p1.id = m.participant1_id
	LEFT JOIN participants p2 ON p2.id = m.participant2_id
	LEFT JOIN users r ON r.id = m.referee_id`

type MatchRepository struct {
	DB DBTX
}

func scanMatch(row rowScanner) (models.Match, error) {
	var (
		m                 models.Match
		compName          sql.NullString
		p1ID, p2ID, refID sql.NullInt64
		p1First, p1Last   sql.NullString
		p2First, p2Last   sql.NullString
		refFirst, refLast sql.NullString
		score1, score2    sql.NullInt64
	)
	err := row.Scan(&m.ID, &m.CompetitionID, &compName,
		&p1ID, &p1First, &p1Last,
		&p2ID, &p2First, &p2Last,
		&refID, &refFirst, &refLast,
		&m.MatchDate, &m.DurationMinutes, &score1, &score2, &m.Status,
		&m.MatchNumber, &m.RoundNumber, &m.CourtNumber, &m.Notes)
	if err != nil {
		return m, err
	}
	m.CompetitionName = compName.String
	if p1ID.Valid {
		m.Participant1 = &models.ParticipantRef{ID: p1ID.Int64, Name: fullName(p1First.String, p1Last.String)}
	}
	if p2ID.Valid {
		m.Participant2 = &models.ParticipantRef{ID: p2ID.Int64, Name: fullName(p2First.String, p2Last.String)}
	}
	if refID.Valid {
		m.Referee = &models.UserRef{ID: refID.Int64, Name: fullName(refFirst.String, refLast.String)}
	}
	m.ScoreParticipant1 = intPtr(score1)
	m.ScoreParticipant2 = intPtr(score2)
	return m, nil
}

func (r MatchRepository) List(ctx context.Context, c listing.Criteria) ([]models.Match, error) {
	var w whereBuilder
	if err := MatchFilters.apply(&w, c); err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, matchSelect+w.clause()+` ORDER BY m.match_date, m.id`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r MatchRepository) GetByID(ctx context.Context, id domain.ID) (models.Match, error) {
	m, err := scanMatch(r.DB.QueryRowContext(ctx, matchSelect+` WHERE m.id = ?`, id))
	if err != nil {
		return m, notFound("maç", err)
	}
	return m, nil
}

type MatchWrite struct {
	models.Match
	Participant1ID *domain.ID
	Participant2ID *domain.ID
	RefereeID      *domain.ID
}

func (r MatchRepository) Create(ctx context.Context, m MatchWrite) (domain.ID, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO matches
		(competition_id, participant1_id, participant2_id, referee_id, match_date, duration_minutes,
		 status, match_number, round_number, court_number, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.CompetitionID, nullID(m.Participant1ID), nullID(m.Participant2ID), nullID(m.RefereeID),
		m.MatchDate, m.DurationMinutes, string(m.Status), m.MatchNumber, m.RoundNumber, m.CourtNumber, m.Notes)
	if err != nil {
		return 0, mapWriteError("maç", err)
	}
	return res.LastInsertId()
}

func (r MatchRepository) Update(ctx context.Context, m MatchWrite) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE matches SET competition_id = ?, participant1_id = ?,
		participant2_id = ?, referee_id = ?, match_date = ?, duration_minutes = ?, match_number = ?,
		round_number = ?, court_number = ?, notes = ?
		WHERE id = ?`,
		m.CompetitionID, nullID(m.Participant1ID), nullID(m.Participant2ID), nullID(m.RefereeID),
		m.MatchDate, m.DurationMinutes, m.MatchNumber, m.RoundNumber, m.CourtNumber, m.Notes, m.ID)
	if err != nil {
		return mapWriteError("maç", err)
	}
	return requireAffected(res, "maç")
}

func (r MatchRepository) UpdateStatus(ctx context.Context, id domain.ID, status domain.MatchStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE matches SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	return requireAffected(res, "maç")
}

func (r MatchRepository) UpdateScore(ctx context.Context, id domain.ID, score1, score2 int) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE matches SET score_participant1 = ?, score_participant2 = ? WHERE id = ?`,
		score1, score2, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "maç")
}

func (r MatchRepository) Delete(ctx context.Context, id domain.ID) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return mapWriteError("maç", err)
	}
	return requireAffected(res, "maç")
}
