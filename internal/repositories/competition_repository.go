package repositories

import (
	"context"
	"database/sql"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
)

var CompetitionFilters = filterColumns{
	search: []string{"c.name", "c.description"},
	selectors: map[string]column{
		"status":      upperCol("c.status"),
		"sportType":   upperCol("c.sport_type"),
		"venueId":     idCol("c.venue_id"),
		"organizerId": idCol("c.organizer_id"),
	},
	date: "c.start_date",
}

const competitionSelect = `SELECT c.id, c.name, c.description, c.sport_type, c.status, c.start_date, c.end_date,
	c.registration_deadline, c.max_participants, c.min_age, c.max_age, c.gender_category, c.entry_fee,
	c.prize_pool, c.venue_id, v.name, c.organizer_id, o.first_name, o.last_name,
	(SELECT COUNT(*) FROM participants p WHERE p.competition_id = c.id
		AND p.status NOT IN ('WITHDRAWN', 'DISQUALIFIED')) AS participant_count
	FROM competitions c
	LEFT JOIN venues v ON v.id = c.venue_id
	LEFT JOIN users o ON o.id = c.organizer_id`

type CompetitionRepository struct {
	DB DBTX
}

func scanCompetition(row rowScanner) (models.Competition, error) {
	var (
		c                 models.Competition
		deadline          sql.NullTime
		venueID, orgID    sql.NullInt64
		venueName         sql.NullString
		orgFirst, orgLast sql.NullString
	)
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.SportType, &c.Status, &c.StartDate, &c.EndDate,
		&deadline, &c.MaxParticipants, &c.MinAge, &c.MaxAge, &c.GenderCategory, &c.EntryFee,
		&c.PrizePool, &venueID, &venueName, &orgID, &orgFirst, &orgLast, &c.ParticipantCount)
	if err != nil {
		return c, err
	}
	c.RegistrationDeadline = timePtr(deadline)
	c.VenueID = idPtr(venueID)
	c.VenueName = venueName.String
	c.OrganizerID = idPtr(orgID)
	if orgFirst.Valid {
		c.OrganizerName = fullName(orgFirst.String, orgLast.String)
	}
	return c, nil
}

func (r CompetitionRepository) List(ctx context.Context, cr listing.Criteria) ([]models.Competition, error) {
	var w whereBuilder
	if err := CompetitionFilters.apply(&w, cr); err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, competitionSelect+w.clause()+` ORDER BY c.start_date DESC, c.id DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Competition{}
	for rows.Next() {
		c, err := scanCompetition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CompetitionRepository) GetByID(ctx context.Context, id domain.ID) (models.Competition, error) {
	c, err := scanCompetition(r.DB.QueryRowContext(ctx, competitionSelect+` WHERE c.id = ?`, id))
	if err != nil {
		return c, notFound("müsabaka", err)
	}
	return c, nil
}

// GetForUpdate reads a competition and locks its row until the surrounding
// transaction ends. Entry writers take this lock before counting free slots.
func (r CompetitionRepository) GetForUpdate(ctx context.Context, id domain.ID) (models.Competition, error) {
	c, err := scanCompetition(r.DB.QueryRowContext(ctx, competitionSelect+` WHERE c.id = ? FOR UPDATE`, id))
	if err != nil {
		return c, notFound("müsabaka", err)
	}
	return c, nil
}

func (r CompetitionRepository) Create(ctx context.Context, c models.Competition) (domain.ID, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO competitions
		(name, description, sport_type, status, start_date, end_date, registration_deadline,
		 max_participants, min_age, max_age, gender_category, entry_fee, prize_pool, venue_id, organizer_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Description, string(c.SportType), string(c.Status), c.StartDate, c.EndDate,
		nullTime(c.RegistrationDeadline), c.MaxParticipants, c.MinAge, c.MaxAge, string(c.GenderCategory),
		c.EntryFee, c.PrizePool, nullID(c.VenueID), nullID(c.OrganizerID))
	if err != nil {
		return 0, mapWriteError("müsabaka", err)
	}
	return res.LastInsertId()
}

func (r CompetitionRepository) Update(ctx context.Context, c models.Competition) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE competitions SET name = ?, description = ?, sport_type = ?,
		start_date = ?, end_date = ?, registration_deadline = ?, max_participants = ?, min_age = ?,
		max_age = ?, gender_category = ?, entry_fee = ?, prize_pool = ?, venue_id = ?, organizer_id = ?
		WHERE id = ?`,
		c.Name, c.Description, string(c.SportType), c.StartDate, c.EndDate, nullTime(c.RegistrationDeadline),
		c.MaxParticipants, c.MinAge, c.MaxAge, string(c.GenderCategory), c.EntryFee, c.PrizePool,
		nullID(c.VenueID), nullID(c.OrganizerID), c.ID)
	if err != nil {
		return mapWriteError("müsabaka", err)
	}
	return requireAffected(res, "müsabaka")
}

func (r CompetitionRepository) UpdateStatus(ctx context.Context, id domain.ID, status domain.CompetitionStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE competitions SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	return requireAffected(res, "müsabaka")
}

// Delete removes the competition; participants and matches go with it.
func (r CompetitionRepository) Delete(ctx context.Context, id domain.ID) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM competitions WHERE id = ?`, id)
	if err != nil {
		return mapWriteError("müsabaka", err)
	}
	return requireAffected(res, "müsabaka")
}
