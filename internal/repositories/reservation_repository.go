package repositories

import (
	"context"
	"database/sql"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
)

var ReservationFilters = filterColumns{
	search: []string{"v.name", "CONCAT(u.first_name, ' ', u.last_name)", "r.notes"},
	selectors: map[string]column{
		"status":  upperCol("r.status"),
		"venueId": idCol("r.venue_id"),
		"userId":  idCol("r.user_id"),
	},
	date: "r.start_time",
}

const reservationSelect = `SELECT r.id, r.venue_id, v.name, r.user_id, u.first_name, u.last_name,
	r.start_time, r.end_time, r.status, r.notes, r.total_price, r.created_at, r.updated_at
	FROM reservations r
	LEFT JOIN venues v ON v.id = r.venue_id
	LEFT JOIN users u ON u.id = r.user_id`

type ReservationRepository struct {
	DB DBTX
}

func scanReservation(row rowScanner) (models.Reservation, error) {
	var (
		r             models.Reservation
		venueName     sql.NullString
		uFirst, uLast sql.NullString
		updated       sql.NullTime
	)
	err := row.Scan(&r.ID, &r.VenueID, &venueName, &r.UserID, &uFirst, &uLast,
		&r.StartTime, &r.EndTime, &r.Status, &r.Notes, &r.TotalPrice, &r.CreatedAt, &updated)
	if err != nil {
		return r, err
	}
	r.VenueName = venueName.String
	if uFirst.Valid {
		r.UserName = fullName(uFirst.String, uLast.String)
	}
	r.UpdatedAt = timePtr(updated)
	return r, nil
}

func (r ReservationRepository) query(ctx context.Context, q string, args ...any) ([]models.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// List orders by start time so a date-bounded listing reads as a calendar.
func (r ReservationRepository) List(ctx context.Context, c listing.Criteria) ([]models.Reservation, error) {
	var w whereBuilder
	if err := ReservationFilters.apply(&w, c); err != nil {
		return nil, err
	}
	return r.query(ctx, reservationSelect+w.clause()+` ORDER BY r.start_time, r.id`, w.args...)
}

func (r ReservationRepository) GetByID(ctx context.Context, id domain.ID) (models.Reservation, error) {
	res, err := scanReservation(r.DB.QueryRowContext(ctx, reservationSelect+` WHERE r.id = ?`, id))
	if err != nil {
		return res, notFound("rezervasyon", err)
	}
	return res, nil
}

// Overlapping lists the reservations of a venue that still hold a slot
// intersecting [start, end). exceptID, when positive, is left out so a
// reservation never conflicts with itself.
func (r ReservationRepository) Overlapping(ctx context.Context, venueID domain.ID, start, end time.Time, exceptID domain.ID) ([]models.Reservation, error) {
	return r.query(ctx, reservationSelect+` WHERE r.venue_id = ? AND r.id <> ?
		AND r.status NOT IN (?, ?)
		AND r.start_time < ? AND r.end_time > ?
		ORDER BY r.start_time`,
		venueID, exceptID, string(domain.ReservationCancelled), string(domain.ReservationNoShow), end, start)
}

func (r ReservationRepository) Create(ctx context.Context, res models.Reservation) (domain.ID, error) {
	out, err := r.DB.ExecContext(ctx, `INSERT INTO reservations
		(venue_id, user_id, start_time, end_time, status, notes, total_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.VenueID, res.UserID, res.StartTime, res.EndTime, string(res.Status), res.Notes,
		res.TotalPrice, time.Now())
	if err != nil {
		return 0, mapWriteError("rezervasyon", err)
	}
	return out.LastInsertId()
}

func (r ReservationRepository) Update(ctx context.Context, res models.Reservation) error {
	out, err := r.DB.ExecContext(ctx, `UPDATE reservations SET venue_id = ?, start_time = ?, end_time = ?,
		notes = ?, total_price = ?, updated_at = ?
		WHERE id = ?`,
		res.VenueID, res.StartTime, res.EndTime, res.Notes, res.TotalPrice, time.Now(), res.ID)
	if err != nil {
		return mapWriteError("rezervasyon", err)
	}
	return requireAffected(out, "rezervasyon")
}

func (r ReservationRepository) UpdateStatus(ctx context.Context, id domain.ID, status domain.ReservationStatus) error {
	out, err := r.DB.ExecContext(ctx, `UPDATE reservations SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now(), id)
	if err != nil {
		return err
	}
	return requireAffected(out, "rezervasyon")
}

func (r ReservationRepository) Delete(ctx context.Context, id domain.ID) error {
	out, err := r.DB.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return mapWriteError("rezervasyon", err)
	}
	return requireAffected(out, "rezervasyon")
}
