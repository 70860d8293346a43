package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
)

var AssignmentFilters = filterColumns{
	search: []string{"a.name", "a.asset_code", "u.first_name", "u.last_name", "s.notes"},
	selectors: map[string]column{
		"type":    idCol("s.type"),
		"userId":  idCol("s.user_id"),
		"assetId": idCol("s.asset_id"),
	},
	date: "s.assignment_date",
}

const assignmentSelect = `SELECT s.id, s.type, s.assignment_date, s.return_date, s.notes, s.item_condition,
	s.asset_id, s.user_id, s.assigned_by_user_id,
	a.name, a.asset_code, u.first_name, u.last_name, b.first_name, b.last_name
	FROM assignments s
	LEFT JOIN assets a ON a.id = s.asset_id
	LEFT JOIN users u ON u.id = s.user_id
	LEFT JOIN users b ON b.id = s.assigned_by_user_id`

type AssignmentRepository struct {
	DB DBTX
}

func scanAssignment(row rowScanner) (models.Assignment, error) {
	var (
		s                   models.Assignment
		returnDate          sql.NullTime
		assetName, code     sql.NullString
		userFirst, userLast sql.NullString
		byFirst, byLast     sql.NullString
	)
	err := row.Scan(&s.ID, &s.Type, &s.AssignmentDate, &returnDate, &s.Notes, &s.Condition,
		&s.AssetID, &s.UserID, &s.AssignedByUserID,
		&assetName, &code, &userFirst, &userLast, &byFirst, &byLast)
	if err != nil {
		return s, err
	}
	s.ReturnDate = timePtr(returnDate)
	if assetName.Valid {
		s.Asset = &models.AssetRef{ID: s.AssetID, Name: assetName.String, AssetCode: code.String}
	}
	if userFirst.Valid {
		s.User = &models.UserRef{ID: s.UserID, Name: fullName(userFirst.String, userLast.String)}
	}
	if byFirst.Valid {
		s.AssignedByUser = &models.UserRef{ID: s.AssignedByUserID, Name: fullName(byFirst.String, byLast.String)}
	}
	return s, nil
}

func (r AssignmentRepository) List(ctx context.Context, c listing.Criteria) ([]models.Assignment, error) {
	var w whereBuilder
	if err := AssignmentFilters.apply(&w, c); err != nil {
		return nil, err
	}
	return r.query(ctx, assignmentSelect+w.clause()+` ORDER BY s.assignment_date DESC, s.id DESC`, w.args...)
}

func (r AssignmentRepository) ListByAsset(ctx context.Context, assetID domain.ID) ([]models.Assignment, error) {
	return r.query(ctx, assignmentSelect+` WHERE s.asset_id = ? ORDER BY s.assignment_date DESC, s.id DESC`, assetID)
}

func (r AssignmentRepository) ListByUser(ctx context.Context, userID domain.ID) ([]models.Assignment, error) {
	return r.query(ctx, assignmentSelect+` WHERE s.user_id = ? ORDER BY s.assignment_date DESC, s.id DESC`, userID)
}

// Recent returns the n latest records by assignment date.
func (r AssignmentRepository) Recent(ctx context.Context, n int) ([]models.Assignment, error) {
	return r.query(ctx, assignmentSelect+` ORDER BY s.assignment_date DESC, s.id DESC LIMIT ?`, n)
}

func (r AssignmentRepository) query(ctx context.Context, q string, args ...any) ([]models.Assignment, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Assignment{}
	for rows.Next() {
		s, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r AssignmentRepository) GetByID(ctx context.Context, id domain.ID) (models.Assignment, error) {
	s, err := scanAssignment(r.DB.QueryRowContext(ctx, assignmentSelect+` WHERE s.id = ?`, id))
	if err != nil {
		return s, notFound("zimmet kaydı", err)
	}
	return s, nil
}

// Active returns the open handover of an asset, if any.
func (r AssignmentRepository) Active(ctx context.Context, assetID domain.ID) (models.Assignment, bool, error) {
	s, err := scanAssignment(r.DB.QueryRowContext(ctx, assignmentSelect+
		` WHERE s.asset_id = ? AND s.type = ? AND s.return_date IS NULL ORDER BY s.id DESC LIMIT 1`,
		assetID, int(domain.AssignmentIssue)))
	if errors.Is(err, sql.ErrNoRows) {
		return s, false, nil
	}
	if err != nil {
		return s, false, err
	}
	return s, true, nil
}

func (r AssignmentRepository) Create(ctx context.Context, s models.Assignment) (domain.ID, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO assignments
		(type, assignment_date, return_date, notes, item_condition, asset_id, user_id, assigned_by_user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		int(s.Type), s.AssignmentDate, nullTime(s.ReturnDate), s.Notes, s.Condition,
		s.AssetID, s.UserID, s.AssignedByUserID)
	if err != nil {
		return 0, mapWriteError("zimmet kaydı", err)
	}
	return res.LastInsertId()
}

// Close stamps the return date on an open handover.
func (r AssignmentRepository) Close(ctx context.Context, id domain.ID, at time.Time) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE assignments SET return_date = ? WHERE id = ? AND return_date IS NULL`, at, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "zimmet kaydı")
}
