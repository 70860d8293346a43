package repositories

import (
	"context"
	"database/sql"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
)

var AssetFilters = filterColumns{
	search: []string{"a.name", "a.asset_code", "a.brand", "a.model", "a.serial_number"},
	selectors: map[string]column{
		"status":     assetStatusCol("a.status"),
		"categoryId": idCol("a.category_id"),
		"userId":     idCol("a.current_assigned_user_id"),
	},
	date: "a.purchase_date",
}

const assetSelect = `SELECT a.id, a.name, a.description, a.asset_code, a.serial_number, a.brand, a.model,
	a.purchase_price, a.purchase_date, a.status, a.location, a.notes, a.category_id,
	a.current_assigned_user_id, a.created_date,
	c.name, c.code, u.first_name, u.last_name
	FROM assets a
	LEFT JOIN categories c ON c.id = a.category_id
	LEFT JOIN users u ON u.id = a.current_assigned_user_id`

type AssetRepository struct {
	DB DBTX
}

func scanAsset(row rowScanner) (models.Asset, error) {
	var (
		a                   models.Asset
		purchaseDate        sql.NullTime
		assignedUser        sql.NullInt64
		catName, catCode    sql.NullString
		userFirst, userLast sql.NullString
	)
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.AssetCode, &a.SerialNumber, &a.Brand, &a.Model,
		&a.PurchasePrice, &purchaseDate, &a.Status, &a.Location, &a.Notes, &a.CategoryID,
		&assignedUser, &a.CreatedDate,
		&catName, &catCode, &userFirst, &userLast)
	if err != nil {
		return a, err
	}
	a.PurchaseDate = timePtr(purchaseDate)
	a.CurrentAssignedUserID = idPtr(assignedUser)
	if catName.Valid {
		a.Category = &models.CategoryRef{ID: a.CategoryID, Name: catName.String, Code: catCode.String}
	}
	if a.CurrentAssignedUserID != nil && userFirst.Valid {
		a.CurrentAssignedUser = &models.UserRef{
			ID:   *a.CurrentAssignedUserID,
			Name: fullName(userFirst.String, userLast.String),
		}
	}
	return a, nil
}

func (r AssetRepository) List(ctx context.Context, c listing.Criteria) ([]models.Asset, error) {
	w := whereBuilder{}
	w.add("a.is_deleted = 0")
	if err := AssetFilters.apply(&w, c); err != nil {
		return nil, err
	}
	return r.query(ctx, assetSelect+w.clause()+` ORDER BY a.id DESC`, w.args...)
}

// ListAssignedTo returns the assets currently held by userID.
func (r AssetRepository) ListAssignedTo(ctx context.Context, userID domain.ID) ([]models.Asset, error) {
	return r.query(ctx, assetSelect+` WHERE a.is_deleted = 0 AND a.current_assigned_user_id = ? ORDER BY a.name`, userID)
}

func (r AssetRepository) query(ctx context.Context, q string, args ...any) ([]models.Asset, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r AssetRepository) GetByID(ctx context.Context, id domain.ID) (models.Asset, error) {
	a, err := scanAsset(r.DB.QueryRowContext(ctx, assetSelect+` WHERE a.id = ? AND a.is_deleted = 0`, id))
	if err != nil {
		return a, notFound("demirbaş", err)
	}
	return a, nil
}

// GetForUpdate locks the asset row for the rest of the transaction.
func (r AssetRepository) GetForUpdate(ctx context.Context, id domain.ID) (models.Asset, error) {
	a, err := scanAsset(r.DB.QueryRowContext(ctx, assetSelect+` WHERE a.id = ? AND a.is_deleted = 0 FOR UPDATE`, id))
	if err != nil {
		return a, notFound("demirbaş", err)
	}
	return a, nil
}

func (r AssetRepository) CodeTaken(ctx context.Context, code string, excludeID domain.ID) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM assets
		WHERE asset_code = ? AND id <> ? AND is_deleted = 0`, code, excludeID).Scan(&n)
	return n > 0, err
}

func (r AssetRepository) Create(ctx context.Context, a models.Asset) (domain.ID, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO assets
		(name, description, asset_code, serial_number, brand, model, purchase_price, purchase_date,
		 status, location, notes, category_id, created_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.Description, a.AssetCode, a.SerialNumber, a.Brand, a.Model, a.PurchasePrice,
		nullTime(a.PurchaseDate), int(a.Status), a.Location, a.Notes, a.CategoryID, time.Now())
	if err != nil {
		return 0, mapWriteError("demirbaş", err)
	}
	return res.LastInsertId()
}

// Update writes descriptive fields only; status and holder are owned by
// SetStatus and the assignment flow.
func (r AssetRepository) Update(ctx context.Context, a models.Asset) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE assets SET name = ?, description = ?, asset_code = ?,
		serial_number = ?, brand = ?, model = ?, purchase_price = ?, purchase_date = ?,
		location = ?, notes = ?, category_id = ?
		WHERE id = ? AND is_deleted = 0`,
		a.Name, a.Description, a.AssetCode, a.SerialNumber, a.Brand, a.Model, a.PurchasePrice,
		nullTime(a.PurchaseDate), a.Location, a.Notes, a.CategoryID, a.ID)
	if err != nil {
		return mapWriteError("demirbaş", err)
	}
	return requireAffected(res, "demirbaş")
}

// SetStatus updates status and current holder together. holder nil clears it.
func (r AssetRepository) SetStatus(ctx context.Context, id domain.ID, status domain.AssetStatus, holder *domain.ID) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE assets SET status = ?, current_assigned_user_id = ?
		WHERE id = ? AND is_deleted = 0`, int(status), nullID(holder), id)
	if err != nil {
		return err
	}
	return requireAffected(res, "demirbaş")
}

func (r AssetRepository) SoftDelete(ctx context.Context, id domain.ID) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE assets SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "demirbaş")
}

func fullName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
