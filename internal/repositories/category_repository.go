package repositories

import (
	"context"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
)

var CategoryFilters = filterColumns{
	search: []string{"c.name", "c.description", "c.code"},
	date:   "c.created_date",
}

const categorySelect = `SELECT c.id, c.name, c.description, c.code, c.created_date,
	(SELECT COUNT(*) FROM assets a WHERE a.category_id = c.id AND a.is_deleted = 0) AS asset_count
	FROM categories c`

type CategoryRepository struct {
	DB DBTX
}

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Code, &c.CreatedDate, &c.AssetCount)
	return c, err
}

func (r CategoryRepository) List(ctx context.Context, c listing.Criteria) ([]models.Category, error) {
	w := whereBuilder{}
	w.add("c.is_deleted = 0")
	if err := CategoryFilters.apply(&w, c); err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, categorySelect+w.clause()+` ORDER BY c.name`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Category{}
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

func (r CategoryRepository) GetByID(ctx context.Context, id domain.ID) (models.Category, error) {
	cat, err := scanCategory(r.DB.QueryRowContext(ctx, categorySelect+` WHERE c.id = ? AND c.is_deleted = 0`, id))
	if err != nil {
		return cat, notFound("kategori", err)
	}
	return cat, nil
}

// CodeTaken reports whether another live category uses code.
func (r CategoryRepository) CodeTaken(ctx context.Context, code string, excludeID domain.ID) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories
		WHERE code = ? AND id <> ? AND is_deleted = 0`, code, excludeID).Scan(&n)
	return n > 0, err
}

func (r CategoryRepository) Create(ctx context.Context, c models.Category) (domain.ID, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO categories (name, description, code, created_date)
		VALUES (?, ?, ?, ?)`, c.Name, c.Description, c.Code, time.Now())
	if err != nil {
		return 0, mapWriteError("kategori", err)
	}
	return res.LastInsertId()
}

func (r CategoryRepository) Update(ctx context.Context, c models.Category) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE categories SET name = ?, description = ?, code = ?
		WHERE id = ? AND is_deleted = 0`, c.Name, c.Description, c.Code, c.ID)
	if err != nil {
		return mapWriteError("kategori", err)
	}
	return requireAffected(res, "kategori")
}

func (r CategoryRepository) SoftDelete(ctx context.Context, id domain.ID) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE categories SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "kategori")
}

func (r CategoryRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE is_deleted = 0`).Scan(&n)
	return n, err
}
