package repositories

import (
	"context"
	"database/sql"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
)

var UserFilters = filterColumns{
	search: []string{"u.username", "u.email", "u.first_name", "u.last_name"},
	selectors: map[string]column{
		"status": upperCol("u.status"),
		"role":   upperCol("u.role"),
	},
	date: "u.created_at",
}

const userColumns = `u.id, u.username, u.email, u.first_name, u.last_name, u.phone_number,
	u.department, u.role, u.status, u.created_at, u.last_login_at`

type UserRepository struct {
	DB DBTX
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, extra ...any) (models.User, error) {
	var (
		u         models.User
		lastLogin sql.NullTime
	)
	dest := []any{&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.Department, &u.Role, &u.Status, &u.CreatedAt, &lastLogin}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return u, err
	}
	u.LastLoginAt = timePtr(lastLogin)
	return u, nil
}

func (r UserRepository) List(ctx context.Context, c listing.Criteria) ([]models.User, error) {
	var w whereBuilder
	if err := UserFilters.apply(&w, c); err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users u`+w.clause()+` ORDER BY u.id DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) GetByID(ctx context.Context, id domain.ID) (models.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return u, notFound("kullanıcı", err)
	}
	return u, nil
}

// GetByLogin matches username or email and also returns the password hash.
func (r UserRepository) GetByLogin(ctx context.Context, login string) (models.User, string, error) {
	var hash string
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+`, u.password_hash FROM users u
		WHERE u.email = ? OR u.username = ? LIMIT 1`, login, login)
	u, err := scanUser(row, &hash)
	if err != nil {
		return u, "", notFound("kullanıcı", err)
	}
	return u, hash, nil
}

// CountByIdentity counts other users already holding username or email.
func (r UserRepository) CountByIdentity(ctx context.Context, username, email string, excludeID domain.ID) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users
		WHERE (username = ? OR email = ?) AND id <> ?`, username, email, excludeID).Scan(&n)
	return n, err
}

func (r UserRepository) Create(ctx context.Context, u models.User, passwordHash string) (domain.ID, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO users
		(username, email, password_hash, first_name, last_name, phone_number, department, role, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.Email, passwordHash, u.FirstName, u.LastName, u.PhoneNumber, u.Department,
		string(u.Role), string(u.Status), time.Now())
	if err != nil {
		return 0, mapWriteError("kullanıcı", err)
	}
	return res.LastInsertId()
}

// Update writes profile fields; passwordHash is only written when non-empty.
func (r UserRepository) Update(ctx context.Context, u models.User, passwordHash string) error {
	query := `UPDATE users SET username = ?, email = ?, first_name = ?, last_name = ?,
		phone_number = ?, department = ?, role = ?`
	args := []any{u.Username, u.Email, u.FirstName, u.LastName, u.PhoneNumber, u.Department, string(u.Role)}
	if passwordHash != "" {
		query += `, password_hash = ?`
		args = append(args, passwordHash)
	}
	query += ` WHERE id = ?`
	args = append(args, u.ID)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("kullanıcı", err)
	}
	return requireAffected(res, "kullanıcı")
}

func (r UserRepository) UpdateStatus(ctx context.Context, id domain.ID, status domain.UserStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	return requireAffected(res, "kullanıcı")
}

func (r UserRepository) TouchLogin(ctx context.Context, id domain.ID, at time.Time) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET last_login_at = ? WHERE id = ?`, at, id)
	return err
}

func (r UserRepository) Delete(ctx context.Context, id domain.ID) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapWriteError("kullanıcı", err)
	}
	return requireAffected(res, "kullanıcı")
}

func (r UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// requireAffected reports NotFound when a write touched no row.
func requireAffected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}
