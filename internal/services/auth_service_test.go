package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuth(db *sql.DB, now time.Time) AuthService {
	return AuthService{DB: db, Secret: []byte("test-secret"), TTL: time.Hour, Now: func() time.Time { return now }}
}

func TestAuthIssueParseRoundTrip(t *testing.T) {
	svc := testAuth(nil, fixedNow)

	token, exp, err := svc.Issue(7, domain.RoleOrganizer, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(time.Hour), exp)

	rc, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestContext{UserID: 7, Role: domain.RoleOrganizer}, rc)
}

func TestAuthParseRejects(t *testing.T) {
	svc := testAuth(nil, fixedNow)
	token, _, err := svc.Issue(7, domain.RoleAdmin, fixedNow)
	require.NoError(t, err)

	expired := testAuth(nil, fixedNow.Add(2*time.Hour))
	_, err = expired.Parse(token)
	assert.True(t, domain.IsUnauthorized(err))

	other := svc
	other.Secret = []byte("other")
	_, err = other.Parse(token)
	assert.True(t, domain.IsUnauthorized(err))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 7, "role": "ADMIN"})
	raw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Parse(raw)
	assert.True(t, domain.IsUnauthorized(err))

	_, err = svc.Parse("garbage")
	assert.True(t, domain.IsUnauthorized(err))
}

func loginRow(status, hash string) *sqlmock.Rows {
	return sqlmock.NewRows(append(append([]string{}, userCols...), "password_hash")).
		AddRow(11, "ayse", "ayse@example.com", "Ayşe", "Kaya", "", "BT", "PERSONNEL", status, fixedNow, nil, hash)
}

func TestAuthLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)

	db, mock := newMock(t)
	mock.ExpectQuery(`WHERE u.email = \? OR u.username = \?`).WithArgs("ayse", "ayse").
		WillReturnRows(loginRow("ACTIVE", string(hash)))
	mock.ExpectExec(`UPDATE users SET last_login_at`).WithArgs(fixedNow, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := testAuth(db, fixedNow)
	resp, err := svc.Login(context.Background(), models.LoginRequest{Login: " ayse ", Password: "s3cret!"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, domain.ID(11), resp.User.ID)

	rc, err := svc.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RolePersonnel, rc.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthLoginFailures(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)

	db, mock := newMock(t)
	svc := testAuth(db, fixedNow)

	mock.ExpectQuery(`FROM users u`).WillReturnRows(loginRow("ACTIVE", string(hash)))
	_, err = svc.Login(context.Background(), models.LoginRequest{Login: "ayse", Password: "wrong"})
	assert.True(t, domain.IsUnauthorized(err))

	mock.ExpectQuery(`FROM users u`).WillReturnError(sql.ErrNoRows)
	_, err = svc.Login(context.Background(), models.LoginRequest{Login: "nobody", Password: "x"})
	assert.True(t, domain.IsUnauthorized(err))

	mock.ExpectQuery(`FROM users u`).WillReturnRows(loginRow("SUSPENDED", string(hash)))
	_, err = svc.Login(context.Background(), models.LoginRequest{Login: "ayse", Password: "s3cret!"})
	assert.True(t, domain.IsForbidden(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCannotDeleteSelf(t *testing.T) {
	err := UserService{}.Delete(context.Background(), admin, admin.UserID)
	assert.True(t, domain.IsConflict(err))
}
