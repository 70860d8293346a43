package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/listing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assetCols = []string{"id", "name", "description", "asset_code", "serial_number", "brand", "model",
	"purchase_price", "purchase_date", "status", "location", "notes", "category_id",
	"current_assigned_user_id", "created_date", "c_name", "c_code", "u_first", "u_last"}

func TestAssetListFiltersInSQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM assets a .* WHERE a.is_deleted = 0 AND a.status = \?`).
		WithArgs(int(domain.AssetAssigned)).
		WillReturnRows(sqlmock.NewRows(assetCols).
			AddRow(7, "Laptop", "", "DMB-7", "SN7", "Dell", "XPS", 1200.5, nil, 2, "Ofis", "", 3,
				11, now, "Bilgisayar", "BLG", "Ayşe", "Kaya"))

	repo := AssetRepository{DB: db}
	got, err := repo.List(context.Background(), listing.Criteria{}.With("status", "2"))
	require.NoError(t, err)
	require.Len(t, got, 1)

	a := got[0]
	assert.Equal(t, domain.AssetAssigned, a.Status)
	require.NotNil(t, a.Category)
	assert.Equal(t, "BLG", a.Category.Code)
	require.NotNil(t, a.CurrentAssignedUser)
	assert.Equal(t, "Ayşe Kaya", a.CurrentAssignedUser.Name)
	assert.Nil(t, a.PurchaseDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM assets a`).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	_, err = AssetRepository{DB: db}.GetByID(context.Background(), 99)
	assert.True(t, domain.IsNotFound(err))
}

func TestAssetSetStatusClearsHolder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE assets SET status = \?, current_assigned_user_id = \?`).
		WithArgs(int(domain.AssetAvailable), nil, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE assets SET status`).
		WithArgs(int(domain.AssetAvailable), nil, int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := AssetRepository{DB: db}
	require.NoError(t, repo.SetStatus(context.Background(), 5, domain.AssetAvailable, nil))
	err = repo.SetStatus(context.Background(), 6, domain.AssetAvailable, nil)
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentActiveNone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM assignments s .* s.return_date IS NULL`).
		WithArgs(int64(3), int(domain.AssignmentIssue)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, ok, err := AssignmentRepository{DB: db}.Active(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCategoryCodeTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM categories`).
		WithArgs("BLG", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	taken, err := CategoryRepository{DB: db}.CodeTaken(context.Background(), "BLG", 0)
	require.NoError(t, err)
	assert.True(t, taken)
}
