package services

import (
	"context"
	"testing"
	"time"

	"adminhub/internal/cache"
	"adminhub/internal/domain"
	"adminhub/internal/listing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryCols = []string{"id", "name", "description", "code", "created_date", "asset_count"}

func TestCategoryDeleteGuardedByAssets(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM categories c`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(3, "Bilgisayar", "", "BLG", fixedNow, 2))

	err := CategoryService{DB: db}.Delete(context.Background(), 3)
	assert.True(t, domain.IsConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryDeleteEmpty(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM categories c`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(3, "Bilgisayar", "", "BLG", fixedNow, 0))
	mock.ExpectExec(`UPDATE categories SET is_deleted = 1`).WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, CategoryService{DB: db}.Delete(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetDeleteRejectedWhileAssigned(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM assets a`).WithArgs(int64(5)).WillReturnRows(assetRow(5, 2, 11))

	err := AssetService{DB: db}.Delete(context.Background(), 5)
	assert.True(t, domain.IsConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetManualStatusCannotAssign(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM assets a`).WithArgs(int64(5)).WillReturnRows(assetRow(5, 1, nil))

	_, err := AssetService{DB: db}.UpdateStatus(context.Background(), 5, domain.AssetAssigned)
	assert.True(t, domain.IsConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetStatusToMaintenance(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM assets a`).WithArgs(int64(5)).WillReturnRows(assetRow(5, 1, nil))
	mock.ExpectExec(`UPDATE assets SET status`).
		WithArgs(int64(domain.AssetMaintenance), nil, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := AssetService{DB: db}.UpdateStatus(context.Background(), 5, domain.AssetMaintenance)
	require.NoError(t, err)
	assert.Equal(t, domain.AssetMaintenance, got.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetListServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	lc := cache.NewWithClient(rdb, time.Minute)

	db, mock := newMock(t)
	mock.ExpectQuery(`FROM assets a`).WillReturnRows(assetRow(5, 1, nil))

	svc := AssetService{DB: db, Cache: lc}
	c := listing.Criteria{}.With("status", "1")

	first, err := svc.List(context.Background(), c)
	require.NoError(t, err)
	second, err := svc.List(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].Status, second[0].Status)
	require.NoError(t, mock.ExpectationsWereMet(), "second list must not reach the database")

	// a write bumps the version, so the next list goes back to the database
	require.NoError(t, lc.Invalidate(context.Background(), colAssets))
	mock.ExpectQuery(`FROM assets a`).WillReturnRows(assetRow(5, 3, nil))
	third, err := svc.List(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, third, 1)
	assert.Equal(t, domain.AssetMaintenance, third[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListFilledDuringWriteIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	lc := cache.NewWithClient(rdb, time.Minute)
	ctx := context.Background()

	loads := 0
	stale := func() ([]string, error) {
		loads++
		// a concurrent write commits and invalidates before this read returns
		require.NoError(t, lc.Invalidate(ctx, colAssets))
		return []string{"Laptop"}, nil
	}
	fresh := func() ([]string, error) {
		loads++
		return []string{"Laptop", "Monitor"}, nil
	}

	out, err := cachedList(ctx, lc, "req-1", colAssets, listing.Criteria{}, stale)
	require.NoError(t, err)
	assert.Equal(t, []string{"Laptop"}, out)

	out, err = cachedList(ctx, lc, "req-2", colAssets, listing.Criteria{}, fresh)
	require.NoError(t, err)
	assert.Equal(t, []string{"Laptop", "Monitor"}, out)
	assert.Equal(t, 2, loads)

	out, err = cachedList(ctx, lc, "req-3", colAssets, listing.Criteria{}, fresh)
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, 2, loads, "third list is a cache hit")
}

func TestAssetDetailDerivesCounts(t *testing.T) {
	db, mock := newMock(t)
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`^SELECT a\.id, .* WHERE a\.id = \?`).WithArgs(int64(5)).WillReturnRows(assetRow(5, 2, 11))
	mock.ExpectQuery(`^SELECT s\.id, .* WHERE s\.asset_id = \?`).WithArgs(int64(5)).WillReturnRows(
		sqlmock.NewRows(assignmentCols).
			AddRow(3, 1, fixedNow, nil, "", "", 5, 11, 1, "Laptop", "DMB-1", "Ayşe", "Kaya", "Admin", "User").
			AddRow(2, 2, fixedNow.Add(-time.Hour), fixedNow.Add(-time.Hour), "", "", 5, 10, 1, "Laptop", "DMB-1", "Ali", "Can", "Admin", "User").
			AddRow(1, 1, fixedNow.Add(-2*time.Hour), fixedNow.Add(-time.Hour), "", "", 5, 10, 1, "Laptop", "DMB-1", "Ali", "Can", "Admin", "User"))

	d, err := AssetService{DB: db}.Detail(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, d.AssignmentCount)
	assert.Equal(t, 1, d.ReturnCount)
	require.NotNil(t, d.ActiveAssignment)
	assert.Equal(t, domain.ID(3), d.ActiveAssignment.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
