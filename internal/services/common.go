package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"adminhub/internal/cache"
	"adminhub/internal/domain"
	"adminhub/internal/listing"
	"adminhub/internal/metrics"
	"adminhub/internal/utils"
)

// Collection names shared by the list cache and invalidation.
const (
	colUsers        = "users"
	colCategories   = "categories"
	colAssets       = "assets"
	colAssignments  = "assignments"
	colVenues       = "venues"
	colCompetitions = "competitions"
	colParticipants = "participants"
	colMatches      = "matches"
	colReservations = "reservations"
)

func listCache(c cache.ListCache) cache.ListCache {
	if c == nil {
		return cache.Noop{}
	}
	return c
}

// cachedList serves a list from the cache when possible and fills it on a
// miss. Cache failures only cost a database round trip.
func cachedList[T any](ctx context.Context, c cache.ListCache, requestID, collection string, cr listing.Criteria, load func() ([]T, error)) ([]T, error) {
	c = listCache(c)
	key := cr.Key()

	var out []T
	version, hit, lookupErr := c.Get(ctx, collection, key, &out)
	switch {
	case lookupErr != nil:
		metrics.ListCacheLookups.WithLabelValues(collection, "error").Inc()
		utils.LogError(requestID, collection, "cache_get", lookupErr)
	case hit:
		metrics.ListCacheLookups.WithLabelValues(collection, "hit").Inc()
		return out, nil
	default:
		metrics.ListCacheLookups.WithLabelValues(collection, "miss").Inc()
	}

	out, err := load()
	if err != nil {
		return nil, err
	}
	if lookupErr == nil {
		if err := c.Set(ctx, collection, version, key, out); err != nil {
			utils.LogError(requestID, collection, "cache_set", err)
		}
	}
	return out, nil
}

func invalidate(ctx context.Context, c cache.ListCache, requestID string, collections ...string) {
	if err := listCache(c).Invalidate(ctx, collections...); err != nil {
		utils.LogError(requestID, "cache", "invalidate", err)
	}
}

// record counts a mutation and logs it. It returns err unchanged.
func record(requestID, entity, op string, id domain.ID, err error) error {
	outcome := "ok"
	switch {
	case err == nil:
		utils.LogEvent(requestID, entity, op, fmt.Sprintf("id=%d", id))
	case domain.IsValidation(err), domain.IsConflict(err), domain.IsNotFound(err), domain.IsForbidden(err):
		outcome = "rejected"
		utils.LogEvent(requestID, entity, op+"_rejected", err.Error())
	default:
		outcome = "error"
		utils.LogError(requestID, entity, op, err)
	}
	metrics.MutationsTotal.WithLabelValues(entity, op, outcome).Inc()
	return err
}

// withTx runs fn in a transaction, committing only when fn succeeds.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

func requirePositiveID(field string, id domain.ID) error {
	if id <= 0 {
		return domain.ValidationError{Field: field, Msg: "geçersiz kimlik"}
	}
	return nil
}

func itoa(id domain.ID) string { return strconv.FormatInt(id, 10) }
