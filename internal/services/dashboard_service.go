package services

import (
	"context"
	"database/sql"
	"time"

	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
	"adminhub/internal/repositories"
	"adminhub/internal/utils"

	"golang.org/x/sync/errgroup"
)

// DashboardService fans out one query per tile source and derives the
// dashboard from the joined results. Any failed source fails the dashboard.
type DashboardService struct {
	DB        *sql.DB
	RequestID string
	Now       func() time.Time
}

func (s DashboardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s DashboardService) Inventory(ctx context.Context) (models.InventoryDashboard, error) {
	var (
		assets            []models.Asset
		recent            []models.Assignment
		categories, users int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		assets, err = repositories.AssetRepository{DB: s.DB}.List(gctx, listing.Criteria{})
		return err
	})
	g.Go(func() (err error) {
		categories, err = repositories.CategoryRepository{DB: s.DB}.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = repositories.UserRepository{DB: s.DB}.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		recent, err = repositories.AssignmentRepository{DB: s.DB}.Recent(gctx, models.RecentLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		utils.LogError(s.RequestID, "dashboard", "inventory", err)
		return models.InventoryDashboard{}, err
	}
	return models.NewInventoryDashboard(assets, categories, users, recent), nil
}

func (s DashboardService) Sports(ctx context.Context) (models.SportsDashboard, error) {
	var (
		competitions []models.Competition
		participants []models.Participant
		matches      []models.Match
		venues       []models.Venue
	)
	all := listing.Criteria{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		competitions, err = repositories.CompetitionRepository{DB: s.DB}.List(gctx, all)
		return err
	})
	g.Go(func() (err error) {
		participants, err = repositories.ParticipantRepository{DB: s.DB}.List(gctx, all)
		return err
	})
	g.Go(func() (err error) {
		matches, err = repositories.MatchRepository{DB: s.DB}.List(gctx, all)
		return err
	})
	g.Go(func() (err error) {
		venues, err = repositories.VenueRepository{DB: s.DB}.List(gctx, all)
		return err
	})
	if err := g.Wait(); err != nil {
		utils.LogError(s.RequestID, "dashboard", "sports", err)
		return models.SportsDashboard{}, err
	}
	return models.NewSportsDashboard(competitions, len(participants), matches, venues, s.now()), nil
}
