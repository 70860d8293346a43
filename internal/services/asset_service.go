package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"adminhub/internal/cache"
	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
	"adminhub/internal/repositories"

	"golang.org/x/sync/errgroup"
)

type AssetService struct {
	DB        *sql.DB
	Cache     cache.ListCache
	RequestID string
}

func (s AssetService) repo() repositories.AssetRepository {
	return repositories.AssetRepository{DB: s.DB}
}

func (s AssetService) List(ctx context.Context, c listing.Criteria) ([]models.Asset, error) {
	return cachedList(ctx, s.Cache, s.RequestID, colAssets, c, func() ([]models.Asset, error) {
		return s.repo().List(ctx, c)
	})
}

func (s AssetService) Get(ctx context.Context, id domain.ID) (models.Asset, error) {
	return s.repo().GetByID(ctx, id)
}

// Detail loads the asset and its history concurrently and derives the
// active handover and the issue/return counts from the history.
func (s AssetService) Detail(ctx context.Context, id domain.ID) (models.AssetDetail, error) {
	var (
		asset   models.Asset
		history []models.Assignment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		asset, err = s.repo().GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = repositories.AssignmentRepository{DB: s.DB}.ListByAsset(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.AssetDetail{}, err
	}
	return models.NewAssetDetail(asset, history), nil
}

// ListAssignedTo is visible to admins and to the holder themself.
func (s AssetService) ListAssignedTo(ctx context.Context, rc domain.RequestContext, userID domain.ID) ([]models.Asset, error) {
	if !rc.CanActOn(userID) {
		return nil, domain.ForbiddenError{Msg: "yalnızca kendi zimmetlerinizi görebilirsiniz"}
	}
	return s.repo().ListAssignedTo(ctx, userID)
}

func (s AssetService) checkRefs(ctx context.Context, a models.Asset, excludeID domain.ID) error {
	taken, err := s.repo().CodeTaken(ctx, a.AssetCode, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ConflictError{Resource: "demirbaş", Msg: fmt.Sprintf("%s kodu zaten kullanılıyor", a.AssetCode)}
	}
	if _, err := (repositories.CategoryRepository{DB: s.DB}).GetByID(ctx, a.CategoryID); err != nil {
		if domain.IsNotFound(err) {
			return domain.ValidationError{Field: "categoryId", Msg: "kategori bulunamadı", Err: err}
		}
		return err
	}
	return nil
}

func assetFromRequest(req models.AssetRequest) models.Asset {
	return models.Asset{
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		AssetCode:     strings.ToUpper(strings.TrimSpace(req.AssetCode)),
		SerialNumber:  strings.TrimSpace(req.SerialNumber),
		Brand:         strings.TrimSpace(req.Brand),
		Model:         strings.TrimSpace(req.Model),
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  req.PurchaseDate,
		Status:        req.Status,
		Location:      strings.TrimSpace(req.Location),
		Notes:         strings.TrimSpace(req.Notes),
		CategoryID:    req.CategoryID,
	}
}

// Create registers a new asset. It may start in any status except Assigned.
func (s AssetService) Create(ctx context.Context, req models.AssetRequest) (models.Asset, error) {
	a := assetFromRequest(req)
	if a.Status == 0 {
		a.Status = domain.AssetAvailable
	}
	if !domain.AssetStatuses.Valid(a.Status) {
		return models.Asset{}, record(s.RequestID, "asset", "create", 0,
			domain.ValidationError{Field: "status", Msg: "geçersiz demirbaş durumu"})
	}
	if a.Status == domain.AssetAssigned {
		return models.Asset{}, record(s.RequestID, "asset", "create", 0,
			domain.ValidationError{Field: "status", Msg: "zimmet yalnızca zimmet işlemiyle verilebilir"})
	}
	if err := s.checkRefs(ctx, a, 0); err != nil {
		return models.Asset{}, record(s.RequestID, "asset", "create", 0, err)
	}
	id, err := s.repo().Create(ctx, a)
	if err = record(s.RequestID, "asset", "create", id, err); err != nil {
		return models.Asset{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colAssets, colCategories)
	return s.repo().GetByID(ctx, id)
}

func (s AssetService) Update(ctx context.Context, id domain.ID, req models.AssetRequest) (models.Asset, error) {
	existing, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Asset{}, err
	}
	a := assetFromRequest(req)
	a.ID = id
	a.Status = existing.Status
	if err := s.checkRefs(ctx, a, id); err != nil {
		return models.Asset{}, record(s.RequestID, "asset", "update", id, err)
	}
	if err := record(s.RequestID, "asset", "update", id, s.repo().Update(ctx, a)); err != nil {
		return models.Asset{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colAssets, colCategories, colAssignments)
	return s.repo().GetByID(ctx, id)
}

// UpdateStatus applies a manual status change. Assigned is reachable only
// through the assignment flow, which the transition table already encodes.
func (s AssetService) UpdateStatus(ctx context.Context, id domain.ID, status domain.AssetStatus) (models.Asset, error) {
	existing, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Asset{}, err
	}
	if err := domain.AssetStatuses.CheckTransition(existing.Status, status); err != nil {
		return models.Asset{}, record(s.RequestID, "asset", "status", id, err)
	}
	if status == existing.Status {
		return existing, nil
	}
	if err := record(s.RequestID, "asset", "status", id, s.repo().SetStatus(ctx, id, status, nil)); err != nil {
		return models.Asset{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colAssets)
	existing.Status = status
	existing.CurrentAssignedUserID = nil
	existing.CurrentAssignedUser = nil
	return existing, nil
}

func (s AssetService) Delete(ctx context.Context, id domain.ID) error {
	existing, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status == domain.AssetAssigned {
		return record(s.RequestID, "asset", "delete", id, domain.ConflictError{
			Resource: "demirbaş",
			Msg:      "zimmetli demirbaş silinemez, önce iade alın",
		})
	}
	if err := record(s.RequestID, "asset", "delete", id, s.repo().SoftDelete(ctx, id)); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, s.RequestID, colAssets, colCategories)
	return nil
}
