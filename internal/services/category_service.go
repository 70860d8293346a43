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
)

type CategoryService struct {
	DB        *sql.DB
	Cache     cache.ListCache
	RequestID string
}

func (s CategoryService) repo() repositories.CategoryRepository {
	return repositories.CategoryRepository{DB: s.DB}
}

func (s CategoryService) List(ctx context.Context, c listing.Criteria) ([]models.Category, error) {
	return cachedList(ctx, s.Cache, s.RequestID, colCategories, c, func() ([]models.Category, error) {
		return s.repo().List(ctx, c)
	})
}

func (s CategoryService) Get(ctx context.Context, id domain.ID) (models.Category, error) {
	return s.repo().GetByID(ctx, id)
}

func (s CategoryService) checkCode(ctx context.Context, code string, excludeID domain.ID) error {
	taken, err := s.repo().CodeTaken(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ConflictError{Resource: "kategori", Msg: fmt.Sprintf("%s kodu zaten kullanılıyor", code)}
	}
	return nil
}

func (s CategoryService) Create(ctx context.Context, req models.CategoryRequest) (models.Category, error) {
	c := models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
	}
	if err := s.checkCode(ctx, c.Code, 0); err != nil {
		return models.Category{}, record(s.RequestID, "category", "create", 0, err)
	}
	id, err := s.repo().Create(ctx, c)
	if err = record(s.RequestID, "category", "create", id, err); err != nil {
		return models.Category{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colCategories)
	return s.repo().GetByID(ctx, id)
}

func (s CategoryService) Update(ctx context.Context, id domain.ID, req models.CategoryRequest) (models.Category, error) {
	c, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.Category{}, err
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Description = strings.TrimSpace(req.Description)
	c.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if err := s.checkCode(ctx, c.Code, id); err != nil {
		return models.Category{}, record(s.RequestID, "category", "update", id, err)
	}
	if err := record(s.RequestID, "category", "update", id, s.repo().Update(ctx, c)); err != nil {
		return models.Category{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colCategories, colAssets)
	return c, nil
}

// Delete refuses while any live asset still points at the category.
func (s CategoryService) Delete(ctx context.Context, id domain.ID) error {
	c, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.AssetCount > 0 {
		return record(s.RequestID, "category", "delete", id, domain.ConflictError{
			Resource: "kategori",
			Msg:      fmt.Sprintf("bu kategoride %d demirbaş bulunuyor, önce demirbaşları taşıyın", c.AssetCount),
		})
	}
	if err := record(s.RequestID, "category", "delete", id, s.repo().SoftDelete(ctx, id)); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, s.RequestID, colCategories)
	return nil
}
