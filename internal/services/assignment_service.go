package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"adminhub/internal/cache"
	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
	"adminhub/internal/repositories"
)

type AssignmentService struct {
	DB        *sql.DB
	Cache     cache.ListCache
	RequestID string
	Now       func() time.Time
}

func (s AssignmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AssignmentService) repo() repositories.AssignmentRepository {
	return repositories.AssignmentRepository{DB: s.DB}
}

func (s AssignmentService) List(ctx context.Context, c listing.Criteria) ([]models.Assignment, error) {
	return cachedList(ctx, s.Cache, s.RequestID, colAssignments, c, func() ([]models.Assignment, error) {
		return s.repo().List(ctx, c)
	})
}

func (s AssignmentService) Get(ctx context.Context, rc domain.RequestContext, id domain.ID) (models.Assignment, error) {
	a, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return a, err
	}
	if !rc.CanActOn(a.UserID) {
		return models.Assignment{}, domain.ForbiddenError{}
	}
	return a, nil
}

func (s AssignmentService) ListByAsset(ctx context.Context, assetID domain.ID) ([]models.Assignment, error) {
	return s.repo().ListByAsset(ctx, assetID)
}

// Active returns the open handover of an asset, or nil when it is not held.
func (s AssignmentService) Active(ctx context.Context, assetID domain.ID) (*models.Assignment, error) {
	a, ok, err := s.repo().Active(ctx, assetID)
	if err != nil || !ok {
		return nil, err
	}
	return &a, nil
}

func (s AssignmentService) ListByUser(ctx context.Context, rc domain.RequestContext, userID domain.ID) ([]models.Assignment, error) {
	if !rc.CanActOn(userID) {
		return nil, domain.ForbiddenError{Msg: "yalnızca kendi zimmet geçmişinizi görebilirsiniz"}
	}
	return s.repo().ListByUser(ctx, userID)
}

// Create records a handover or a return and moves the asset accordingly, in
// one transaction:
//   - Issue: the asset must be Available with no open handover; it becomes
//     Assigned to the user.
//   - Return: the asset must have an open handover to the same user; that
//     record is closed and the asset becomes Available again.
func (s AssignmentService) Create(ctx context.Context, rc domain.RequestContext, req models.AssignmentRequest) (models.Assignment, error) {
	if !domain.AssignmentTypes.Valid(req.Type) {
		return models.Assignment{}, record(s.RequestID, "assignment", "create", 0,
			domain.ValidationError{Field: "type", Msg: "geçersiz işlem türü"})
	}
	if err := requirePositiveID("assetId", req.AssetID); err != nil {
		return models.Assignment{}, err
	}
	if err := requirePositiveID("userId", req.UserID); err != nil {
		return models.Assignment{}, err
	}

	now := s.now()
	var newID domain.ID
	err := withTx(ctx, s.DB, func(tx *sql.Tx) error {
		assets := repositories.AssetRepository{DB: tx}
		assignments := repositories.AssignmentRepository{DB: tx}

		asset, err := assets.GetForUpdate(ctx, req.AssetID)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.ValidationError{Field: "assetId", Msg: "demirbaş bulunamadı", Err: err}
			}
			return err
		}
		user, err := repositories.UserRepository{DB: tx}.GetByID(ctx, req.UserID)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.ValidationError{Field: "userId", Msg: "kullanıcı bulunamadı", Err: err}
			}
			return err
		}
		active, held, err := assignments.Active(ctx, asset.ID)
		if err != nil {
			return err
		}

		rec := models.Assignment{
			Type:             req.Type,
			AssignmentDate:   now,
			Notes:            strings.TrimSpace(req.Notes),
			Condition:        strings.TrimSpace(req.Condition),
			AssetID:          asset.ID,
			UserID:           user.ID,
			AssignedByUserID: rc.UserID,
		}

		switch req.Type {
		case domain.AssignmentIssue:
			if user.Status != domain.UserActive {
				return domain.ConflictError{Resource: "zimmet", Msg: "aktif olmayan kullanıcıya zimmet verilemez"}
			}
			if asset.Status != domain.AssetAvailable || held {
				return domain.ConflictError{Resource: "zimmet", Msg: "demirbaş zimmetlenebilir durumda değil: " + asset.Status.Label()}
			}
			holder := user.ID
			if err := assets.SetStatus(ctx, asset.ID, domain.AssetAssigned, &holder); err != nil {
				return err
			}
		case domain.AssignmentReturn:
			if !held {
				return domain.ConflictError{Resource: "iade", Msg: "demirbaşın açık zimmeti yok"}
			}
			if active.UserID != user.ID {
				return domain.ConflictError{Resource: "iade", Msg: "demirbaş bu kullanıcıya zimmetli değil"}
			}
			if err := assignments.Close(ctx, active.ID, now); err != nil {
				return err
			}
			if err := assets.SetStatus(ctx, asset.ID, domain.AssetAvailable, nil); err != nil {
				return err
			}
			rec.ReturnDate = &now
		}

		newID, err = assignments.Create(ctx, rec)
		return err
	})
	if err := record(s.RequestID, "assignment", "create", newID, err); err != nil {
		return models.Assignment{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colAssignments, colAssets)
	return s.repo().GetByID(ctx, newID)
}
