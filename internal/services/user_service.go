package services

import (
	"context"
	"database/sql"
	"strings"

	"adminhub/internal/cache"
	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
	"adminhub/internal/repositories"
)

type UserService struct {
	DB        *sql.DB
	Cache     cache.ListCache
	RequestID string
}

// user names appear nested in most other lists
var userDependents = []string{colUsers, colAssets, colAssignments, colCompetitions, colMatches, colReservations}

func (s UserService) repo() repositories.UserRepository {
	return repositories.UserRepository{DB: s.DB}
}

func (s UserService) List(ctx context.Context, c listing.Criteria) ([]models.User, error) {
	return cachedList(ctx, s.Cache, s.RequestID, colUsers, c, func() ([]models.User, error) {
		return s.repo().List(ctx, c)
	})
}

func (s UserService) Get(ctx context.Context, id domain.ID) (models.User, error) {
	return s.repo().GetByID(ctx, id)
}

func (s UserService) checkIdentity(ctx context.Context, username, email string, excludeID domain.ID) error {
	n, err := s.repo().CountByIdentity(ctx, username, email, excludeID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ConflictError{Resource: "kullanıcı", Msg: "e-posta veya kullanıcı adı zaten kayıtlı"}
	}
	return nil
}

func (s UserService) Create(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	u := models.User{
		Username:    strings.TrimSpace(req.Username),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Department:  strings.TrimSpace(req.Department),
		Role:        domain.NormalizeCode[domain.UserRole](string(req.Role)),
		Status:      domain.NormalizeCode[domain.UserStatus](string(req.Status)),
	}
	if u.Role == "" {
		u.Role = domain.RolePersonnel
	}
	if u.Status == "" {
		u.Status = domain.UserActive
	}
	if err := validateUser(u); err != nil {
		return models.User{}, record(s.RequestID, "user", "create", 0, err)
	}
	if err := s.checkIdentity(ctx, u.Username, u.Email, 0); err != nil {
		return models.User{}, record(s.RequestID, "user", "create", 0, err)
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}
	id, err := s.repo().Create(ctx, u, hash)
	if err = record(s.RequestID, "user", "create", id, err); err != nil {
		return models.User{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colUsers)
	return s.repo().GetByID(ctx, id)
}

func (s UserService) Update(ctx context.Context, id domain.ID, req models.UpdateUserRequest) (models.User, error) {
	existing, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	existing.Username = strings.TrimSpace(req.Username)
	existing.Email = strings.ToLower(strings.TrimSpace(req.Email))
	existing.FirstName = strings.TrimSpace(req.FirstName)
	existing.LastName = strings.TrimSpace(req.LastName)
	existing.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	existing.Department = strings.TrimSpace(req.Department)
	existing.Role = domain.NormalizeCode[domain.UserRole](string(req.Role))
	if err := validateUser(existing); err != nil {
		return models.User{}, record(s.RequestID, "user", "update", id, err)
	}
	if err := s.checkIdentity(ctx, existing.Username, existing.Email, id); err != nil {
		return models.User{}, record(s.RequestID, "user", "update", id, err)
	}
	hash := ""
	if req.Password != "" {
		if hash, err = hashPassword(req.Password); err != nil {
			return models.User{}, err
		}
	}
	if err := record(s.RequestID, "user", "update", id, s.repo().Update(ctx, existing, hash)); err != nil {
		return models.User{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, userDependents...)
	return s.repo().GetByID(ctx, id)
}

// UpdateStatus changes account status. Admins cannot lock themselves out.
func (s UserService) UpdateStatus(ctx context.Context, rc domain.RequestContext, id domain.ID, status domain.UserStatus) (models.User, error) {
	existing, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	status = domain.NormalizeCode[domain.UserStatus](string(status))
	if err := domain.UserStatuses.CheckTransition(existing.Status, status); err != nil {
		return models.User{}, record(s.RequestID, "user", "status", id, err)
	}
	if rc.UserID == id && status != domain.UserActive {
		return models.User{}, record(s.RequestID, "user", "status", id,
			domain.ConflictError{Resource: "kullanıcı", Msg: "kendi hesabınızı pasifleştiremezsiniz"})
	}
	if err := record(s.RequestID, "user", "status", id, s.repo().UpdateStatus(ctx, id, status)); err != nil {
		return models.User{}, err
	}
	invalidate(ctx, s.Cache, s.RequestID, colUsers)
	existing.Status = status
	return existing, nil
}

func (s UserService) Delete(ctx context.Context, rc domain.RequestContext, id domain.ID) error {
	if rc.UserID == id {
		return record(s.RequestID, "user", "delete", id,
			domain.ConflictError{Resource: "kullanıcı", Msg: "kendi hesabınızı silemezsiniz"})
	}
	if err := record(s.RequestID, "user", "delete", id, s.repo().Delete(ctx, id)); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, s.RequestID, userDependents...)
	return nil
}

func validateUser(u models.User) error {
	if !domain.UserRoles.Valid(u.Role) {
		return domain.ValidationError{Field: "role", Msg: "geçersiz rol"}
	}
	if !domain.UserStatuses.Valid(u.Status) {
		return domain.ValidationError{Field: "status", Msg: "geçersiz durum"}
	}
	if u.Username == "" || u.Email == "" {
		return domain.ValidationError{Field: "username", Msg: "kullanıcı adı ve e-posta zorunludur"}
	}
	return nil
}
