package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/metrics"
	"adminhub/internal/repositories"
	"adminhub/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and verifies HS256 tokens carrying user_id and role.
type AuthService struct {
	DB        *sql.DB
	Secret    []byte
	TTL       time.Duration
	RequestID string
	Now       func() time.Time
}

var errBadCredentials = domain.UnauthorizedError{Msg: "e-posta/kullanıcı adı veya şifre hatalı"}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) users() repositories.UserRepository {
	return repositories.UserRepository{DB: s.DB}
}

// Login checks credentials and returns a signed token for active users.
func (s AuthService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	login := strings.TrimSpace(req.Login)
	user, hash, err := s.users().GetByLogin(ctx, login)
	if err != nil {
		if domain.IsNotFound(err) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return models.AuthResponse{}, errBadCredentials
		}
		return models.AuthResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return models.AuthResponse{}, errBadCredentials
	}
	if user.Status != domain.UserActive {
		metrics.LoginAttemptsTotal.WithLabelValues("inactive").Inc()
		return models.AuthResponse{}, domain.ForbiddenError{Msg: "hesap aktif değil: " + domain.UserStatuses.Label(user.Status)}
	}

	now := s.now()
	token, exp, err := s.Issue(user.ID, user.Role, now)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if err := s.users().TouchLogin(ctx, user.ID, now); err != nil {
		utils.LogError(s.RequestID, "auth", "touch_login", err)
	}
	user.LastLoginAt = &now

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	utils.LogEvent(s.RequestID, "auth", "login", "user_id="+itoa(user.ID))
	return models.AuthResponse{Token: token, ExpiresAt: exp, User: user}, nil
}

// Register creates an active PERSONNEL account.
func (s AuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	us := UserService{DB: s.DB, RequestID: s.RequestID}
	return us.Create(ctx, models.CreateUserRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.RolePersonnel,
		Status:    domain.UserActive,
	})
}

func (s AuthService) Me(ctx context.Context, rc domain.RequestContext) (models.User, error) {
	if rc.UserID <= 0 {
		return models.User{}, domain.UnauthorizedError{}
	}
	return s.users().GetByID(ctx, rc.UserID)
}

func (s AuthService) Issue(userID domain.ID, role domain.UserRole, now time.Time) (string, time.Time, error) {
	exp := now.Add(s.TTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"iat":     now.Unix(),
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, domain.InternalError{Msg: "token oluşturulamadı", Err: err}
	}
	return signed, exp, nil
}

// Parse validates a bearer token and returns the caller it identifies.
func (s AuthService) Parse(raw string) (domain.RequestContext, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.RequestContext{}, domain.UnauthorizedError{Msg: "oturum süresi doldu"}
		}
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "geçersiz token"}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "geçersiz token"}
	}
	uid, ok := claims["user_id"].(float64)
	if !ok || uid <= 0 {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "geçersiz token"}
	}
	role, _ := claims["role"].(string)
	r := domain.UserRole(role)
	if !domain.UserRoles.Valid(r) {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "geçersiz rol"}
	}
	return domain.RequestContext{UserID: domain.ID(uid), Role: r}, nil
}

func hashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.InternalError{Msg: "şifre işlenemedi", Err: err}
	}
	return string(h), nil
}
