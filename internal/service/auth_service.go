package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/grievance-service/internal/auth"
	"github.com/spec-kit/grievance-service/internal/config"
	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/repository"
	apperrors "github.com/spec-kit/grievance-service/pkg/errorutil"
)

// AuthService coordinates registration and login flows for citizens and
// departments.
type AuthService struct {
	users       repository.UserRepository
	departments repository.DepartmentRepository
	tokenMgr    *auth.TokenManager
	bcryptCost  int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	DepartmentRepo repository.DepartmentRepository
}

// UserRegistration carries citizen signup fields.
type UserRegistration struct {
	Name     string
	Email    string
	Password string
	State    string
	District string
}

// DepartmentRegistration carries department signup fields.
type DepartmentRegistration struct {
	Name         string
	Email        string
	Password     string
	State        string
	District     string
	WorkingAreas []string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		departments: deps.DepartmentRepo,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost:  cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the shared token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// RegisterUser creates a new citizen account.
func (s *AuthService) RegisterUser(ctx context.Context, reg UserRegistration) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, reg.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(reg.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
		State:        reg.State,
		District:     reg.District,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, domain.SubjectTypeUser)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// LoginUser authenticates a citizen.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, domain.SubjectTypeUser)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// RegisterDepartment creates a new department account.
func (s *AuthService) RegisterDepartment(ctx context.Context, reg DepartmentRegistration) (*domain.Department, string, time.Time, error) {
	if _, err := s.departments.GetByEmail(ctx, reg.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(reg.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	dept := &domain.Department{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
		State:        reg.State,
		District:     reg.District,
		WorkingAreas: reg.WorkingAreas,
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(dept.ID, domain.SubjectTypeDepartment)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return dept, token, exp, nil
}

// LoginDepartment authenticates a department.
func (s *AuthService) LoginDepartment(ctx context.Context, email, password string) (*domain.Department, string, time.Time, error) {
	dept, err := s.departments.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(dept.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(dept.ID, domain.SubjectTypeDepartment)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return dept, token, exp, nil
}
