package service_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/grievance-service/internal/auth"
	"github.com/spec-kit/grievance-service/internal/config"
	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/service"
	"github.com/spec-kit/grievance-service/pkg/errorutil"
)

func newAuthService(users *MockUserRepository, departments *MockDepartmentRepository) *service.AuthService {
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60
	cfg.Auth.BcryptCost = 4
	return service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:       users,
		DepartmentRepo: departments,
	})
}

func TestRegisterUserIssuesToken(t *testing.T) {
	users := new(MockUserRepository)
	departments := new(MockDepartmentRepository)
	svc := newAuthService(users, departments)

	users.On("GetByEmail", mock.Anything, "asha@example.com").Return(nil, pgx.ErrNoRows)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = "user-1"
		}).Return(nil)

	user, token, _, err := svc.RegisterUser(context.Background(), service.UserRegistration{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Password: "s3cret",
		State:    "Rajasthan",
		District: "Jaipur",
	})

	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	claims, err := svc.TokenManager().ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID)
	assert.Equal(t, domain.SubjectTypeUser, claims.Subject)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	departments := new(MockDepartmentRepository)
	svc := newAuthService(users, departments)

	users.On("GetByEmail", mock.Anything, "asha@example.com").Return(testUser(), nil)

	_, _, _, err := svc.RegisterUser(context.Background(), service.UserRegistration{
		Email:    "asha@example.com",
		Password: "s3cret",
	})

	domainErr := errorutil.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	users.AssertNotCalled(t, "Create")
}

func TestLoginUserWrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	departments := new(MockDepartmentRepository)
	svc := newAuthService(users, departments)

	hash, err := auth.HashPassword("right-password", 4)
	assert.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "asha@example.com").Return(&domain.User{
		ID: "user-1", Email: "asha@example.com", PasswordHash: hash,
	}, nil)

	_, _, _, err = svc.LoginUser(context.Background(), "asha@example.com", "wrong-password")

	domainErr := errorutil.ToDomainError(err)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestLoginUserUnknownEmailIsUnauthorized(t *testing.T) {
	users := new(MockUserRepository)
	departments := new(MockDepartmentRepository)
	svc := newAuthService(users, departments)

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, pgx.ErrNoRows)

	_, _, _, err := svc.LoginUser(context.Background(), "nobody@example.com", "whatever")

	domainErr := errorutil.ToDomainError(err)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestLoginDepartmentSucceeds(t *testing.T) {
	users := new(MockUserRepository)
	departments := new(MockDepartmentRepository)
	svc := newAuthService(users, departments)

	hash, err := auth.HashPassword("dept-password", 4)
	assert.NoError(t, err)
	departments.On("GetByEmail", mock.Anything, "water@example.gov.in").Return(&domain.Department{
		ID: "dept-1", Email: "water@example.gov.in", PasswordHash: hash,
	}, nil)

	dept, token, _, err := svc.LoginDepartment(context.Background(), "water@example.gov.in", "dept-password")

	assert.NoError(t, err)
	assert.Equal(t, "dept-1", dept.ID)

	claims, err := svc.TokenManager().ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, domain.SubjectTypeDepartment, claims.Subject)
}

func TestRegisterDepartmentStoresWorkingAreas(t *testing.T) {
	users := new(MockUserRepository)
	departments := new(MockDepartmentRepository)
	svc := newAuthService(users, departments)

	departments.On("GetByEmail", mock.Anything, "water@example.gov.in").Return(nil, pgx.ErrNoRows)
	departments.On("Create", mock.Anything, mock.MatchedBy(func(dept *domain.Department) bool {
		return len(dept.WorkingAreas) == 2 && dept.WorkingAreas[0] == "pipelines"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Department).ID = "dept-1"
	}).Return(nil)

	dept, _, _, err := svc.RegisterDepartment(context.Background(), service.DepartmentRegistration{
		Name:         "Water Supply",
		Email:        "water@example.gov.in",
		Password:     "s3cret",
		State:        "Rajasthan",
		District:     "Jaipur",
		WorkingAreas: []string{"pipelines", "sewage"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "dept-1", dept.ID)
	departments.AssertExpectations(t)
}
