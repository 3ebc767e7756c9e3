package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/claims_app/internal/apperrors"
	"github.com/SscSPs/claims_app/internal/core/domain"
	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
	"github.com/SscSPs/claims_app/internal/core/services"
	"github.com/SscSPs/claims_app/internal/dto"
	"github.com/SscSPs/claims_app/internal/platform/config"
	"github.com/SscSPs/claims_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// --- Mock StaffRepository ---
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	args := m.Called(ctx, staffID)
	var staff *domain.Staff
	if args.Get(0) != nil {
		staff = args.Get(0).(*domain.Staff)
	}
	return staff, args.Error(1)
}

func (m *MockStaffRepository) FindStaffByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	args := m.Called(ctx, email)
	var staff *domain.Staff
	if args.Get(0) != nil {
		staff = args.Get(0).(*domain.Staff)
	}
	return staff, args.Error(1)
}

func (m *MockStaffRepository) FindStaff(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, error) {
	args := m.Called(ctx, filter)
	var staff []domain.Staff
	if args.Get(0) != nil {
		staff = args.Get(0).([]domain.Staff)
	}
	return staff, args.Error(1)
}

func (m *MockStaffRepository) SaveStaff(ctx context.Context, staff domain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) UpdateStaff(ctx context.Context, staff domain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

// --- Test Suite ---
type StaffServiceTestSuite struct {
	suite.Suite
	mockStaffRepo *MockStaffRepository
	service       portssvc.StaffSvcFacade
	admin         domain.Actor
}

func (suite *StaffServiceTestSuite) SetupSuite() {
	utils.PasswordCost = bcrypt.MinCost
}

func (suite *StaffServiceTestSuite) SetupTest() {
	suite.mockStaffRepo = new(MockStaffRepository)
	suite.service = services.NewStaffService(suite.mockStaffRepo)
	suite.admin = domain.Actor{StaffID: "admin", Role: domain.RoleAdmin, Email: "admin@example.com"}
}

func (suite *StaffServiceTestSuite) TestCreateStaff_Success() {
	ctx := context.Background()
	req := dto.CreateStaffRequest{
		Name:       " Dana Lee ",
		Email:      "Dana.Lee@Example.com",
		Password:   "password123",
		Role:       "FINANCE",
		Department: "FINANCE",
	}

	suite.mockStaffRepo.On("FindStaffByEmail", ctx, "dana.lee@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockStaffRepo.On("SaveStaff", ctx, mock.MatchedBy(func(s domain.Staff) bool {
		return s.Email == "dana.lee@example.com" && s.Name == "Dana Lee" && s.PasswordHash != req.Password && s.IsActive
	})).Return(nil).Once()

	staff, err := suite.service.CreateStaff(ctx, suite.admin, req)

	suite.Require().NoError(err)
	suite.NotEmpty(staff.StaffID)
	suite.Equal(domain.RoleFinance, staff.Role)
	suite.True(utils.CheckPasswordHash("password123", staff.PasswordHash))
	suite.Equal("admin", staff.CreatedBy)
	suite.mockStaffRepo.AssertExpectations(suite.T())
}

func (suite *StaffServiceTestSuite) TestCreateStaff_RoleDepartmentMismatch() {
	req := dto.CreateStaffRequest{Name: "x", Email: "x@example.com", Password: "password123", Role: "FINANCE", Department: "ENGINEERING"}

	_, err := suite.service.CreateStaff(context.Background(), suite.admin, req)

	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.mockStaffRepo.AssertNotCalled(suite.T(), "SaveStaff", mock.Anything, mock.Anything)
}

func (suite *StaffServiceTestSuite) TestCreateStaff_DuplicateEmail() {
	ctx := context.Background()
	req := dto.CreateStaffRequest{Name: "x", Email: "x@example.com", Password: "password123", Role: "STAFF", Department: "ENGINEERING"}
	suite.mockStaffRepo.On("FindStaffByEmail", ctx, "x@example.com").Return(&domain.Staff{StaffID: "other"}, nil).Once()

	_, err := suite.service.CreateStaff(ctx, suite.admin, req)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockStaffRepo.AssertExpectations(suite.T())
}

func (suite *StaffServiceTestSuite) TestCreateStaff_RequiresAdmin() {
	actor := domain.Actor{StaffID: "s", Role: domain.RoleStaff}
	_, err := suite.service.CreateStaff(context.Background(), actor, dto.CreateStaffRequest{})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *StaffServiceTestSuite) TestUpdateStaff_RoleChangeChecksDepartment() {
	ctx := context.Background()
	existing := &domain.Staff{StaffID: "s1", Role: domain.RoleStaff, Department: domain.DepartmentEngineering, IsActive: true}
	suite.mockStaffRepo.On("FindStaffByID", ctx, "s1").Return(existing, nil).Once()

	approver := "APPROVER"
	_, err := suite.service.UpdateStaff(ctx, suite.admin, "s1", dto.UpdateStaffRequest{Role: &approver})
	suite.ErrorIs(err, apperrors.ErrBusinessRule)

	existing = &domain.Staff{StaffID: "s1", Role: domain.RoleStaff, Department: domain.DepartmentEngineering, IsActive: true}
	dept := "PROJECT_MANAGEMENT"
	suite.mockStaffRepo.On("FindStaffByID", ctx, "s1").Return(existing, nil).Once()
	suite.mockStaffRepo.On("UpdateStaff", ctx, mock.MatchedBy(func(s domain.Staff) bool {
		return s.Role == domain.RoleApprover && s.Department == domain.DepartmentProjectManagement
	})).Return(nil).Once()

	staff, err := suite.service.UpdateStaff(ctx, suite.admin, "s1", dto.UpdateStaffRequest{Role: &approver, Department: &dept})
	suite.Require().NoError(err)
	suite.Equal("admin", staff.LastUpdatedBy)
	suite.mockStaffRepo.AssertExpectations(suite.T())
}

func (suite *StaffServiceTestSuite) TestDeactivateStaff() {
	ctx := context.Background()
	suite.ErrorIs(suite.service.DeactivateStaff(ctx, suite.admin, "admin"), apperrors.ErrBusinessRule)

	suite.mockStaffRepo.On("FindStaffByID", ctx, "s1").Return(&domain.Staff{StaffID: "s1", IsActive: true}, nil).Once()
	suite.mockStaffRepo.On("UpdateStaff", ctx, mock.MatchedBy(func(s domain.Staff) bool { return !s.IsActive })).Return(nil).Once()

	suite.NoError(suite.service.DeactivateStaff(ctx, suite.admin, "s1"))
	suite.mockStaffRepo.AssertExpectations(suite.T())
}

func (suite *StaffServiceTestSuite) TestGetStaffByID_SelfOrAdmin() {
	ctx := context.Background()
	self := domain.Actor{StaffID: "s1", Role: domain.RoleStaff}
	suite.mockStaffRepo.On("FindStaffByID", ctx, "s1").Return(&domain.Staff{StaffID: "s1"}, nil).Once()

	staff, err := suite.service.GetStaffByID(ctx, self, "s1")
	suite.Require().NoError(err)
	suite.Equal("s1", staff.StaffID)

	_, err = suite.service.GetStaffByID(ctx, self, "s2")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockStaffRepo.AssertExpectations(suite.T())
}

func (suite *StaffServiceTestSuite) TestListStaff_RoleFilter() {
	ctx := context.Background()
	finance := domain.RoleFinance
	expected := []domain.Staff{{StaffID: "f1"}}
	suite.mockStaffRepo.On("FindStaff", ctx, domain.StaffFilter{Role: &finance, ActiveOnly: true, Limit: 10}).Return(expected, nil).Once()

	staff, err := suite.service.ListStaff(ctx, suite.admin, dto.ListStaffParams{Role: "finance", ActiveOnly: true, Limit: 10})

	suite.Require().NoError(err)
	suite.Equal(expected, staff)

	_, err = suite.service.ListStaff(ctx, suite.admin, dto.ListStaffParams{Role: "janitor"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStaffRepo.AssertExpectations(suite.T())
}

func (suite *StaffServiceTestSuite) TestAuthenticateStaff() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	active := &domain.Staff{StaffID: "s1", Email: "a@example.com", PasswordHash: hash, IsActive: true}
	inactive := &domain.Staff{StaffID: "s2", Email: "b@example.com", PasswordHash: hash}

	suite.mockStaffRepo.On("FindStaffByEmail", ctx, "a@example.com").Return(active, nil)
	suite.mockStaffRepo.On("FindStaffByEmail", ctx, "b@example.com").Return(inactive, nil)
	suite.mockStaffRepo.On("FindStaffByEmail", ctx, "c@example.com").Return(nil, apperrors.ErrNotFound)

	staff, err := suite.service.AuthenticateStaff(ctx, "A@example.com", "password123")
	suite.Require().NoError(err)
	suite.Equal("s1", staff.StaffID)

	_, err = suite.service.AuthenticateStaff(ctx, "a@example.com", "wrong-password")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	_, err = suite.service.AuthenticateStaff(ctx, "b@example.com", "password123")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	_, err = suite.service.AuthenticateStaff(ctx, "c@example.com", "password123")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestStaffServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StaffServiceTestSuite))
}

func TestAuthService_Login(t *testing.T) {
	utils.PasswordCost = bcrypt.MinCost
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	assert.NoError(t, err)

	repo := new(MockStaffRepository)
	repo.On("FindStaffByEmail", ctx, "fin@example.com").
		Return(&domain.Staff{StaffID: "f1", Email: "fin@example.com", Role: domain.RoleFinance, PasswordHash: hash, IsActive: true}, nil)

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryDuration: time.Hour, JWTIssuer: "claims-test"}
	auth := services.NewAuthService(services.NewStaffService(repo), services.NewTokenService(cfg))

	token, expiresAt, err := auth.Login(ctx, "fin@example.com", "password123")
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, "f1", claims.Subject)
	assert.Equal(t, string(domain.RoleFinance), claims.Role)

	_, _, err = auth.Login(ctx, "fin@example.com", "nope")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
