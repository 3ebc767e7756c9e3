package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/claims_app/internal/apperrors"
	"github.com/SscSPs/claims_app/internal/core/domain"
	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
	"github.com/SscSPs/claims_app/internal/dto"
	"github.com/SscSPs/claims_app/internal/handlers"
	"github.com/SscSPs/claims_app/internal/middleware"
	"github.com/SscSPs/claims_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ClaimService ---
type MockClaimService struct {
	mock.Mock
}

func (m *MockClaimService) claimResult(args mock.Arguments) (*domain.Claim, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

func (m *MockClaimService) GetClaim(ctx context.Context, actor domain.Actor, claimID string) (*domain.Claim, error) {
	return m.claimResult(m.Called(ctx, actor, claimID))
}
func (m *MockClaimService) ListClaims(ctx context.Context, actor domain.Actor, params dto.ListClaimsParams) (*dto.ListClaimsResponse, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListClaimsResponse), args.Error(1)
}
func (m *MockClaimService) ListChangeLogs(ctx context.Context, actor domain.Actor, claimID string) ([]domain.ClaimChangeLog, error) {
	args := m.Called(ctx, actor, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClaimChangeLog), args.Error(1)
}
func (m *MockClaimService) GetStatusCounts(ctx context.Context, actor domain.Actor, params dto.StatusCountParams) (*domain.StatusCounts, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusCounts), args.Error(1)
}
func (m *MockClaimService) CreateClaim(ctx context.Context, actor domain.Actor, req dto.CreateClaimRequest) (*domain.Claim, error) {
	return m.claimResult(m.Called(ctx, actor, req))
}
func (m *MockClaimService) UpdateClaim(ctx context.Context, actor domain.Actor, claimID string, req dto.UpdateClaimRequest) (*domain.Claim, error) {
	return m.claimResult(m.Called(ctx, actor, claimID, req))
}
func (m *MockClaimService) SubmitClaim(ctx context.Context, actor domain.Actor, claimID string) (*domain.Claim, error) {
	return m.claimResult(m.Called(ctx, actor, claimID))
}
func (m *MockClaimService) ApproveClaim(ctx context.Context, actor domain.Actor, claimID string) (*domain.Claim, error) {
	return m.claimResult(m.Called(ctx, actor, claimID))
}
func (m *MockClaimService) RejectClaim(ctx context.Context, actor domain.Actor, claimID string, reason string) (*domain.Claim, error) {
	return m.claimResult(m.Called(ctx, actor, claimID, reason))
}
func (m *MockClaimService) ReturnClaim(ctx context.Context, actor domain.Actor, claimID string, reason string) (*domain.Claim, error) {
	return m.claimResult(m.Called(ctx, actor, claimID, reason))
}
func (m *MockClaimService) CancelClaim(ctx context.Context, actor domain.Actor, claimID string, reason string) (*domain.Claim, error) {
	return m.claimResult(m.Called(ctx, actor, claimID, reason))
}
func (m *MockClaimService) PayClaim(ctx context.Context, actor domain.Actor, claimID string) (*domain.Claim, error) {
	return m.claimResult(m.Called(ctx, actor, claimID))
}

// Ensure mock implements the interface
var _ portssvc.ClaimSvcFacade = (*MockClaimService)(nil)

// --- Test Suite ---
type ClaimHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockClaimService *MockClaimService
	jwtSecret        string
	staffID          string
}

func (suite *ClaimHandlerTestSuite) generateTestToken(staffID string, role domain.SystemRole) string {
	token, _, err := utils.GenerateJWT(staffID, string(role), "someone@example.com", suite.jwtSecret, time.Hour, "claims-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *ClaimHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.staffID = uuid.NewString()

	suite.mockClaimService = new(MockClaimService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterClaimRoutes(v1, suite.mockClaimService)
}

func (suite *ClaimHandlerTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.staffID, domain.RoleStaff))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ClaimHandlerTestSuite) actorMatcher() interface{} {
	return mock.MatchedBy(func(a domain.Actor) bool {
		return a.StaffID == suite.staffID && a.Role == domain.RoleStaff
	})
}

func (suite *ClaimHandlerTestSuite) sampleClaim(status domain.ClaimStatus) *domain.Claim {
	return &domain.Claim{
		ClaimID:   uuid.NewString(),
		ClaimType: domain.ClaimOvertime,
		Status:    status,
		Name:      "Weekend release",
		Amount:    decimal.NewFromInt(120),
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		ClaimerID: suite.staffID,
		Approvers: []domain.ClaimApprover{{ApproverID: "pm", Status: domain.ApproverPending}},
	}
}

func (suite *ClaimHandlerTestSuite) TestCreateClaim_Success() {
	claim := suite.sampleClaim(domain.ClaimDraft)
	suite.mockClaimService.On("CreateClaim", mock.Anything, suite.actorMatcher(),
		mock.MatchedBy(func(r dto.CreateClaimRequest) bool {
			return r.ClaimType == "OVERTIME" && r.Amount.Equal(decimal.NewFromInt(120))
		}),
	).Return(claim, nil).Once()

	body := `{"claimType":"OVERTIME","name":"Weekend release","amount":"120","startDate":"2024-03-01T00:00:00Z","endDate":"2024-03-02T00:00:00Z"}`
	w := suite.do(http.MethodPost, "/api/v1/claims", body)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.ClaimResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(claim.ClaimID, resp.ClaimID)
	suite.Equal("DRAFT", resp.Status)
	suite.mockClaimService.AssertExpectations(suite.T())
}

func (suite *ClaimHandlerTestSuite) TestCreateClaim_UnknownClaimTypeRejectedAtBinding() {
	body := `{"claimType":"HOLIDAY","name":"x","startDate":"2024-03-01T00:00:00Z","endDate":"2024-03-02T00:00:00Z"}`
	w := suite.do(http.MethodPost, "/api/v1/claims", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockClaimService.AssertNotCalled(suite.T(), "CreateClaim", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClaimHandlerTestSuite) TestCreateClaim_EndBeforeStart() {
	body := `{"claimType":"BONUS","name":"x","startDate":"2024-03-02T00:00:00Z","endDate":"2024-03-01T00:00:00Z"}`
	w := suite.do(http.MethodPost, "/api/v1/claims", body)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ClaimHandlerTestSuite) TestSubmitClaim_Success() {
	claim := suite.sampleClaim(domain.ClaimPending)
	suite.mockClaimService.On("SubmitClaim", mock.Anything, suite.actorMatcher(), claim.ClaimID).Return(claim, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/claims/"+claim.ClaimID+"/submit", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ClaimResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("PENDING", resp.Status)
	suite.Len(resp.Approvers, 1)
	suite.mockClaimService.AssertExpectations(suite.T())
}

func (suite *ClaimHandlerTestSuite) TestReturnClaim_PassesReason() {
	claim := suite.sampleClaim(domain.ClaimPending)
	suite.mockClaimService.On("ReturnClaim", mock.Anything, suite.actorMatcher(), claim.ClaimID, "missing receipt").Return(claim, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/claims/"+claim.ClaimID+"/return", `{"reason":"missing receipt"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockClaimService.AssertExpectations(suite.T())
}

func (suite *ClaimHandlerTestSuite) TestRejectClaim_WithoutBody() {
	claim := suite.sampleClaim(domain.ClaimRejected)
	suite.mockClaimService.On("RejectClaim", mock.Anything, suite.actorMatcher(), claim.ClaimID, "").Return(claim, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/claims/"+claim.ClaimID+"/reject", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockClaimService.AssertExpectations(suite.T())
}

func (suite *ClaimHandlerTestSuite) TestTransitionErrorsMapToStatus() {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperrors.NewNotFoundError("claim not found"), http.StatusNotFound},
		{"wrong actor", apperrors.NewUnauthorizedError("not an approver of this claim"), http.StatusForbidden},
		{"wrong state", apperrors.NewBusinessRuleError("claim is not pending"), http.StatusUnprocessableEntity},
		{"storage failure", apperrors.NewAppError(http.StatusInternalServerError, "db down", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			claimID := uuid.NewString()
			suite.mockClaimService.On("ApproveClaim", mock.Anything, suite.actorMatcher(), claimID).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/claims/"+claimID+"/approve", "")

			suite.Equal(tc.want, w.Code)
			var resp handlers.ErrorResponse
			suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			if tc.want == http.StatusInternalServerError {
				suite.Equal("Failed to approve claim", resp.Error)
			}
		})
	}
}

func (suite *ClaimHandlerTestSuite) TestListClaims_BindsQuery() {
	expected := &dto.ListClaimsResponse{Claims: []dto.ClaimResponse{{ClaimID: "c1"}}}
	suite.mockClaimService.On("ListClaims", mock.Anything, suite.actorMatcher(),
		mock.MatchedBy(func(p dto.ListClaimsParams) bool {
			return p.View == "APPROVER" && p.Limit == 5 && len(p.Status) == 2 && p.From == "2024-01-01"
		}),
	).Return(expected, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/claims?view=APPROVER&limit=5&status=PENDING&status=APPROVED&from=2024-01-01", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListClaimsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Claims, 1)
	suite.mockClaimService.AssertExpectations(suite.T())
}

func (suite *ClaimHandlerTestSuite) TestListClaims_DefaultsView() {
	suite.mockClaimService.On("ListClaims", mock.Anything, suite.actorMatcher(),
		mock.MatchedBy(func(p dto.ListClaimsParams) bool {
			return p.View == "CLAIMER" && p.Limit == 20
		}),
	).Return(&dto.ListClaimsResponse{Claims: []dto.ClaimResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/claims", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockClaimService.AssertExpectations(suite.T())
}

func (suite *ClaimHandlerTestSuite) TestListClaims_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/api/v1/claims?limit=1000", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockClaimService.AssertNotCalled(suite.T(), "ListClaims", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClaimHandlerTestSuite) TestGetStatusCounts() {
	bucket := domain.NewClaimStatusCount(map[domain.ClaimStatus]int{domain.ClaimPending: 3, domain.ClaimPaid: 1})
	counts := &domain.StatusCounts{ViewMode: domain.ViewClaimer, Claims: &bucket}
	suite.mockClaimService.On("GetStatusCounts", mock.Anything, suite.actorMatcher(),
		dto.StatusCountParams{View: "CLAIMER"},
	).Return(counts, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/claims/counts", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.StatusCounts
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.Claims)
	suite.Equal(3, resp.Claims.Pending)
	suite.Equal(4, resp.Claims.Total)
	suite.Nil(resp.Approver)
	suite.mockClaimService.AssertExpectations(suite.T())
}

func (suite *ClaimHandlerTestSuite) TestMissingTokenIsUnauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/claims/abc", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockClaimService.AssertNotCalled(suite.T(), "GetClaim", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestClaimHandler(t *testing.T) {
	suite.Run(t, new(ClaimHandlerTestSuite))
}
