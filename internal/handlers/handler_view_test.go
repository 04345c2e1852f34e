package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/useprospera/prospera_backend/internal/apperrors"
	"github.com/useprospera/prospera_backend/internal/core/domain"
	portssvc "github.com/useprospera/prospera_backend/internal/core/ports/services"
	"github.com/useprospera/prospera_backend/internal/dto"
	"github.com/useprospera/prospera_backend/internal/handlers"
	"github.com/useprospera/prospera_backend/internal/utils/pricing"
	"github.com/useprospera/prospera_backend/pkg/config"
)

// --- Mock QuoteService ---
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) GetQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quote), args.Error(1)
}

func (m *MockQuoteService) PriceQuote(ctx context.Context, quote *domain.Quote) ([]pricing.OptionBreakdown, error) {
	args := m.Called(ctx, quote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.OptionBreakdown), args.Error(1)
}

func (m *MockQuoteService) ShareMessage(ctx context.Context, quoteID string) (*dto.ShareMessageResponse, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ShareMessageResponse), args.Error(1)
}

func (m *MockQuoteService) CreateQuote(ctx context.Context, req dto.SaveQuoteRequest, creatorEmail string) (*domain.Quote, error) {
	args := m.Called(ctx, req, creatorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) SaveQuote(ctx context.Context, quoteID string, req dto.SaveQuoteRequest, updaterEmail string) (*domain.Quote, error) {
	args := m.Called(ctx, quoteID, req, updaterEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) ApproveQuote(ctx context.Context, quoteID string, selectedOptionID *string) (*domain.Quote, error) {
	args := m.Called(ctx, quoteID, selectedOptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) UpdateQuoteStatus(ctx context.Context, quoteID string, req dto.UpdateQuoteStatusRequest, updaterEmail string) (*domain.Quote, error) {
	args := m.Called(ctx, quoteID, req, updaterEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) ReopenQuote(ctx context.Context, quoteID string, updaterEmail string) (*domain.Quote, error) {
	args := m.Called(ctx, quoteID, updaterEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

var _ portssvc.QuoteSvcFacade = (*MockQuoteService)(nil)

// --- Mock PaymentMethodService ---
type MockPaymentMethodService struct {
	mock.Mock
}

func (m *MockPaymentMethodService) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodService) GetPaymentMethodByID(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, methodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodService) CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, creatorEmail string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, req, creatorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodService) DeletePaymentMethod(ctx context.Context, methodID string) error {
	args := m.Called(ctx, methodID)
	return args.Error(0)
}

var _ portssvc.PaymentMethodSvcFacade = (*MockPaymentMethodService)(nil)

// --- Mock CatalogService ---
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListServices(ctx context.Context) ([]domain.CatalogService, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogService), args.Error(1)
}

func (m *MockCatalogService) CreateService(ctx context.Context, req dto.CreateServiceRequest, creatorEmail string) (*domain.CatalogService, error) {
	args := m.Called(ctx, req, creatorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogService), args.Error(1)
}

func (m *MockCatalogService) DeleteService(ctx context.Context, serviceID string) error {
	args := m.Called(ctx, serviceID)
	return args.Error(0)
}

var _ portssvc.CatalogSvcFacade = (*MockCatalogService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Test Suite ---
type ViewHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockQuoteService *MockQuoteService
	jwtSecret        string
	sharePassword    string
}

func (suite *ViewHandlerTestSuite) generateTestToken(email string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "prospera-test",
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ViewHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.sharePassword = "proposta2024"

	suite.mockQuoteService = new(MockQuoteService)

	cfg := &config.Config{
		JWTSecret:       suite.jwtSecret,
		SharePassword:   suite.sharePassword,
		ViewerRateLimit: "100-S",
		IsProduction:    true, // skip swagger registration
	}
	container := &portssvc.ServiceContainer{
		Quote:         suite.mockQuoteService,
		PaymentMethod: new(MockPaymentMethodService),
		Catalog:       new(MockCatalogService),
		Auth:          new(MockAuthService),
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func sharedQuote() *domain.Quote {
	return &domain.Quote{
		QuoteID:    "QT2345",
		ClientName: "Acme Ltda",
		Status:     domain.StatusSent,
		Items: []domain.LineItem{
			{ItemID: "i1", Description: "Site", Amount: decimal.NewFromInt(1000), Kind: domain.OneTime},
		},
		PaymentOptions: []domain.PaymentOption{
			{OptionID: "opt-a", PaymentMethodID: "pix", Installments: 1, DiscountPercent: decimal.NewFromInt(10)},
		},
	}
}

func sharedBreakdowns(q *domain.Quote) []pricing.OptionBreakdown {
	breakdowns, _ := pricing.ComputeAll(q.Items, q.PaymentOptions)
	return breakdowns
}

func (suite *ViewHandlerTestSuite) TestViewQuote_Success() {
	quote := sharedQuote()
	suite.mockQuoteService.On("GetQuoteByID", mock.Anything, "QT2345").Return(quote, nil).Once()
	suite.mockQuoteService.On("PriceQuote", mock.Anything, quote).Return(sharedBreakdowns(quote), nil).Once()

	url := fmt.Sprintf("/api/v1/view/QT2345?password=%s", suite.sharePassword)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.QuoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("QT2345", resp.ID)
	suite.Require().Len(resp.Pricing, 1)
	suite.Equal("R$ 900,00", resp.Pricing[0].GrandTotalDisplay)
	suite.mockQuoteService.AssertExpectations(suite.T())
}

func (suite *ViewHandlerTestSuite) TestViewQuote_WrongPassword() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/view/QT2345?password=errada", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockQuoteService.AssertNotCalled(suite.T(), "GetQuoteByID", mock.Anything, mock.Anything)
}

func (suite *ViewHandlerTestSuite) TestViewQuote_NotFound() {
	suite.mockQuoteService.On("GetQuoteByID", mock.Anything, "ZZZZZZ").Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/view/ZZZZZZ?password=%s", suite.sharePassword)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ViewHandlerTestSuite) TestApproveQuote_Success() {
	quote := sharedQuote()
	approvedID := "opt-a"
	approved := *quote
	approved.Status = domain.StatusApproved
	approved.SelectedPaymentOptionID = &approvedID

	suite.mockQuoteService.On("ApproveQuote", mock.Anything, "QT2345", mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == "opt-a"
	})).Return(&approved, nil).Once()
	suite.mockQuoteService.On("PriceQuote", mock.Anything, &approved).Return(sharedBreakdowns(quote), nil).Once()

	body, _ := json.Marshal(dto.ApproveQuoteRequest{
		Password:                suite.sharePassword,
		SelectedPaymentOptionID: &approvedID,
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/view/QT2345/approve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.QuoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusApproved, resp.Status)
	suite.Require().Len(resp.Pricing, 1)
	suite.True(resp.Pricing[0].Selected)
	suite.mockQuoteService.AssertExpectations(suite.T())
}

func (suite *ViewHandlerTestSuite) TestApproveQuote_WrongPassword() {
	optionID := "opt-a"
	body, _ := json.Marshal(dto.ApproveQuoteRequest{
		Password:                "errada",
		SelectedPaymentOptionID: &optionID,
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/view/QT2345/approve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockQuoteService.AssertNotCalled(suite.T(), "ApproveQuote", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ViewHandlerTestSuite) TestApproveQuote_AlreadyDecidedConflict() {
	optionID := "opt-b"
	suite.mockQuoteService.On("ApproveQuote", mock.Anything, "QT2345", mock.Anything).
		Return(nil, fmt.Errorf("%w: quote QT2345 is already approved with a different option", apperrors.ErrConflict)).Once()

	body, _ := json.Marshal(dto.ApproveQuoteRequest{
		Password:                suite.sharePassword,
		SelectedPaymentOptionID: &optionID,
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/view/QT2345/approve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ViewHandlerTestSuite) TestOperatorRoutes_RequireToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *ViewHandlerTestSuite) TestOperatorRoutes_ListWithToken() {
	quotes := []domain.Quote{*sharedQuote()}
	suite.mockQuoteService.On("ListQuotes", mock.Anything).Return(quotes, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("ana@studio.com"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.QuoteSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("QT2345", resp[0].ID)
	suite.mockQuoteService.AssertExpectations(suite.T())
}

func TestViewHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ViewHandlerTestSuite))
}
