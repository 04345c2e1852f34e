package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/useprospera/prospera_backend/internal/apperrors"
	"github.com/useprospera/prospera_backend/internal/core/domain"
	portsrepo "github.com/useprospera/prospera_backend/internal/core/ports/repositories"
	portssvc "github.com/useprospera/prospera_backend/internal/core/ports/services"
	"github.com/useprospera/prospera_backend/internal/core/services"
	"github.com/useprospera/prospera_backend/internal/dto"
)

// --- Mock PaymentMethodRepository ---
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) ListActivePaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, methodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) DeletePaymentMethod(ctx context.Context, methodID string) error {
	args := m.Called(ctx, methodID)
	return args.Error(0)
}

var _ portsrepo.PaymentMethodRepositoryFacade = (*MockPaymentMethodRepository)(nil)

// --- Test Suite ---
type PaymentMethodServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPaymentMethodRepository
	service  portssvc.PaymentMethodSvcFacade
}

func (suite *PaymentMethodServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPaymentMethodRepository)
	suite.service = services.NewPaymentMethodService(suite.mockRepo)
}

func (suite *PaymentMethodServiceTestSuite) TestCreatePaymentMethod_Success() {
	ctx := context.Background()
	req := dto.CreatePaymentMethodRequest{
		Name:            "Pix",
		DiscountPercent: decimal.NewFromInt(5),
	}

	suite.mockRepo.On("SavePaymentMethod", ctx, mock.MatchedBy(func(m domain.PaymentMethod) bool {
		return m.Name == "Pix" && m.Active && m.DiscountPercent.Equal(decimal.NewFromInt(5)) && m.CreatedBy == "ana@studio.com"
	})).Return(nil).Once()

	method, err := suite.service.CreatePaymentMethod(ctx, req, "ana@studio.com")

	suite.Require().NoError(err)
	suite.Require().NotNil(method)
	suite.NotEmpty(method.MethodID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PaymentMethodServiceTestSuite) TestCreatePaymentMethod_DiscountOutOfRange() {
	ctx := context.Background()

	for _, pct := range []int64{-1, 101} {
		req := dto.CreatePaymentMethodRequest{
			Name:            "Quebrado",
			DiscountPercent: decimal.NewFromInt(pct),
		}

		method, err := suite.service.CreatePaymentMethod(ctx, req, "ana@studio.com")

		suite.Require().Error(err, "discount %d should be rejected", pct)
		suite.Nil(method)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePaymentMethod", mock.Anything, mock.Anything)
}

func (suite *PaymentMethodServiceTestSuite) TestGetPaymentMethodByID_Stored() {
	ctx := context.Background()
	stored := &domain.PaymentMethod{MethodID: "m1", Name: "Cartão", Active: true}

	suite.mockRepo.On("FindPaymentMethodByID", ctx, "m1").Return(stored, nil).Once()

	method, err := suite.service.GetPaymentMethodByID(ctx, "m1")

	suite.Require().NoError(err)
	suite.Equal(stored, method)
}

func (suite *PaymentMethodServiceTestSuite) TestGetPaymentMethodByID_FallsBackToBuiltinList() {
	ctx := context.Background()

	suite.mockRepo.On("FindPaymentMethodByID", ctx, "pix").Return(nil, apperrors.ErrNotFound).Once()

	method, err := suite.service.GetPaymentMethodByID(ctx, "pix")

	suite.Require().NoError(err)
	suite.Require().NotNil(method)
	suite.Equal("pix", method.MethodID)
	suite.True(method.DiscountPercent.Equal(decimal.NewFromInt(5)))
}

func (suite *PaymentMethodServiceTestSuite) TestGetPaymentMethodByID_UnknownLegacyIDGetsDefault() {
	ctx := context.Background()

	suite.mockRepo.On("FindPaymentMethodByID", ctx, "whatever").Return(nil, apperrors.ErrNotFound).Once()

	method, err := suite.service.GetPaymentMethodByID(ctx, "whatever")

	suite.Require().NoError(err)
	// The default fallback is the zero-discount card entry.
	suite.Equal("cartao", method.MethodID)
	suite.True(method.DiscountPercent.IsZero())
}

func (suite *PaymentMethodServiceTestSuite) TestGetPaymentMethodByID_RepoErrorPropagates() {
	ctx := context.Background()

	suite.mockRepo.On("FindPaymentMethodByID", ctx, "m1").Return(nil, assert.AnError).Once()

	method, err := suite.service.GetPaymentMethodByID(ctx, "m1")

	suite.Require().Error(err)
	suite.Nil(method)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *PaymentMethodServiceTestSuite) TestListPaymentMethods() {
	ctx := context.Background()
	methods := []domain.PaymentMethod{{MethodID: "m1", Name: "Boleto", Active: true}}

	suite.mockRepo.On("ListActivePaymentMethods", ctx).Return(methods, nil).Once()

	result, err := suite.service.ListPaymentMethods(ctx)

	suite.Require().NoError(err)
	suite.Equal(methods, result)
}

func TestPaymentMethodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentMethodServiceTestSuite))
}
