package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/useprospera/prospera_backend/internal/apperrors"
	portssvc "github.com/useprospera/prospera_backend/internal/core/ports/services"
	"github.com/useprospera/prospera_backend/internal/core/services"
	"github.com/useprospera/prospera_backend/internal/dto"
	"github.com/useprospera/prospera_backend/internal/utils"
)

const testMasterPassword = "senha-mestra-123"

type AuthServiceTestSuite struct {
	suite.Suite
	service portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupSuite() {
	hash, err := utils.HashPassword(testMasterPassword)
	suite.Require().NoError(err)

	suite.service = services.NewAuthService(
		[]string{"ana@studio.com", " Bruno@Studio.com "},
		hash,
		"test-secret",
		time.Hour,
		"prospera-test",
	)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{
		Email:    "ana@studio.com",
		Password: testMasterPassword,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("ana@studio.com", resp.Email)
	suite.Equal("ana", resp.Name)

	claims, err := utils.ParseAndValidateJWT(resp.Token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal("ana@studio.com", claims.Subject)
	suite.Equal("prospera-test", claims.Issuer)
}

func (suite *AuthServiceTestSuite) TestLogin_EmailIsCaseInsensitive() {
	ctx := context.Background()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{
		Email:    "BRUNO@studio.com",
		Password: testMasterPassword,
	})

	suite.Require().NoError(err)
	suite.Equal("bruno@studio.com", resp.Email)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownOperator() {
	ctx := context.Background()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{
		Email:    "intruso@other.com",
		Password: testMasterPassword,
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{
		Email:    "ana@studio.com",
		Password: "chute-errado",
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
