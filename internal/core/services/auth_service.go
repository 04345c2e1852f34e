package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/useprospera/prospera_backend/internal/apperrors"
	"github.com/useprospera/prospera_backend/internal/core/domain"
	portssvc "github.com/useprospera/prospera_backend/internal/core/ports/services"
	"github.com/useprospera/prospera_backend/internal/dto"
	"github.com/useprospera/prospera_backend/internal/middleware"
	"github.com/useprospera/prospera_backend/internal/utils"
)

// authService authenticates operators against a configured allow-list and a
// bcrypt-hashed master password, issuing JWT session tokens. Identity is never
// ambient: the resulting email travels as an explicit argument or request
// context value.
type authService struct {
	operatorEmails     map[string]struct{}
	masterPasswordHash string
	jwtSecret          string
	jwtExpiry          time.Duration
	jwtIssuer          string
}

// NewAuthService creates a new AuthService.
func NewAuthService(operatorEmails []string, masterPasswordHash, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	allowed := make(map[string]struct{}, len(operatorEmails))
	for _, email := range operatorEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allowed[email] = struct{}{}
		}
	}
	return &authService{
		operatorEmails:     allowed,
		masterPasswordHash: masterPasswordHash,
		jwtSecret:          jwtSecret,
		jwtExpiry:          jwtExpiry,
		jwtIssuer:          jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login checks the allow-list and master password. Failures are deliberately
// indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, ok := s.operatorEmails[email]; !ok {
		logger.Warn("Login attempt for unknown operator", slog.String("email", email))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	if !utils.CheckPasswordHash(req.Password, s.masterPasswordHash) {
		logger.Warn("Login attempt with wrong password", slog.String("email", email))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(email, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		logger.Error("Failed to generate session token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: failed to generate session token", apperrors.ErrInternal)
	}

	name, _, _ := strings.Cut(email, "@")
	logger.Info("Operator logged in", slog.String("email", email))
	resp := dto.ToLoginResponse(domain.User{Email: email, Name: name}, token)
	return &resp, nil
}
