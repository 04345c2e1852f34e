package services

import (
	"context"

	"github.com/useprospera/prospera_backend/internal/dto"
)

// AuthSvcFacade authenticates operators. Client-side viewers never log in;
// they pass the static share-password gate instead.
type AuthSvcFacade interface {
	// Login checks the operator allow-list and master password, returning a
	// session token on success.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
