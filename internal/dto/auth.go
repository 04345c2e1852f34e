package dto

import "github.com/useprospera/prospera_backend/internal/core/domain"

// LoginRequest carries operator credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the operator identity and session token.
type LoginResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// ToLoginResponse converts an operator identity plus a signed token to the
// login response DTO.
func ToLoginResponse(user domain.User, token string) LoginResponse {
	return LoginResponse{
		Email: user.Email,
		Name:  user.Name,
		Token: token,
	}
}
