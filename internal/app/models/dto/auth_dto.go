package dto

import "github.com/ybamri/recycleapp/internal/app/models"

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Youssef"`
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	Phone    string `json:"phone" binding:"required" example:"+216 20 123 456"`
	Role     string `json:"role,omitempty" example:"user"` // optional, defaults to user
}

// RegisterResponse represents the result of a successful registration.
// VerificationToken is only populated when email sending is skipped, so local
// setups can complete the verification flow by hand.
type RegisterResponse struct {
	Message           string       `json:"message"`
	User              *models.User `json:"user"`
	VerificationToken string       `json:"verificationToken,omitempty"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful login. The access token is the
// server-verifiable session credential the client passes on each request.
type LoginResponse struct {
	Message     string       `json:"message"`
	User        *models.User `json:"user"`
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64        `json:"expiresIn" example:"3600"` // seconds
}

// VerifyEmailResponse represents the result of email verification
type VerifyEmailResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}
