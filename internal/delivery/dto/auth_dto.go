package dto

// Request DTOs

// LoginRequest is read from an application/x-www-form-urlencoded body.
// username carries the account email.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type MessageResponse struct {
	Detail string `json:"detail"`
}
