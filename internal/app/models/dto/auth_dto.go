package dto

// RegisterRequest represents a new account registration
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Nickname     string `json:"nickname" binding:"omitempty,min=3,max=40"`
	UniversityID *int64 `json:"universityId" binding:"omitempty,min=1"`
	CaptchaToken string `json:"captchaToken" binding:"required"`
}

// LoginRequest represents login credentials submitted as a form
// (OAuth2 password-flow style: username carries the email address)
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"86400"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
