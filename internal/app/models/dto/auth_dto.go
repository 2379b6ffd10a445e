package dto

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"jane@volunteerhub.org"`
	Password  string `json:"password" binding:"required,min=8" example:"Secret123!"`
	FirstName string `json:"firstName" binding:"required" example:"Jane"`
	LastName  string `json:"lastName" binding:"required" example:"Miller"`
}

// LoginRequest is the payload for signing in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@volunteerhub.org"`
	Password string `json:"password" binding:"required" example:"Secret123!"`
}

// RefreshTokenRequest is the payload for exchanging a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" example:"b3a7f7f0-1f2a-4a5e-9d7e-3f0c7a2e9b11"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string        `json:"accessToken"`
	RefreshToken     string        `json:"refreshToken"`
	ExpiresIn        int           `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int           `json:"refreshExpiresIn" example:"2592000"`
	User             *UserResponse `json:"user,omitempty"`
}
