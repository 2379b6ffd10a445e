package dto

import "time"

// UserResponse is the public representation of an account
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Email     string    `json:"email" example:"jane@volunteerhub.org"`
	FirstName string    `json:"firstName" example:"Jane"`
	LastName  string    `json:"lastName" example:"Miller"`
	RoleType  string    `json:"roleType" example:"VOLUNTEER" enums:"VOLUNTEER,ADMIN"`
	IsActive  bool      `json:"isActive" example:"true"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserBasicResponse is a compact account reference for embedding in other payloads
type UserBasicResponse struct {
	ID        int64  `json:"id" example:"1"`
	FirstName string `json:"firstName" example:"Jane"`
	LastName  string `json:"lastName" example:"Miller"`
	Email     string `json:"email" example:"jane@volunteerhub.org"`
}

// UpdateProfileRequest is the payload for saving a volunteer profile.
// The profile row is created lazily on the first save.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty" binding:"omitempty,min=1"`
	LastName  *string `json:"lastName,omitempty" binding:"omitempty,min=1"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	Skills    *string `json:"skills,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// ProfileResponse is an account with its optional volunteer profile.
// Profile fields are nil when no profile row exists yet ("incomplete profile").
type ProfileResponse struct {
	UserResponse
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	Skills   *string `json:"skills,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}
