package models

import (
	"time"
)

// RoleType defines the user role type
type RoleType string

const (
	RoleVolunteer RoleType = "VOLUNTEER"
	RoleAdmin     RoleType = "ADMIN"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                  // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"user@volunteerhub.org"`        // User's email address (unique, case-insensitive)
	Password    string     `json:"-" db:"password"`                                         // User's hashed password (excluded from JSON)
	FirstName   string     `json:"firstName" db:"first_name" example:"John"`                // User's first name
	LastName    string     `json:"lastName" db:"last_name" example:"Doe"`                   // User's last name
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"VOLUNTEER"`             // User's role (VOLUNTEER or ADMIN)
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                  // Whether the user account is active
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                // Timestamp of the last login (nullable)
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// VolunteerProfile defines the optional profile extension based on the
// 'volunteer_profiles' table. Created lazily on first profile save; a user
// without a profile row is a valid state.
type VolunteerProfile struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Location  *string   `json:"location,omitempty" db:"location"`
	Skills    *string   `json:"skills,omitempty" db:"skills"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	User *User `json:"user,omitempty"` // Relation, no db tag
}
