package model

import "time"

// User is an account holder. Products and flyers are owned by exactly one user.
type User struct {
	ID           string     `json:"id" bson:"_id" db:"id"`
	Email        string     `json:"email" bson:"email" db:"email"`
	PasswordHash string     `json:"-" bson:"password_hash" db:"password_hash"`
	FirstName    string     `json:"firstName" bson:"first_name" db:"first_name"`
	LastName     string     `json:"lastName" bson:"last_name" db:"last_name"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" bson:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"createdAt" bson:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updated_at" db:"updated_at"`
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID string
	Email  string
}

// RegisterRequest represents the request payload for creating an account.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
}

// LoginRequest represents the request payload for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries a partial profile update.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitnil,min=1,max=50"`
	LastName  *string `json:"lastName" validate:"omitnil,min=1,max=50"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// ProfileResponse is returned by a profile update.
type ProfileResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}
