package models

import "time"

// User is an account record. Profile data lives in the profile domain; the
// user row carries only credentials.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SignupRequest - request to create an account with its initial profile
type SignupRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Name       string `json:"name" binding:"required,min=2"`
	Gender     string `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
	BirthDate  string `json:"birthDate" binding:"required"`
	LookingFor string `json:"lookingFor" binding:"required,oneof=SPONSOR COMPANION FRIENDSHIP RELATIONSHIP"`
}

// SigninRequest - request to exchange credentials for a token
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserInfo - public view of an account
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse - successful signup/signin result
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
