package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Manager is an account that owns teams and views dashboards
type Manager struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// ManagerClaims are JWT claims for manager authentication
type ManagerClaims struct {
	ManagerID string `json:"managerId"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// SignupRequest is the request body for manager signup
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for manager login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful signup or login
type LoginResponse struct {
	Token     string `json:"token"`
	ManagerID string `json:"managerId"`
}
