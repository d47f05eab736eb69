package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminRole represents the role of an admin account
type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "super-admin"
)

// Admin represents a back-office user able to manage enquiries
type Admin struct {
	ID           string     `json:"id" dynamodbav:"id"`
	Name         string     `json:"name" dynamodbav:"name"`
	Email        string     `json:"email" dynamodbav:"email"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	Role         AdminRole  `json:"role" dynamodbav:"role"`
	IsActive     bool       `json:"is_active" dynamodbav:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" dynamodbav:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" dynamodbav:"updated_at"`
}

// JWTClaims carries the authenticated admin identity inside tokens
type JWTClaims struct {
	AdminID string    `json:"admin_id"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Role    AdminRole `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the admin login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// CreateAdminRequest bootstraps or adds an admin account
type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required" example:"Jane Admin"`
	Email    string `json:"email" binding:"required,email" example:"admin@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"Secret123"`
	Role     string `json:"role,omitempty" example:"admin"`
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Admin        *Admin `json:"admin"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"-"`
}
