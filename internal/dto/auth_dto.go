package dto

import (
	"time"

	"doc-assistant-be/internal/entity"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type TokenResponse struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

type VerifyTokenResponse struct {
	Email     string
	ExpiresAt time.Time
}
