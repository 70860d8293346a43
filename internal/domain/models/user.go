package models

import (
	"strings"
	"time"

	"adminhub/internal/domain"
)

// User is shared by the inventory and sports screens.
type User struct {
	ID          domain.ID         `json:"id"`
	Username    string            `json:"username"`
	Email       string            `json:"email"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	PhoneNumber string            `json:"phoneNumber,omitempty"`
	Department  string            `json:"department,omitempty"`
	Role        domain.UserRole   `json:"role"`
	Status      domain.UserStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	LastLoginAt *time.Time        `json:"lastLoginAt,omitempty"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserRef is the nested form embedded in assets, assignments and matches.
type UserRef struct {
	ID   domain.ID `json:"id"`
	Name string    `json:"name"`
}

type CreateUserRequest struct {
	Username    string            `json:"username" binding:"required,min=3,max=50"`
	Email       string            `json:"email" binding:"required,email"`
	Password    string            `json:"password" binding:"required,min=6"`
	FirstName   string            `json:"firstName" binding:"required"`
	LastName    string            `json:"lastName" binding:"required"`
	PhoneNumber string            `json:"phoneNumber"`
	Department  string            `json:"department"`
	Role        domain.UserRole   `json:"role"`
	Status      domain.UserStatus `json:"status"`
}

// UpdateUserRequest leaves the password untouched when it is empty.
type UpdateUserRequest struct {
	Username    string          `json:"username" binding:"required,min=3,max=50"`
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"omitempty,min=6"`
	FirstName   string          `json:"firstName" binding:"required"`
	LastName    string          `json:"lastName" binding:"required"`
	PhoneNumber string          `json:"phoneNumber"`
	Department  string          `json:"department"`
	Role        domain.UserRole `json:"role" binding:"required"`
}

type StatusRequest[T any] struct {
	Status T `json:"status" binding:"required"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}
