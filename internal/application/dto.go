package application

import (
	"time"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
)

// UserDTO is the sanitized view of a user; it never carries password material.
type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDTO(u *entity.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Email:     u.Email().String(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

type CreateUserInput struct {
	Email    string
	Password string
}

type ListUsersInput struct {
	Limit  int
	Offset int
}

type UserPage struct {
	Users  []UserDTO `json:"users"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}
