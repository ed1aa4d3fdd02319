package dto

import (
	"time"

	"github.com/Sodstar/mountain-pos/internal/domain"
)

type UserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Image    string `json:"image" validate:"omitempty,url"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserUpdateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
	Image string `json:"image" validate:"omitempty,url"`
}

type UserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

type UserPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Image      string    `json:"image"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID.Hex(),
		ExternalID: u.ExternalID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Image:      u.Image,
		Role:       string(u.Role),
		CreatedAt:  u.CreatedAt,
	}
}
