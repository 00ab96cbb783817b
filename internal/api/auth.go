package api

import (
	"time"

	"poker-log/internal/model"
	"poker-log/internal/service"
)

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Email    string `form:"email" json:"email" example:"alice@example.com"`
	Password string `form:"password" json:"password" example:"Secret123"`
	Name     string `form:"name" json:"name" example:"Alice"`
}

func (r RegisterRequest) Input() service.RegisterInput {
	return service.RegisterInput{Email: r.Email, Password: r.Password, Name: r.Name}
}

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `form:"email" json:"email" example:"alice@example.com"`
	Password string `form:"password" json:"password" example:"Secret123"`
}

func (r LoginRequest) Input() service.LoginInput {
	return service.LoginInput{Email: r.Email, Password: r.Password}
}

// swagger:model api.LoginResponse
type LoginResponse struct {
	AccessToken string    `json:"access_token" example:"eyJhbGciOi..."`
	ExpiresAt   time.Time `json:"expires_at" example:"2025-05-09T15:04:05Z"`
	Redirect    string    `json:"redirect" example:"/mypage"`
}

// swagger:model api.UserResponse
type UserResponse struct {
	ID        string    `json:"id" example:"01HZX3K5Q8Y6J2V7M9N4P0R1ST"`
	Email     string    `json:"email" example:"alice@example.com"`
	Name      *string   `json:"name,omitempty" example:"Alice"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}
