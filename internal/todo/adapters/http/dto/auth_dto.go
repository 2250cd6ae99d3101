// Package dto holds the HTTP request and response shapes.
package dto

import (
	"strings"

	"gotodo/internal/todo/domain/entities"
)

// RegisterRequest is the signup body.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72,maxbytes=72,haslower,hasupper,hasdigit,hasspecial"`
}

// Normalize trims the text fields. The password is left as sent.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Normalize trims the email.
func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// UserView is the public projection of a user.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUserView strips the password hash and timestamps.
func NewUserView(u *entities.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

// AuthResponse answers register and login.
type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserView `json:"user"`
}

// UserResponse answers the profile fetch.
type UserResponse struct {
	Message string   `json:"message"`
	User    UserView `json:"user"`
}
