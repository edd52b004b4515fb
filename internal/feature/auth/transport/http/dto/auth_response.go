package dto

import userdto "uventory_backend/internal/feature/users/transport/http/dto"

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  userdto.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// ProfileResponse is the identity carried by the bearer token.
type ProfileResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
