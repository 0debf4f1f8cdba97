package models

import "time"

// User is a registered account. ID is assigned by the store.
type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"userName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialize
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest is the JSON body for POST /users/register.
type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token issued at login.
type LoginResponse struct {
	Token string `json:"token"`
}

// MessageResponse is the acknowledgement body used by write endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
