package dto

import "time"

// VehiclePayload carries vehicle fields for registration.
type VehiclePayload struct {
	Model    string `json:"model"`
	Plate    string `json:"plate"`
	Capacity int    `json:"capacity"`
	Color    string `json:"color"`
}

// RegisterRequest payload for the driver account.
type RegisterRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Vehicle  VehiclePayload `json:"vehicle"`
	Password string         `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
