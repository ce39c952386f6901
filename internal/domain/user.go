package domain

import "time"

// User is the driver account that owns a roster. At most one user is
// persisted and at most one is authenticated at a time.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Vehicle      Vehicle   `json:"vehicle"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile carries the registration fields supplied by the driver.
// ID, credential hash and creation timestamp are assigned by the store.
type Profile struct {
	Name    string
	Email   string
	Phone   string
	Vehicle Vehicle
}
