package domain

import "time"

// User is the domain model for citizens who file complaints.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	State        string
	District     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
