package domain

import "time"

// Department represents a government department that receives complaints
// and answers public feedback.
type Department struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	State        string
	District     string
	WorkingAreas []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
