package dto

import (
	"time"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// GenerateApplicationRequest payload.
type GenerateApplicationRequest struct {
	DepartmentID string `json:"department_id"`
	Problem      string `json:"problem"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
}

// GenerateApplicationResponse returns both drafts; nothing is persisted.
type GenerateApplicationResponse struct {
	EnglishApplication string `json:"english_application"`
	HindiApplication   string `json:"hindi_application"`
	DraftToken         string `json:"draft_token,omitempty"`
}

// SendComplaintRequest payload for final submission.
type SendComplaintRequest struct {
	DepartmentID       string `json:"department_id"`
	Problem            string `json:"problem"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	EnglishApplication string `json:"english_application"`
	HindiApplication   string `json:"hindi_application"`
	DraftToken         string `json:"draft_token,omitempty"`
}

// ComplaintResponse represents a persisted complaint.
type ComplaintResponse struct {
	ID                 string                 `json:"id"`
	ComplaintKey       string                 `json:"complaint_key"`
	DepartmentID       string                 `json:"department_id"`
	Problem            string                 `json:"problem"`
	Address            string                 `json:"address"`
	Phone              string                 `json:"phone"`
	EnglishApplication string                 `json:"english_application"`
	HindiApplication   string                 `json:"hindi_application"`
	Status             domain.ComplaintStatus `json:"status"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// SendComplaintResponse reports submission and notification outcomes
// independently.
type SendComplaintResponse struct {
	Complaint    ComplaintResponse `json:"complaint"`
	Notification string            `json:"notification"`
}
