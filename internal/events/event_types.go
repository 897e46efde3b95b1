package events

import (
	"time"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintSubmitted EventType = "complaint_submitted"
	EventCommentAdded       EventType = "comment_added"
	EventReplyAdded         EventType = "reply_added"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type         domain.SubjectType `json:"type"`
	UserID       *string            `json:"user_id,omitempty"`
	DepartmentID *string            `json:"department_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	ComplaintKey string      `json:"complaint_key"`
	Actor        Actor       `json:"actor"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// ComplaintSubmittedPayload payload.
type ComplaintSubmittedPayload struct {
	ComplaintID        string `json:"complaint_id"`
	UserName           string `json:"user_name"`
	UserEmail          string `json:"user_email"`
	DepartmentName     string `json:"department_name"`
	DepartmentEmail    string `json:"department_email"`
	Problem            string `json:"problem"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	EnglishApplication string `json:"english_application"`
	HindiApplication   string `json:"hindi_application"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID    string `json:"comment_id"`
	DepartmentID string `json:"department_id"`
	Rating       int    `json:"rating"`
}

// ReplyAddedPayload payload.
type ReplyAddedPayload struct {
	CommentID string `json:"comment_id"`
	ReplyID   string `json:"reply_id"`
}
