package dto

import "time"

// AddCommentRequest payload.
type AddCommentRequest struct {
	ComplaintKey string `json:"complaint_key"`
	Text         string `json:"text"`
	Rating       int    `json:"rating"`
}

// AddReplyRequest payload.
type AddReplyRequest struct {
	Text string `json:"text"`
}

// ReplyResponse represents a departmental reply.
type ReplyResponse struct {
	ID             string    `json:"id"`
	DepartmentID   string    `json:"department_id"`
	DepartmentName string    `json:"department_name,omitempty"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

// CommentResponse represents a comment with its reply sequence.
type CommentResponse struct {
	ID            string          `json:"id"`
	ComplaintID   string          `json:"complaint_id"`
	UserID        string          `json:"user_id"`
	CommenterName string          `json:"commenter_name,omitempty"`
	DepartmentID  string          `json:"department_id"`
	Text          string          `json:"text"`
	Rating        int             `json:"rating"`
	Replies       []ReplyResponse `json:"replies"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
