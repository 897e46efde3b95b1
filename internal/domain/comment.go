package domain

import "time"

// Rating bounds for comments.
const (
	RatingMin = 1
	RatingMax = 5
)

// Comment is a single rating+text review a citizen leaves on a complaint.
// The department reference is denormalized from the complaint at creation
// time and never reconciled afterwards.
type Comment struct {
	ID           string
	ComplaintID  string
	UserID       string
	DepartmentID string
	Text         string
	Rating       int
	Replies      []Reply
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Reply is a departmental response to a comment. Each reply carries a stable
// id so deletion and authorization never depend on its position in the
// sequence.
type Reply struct {
	ID           string
	CommentID    string
	DepartmentID string
	Text         string
	CreatedAt    time.Time
}
