package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/events"
	"github.com/spec-kit/grievance-service/internal/repository"
	apperrors "github.com/spec-kit/grievance-service/pkg/errorutil"
)

// CommentService enforces the one-comment-per-(user,complaint) and
// one-reply-per-(department,comment) invariants and owns deletion
// authorization.
type CommentService struct {
	comments    repository.CommentRepository
	complaints  repository.ComplaintRepository
	users       repository.UserRepository
	departments repository.DepartmentRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// CommentDependencies bundles repositories for the comment service.
type CommentDependencies struct {
	CommentRepo    repository.CommentRepository
	ComplaintRepo  repository.ComplaintRepository
	UserRepo       repository.UserRepository
	DepartmentRepo repository.DepartmentRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// CommentView is a comment resolved for public display.
type CommentView struct {
	Comment       domain.Comment
	CommenterName string
	Replies       []ReplyView
}

// ReplyView is a reply with its department name resolved.
type ReplyView struct {
	Reply          domain.Reply
	DepartmentName string
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments:    deps.CommentRepo,
		complaints:  deps.ComplaintRepo,
		users:       deps.UserRepo,
		departments: deps.DepartmentRepo,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
	}
}

// AddComment creates the citizen's single comment on a complaint. The
// department reference is denormalized from the complaint at creation time
// and never reconciled afterwards.
func (s *CommentService) AddComment(ctx context.Context, user *domain.User, departmentID, complaintKey, text string, rating int) (*domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("comment text is required", nil)
	}
	if rating < domain.RatingMin || rating > domain.RatingMax {
		return nil, apperrors.NewValidationError("rating must be an integer between 1 and 5", nil)
	}

	complaint, err := s.complaints.GetByKey(ctx, complaintKey)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("complaint", nil)
		}
		return nil, err
	}
	if complaint.DepartmentID != departmentID {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"department_id": departmentID})
	}
	if complaint.UserID != user.ID {
		return nil, apperrors.NewForbidden("only the complaint owner may comment")
	}

	comment := &domain.Comment{
		ComplaintID:  complaint.ID,
		UserID:       user.ID,
		DepartmentID: complaint.DepartmentID,
		Text:         strings.TrimSpace(text),
		Rating:       rating,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		if repository.IsUniqueViolation(err, repository.CommentUniqueConstraint) {
			return nil, apperrors.NewDuplicateComment()
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventCommentAdded,
		ComplaintKey: complaint.ComplaintKey,
		Actor:        userActor(user.ID),
		Payload: events.CommentAddedPayload{
			CommentID:    comment.ID,
			DepartmentID: comment.DepartmentID,
			Rating:       comment.Rating,
		},
	})
	return comment, nil
}

// DeleteComment removes a comment; only its author may delete it, and only
// within the department context it was filed under.
func (s *CommentService) DeleteComment(ctx context.Context, user *domain.User, departmentID, commentID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("comment", nil)
		}
		return err
	}
	if comment.UserID != user.ID || comment.DepartmentID != departmentID {
		return apperrors.NewForbidden("not authorized to delete this comment")
	}
	return s.comments.Delete(ctx, commentID)
}

// AddReply appends the department's single reply to a comment.
func (s *CommentService) AddReply(ctx context.Context, dept *domain.Department, commentID, text string) (*domain.Reply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("reply text is required", nil)
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("comment", nil)
		}
		return nil, err
	}
	if comment.DepartmentID != dept.ID {
		return nil, apperrors.NewForbidden("not authorized to reply to this comment")
	}

	reply := &domain.Reply{
		CommentID:    comment.ID,
		DepartmentID: dept.ID,
		Text:         strings.TrimSpace(text),
	}
	if err := s.comments.CreateReply(ctx, reply); err != nil {
		if repository.IsUniqueViolation(err, repository.ReplyUniqueConstraint) {
			return nil, apperrors.NewDuplicateReply()
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventReplyAdded,
		Actor: departmentActor(dept.ID),
		Payload: events.ReplyAddedPayload{
			CommentID: comment.ID,
			ReplyID:   reply.ID,
		},
	})
	return reply, nil
}

// DeleteReply removes a reply, addressed by its stable id so a concurrent
// mutation of the reply sequence can never redirect the deletion.
func (s *CommentService) DeleteReply(ctx context.Context, dept *domain.Department, commentID, replyID string) error {
	reply, err := s.comments.GetReplyByID(ctx, replyID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("reply", nil)
		}
		return err
	}
	if reply.CommentID != commentID {
		return apperrors.NewNotFound("reply", map[string]any{"comment_id": commentID})
	}
	if reply.DepartmentID != dept.ID {
		return apperrors.NewForbidden("not authorized to delete this reply")
	}
	return s.comments.DeleteReply(ctx, replyID)
}

// ListByDepartment returns the department's comments with commenter and
// replying-department names resolved for display. Public read, no
// authorization.
func (s *CommentService) ListByDepartment(ctx context.Context, departmentID string) ([]CommentView, error) {
	comments, err := s.comments.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	userNames := map[string]string{}
	deptNames := map[string]string{}

	views := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		view := CommentView{Comment: comment}

		name, ok := userNames[comment.UserID]
		if !ok {
			user, err := s.users.GetByID(ctx, comment.UserID)
			if err != nil {
				if err != pgx.ErrNoRows {
					return nil, err
				}
				name = ""
			} else {
				name = user.Name
			}
			userNames[comment.UserID] = name
		}
		view.CommenterName = name

		for _, reply := range comment.Replies {
			deptName, ok := deptNames[reply.DepartmentID]
			if !ok {
				dept, err := s.departments.GetByID(ctx, reply.DepartmentID)
				if err != nil {
					if err != pgx.ErrNoRows {
						return nil, err
					}
					deptName = ""
				} else {
					deptName = dept.Name
				}
				deptNames[reply.DepartmentID] = deptName
			}
			view.Replies = append(view.Replies, ReplyView{Reply: reply, DepartmentName: deptName})
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *CommentService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
