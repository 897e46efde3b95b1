package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/grievance-service/internal/api/dto"
	"github.com/spec-kit/grievance-service/internal/auth"
	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/service"
	apperrors "github.com/spec-kit/grievance-service/pkg/errorutil"
)

// CommentsHandler manages public feedback endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// AddComment POST /comment/:departmentId.
func (h *CommentsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ComplaintKey == "" {
		return apperrors.NewValidationError("complaint_key required", nil)
	}

	comment, err := h.service.AddComment(c.Context(), principal.User, c.Params("departmentId"), req.ComplaintKey, req.Text, req.Rating)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment, "", nil)})
}

// DeleteComment DELETE /comment/:departmentId/:commentId.
func (h *CommentsHandler) DeleteComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.DeleteComment(c.Context(), principal.User, c.Params("departmentId"), c.Params("commentId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "comment deleted"})
}

// AddReply POST /comment/reply/:commentId.
func (h *CommentsHandler) AddReply(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Department == nil {
		return apperrors.NewUnauthorized("department required")
	}
	var req dto.AddReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	reply, err := h.service.AddReply(c.Context(), principal.Department, c.Params("commentId"), req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": replyResponse(*reply, "")})
}

// DeleteReply DELETE /comment/reply/:commentId/:replyId.
func (h *CommentsHandler) DeleteReply(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Department == nil {
		return apperrors.NewUnauthorized("department required")
	}
	if err := h.service.DeleteReply(c.Context(), principal.Department, c.Params("commentId"), c.Params("replyId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "reply deleted"})
}

// ListDepartmentComments GET /comment/:departmentId. Public read.
func (h *CommentsHandler) ListDepartmentComments(c *fiber.Ctx) error {
	views, err := h.service.ListByDepartment(c.Context(), c.Params("departmentId"))
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(views))
	for _, view := range views {
		resp := commentResponse(&view.Comment, view.CommenterName, nil)
		for _, rv := range view.Replies {
			resp.Replies = append(resp.Replies, replyResponse(rv.Reply, rv.DepartmentName))
		}
		items = append(items, resp)
	}
	return c.JSON(fiber.Map{"data": items})
}

func commentResponse(comment *domain.Comment, commenterName string, replies []dto.ReplyResponse) dto.CommentResponse {
	if replies == nil {
		replies = make([]dto.ReplyResponse, 0, len(comment.Replies))
		for _, reply := range comment.Replies {
			replies = append(replies, replyResponse(reply, ""))
		}
	}
	return dto.CommentResponse{
		ID:            comment.ID,
		ComplaintID:   comment.ComplaintID,
		UserID:        comment.UserID,
		CommenterName: commenterName,
		DepartmentID:  comment.DepartmentID,
		Text:          comment.Text,
		Rating:        comment.Rating,
		Replies:       replies,
		CreatedAt:     comment.CreatedAt,
		UpdatedAt:     comment.UpdatedAt,
	}
}

func replyResponse(reply domain.Reply, departmentName string) dto.ReplyResponse {
	return dto.ReplyResponse{
		ID:             reply.ID,
		DepartmentID:   reply.DepartmentID,
		DepartmentName: departmentName,
		Text:           reply.Text,
		CreatedAt:      reply.CreatedAt,
	}
}
