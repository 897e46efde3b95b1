package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/grievance-service/internal/api/dto"
	"github.com/spec-kit/grievance-service/internal/auth"
	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/service"
	apperrors "github.com/spec-kit/grievance-service/pkg/errorutil"
)

// ComplaintsHandler manages the draft-then-submit complaint endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// GenerateApplication POST /complaint/generate-application.
func (h *ComplaintsHandler) GenerateApplication(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.GenerateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	draft, err := h.service.GenerateApplication(c.Context(), principal.User, service.ComplaintInput{
		DepartmentID: req.DepartmentID,
		Problem:      req.Problem,
		Address:      req.Address,
		Phone:        req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.GenerateApplicationResponse{
		EnglishApplication: draft.EnglishApplication,
		HindiApplication:   draft.HindiApplication,
		DraftToken:         draft.DraftToken,
	}})
}

// SendComplaint POST /complaint/send-complaint.
func (h *ComplaintsHandler) SendComplaint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.SendComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.service.SubmitComplaint(c.Context(), principal.User, service.SubmitInput{
		ComplaintInput: service.ComplaintInput{
			DepartmentID: req.DepartmentID,
			Problem:      req.Problem,
			Address:      req.Address,
			Phone:        req.Phone,
		},
		EnglishApplication: req.EnglishApplication,
		HindiApplication:   req.HindiApplication,
		DraftToken:         req.DraftToken,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.SendComplaintResponse{
		Complaint:    complaintResponse(complaint),
		Notification: "queued",
	}})
}

// ListUserComplaints GET /complaint/user.
func (h *ComplaintsHandler) ListUserComplaints(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	limit, offset := parsePagination(c)
	complaints, err := h.service.ListUserComplaints(c.Context(), principal.User.ID, c.Query("search"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponses(complaints)})
}

// ListDepartmentComplaints GET /complaint/department.
func (h *ComplaintsHandler) ListDepartmentComplaints(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Department == nil {
		return apperrors.NewUnauthorized("department required")
	}
	limit, offset := parsePagination(c)
	complaints, err := h.service.ListDepartmentComplaints(c.Context(), principal.Department.ID, c.Query("search"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponses(complaints)})
}

func parsePagination(c *fiber.Ctx) (limit, offset int) {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	return pageSize, (page - 1) * pageSize
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func complaintResponse(complaint *domain.Complaint) dto.ComplaintResponse {
	return dto.ComplaintResponse{
		ID:                 complaint.ID,
		ComplaintKey:       complaint.ComplaintKey,
		DepartmentID:       complaint.DepartmentID,
		Problem:            complaint.Problem,
		Address:            complaint.Address,
		Phone:              complaint.Phone,
		EnglishApplication: complaint.EnglishApplication,
		HindiApplication:   complaint.HindiApplication,
		Status:             complaint.Status,
		CreatedAt:          complaint.CreatedAt,
		UpdatedAt:          complaint.UpdatedAt,
	}
}

func complaintResponses(complaints []domain.Complaint) []dto.ComplaintResponse {
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, complaintResponse(&complaints[i]))
	}
	return items
}
