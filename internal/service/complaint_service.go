package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/drafts"
	"github.com/spec-kit/grievance-service/internal/events"
	"github.com/spec-kit/grievance-service/internal/generator"
	"github.com/spec-kit/grievance-service/internal/repository"
	apperrors "github.com/spec-kit/grievance-service/pkg/errorutil"
)

// ComplaintService coordinates the draft-then-submit complaint workflow.
type ComplaintService struct {
	complaints  repository.ComplaintRepository
	departments repository.DepartmentRepository
	generator   generator.Generator
	drafts      *drafts.Store
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo  repository.ComplaintRepository
	DepartmentRepo repository.DepartmentRepository
	Generator      generator.Generator
	DraftStore     *drafts.Store
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// ComplaintInput describes the raw fields a citizen supplies.
type ComplaintInput struct {
	DepartmentID string
	Problem      string
	Address      string
	Phone        string
}

// GeneratedDraft is the client-held result of the draft phase. Nothing is
// persisted; the token binds the texts to a later submission.
type GeneratedDraft struct {
	EnglishApplication string
	HindiApplication   string
	DraftToken         string
}

// SubmitInput carries the reviewed texts back for final submission.
type SubmitInput struct {
	ComplaintInput
	EnglishApplication string
	HindiApplication   string
	DraftToken         string
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints:  deps.ComplaintRepo,
		departments: deps.DepartmentRepo,
		generator:   deps.Generator,
		drafts:      deps.DraftStore,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
	}
}

// GenerateApplication drafts the formal application in both languages.
// Repeatable and side-effect free with respect to the complaint store.
func (s *ComplaintService) GenerateApplication(ctx context.Context, user *domain.User, input ComplaintInput) (*GeneratedDraft, error) {
	if err := validateComplaintInput(input); err != nil {
		return nil, err
	}
	dept, err := s.departments.GetByID(ctx, input.DepartmentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("department", nil)
		}
		return nil, err
	}

	fields := generator.RawFields{
		UserName:       user.Name,
		DepartmentName: dept.Name,
		Problem:        strings.TrimSpace(input.Problem),
		Address:        strings.TrimSpace(input.Address),
		Phone:          strings.TrimSpace(input.Phone),
	}

	english, err := s.generator.Draft(ctx, fields, domain.LanguageEnglish)
	if err != nil {
		return nil, err
	}
	hindi, err := s.generator.Draft(ctx, fields, domain.LanguageHindi)
	if err != nil {
		return nil, err
	}

	draft := &GeneratedDraft{
		EnglishApplication: english,
		HindiApplication:   hindi,
	}

	if s.drafts != nil {
		token, err := s.drafts.Issue(ctx, drafts.Draft{
			UserID:             user.ID,
			DepartmentID:       dept.ID,
			EnglishApplication: english,
			HindiApplication:   hindi,
		})
		if err != nil {
			// the draft cache is an optimization; generation still succeeds
			s.logger.Warn("failed to issue draft token", zap.Error(err))
		} else {
			draft.DraftToken = token
		}
	}
	return draft, nil
}

// SubmitComplaint validates the reviewed payload and persists a final record.
// Finalized complaints are immutable; no transition leads back to draft.
func (s *ComplaintService) SubmitComplaint(ctx context.Context, user *domain.User, input SubmitInput) (*domain.Complaint, error) {
	if err := validateComplaintInput(input.ComplaintInput); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.EnglishApplication) == "" || strings.TrimSpace(input.HindiApplication) == "" {
		return nil, apperrors.NewValidationError("both application texts are required for final submission", nil)
	}

	dept, err := s.departments.GetByID(ctx, input.DepartmentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("department", nil)
		}
		return nil, err
	}

	if input.DraftToken != "" && s.drafts != nil {
		if err := s.drafts.Verify(ctx, input.DraftToken, drafts.Draft{
			UserID:             user.ID,
			DepartmentID:       dept.ID,
			EnglishApplication: input.EnglishApplication,
			HindiApplication:   input.HindiApplication,
		}); err != nil {
			return nil, err
		}
	}

	complaint := &domain.Complaint{
		UserID:             user.ID,
		DepartmentID:       dept.ID,
		Problem:            strings.TrimSpace(input.Problem),
		Address:            strings.TrimSpace(input.Address),
		Phone:              strings.TrimSpace(input.Phone),
		EnglishApplication: input.EnglishApplication,
		HindiApplication:   input.HindiApplication,
		Status:             domain.ComplaintStatusFinal,
	}

	// Key generation and insert retried as a unit on the rare collision.
	const keyAttempts = 2
	for attempt := 0; attempt < keyAttempts; attempt++ {
		complaint.ComplaintKey = GenerateComplaintKey()
		err = s.complaints.Create(ctx, complaint)
		if err == nil {
			break
		}
		if !repository.IsUniqueViolation(err, repository.ComplaintKeyConstraint) {
			return nil, err
		}
		s.logger.Warn("complaint key collision, regenerating", zap.String("key", complaint.ComplaintKey))
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if input.DraftToken != "" && s.drafts != nil {
		s.drafts.Invalidate(ctx, input.DraftToken)
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventComplaintSubmitted,
		ComplaintKey: complaint.ComplaintKey,
		Actor:        userActor(user.ID),
		Payload: events.ComplaintSubmittedPayload{
			ComplaintID:        complaint.ID,
			UserName:           user.Name,
			UserEmail:          user.Email,
			DepartmentName:     dept.Name,
			DepartmentEmail:    dept.Email,
			Problem:            complaint.Problem,
			Address:            complaint.Address,
			Phone:              complaint.Phone,
			EnglishApplication: complaint.EnglishApplication,
			HindiApplication:   complaint.HindiApplication,
		},
	})
	return complaint, nil
}

// GetByKey resolves a complaint by its public identifier.
func (s *ComplaintService) GetByKey(ctx context.Context, key string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByKey(ctx, key)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("complaint", nil)
		}
		return nil, err
	}
	return complaint, nil
}

// ListUserComplaints returns the citizen's complaints, optionally filtered by
// a case-insensitive substring over key, problem, and address.
func (s *ComplaintService) ListUserComplaints(ctx context.Context, userID string, search string, limit, offset int) ([]domain.Complaint, error) {
	filter := repository.ComplaintFilter{
		UserID: &userID,
		Limit:  limit,
		Offset: offset,
	}
	if strings.TrimSpace(search) != "" {
		filter.SearchTerm = &search
	}
	return s.complaints.ListWithFilter(ctx, filter)
}

// ListDepartmentComplaints returns complaints addressed to the department.
func (s *ComplaintService) ListDepartmentComplaints(ctx context.Context, departmentID string, search string, limit, offset int) ([]domain.Complaint, error) {
	filter := repository.ComplaintFilter{
		DepartmentID: &departmentID,
		Limit:        limit,
		Offset:       offset,
	}
	if strings.TrimSpace(search) != "" {
		filter.SearchTerm = &search
	}
	return s.complaints.ListWithFilter(ctx, filter)
}

func validateComplaintInput(input ComplaintInput) error {
	missing := map[string]any{}
	if strings.TrimSpace(input.DepartmentID) == "" {
		missing["department_id"] = "required"
	}
	if strings.TrimSpace(input.Problem) == "" {
		missing["problem"] = "required"
	}
	if strings.TrimSpace(input.Address) == "" {
		missing["address"] = "required"
	}
	if strings.TrimSpace(input.Phone) == "" {
		missing["phone"] = "required"
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required complaint fields", missing)
	}
	return nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
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

func userActor(userID string) events.Actor {
	return events.Actor{
		Type:   domain.SubjectTypeUser,
		UserID: &userID,
	}
}

func departmentActor(departmentID string) events.Actor {
	return events.Actor{
		Type:         domain.SubjectTypeDepartment,
		DepartmentID: &departmentID,
	}
}
