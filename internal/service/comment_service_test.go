package service_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/repository"
	"github.com/spec-kit/grievance-service/internal/service"
	"github.com/spec-kit/grievance-service/pkg/errorutil"
)

type commentFixture struct {
	comments    *MockCommentRepository
	complaints  *MockComplaintRepository
	users       *MockUserRepository
	departments *MockDepartmentRepository
	svc         *service.CommentService
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		comments:    new(MockCommentRepository),
		complaints:  new(MockComplaintRepository),
		users:       new(MockUserRepository),
		departments: new(MockDepartmentRepository),
	}
	f.svc = service.NewCommentService(service.CommentDependencies{
		CommentRepo:    f.comments,
		ComplaintRepo:  f.complaints,
		UserRepo:       f.users,
		DepartmentRepo: f.departments,
		Logger:         zap.NewNop(),
	})
	return f
}

func resolvedComplaint() *domain.Complaint {
	return &domain.Complaint{
		ID:           "complaint-1",
		ComplaintKey: "GRV-AB12CD34EF",
		UserID:       "user-1",
		DepartmentID: "dept-1",
	}
}

func TestAddCommentRejectsOutOfRangeRating(t *testing.T) {
	f := newCommentFixture()

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := f.svc.AddComment(context.Background(), testUser(), "dept-1", "GRV-AB12CD34EF", "slow resolution", rating)

		domainErr := errorutil.ToDomainError(err)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code, "rating %d", rating)
	}
	f.complaints.AssertNotCalled(t, "GetByKey")
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	f := newCommentFixture()

	_, err := f.svc.AddComment(context.Background(), testUser(), "dept-1", "GRV-AB12CD34EF", "   ", 4)

	domainErr := errorutil.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestAddCommentOnlyOwnerMayComment(t *testing.T) {
	f := newCommentFixture()
	f.complaints.On("GetByKey", mock.Anything, "GRV-AB12CD34EF").Return(resolvedComplaint(), nil)

	stranger := &domain.User{ID: "user-2", Name: "Ravi"}
	_, err := f.svc.AddComment(context.Background(), stranger, "dept-1", "GRV-AB12CD34EF", "good work", 5)

	domainErr := errorutil.ToDomainError(err)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	f.comments.AssertNotCalled(t, "Create")
}

func TestAddCommentDepartmentMismatchReadsAsNotFound(t *testing.T) {
	f := newCommentFixture()
	f.complaints.On("GetByKey", mock.Anything, "GRV-AB12CD34EF").Return(resolvedComplaint(), nil)

	_, err := f.svc.AddComment(context.Background(), testUser(), "dept-other", "GRV-AB12CD34EF", "good work", 5)

	domainErr := errorutil.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestAddCommentDuplicateMapsToConflict(t *testing.T) {
	f := newCommentFixture()
	f.complaints.On("GetByKey", mock.Anything, "GRV-AB12CD34EF").Return(resolvedComplaint(), nil)
	violation := &pgconn.PgError{Code: "23505", ConstraintName: repository.CommentUniqueConstraint}
	f.comments.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(violation)

	_, err := f.svc.AddComment(context.Background(), testUser(), "dept-1", "GRV-AB12CD34EF", "good work", 5)

	domainErr := errorutil.ToDomainError(err)
	assert.Equal(t, "DUPLICATE_COMMENT", domainErr.Code)
	assert.Equal(t, 409, domainErr.HTTPStatus)
}

func TestAddCommentDenormalizesDepartmentFromComplaint(t *testing.T) {
	f := newCommentFixture()
	f.complaints.On("GetByKey", mock.Anything, "GRV-AB12CD34EF").Return(resolvedComplaint(), nil)
	f.comments.On("Create", mock.Anything, mock.MatchedBy(func(comment *domain.Comment) bool {
		return comment.ComplaintID == "complaint-1" &&
			comment.DepartmentID == "dept-1" &&
			comment.UserID == "user-1" &&
			comment.Text == "resolved quickly" &&
			comment.Rating == 5
	})).Return(nil)

	comment, err := f.svc.AddComment(context.Background(), testUser(), "dept-1", "GRV-AB12CD34EF", "  resolved quickly  ", 5)

	assert.NoError(t, err)
	assert.Equal(t, "resolved quickly", comment.Text)
	f.comments.AssertExpectations(t)
}

func TestDeleteCommentOnlyAuthor(t *testing.T) {
	f := newCommentFixture()
	f.comments.On("GetByID", mock.Anything, "comment-1").Return(&domain.Comment{
		ID: "comment-1", UserID: "user-1", DepartmentID: "dept-1",
	}, nil)

	stranger := &domain.User{ID: "user-2"}
	err := f.svc.DeleteComment(context.Background(), stranger, "dept-1", "comment-1")

	domainErr := errorutil.ToDomainError(err)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	f.comments.AssertNotCalled(t, "Delete")
}

func TestDeleteCommentByAuthor(t *testing.T) {
	f := newCommentFixture()
	f.comments.On("GetByID", mock.Anything, "comment-1").Return(&domain.Comment{
		ID: "comment-1", UserID: "user-1", DepartmentID: "dept-1",
	}, nil)
	f.comments.On("Delete", mock.Anything, "comment-1").Return(nil)

	err := f.svc.DeleteComment(context.Background(), testUser(), "dept-1", "comment-1")

	assert.NoError(t, err)
	f.comments.AssertExpectations(t)
}

func TestAddReplyOnlyAddressedDepartment(t *testing.T) {
	f := newCommentFixture()
	f.comments.On("GetByID", mock.Anything, "comment-1").Return(&domain.Comment{
		ID: "comment-1", DepartmentID: "dept-1",
	}, nil)

	other := &domain.Department{ID: "dept-2", Name: "Sanitation"}
	_, err := f.svc.AddReply(context.Background(), other, "comment-1", "we will look into it")

	domainErr := errorutil.ToDomainError(err)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	f.comments.AssertNotCalled(t, "CreateReply")
}

func TestAddReplyDuplicateMapsToConflict(t *testing.T) {
	f := newCommentFixture()
	f.comments.On("GetByID", mock.Anything, "comment-1").Return(&domain.Comment{
		ID: "comment-1", DepartmentID: "dept-1",
	}, nil)
	violation := &pgconn.PgError{Code: "23505", ConstraintName: repository.ReplyUniqueConstraint}
	f.comments.On("CreateReply", mock.Anything, mock.AnythingOfType("*domain.Reply")).Return(violation)

	_, err := f.svc.AddReply(context.Background(), testDepartment(), "comment-1", "we will look into it")

	domainErr := errorutil.ToDomainError(err)
	assert.Equal(t, "DUPLICATE_REPLY", domainErr.Code)
	assert.Equal(t, 409, domainErr.HTTPStatus)
}

func TestDeleteReplyAddressedByStableID(t *testing.T) {
	f := newCommentFixture()
	f.comments.On("GetReplyByID", mock.Anything, "reply-2").Return(&domain.Reply{
		ID: "reply-2", CommentID: "comment-1", DepartmentID: "dept-1",
	}, nil)
	f.comments.On("DeleteReply", mock.Anything, "reply-2").Return(nil)

	err := f.svc.DeleteReply(context.Background(), testDepartment(), "comment-1", "reply-2")

	assert.NoError(t, err)
	f.comments.AssertCalled(t, "DeleteReply", mock.Anything, "reply-2")
}

func TestDeleteReplyCommentMismatch(t *testing.T) {
	f := newCommentFixture()
	f.comments.On("GetReplyByID", mock.Anything, "reply-2").Return(&domain.Reply{
		ID: "reply-2", CommentID: "comment-other", DepartmentID: "dept-1",
	}, nil)

	err := f.svc.DeleteReply(context.Background(), testDepartment(), "comment-1", "reply-2")

	domainErr := errorutil.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	f.comments.AssertNotCalled(t, "DeleteReply")
}

func TestDeleteReplyForeignDepartment(t *testing.T) {
	f := newCommentFixture()
	f.comments.On("GetReplyByID", mock.Anything, "reply-2").Return(&domain.Reply{
		ID: "reply-2", CommentID: "comment-1", DepartmentID: "dept-other",
	}, nil)

	err := f.svc.DeleteReply(context.Background(), testDepartment(), "comment-1", "reply-2")

	domainErr := errorutil.ToDomainError(err)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	f.comments.AssertNotCalled(t, "DeleteReply")
}

func TestListByDepartmentResolvesNames(t *testing.T) {
	f := newCommentFixture()
	f.comments.On("ListByDepartment", mock.Anything, "dept-1").Return([]domain.Comment{
		{
			ID: "comment-1", UserID: "user-1", DepartmentID: "dept-1", Text: "fixed fast", Rating: 5,
			Replies: []domain.Reply{
				{ID: "reply-1", CommentID: "comment-1", DepartmentID: "dept-1", Text: "thank you"},
			},
		},
		{ID: "comment-2", UserID: "user-1", DepartmentID: "dept-1", Text: "still waiting", Rating: 2},
	}, nil)
	f.users.On("GetByID", mock.Anything, "user-1").Return(testUser(), nil).Once()
	f.departments.On("GetByID", mock.Anything, "dept-1").Return(testDepartment(), nil).Once()

	views, err := f.svc.ListByDepartment(context.Background(), "dept-1")

	assert.NoError(t, err)
	if assert.Len(t, views, 2) {
		assert.Equal(t, "Asha Verma", views[0].CommenterName)
		if assert.Len(t, views[0].Replies, 1) {
			assert.Equal(t, "Water Supply", views[0].Replies[0].DepartmentName)
		}
		assert.Equal(t, "Asha Verma", views[1].CommenterName)
	}
	// both comments share a commenter; the lookup must happen once
	f.users.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestListByDepartmentToleratesDeletedCommenter(t *testing.T) {
	f := newCommentFixture()
	f.comments.On("ListByDepartment", mock.Anything, "dept-1").Return([]domain.Comment{
		{ID: "comment-1", UserID: "user-gone", DepartmentID: "dept-1", Text: "ok", Rating: 3},
	}, nil)
	f.users.On("GetByID", mock.Anything, "user-gone").Return(nil, pgx.ErrNoRows)

	views, err := f.svc.ListByDepartment(context.Background(), "dept-1")

	assert.NoError(t, err)
	if assert.Len(t, views, 1) {
		assert.Empty(t, views[0].CommenterName)
	}
}
