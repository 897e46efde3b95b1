package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// Constraint names backing the comment and reply uniqueness invariants.
const (
	CommentUniqueConstraint = "comments_one_per_user_complaint"
	ReplyUniqueConstraint   = "replies_one_per_department_comment"
)

// CommentRepository manages comments and their reply sequences.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	ListByDepartment(ctx context.Context, departmentID string) ([]domain.Comment, error)
	CreateReply(ctx context.Context, reply *domain.Reply) error
	GetReplyByID(ctx context.Context, id string) (*domain.Reply, error)
	DeleteReply(ctx context.Context, id string) error
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository builds repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (complaint_id, user_id, department_id, body, rating)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		comment.ComplaintID,
		comment.UserID,
		comment.DepartmentID,
		comment.Text,
		comment.Rating,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	const query = `
        SELECT id, complaint_id, user_id, department_id, body, rating, created_at, updated_at
        FROM comments WHERE id=$1`
	var comment domain.Comment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.ComplaintID,
		&comment.UserID,
		&comment.DepartmentID,
		&comment.Text,
		&comment.Rating,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	replies, err := r.listReplies(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	comment.Replies = replies
	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepository) ListByDepartment(ctx context.Context, departmentID string) ([]domain.Comment, error) {
	const query = `
        SELECT id, complaint_id, user_id, department_id, body, rating, created_at, updated_at
        FROM comments WHERE department_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.ComplaintID,
			&comment.UserID,
			&comment.DepartmentID,
			&comment.Text,
			&comment.Rating,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		replies, err := r.listReplies(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Replies = replies
	}
	return result, nil
}

func (r *commentRepository) CreateReply(ctx context.Context, reply *domain.Reply) error {
	const query = `
        INSERT INTO replies (comment_id, department_id, body)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		reply.CommentID,
		reply.DepartmentID,
		reply.Text,
	).Scan(&reply.ID, &reply.CreatedAt)
}

func (r *commentRepository) GetReplyByID(ctx context.Context, id string) (*domain.Reply, error) {
	const query = `
        SELECT id, comment_id, department_id, body, created_at
        FROM replies WHERE id=$1`
	var reply domain.Reply
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&reply.ID,
		&reply.CommentID,
		&reply.DepartmentID,
		&reply.Text,
		&reply.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *commentRepository) DeleteReply(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM replies WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepository) listReplies(ctx context.Context, commentID string) ([]domain.Reply, error) {
	const query = `
        SELECT id, comment_id, department_id, body, created_at
        FROM replies WHERE comment_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, commentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Reply
	for rows.Next() {
		var reply domain.Reply
		if err := rows.Scan(
			&reply.ID,
			&reply.CommentID,
			&reply.DepartmentID,
			&reply.Text,
			&reply.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reply)
	}
	return result, rows.Err()
}
