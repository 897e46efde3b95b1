package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// ComplaintKeyConstraint names the uniqueness constraint over complaint keys.
const ComplaintKeyConstraint = "complaints_complaint_key_key"

// ComplaintFilter captures listing parameters. SearchTerm matches the
// complaint key, problem, and address case-insensitively.
type ComplaintFilter struct {
	UserID       *string
	DepartmentID *string
	SearchTerm   *string
	Limit        int
	Offset       int
}

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByKey(ctx context.Context, key string) (*domain.Complaint, error)
	ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (complaint_key, user_id, department_id, problem, address, phone,
            english_application, hindi_application, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.ComplaintKey,
		complaint.UserID,
		complaint.DepartmentID,
		complaint.Problem,
		complaint.Address,
		complaint.Phone,
		complaint.EnglishApplication,
		complaint.HindiApplication,
		complaint.Status,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) GetByKey(ctx context.Context, key string) (*domain.Complaint, error) {
	const query = `
        SELECT id, complaint_key, user_id, department_id, problem, address, phone,
               english_application, hindi_application, status, created_at, updated_at
        FROM complaints WHERE complaint_key=$1`
	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, key).Scan(
		&complaint.ID,
		&complaint.ComplaintKey,
		&complaint.UserID,
		&complaint.DepartmentID,
		&complaint.Problem,
		&complaint.Address,
		&complaint.Phone,
		&complaint.EnglishApplication,
		&complaint.HindiApplication,
		&complaint.Status,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	base := `SELECT id, complaint_key, user_id, department_id, problem, address, phone,
                    english_application, hindi_application, status, created_at, updated_at
             FROM complaints`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("department_id=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(complaint_key) LIKE %s OR LOWER(problem) LIKE %s OR LOWER(address) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.ComplaintKey,
			&complaint.UserID,
			&complaint.DepartmentID,
			&complaint.Problem,
			&complaint.Address,
			&complaint.Phone,
			&complaint.EnglishApplication,
			&complaint.HindiApplication,
			&complaint.Status,
			&complaint.CreatedAt,
			&complaint.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
