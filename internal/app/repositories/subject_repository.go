package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/pkg/apperrors"
	"github.com/colloq/colloq/internal/pkg/dberrors"
	"github.com/colloq/colloq/internal/pkg/logger"
)

var subjectColumns = []string{
	"id", "name", "semester", "field_of_study_id",
	"is_approved", "submitted_by_id", "created_at",
}

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSubject(row pgx.Row) (*models.Subject, error) {
	s := &models.Subject{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Semester, &s.FieldOfStudyID,
		&s.IsApproved, &s.SubmittedByID, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SubjectRepository) scanSubjects(rows pgx.Rows) ([]*models.Subject, error) {
	defer rows.Close()
	subjects := []*models.Subject{}
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subject rows: %w", err)
	}
	return subjects, nil
}

// CreateSubject inserts a new subject and returns its id
func (r *SubjectRepository) CreateSubject(ctx context.Context, s *models.Subject) (int64, error) {
	sql, args, err := r.sb.Insert("subjects").
		Columns("name", "semester", "field_of_study_id", "is_approved", "submitted_by_id").
		Values(s.Name, s.Semester, s.FieldOfStudyID, s.IsApproved, s.SubmittedByID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create subject query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError("A subject with this name already exists in this field of study")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrFieldNotFound
		}
		logger.Error().Err(err).Msg("Error executing create subject query")
		return 0, fmt.Errorf("error creating subject: %w", err)
	}
	return id, nil
}

// GetSubjectByID retrieves a subject by id regardless of approval state
func (r *SubjectRepository) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	sql, args, err := r.sb.Select(subjectColumns...).
		From("subjects").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	s, err := scanSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("subjectID", id).Msg("Error scanning subject row")
		return nil, fmt.Errorf("error getting subject by ID: %w", err)
	}
	return s, nil
}

// ListApprovedByField returns approved subjects of one field of study
func (r *SubjectRepository) ListApprovedByField(ctx context.Context, fieldID int64) ([]*models.Subject, error) {
	sql, args, err := r.sb.Select(subjectColumns...).
		From("subjects").
		Where(squirrel.Eq{"field_of_study_id": fieldID, "is_approved": true}).
		OrderBy("semester ASC NULLS LAST", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list subjects query")
		return nil, fmt.Errorf("error querying subjects: %w", err)
	}
	return r.scanSubjects(rows)
}

// ListPending returns every unapproved subject
func (r *SubjectRepository) ListPending(ctx context.Context) ([]*models.Subject, error) {
	sql, args, err := r.sb.Select(subjectColumns...).
		From("subjects").
		Where(squirrel.Eq{"is_approved": false}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying pending subjects: %w", err)
	}
	return r.scanSubjects(rows)
}

// Approve sets is_approved on a subject
func (r *SubjectRepository) Approve(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("subjects").
		Set("is_approved", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approve subject query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("subjectID", id).Msg("Error approving subject")
		return fmt.Errorf("error approving subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// Delete hard-deletes a subject; its notes cascade
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete subject query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("subjectID", id).Msg("Error deleting subject")
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}
