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

var fieldColumns = []string{
	"id", "name", "degree_level", "faculty_id", "university_id",
	"is_approved", "submitted_by_id", "created_at",
}

// FieldRepository handles field-of-study database operations
type FieldRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFieldRepository creates a new FieldRepository
func NewFieldRepository(db *pgxpool.Pool) *FieldRepository {
	return &FieldRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanField(row pgx.Row) (*models.FieldOfStudy, error) {
	f := &models.FieldOfStudy{}
	err := row.Scan(
		&f.ID, &f.Name, &f.DegreeLevel, &f.FacultyID, &f.UniversityID,
		&f.IsApproved, &f.SubmittedByID, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FieldRepository) scanFields(rows pgx.Rows) ([]*models.FieldOfStudy, error) {
	defer rows.Close()
	fields := []*models.FieldOfStudy{}
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning field row: %w", err)
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating field rows: %w", err)
	}
	return fields, nil
}

// CreateField inserts a new field of study and returns its id
func (r *FieldRepository) CreateField(ctx context.Context, f *models.FieldOfStudy) (int64, error) {
	sql, args, err := r.sb.Insert("fields_of_study").
		Columns("name", "degree_level", "faculty_id", "university_id",
			"is_approved", "submitted_by_id").
		Values(f.Name, f.DegreeLevel, f.FacultyID, f.UniversityID,
			f.IsApproved, f.SubmittedByID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create field query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError("A field of study with this name already exists at this faculty")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Msg("Error executing create field query")
		return 0, fmt.Errorf("error creating field of study: %w", err)
	}
	return id, nil
}

// GetFieldByID retrieves a field of study by id regardless of approval state
func (r *FieldRepository) GetFieldByID(ctx context.Context, id int64) (*models.FieldOfStudy, error) {
	sql, args, err := r.sb.Select(fieldColumns...).
		From("fields_of_study").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get field query: %w", err)
	}

	f, err := scanField(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFieldNotFound
		}
		logger.Error().Err(err).Int64("fieldID", id).Msg("Error scanning field row")
		return nil, fmt.Errorf("error getting field by ID: %w", err)
	}
	return f, nil
}

// ListApprovedByFaculty returns approved fields of one faculty
func (r *FieldRepository) ListApprovedByFaculty(ctx context.Context, facultyID int64) ([]*models.FieldOfStudy, error) {
	sql, args, err := r.sb.Select(fieldColumns...).
		From("fields_of_study").
		Where(squirrel.Eq{"faculty_id": facultyID, "is_approved": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list fields query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list fields query")
		return nil, fmt.Errorf("error querying fields: %w", err)
	}
	return r.scanFields(rows)
}

// ListPending returns every unapproved field of study
func (r *FieldRepository) ListPending(ctx context.Context) ([]*models.FieldOfStudy, error) {
	sql, args, err := r.sb.Select(fieldColumns...).
		From("fields_of_study").
		Where(squirrel.Eq{"is_approved": false}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending fields query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying pending fields: %w", err)
	}
	return r.scanFields(rows)
}

// Approve sets is_approved on a field of study
func (r *FieldRepository) Approve(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("fields_of_study").
		Set("is_approved", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approve field query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("fieldID", id).Msg("Error approving field")
		return fmt.Errorf("error approving field of study: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFieldNotFound
	}
	return nil
}

// Delete hard-deletes a field of study; subjects and their notes cascade
func (r *FieldRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("fields_of_study").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete field query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("fieldID", id).Msg("Error deleting field")
		return fmt.Errorf("error deleting field of study: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFieldNotFound
	}
	return nil
}
