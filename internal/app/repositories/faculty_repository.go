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

var facultyColumns = []string{
	"id", "name", "description", "image_url", "university_id",
	"is_approved", "submitted_by_id", "created_at",
}

// FacultyRepository handles faculty database operations
type FacultyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanFaculty(row pgx.Row) (*models.Faculty, error) {
	f := &models.Faculty{}
	err := row.Scan(
		&f.ID, &f.Name, &f.Description, &f.ImageURL, &f.UniversityID,
		&f.IsApproved, &f.SubmittedByID, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FacultyRepository) scanFaculties(rows pgx.Rows) ([]*models.Faculty, error) {
	defer rows.Close()
	faculties := []*models.Faculty{}
	for rows.Next() {
		f, err := scanFaculty(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculties = append(faculties, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}
	return faculties, nil
}

// CreateFaculty inserts a new faculty and returns its id. The unique index on
// (university_id, lower(name)) rejects duplicate names within one university.
func (r *FacultyRepository) CreateFaculty(ctx context.Context, f *models.Faculty) (int64, error) {
	sql, args, err := r.sb.Insert("faculties").
		Columns("name", "description", "image_url", "university_id",
			"is_approved", "submitted_by_id").
		Values(f.Name, f.Description, f.ImageURL, f.UniversityID,
			f.IsApproved, f.SubmittedByID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create faculty query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError("A faculty with this name already exists at this university")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUniversityNotFound
		}
		logger.Error().Err(err).Msg("Error executing create faculty query")
		return 0, fmt.Errorf("error creating faculty: %w", err)
	}
	return id, nil
}

// GetFacultyByID retrieves a faculty by id regardless of approval state
func (r *FacultyRepository) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculties").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	f, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting faculty by ID: %w", err)
	}
	return f, nil
}

// ListApprovedByUniversity returns approved faculties of one university
func (r *FacultyRepository) ListApprovedByUniversity(ctx context.Context, universityID int64) ([]*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculties").
		Where(squirrel.Eq{"university_id": universityID, "is_approved": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list faculties query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list faculties query")
		return nil, fmt.Errorf("error querying faculties: %w", err)
	}
	return r.scanFaculties(rows)
}

// ListPending returns every unapproved faculty
func (r *FacultyRepository) ListPending(ctx context.Context) ([]*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculties").
		Where(squirrel.Eq{"is_approved": false}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending faculties query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying pending faculties: %w", err)
	}
	return r.scanFaculties(rows)
}

// Approve sets is_approved on a faculty
func (r *FacultyRepository) Approve(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("faculties").
		Set("is_approved", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approve faculty query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error approving faculty")
		return fmt.Errorf("error approving faculty: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}
	return nil
}

// Delete hard-deletes a faculty; fields, subjects and their notes cascade
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("faculties").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete faculty query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error deleting faculty")
		return fmt.Errorf("error deleting faculty: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}
	return nil
}
