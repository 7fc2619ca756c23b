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

var universityColumns = []string{
	"id", "name", "name_pl", "name_en", "city", "region", "type",
	"description", "image_url", "banner_url", "is_approved",
	"submitted_by_id", "created_at",
}

// UniversityRepository handles university database operations
type UniversityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUniversityRepository creates a new UniversityRepository
func NewUniversityRepository(db *pgxpool.Pool) *UniversityRepository {
	return &UniversityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUniversity(row pgx.Row) (*models.University, error) {
	u := &models.University{}
	err := row.Scan(
		&u.ID, &u.Name, &u.NamePL, &u.NameEN, &u.City, &u.Region, &u.Type,
		&u.Description, &u.ImageURL, &u.BannerURL, &u.IsApproved,
		&u.SubmittedByID, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UniversityRepository) scanUniversities(rows pgx.Rows) ([]*models.University, error) {
	defer rows.Close()
	universities := []*models.University{}
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning university row: %w", err)
		}
		universities = append(universities, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating university rows: %w", err)
	}
	return universities, nil
}

// CreateUniversity inserts a new university and returns its id. The unique
// index on lower(name) turns duplicate submissions into a conflict error
// regardless of the existing row's approval state.
func (r *UniversityRepository) CreateUniversity(ctx context.Context, u *models.University) (int64, error) {
	sql, args, err := r.sb.Insert("universities").
		Columns("name", "name_pl", "name_en", "city", "region", "type",
			"description", "image_url", "banner_url", "is_approved", "submitted_by_id").
		Values(u.Name, u.NamePL, u.NameEN, u.City, u.Region, u.Type,
			u.Description, u.ImageURL, u.BannerURL, u.IsApproved, u.SubmittedByID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create university query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError("A university with this name already exists")
		}
		logger.Error().Err(err).Msg("Error executing create university query")
		return 0, fmt.Errorf("error creating university: %w", err)
	}
	return id, nil
}

// GetUniversityByID retrieves a university by id regardless of approval state
func (r *UniversityRepository) GetUniversityByID(ctx context.Context, id int64) (*models.University, error) {
	sql, args, err := r.sb.Select(universityColumns...).
		From("universities").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get university query: %w", err)
	}

	u, err := scanUniversity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUniversityNotFound
		}
		logger.Error().Err(err).Int64("universityID", id).Msg("Error scanning university row")
		return nil, fmt.Errorf("error getting university by ID: %w", err)
	}
	return u, nil
}

// ListApproved returns approved universities, optionally filtered by a
// case-insensitive name/city/region search term.
func (r *UniversityRepository) ListApproved(ctx context.Context, search string) ([]*models.University, error) {
	builder := r.sb.Select(universityColumns...).
		From("universities").
		Where(squirrel.Eq{"is_approved": true}).
		OrderBy("name ASC")

	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"name_pl": pattern},
			squirrel.ILike{"name_en": pattern},
			squirrel.ILike{"city": pattern},
			squirrel.ILike{"region": pattern},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list universities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list universities query")
		return nil, fmt.Errorf("error querying universities: %w", err)
	}
	return r.scanUniversities(rows)
}

// ListPending returns every unapproved university
func (r *UniversityRepository) ListPending(ctx context.Context) ([]*models.University, error) {
	sql, args, err := r.sb.Select(universityColumns...).
		From("universities").
		Where(squirrel.Eq{"is_approved": false}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending universities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying pending universities: %w", err)
	}
	return r.scanUniversities(rows)
}

// Approve sets is_approved. Re-approving is a no-op but a missing id is an error.
func (r *UniversityRepository) Approve(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("universities").
		Set("is_approved", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approve university query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("universityID", id).Msg("Error approving university")
		return fmt.Errorf("error approving university: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUniversityNotFound
	}
	return nil
}

// Delete hard-deletes a university. Faculties, fields, subjects, notes and
// their engagement records go with it through ON DELETE CASCADE.
func (r *UniversityRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("universities").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete university query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("universityID", id).Msg("Error deleting university")
		return fmt.Errorf("error deleting university: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUniversityNotFound
	}
	return nil
}

// CountUniversities returns the total number of approved universities
func (r *UniversityRepository) CountUniversities(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("universities").
		Where(squirrel.Eq{"is_approved": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count universities query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting universities: %w", err)
	}
	return count, nil
}
