package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/pkg/apperrors"
	"github.com/colloq/colloq/internal/pkg/dberrors"
	"github.com/colloq/colloq/internal/pkg/logger"
)

// ReviewRepository handles university review database operations
type ReviewRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateReview appends a review and fills in its id and timestamp
func (r *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	sql, args, err := r.sb.Insert("university_reviews").
		Columns("university_id", "user_id", "rating", "content").
		Values(review.UniversityID, review.UserID, review.Rating, review.Content).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create review query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&review.ID, &review.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUniversityNotFound
		}
		logger.Error().Err(err).Msg("Error executing create review query")
		return fmt.Errorf("error creating review: %w", err)
	}
	return nil
}

// ListByUniversity returns a university's reviews newest first, author info attached
func (r *ReviewRepository) ListByUniversity(ctx context.Context, universityID int64) ([]*models.Review, error) {
	sql, args, err := r.sb.Select("r.id", "r.university_id", "r.user_id", "r.rating",
		"r.content", "r.created_at", "u.nickname").
		From("university_reviews r").
		Join("users u ON u.id = r.user_id").
		Where(squirrel.Eq{"r.university_id": universityID}).
		OrderBy("r.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list reviews query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("universityID", universityID).Msg("Error executing list reviews query")
		return nil, fmt.Errorf("error querying reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		review := &models.Review{}
		if err := rows.Scan(&review.ID, &review.UniversityID, &review.UserID,
			&review.Rating, &review.Content, &review.CreatedAt, &review.AuthorNickname); err != nil {
			return nil, fmt.Errorf("error scanning review row: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}
	return reviews, nil
}
