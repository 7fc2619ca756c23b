package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/db"
	"github.com/colloq/colloq/internal/pkg/apperrors"
	"github.com/colloq/colloq/internal/pkg/dberrors"
	"github.com/colloq/colloq/internal/pkg/logger"
)

var imageRequestColumns = []string{
	"id", "university_id", "image_url", "status", "submitted_by_id", "created_at",
}

// ImageRequestRepository handles university image-replacement requests
type ImageRequestRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewImageRequestRepository creates a new ImageRequestRepository
func NewImageRequestRepository(db *pgxpool.Pool) *ImageRequestRepository {
	return &ImageRequestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanImageRequest(row pgx.Row) (*models.UniversityImageRequest, error) {
	req := &models.UniversityImageRequest{}
	err := row.Scan(&req.ID, &req.UniversityID, &req.ImageURL, &req.Status,
		&req.SubmittedByID, &req.CreatedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Create inserts a new pending image request and returns its id
func (r *ImageRequestRepository) Create(ctx context.Context, req *models.UniversityImageRequest) (int64, error) {
	sql, args, err := r.sb.Insert("university_image_requests").
		Columns("university_id", "image_url", "status", "submitted_by_id").
		Values(req.UniversityID, req.ImageURL, req.Status, req.SubmittedByID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create image request query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUniversityNotFound
		}
		logger.Error().Err(err).Msg("Error executing create image request query")
		return 0, fmt.Errorf("error creating image request: %w", err)
	}
	return id, nil
}

// GetByID retrieves an image request by id
func (r *ImageRequestRepository) GetByID(ctx context.Context, id int64) (*models.UniversityImageRequest, error) {
	sql, args, err := r.sb.Select(imageRequestColumns...).
		From("university_image_requests").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get image request query: %w", err)
	}

	req, err := scanImageRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrImageRequestNotFound
		}
		logger.Error().Err(err).Int64("imageRequestID", id).Msg("Error scanning image request row")
		return nil, fmt.Errorf("error getting image request by ID: %w", err)
	}
	return req, nil
}

// ListPending returns every request still awaiting a decision
func (r *ImageRequestRepository) ListPending(ctx context.Context) ([]*models.UniversityImageRequest, error) {
	sql, args, err := r.sb.Select(imageRequestColumns...).
		From("university_image_requests").
		Where(squirrel.Eq{"status": models.ImageRequestPending}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending image requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying pending image requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.UniversityImageRequest{}
	for rows.Next() {
		req, err := scanImageRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning image request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating image request rows: %w", err)
	}
	return requests, nil
}

// Approve copies the proposed image onto the target university and marks the
// request approved, in one transaction. Only pending requests can be settled.
func (r *ImageRequestRepository) Approve(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var universityID int64
		var imageURL string
		err := tx.QueryRow(ctx,
			`UPDATE university_image_requests SET status = $1
			 WHERE id = $2 AND status = $3
			 RETURNING university_id, image_url`,
			models.ImageRequestApproved, id, models.ImageRequestPending,
		).Scan(&universityID, &imageURL)
		if errors.Is(err, pgx.ErrNoRows) {
			return r.classifySettleFailure(ctx, tx, id)
		}
		if err != nil {
			return fmt.Errorf("error approving image request: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE universities SET image_url = $1 WHERE id = $2`,
			imageURL, universityID); err != nil {
			return fmt.Errorf("error applying image to university: %w", err)
		}
		return nil
	})
}

// Reject marks the request rejected without touching the university
func (r *ImageRequestRepository) Reject(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE university_image_requests SET status = $1
		 WHERE id = $2 AND status = $3`,
		models.ImageRequestRejected, id, models.ImageRequestPending)
	if err != nil {
		logger.Error().Err(err).Int64("imageRequestID", id).Msg("Error rejecting image request")
		return fmt.Errorf("error rejecting image request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifySettleFailure(ctx, nil, id)
	}
	return nil
}

// classifySettleFailure distinguishes a missing request from one that was
// already approved or rejected.
func (r *ImageRequestRepository) classifySettleFailure(ctx context.Context, tx pgx.Tx, id int64) error {
	var status models.ImageRequestStatus
	var err error
	query := `SELECT status FROM university_image_requests WHERE id = $1`
	if tx != nil {
		err = tx.QueryRow(ctx, query, id).Scan(&status)
	} else {
		err = r.db.QueryRow(ctx, query, id).Scan(&status)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrImageRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("error checking image request status: %w", err)
	}
	return apperrors.ErrImageRequestSettled
}
