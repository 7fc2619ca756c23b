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

var userColumns = []string{
	"id", "email", "password", "nickname", "bio", "avatar_url",
	"is_admin", "is_verified", "is_active", "university_id", "created_at",
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.Nickname, &user.Bio,
		&user.AvatarURL, &user.IsAdmin, &user.IsVerified, &user.IsActive,
		&user.UniversityID, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user and returns its id
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "nickname", "bio", "avatar_url",
			"is_admin", "is_verified", "is_active", "university_id").
		Values(user.Email, user.Password, user.Nickname, user.Bio, user.AvatarURL,
			user.IsAdmin, user.IsVerified, user.IsActive, user.UniversityID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolationOn(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError("Nickname is already taken")
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return id, nil
}

// GetUserByID retrieves a user by id
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}
	return user, nil
}

// UpdateProfile updates the mutable profile fields of a user
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Update("users").
		Set("nickname", user.Nickname).
		Set("bio", user.Bio).
		Set("avatar_url", user.AvatarURL).
		Set("university_id", user.UniversityID).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("Nickname is already taken")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUniversityNotFound
		}
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// MarkVerified flips is_verified to true. The transition is one way, so
// re-marking an already verified user is a no-op.
func (r *UserRepository) MarkVerified(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("is_verified", true).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark verified query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error marking user verified")
		return fmt.Errorf("error marking user verified: %w", err)
	}
	return nil
}

// GetLeaderboard returns the top contributors ranked by approved-note count.
// Ties are broken by user id ascending so repeated calls are stable.
func (r *UserRepository) GetLeaderboard(ctx context.Context, limit uint64) ([]*models.LeaderboardRow, error) {
	sql, args, err := r.sb.Select("u.id", "u.nickname", "COUNT(n.id) AS note_count").
		From("users u").
		Join("notes n ON n.author_id = u.id").
		Where(squirrel.Eq{"n.is_approved": true}).
		GroupBy("u.id", "u.nickname").
		OrderBy("note_count DESC", "u.id ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing leaderboard query")
		return nil, fmt.Errorf("error querying leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []*models.LeaderboardRow{}
	for rows.Next() {
		row := &models.LeaderboardRow{}
		if err := rows.Scan(&row.UserID, &row.Nickname, &row.NoteCount); err != nil {
			return nil, fmt.Errorf("error scanning leaderboard row: %w", err)
		}
		entries = append(entries, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard rows: %w", err)
	}
	return entries, nil
}

// CountUsers returns the total number of user accounts
func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("users").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count users query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}
