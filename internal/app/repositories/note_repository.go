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

var noteColumns = []string{
	"id", "title", "content", "image_url", "video_url", "link_url",
	"score", "is_approved", "author_id", "university_id", "subject_id", "created_at",
}

// NoteFilter narrows down note listings. Zero values mean "no filter";
// Limit zero means no paging.
type NoteFilter struct {
	UniversityID int64
	SubjectID    int64
	Search       string
	ApprovedOnly bool
	Offset       uint64
	Limit        int
}

func (f NoteFilter) apply(builder squirrel.SelectBuilder) squirrel.SelectBuilder {
	if f.ApprovedOnly {
		builder = builder.Where(squirrel.Eq{"is_approved": true})
	}
	if f.UniversityID > 0 {
		builder = builder.Where(squirrel.Eq{"university_id": f.UniversityID})
	}
	if f.SubjectID > 0 {
		builder = builder.Where(squirrel.Eq{"subject_id": f.SubjectID})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"content": pattern},
		})
	}
	return builder
}

// NoteRepository handles note and engagement database operations
type NoteRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanNote(row pgx.Row) (*models.Note, error) {
	n := &models.Note{}
	err := row.Scan(
		&n.ID, &n.Title, &n.Content, &n.ImageURL, &n.VideoURL, &n.LinkURL,
		&n.Score, &n.IsApproved, &n.AuthorID, &n.UniversityID, &n.SubjectID, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NoteRepository) scanNotes(rows pgx.Rows) ([]*models.Note, error) {
	defer rows.Close()
	notes := []*models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning note row: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows: %w", err)
	}
	return notes, nil
}

// CreateNote inserts a new note and returns its id. Notes always start
// unapproved with a zero score; the caller sets those fields.
func (r *NoteRepository) CreateNote(ctx context.Context, n *models.Note) (int64, error) {
	sql, args, err := r.sb.Insert("notes").
		Columns("title", "content", "image_url", "video_url", "link_url",
			"score", "is_approved", "author_id", "university_id", "subject_id").
		Values(n.Title, n.Content, n.ImageURL, n.VideoURL, n.LinkURL,
			n.Score, n.IsApproved, n.AuthorID, n.UniversityID, n.SubjectID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create note query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n.ID, &n.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUniversityNotFound
		}
		logger.Error().Err(err).Msg("Error executing create note query")
		return 0, fmt.Errorf("error creating note: %w", err)
	}
	return n.ID, nil
}

// GetNoteByID retrieves a note by id regardless of approval state
func (r *NoteRepository) GetNoteByID(ctx context.Context, id int64) (*models.Note, error) {
	sql, args, err := r.sb.Select(noteColumns...).
		From("notes").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get note query: %w", err)
	}

	n, err := scanNote(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Int64("noteID", id).Msg("Error scanning note row")
		return nil, fmt.Errorf("error getting note by ID: %w", err)
	}
	return n, nil
}

// ListNotes returns notes matching the filter ordered by score descending,
// ties broken by id descending so newer notes surface first.
func (r *NoteRepository) ListNotes(ctx context.Context, filter NoteFilter) ([]*models.Note, error) {
	builder := filter.apply(r.sb.Select(noteColumns...).From("notes")).
		OrderBy("score DESC", "id DESC")

	if filter.Limit > 0 {
		builder = builder.Offset(filter.Offset).Limit(uint64(filter.Limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list notes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list notes query")
		return nil, fmt.Errorf("error querying notes: %w", err)
	}
	return r.scanNotes(rows)
}

// CountNotes returns the number of notes matching the filter, ignoring paging
func (r *NoteRepository) CountNotes(ctx context.Context, filter NoteFilter) (int64, error) {
	sql, args, err := filter.apply(r.sb.Select("COUNT(*)").From("notes")).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count notes query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting filtered notes: %w", err)
	}
	return count, nil
}

// ListPending returns every unapproved note
func (r *NoteRepository) ListPending(ctx context.Context) ([]*models.Note, error) {
	sql, args, err := r.sb.Select(noteColumns...).
		From("notes").
		Where(squirrel.Eq{"is_approved": false}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending notes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying pending notes: %w", err)
	}
	return r.scanNotes(rows)
}

// Approve sets is_approved on a note
func (r *NoteRepository) Approve(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("notes").
		Set("is_approved", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approve note query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", id).Msg("Error approving note")
		return fmt.Errorf("error approving note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// Delete hard-deletes a note; votes, favorites and comments cascade
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("notes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete note query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", id).Msg("Error deleting note")
		return fmt.Errorf("error deleting note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// ToggleVote flips the (user, note) vote inside one transaction and keeps
// score in sync. Delete-first: a removed row means the user had voted, so
// decrement; otherwise insert with ON CONFLICT DO NOTHING so a concurrent
// duplicate insert cannot double-count, and increment only when the insert
// actually landed. Returns the resulting vote state and score.
func (r *NoteRepository) ToggleVote(ctx context.Context, noteID, userID int64) (bool, int, error) {
	var active bool
	var score int

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM note_votes WHERE note_id = $1 AND user_id = $2`,
			noteID, userID)
		if err != nil {
			return fmt.Errorf("error deleting vote: %w", err)
		}

		if tag.RowsAffected() == 1 {
			active = false
			err = tx.QueryRow(ctx,
				`UPDATE notes SET score = score - 1 WHERE id = $1 RETURNING score`,
				noteID).Scan(&score)
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNoteNotFound
			}
			if err != nil {
				return fmt.Errorf("error decrementing score: %w", err)
			}
			return nil
		}

		tag, err = tx.Exec(ctx,
			`INSERT INTO note_votes (note_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			noteID, userID)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrNoteNotFound
			}
			return fmt.Errorf("error inserting vote: %w", err)
		}

		active = true
		if tag.RowsAffected() == 0 {
			// A concurrent request inserted the vote first; the score is
			// already up to date.
			err = tx.QueryRow(ctx, `SELECT score FROM notes WHERE id = $1`, noteID).Scan(&score)
		} else {
			err = tx.QueryRow(ctx,
				`UPDATE notes SET score = score + 1 WHERE id = $1 RETURNING score`,
				noteID).Scan(&score)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNoteNotFound
		}
		if err != nil {
			return fmt.Errorf("error incrementing score: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return active, score, nil
}

// ToggleFavorite flips the (user, note) favorite. Same delete-first pattern
// as ToggleVote, without touching the score.
func (r *NoteRepository) ToggleFavorite(ctx context.Context, noteID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM note_favorites WHERE note_id = $1 AND user_id = $2`,
		noteID, userID)
	if err != nil {
		return false, fmt.Errorf("error deleting favorite: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return false, nil
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO note_favorites (note_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		noteID, userID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return false, apperrors.ErrNoteNotFound
		}
		return false, fmt.Errorf("error inserting favorite: %w", err)
	}
	return true, nil
}

// ListFavoritesByUser returns the approved notes a user has favorited
func (r *NoteRepository) ListFavoritesByUser(ctx context.Context, userID int64) ([]*models.Note, error) {
	cols := make([]string, len(noteColumns))
	for i, c := range noteColumns {
		cols[i] = "n." + c
	}

	sql, args, err := r.sb.Select(cols...).
		From("notes n").
		Join("note_favorites f ON f.note_id = n.id").
		Where(squirrel.Eq{"f.user_id": userID, "n.is_approved": true}).
		OrderBy("f.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list favorites query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing list favorites query")
		return nil, fmt.Errorf("error querying favorites: %w", err)
	}
	return r.scanNotes(rows)
}

// CreateComment appends a comment and returns it with the author's nickname
func (r *NoteRepository) CreateComment(ctx context.Context, c *models.Comment) error {
	sql, args, err := r.sb.Insert("note_comments").
		Columns("note_id", "user_id", "content").
		Values(c.NoteID, c.UserID, c.Content).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create comment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error executing create comment query")
		return fmt.Errorf("error creating comment: %w", err)
	}
	return nil
}

// ListComments returns a note's comments oldest first, author info attached
func (r *NoteRepository) ListComments(ctx context.Context, noteID int64) ([]*models.Comment, error) {
	sql, args, err := r.sb.Select("c.id", "c.note_id", "c.user_id", "c.content",
		"c.created_at", "u.nickname").
		From("note_comments c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Eq{"c.note_id": noteID}).
		OrderBy("c.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", noteID).Msg("Error executing list comments query")
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		c := &models.Comment{}
		if err := rows.Scan(&c.ID, &c.NoteID, &c.UserID, &c.Content, &c.CreatedAt, &c.AuthorNickname); err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

// GetAuthorNicknames resolves author ids to nicknames for a batch of notes
func (r *NoteRepository) GetAuthorNicknames(ctx context.Context, authorIDs []int64) (map[int64]string, error) {
	if len(authorIDs) == 0 {
		return map[int64]string{}, nil
	}

	sql, args, err := r.sb.Select("id", "nickname").
		From("users").
		Where(squirrel.Eq{"id": authorIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build author nicknames query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying author nicknames: %w", err)
	}
	defer rows.Close()

	nicknames := make(map[int64]string, len(authorIDs))
	for rows.Next() {
		var id int64
		var nickname string
		if err := rows.Scan(&id, &nickname); err != nil {
			return nil, fmt.Errorf("error scanning author nickname row: %w", err)
		}
		nicknames[id] = nickname
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author nickname rows: %w", err)
	}
	return nicknames, nil
}

// CountApprovedNotes returns the total number of approved notes
func (r *NoteRepository) CountApprovedNotes(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("notes").
		Where(squirrel.Eq{"is_approved": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count notes query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting notes: %w", err)
	}
	return count, nil
}
