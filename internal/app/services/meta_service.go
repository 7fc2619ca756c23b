package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/models/dto"
)

const (
	leaderboardSize = 5
	appVersion      = "1.0.0"
)

// LeaderboardStore provides the approved-notes-per-user aggregate
type LeaderboardStore interface {
	GetLeaderboard(ctx context.Context, limit uint64) ([]*models.LeaderboardRow, error)
	CountUsers(ctx context.Context) (int64, error)
}

// entityCounters provides the coarse row counts for the health endpoint
type entityCounters struct {
	universities interface {
		CountUniversities(ctx context.Context) (int64, error)
	}
	notes interface {
		CountApprovedNotes(ctx context.Context) (int64, error)
	}
}

// MetaService serves the leaderboard and the liveness endpoint
type MetaService interface {
	Leaderboard(ctx context.Context) ([]dto.LeaderboardEntry, error)
	Health(ctx context.Context) (dto.HealthResponse, error)
}

// metaServiceImpl implements the MetaService interface
type metaServiceImpl struct {
	userRepo LeaderboardStore
	counters entityCounters
	logger   zerolog.Logger
}

// NewMetaService creates a new meta service instance
func NewMetaService(
	userRepo LeaderboardStore,
	universityCounter interface {
		CountUniversities(ctx context.Context) (int64, error)
	},
	noteCounter interface {
		CountApprovedNotes(ctx context.Context) (int64, error)
	},
	logger zerolog.Logger,
) MetaService {
	return &metaServiceImpl{
		userRepo: userRepo,
		counters: entityCounters{
			universities: universityCounter,
			notes:        noteCounter,
		},
		logger: logger,
	}
}

// Leaderboard returns the top contributors by approved-note count
func (s *metaServiceImpl) Leaderboard(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	rows, err := s.userRepo.GetLeaderboard(ctx, leaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.LeaderboardEntry{
			UserID:    row.UserID,
			Nickname:  row.Nickname,
			NoteCount: row.NoteCount,
		})
	}
	return entries, nil
}

// Health reports liveness plus coarse counts. Count failures degrade the
// status instead of failing the endpoint.
func (s *metaServiceImpl) Health(ctx context.Context) (dto.HealthResponse, error) {
	resp := dto.HealthResponse{Status: "ok", Version: appVersion}

	universities, err := s.counters.universities.CountUniversities(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Health check failed to count universities")
		resp.Status = "degraded"
	}
	notes, err := s.counters.notes.CountApprovedNotes(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Health check failed to count notes")
		resp.Status = "degraded"
	}
	users, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Health check failed to count users")
		resp.Status = "degraded"
	}

	resp.Universities = universities
	resp.Notes = notes
	resp.Users = users
	return resp, nil
}
