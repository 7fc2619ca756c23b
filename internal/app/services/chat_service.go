package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/pkg/aichat"
)

// NoteLookup resolves a note id to its record
type NoteLookup interface {
	GetNoteByID(ctx context.Context, id int64) (*models.Note, error)
}

// ChatService answers study questions through the AI collaborator, optionally
// grounding the answer on one of the user's notes.
type ChatService interface {
	Chat(ctx context.Context, req dto.ChatRequest) (dto.ChatResponse, error)
}

// chatServiceImpl implements the ChatService interface
type chatServiceImpl struct {
	completer aichat.Completer
	noteRepo  NoteLookup
	logger    zerolog.Logger
}

// NewChatService creates a new chat service instance
func NewChatService(completer aichat.Completer, noteRepo NoteLookup, logger zerolog.Logger) ChatService {
	return &chatServiceImpl{
		completer: completer,
		noteRepo:  noteRepo,
		logger:    logger,
	}
}

// Chat relays the message to the AI collaborator. When a note id is given its
// title and content are passed along as grounding context.
func (s *chatServiceImpl) Chat(ctx context.Context, req dto.ChatRequest) (dto.ChatResponse, error) {
	var noteContext string
	if req.NoteID != nil {
		note, err := s.noteRepo.GetNoteByID(ctx, *req.NoteID)
		if err != nil {
			return dto.ChatResponse{}, err
		}

		var parts []string
		if note.Title != nil && *note.Title != "" {
			parts = append(parts, *note.Title)
		}
		if note.Content != nil && *note.Content != "" {
			parts = append(parts, *note.Content)
		}
		noteContext = strings.Join(parts, "\n\n")
	}

	reply, err := s.completer.Complete(ctx, req.Message, noteContext)
	if err != nil {
		s.logger.Error().Err(err).Msg("AI completion failed")
		return dto.ChatResponse{}, err
	}
	return dto.ChatResponse{Reply: reply}, nil
}
