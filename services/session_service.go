package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "variant-export-service/common/errors"
	"variant-export-service/models"
	"variant-export-service/repository"
)

// ErrSessionMessage is the client-facing text for missing or expired sessions.
const ErrSessionMessage = "session not found or expired"

// SessionService reads stored export sessions.
type SessionService struct {
	sessions repository.SessionRepo
}

func NewSessionService(sessions repository.SessionRepo) *SessionService {
	return &SessionService{sessions: sessions}
}

// Get loads a session, mapping a miss to a 404 application error.
func (s *SessionService) Get(ctx context.Context, id string) (*models.ExportSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, apperrors.NotFound(ErrSessionMessage, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return session, nil
}

// Page returns rows (page-1)*perPage up to perPage rows later. Pages past the
// end come back empty with the real total.
func (s *SessionService) Page(ctx context.Context, id string, page, perPage int) (*PageResult, error) {
	if page < 1 || perPage < 1 {
		return nil, apperrors.BadRequest("page and per_page must be positive", nil)
	}
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	total := len(session.Rows)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	items := make([]models.ExportRow, end-start)
	copy(items, session.Rows[start:end])

	warnings := session.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return &PageResult{
		Items:    items,
		Page:     page,
		PerPage:  perPage,
		Total:    total,
		Warnings: warnings,
	}, nil
}
