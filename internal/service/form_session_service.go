package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sadriving/sadriving-backend/internal/model"
)

// FormSessionStore persists form sessions. Get returns ErrSessionNotFound for
// unknown or expired sessions.
type FormSessionStore interface {
	Save(ctx context.Context, session *model.FormSession) error
	Get(ctx context.Context, id uuid.UUID) (*model.FormSession, error)
}

// FormSessionService keeps registration forms on the server while the user
// fills them in field by field.
type FormSessionService struct {
	store        FormSessionStore
	registration *RegistrationService
	now          func() time.Time
	log          zerolog.Logger
}

// NewFormSessionService creates a new FormSessionService.
func NewFormSessionService(store FormSessionStore, registration *RegistrationService, log zerolog.Logger) *FormSessionService {
	return &FormSessionService{
		store:        store,
		registration: registration,
		now:          time.Now,
		log:          log.With().Str("component", "form_session_service").Logger(),
	}
}

// Create starts a session with an empty form.
func (s *FormSessionService) Create(ctx context.Context) (*model.FormSession, error) {
	now := s.now().UTC()
	session := &model.FormSession{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save form session: %w", err)
	}
	return session, nil
}

// Get loads a session.
func (s *FormSessionService) Get(ctx context.Context, id uuid.UUID) (*model.FormSession, error) {
	return s.store.Get(ctx, id)
}

// UpdateField sets one field of the session's form.
func (s *FormSessionService) UpdateField(ctx context.Context, id uuid.UUID, field model.FormField, value string) (*model.FormSession, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	form, err := s.registration.UpdateField(session.Form, field, value)
	if err != nil {
		return nil, err
	}

	session.Form = form
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save form session: %w", err)
	}
	return session, nil
}

// Submit submits the session's form. On success the stored form is reset;
// on failure the stored form is left untouched. The outcome is returned in
// both cases when the session exists.
func (s *FormSessionService) Submit(ctx context.Context, id uuid.UUID) (*model.FormSession, *Outcome, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	outcome, submitErr := s.registration.Submit(ctx, session.Form)
	if submitErr != nil {
		return session, outcome, submitErr
	}

	session.Form = outcome.Form
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		// The registration went through; only the reset was lost.
		s.log.Error().Err(err).Str("session_id", id.String()).Msg("Failed to reset form session")
	}
	return session, outcome, nil
}
