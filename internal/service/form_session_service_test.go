package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sadriving/sadriving-backend/internal/model"
	"github.com/sadriving/sadriving-backend/internal/repository"
	"github.com/stretchr/testify/require"
)

func newSessionFixture() (*FormSessionService, *fixture) {
	f := newFixture(model.DefaultCatalog, nil)
	store := repository.NewMemoryFormSessionRepository(time.Hour)
	return NewFormSessionService(store, f.svc, zerolog.Nop()), f
}

func fillSession(t *testing.T, svc *FormSessionService, id uuid.UUID, form model.RegistrationForm) {
	t.Helper()
	ctx := context.Background()
	fields := map[model.FormField]string{
		model.FieldFirstName:        form.FirstName,
		model.FieldLastName:         form.LastName,
		model.FieldEmail:            form.Email,
		model.FieldStudentPhone:     form.StudentPhone,
		model.FieldAddress:          form.Address,
		model.FieldPermitDateIssued: form.PermitDateIssued,
		model.FieldDateOfBirth:      form.DateOfBirth,
		model.FieldCourse:           form.Course,
		model.FieldPaymentMethod:    string(form.PaymentMethod),
	}
	for field, value := range fields {
		_, err := svc.UpdateField(ctx, id, field, value)
		require.NoError(t, err)
	}
}

func TestFormSessionService_CreateAndUpdate(t *testing.T) {
	svc, _ := newSessionFixture()
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)
	require.True(t, session.Form.IsEmpty())

	updated, err := svc.UpdateField(ctx, session.ID, model.FieldEmail, "jane@example.com")
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", updated.Form.Email)

	loaded, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", loaded.Form.Email)
}

func TestFormSessionService_UnknownSession(t *testing.T) {
	svc, _ := newSessionFixture()

	_, err := svc.UpdateField(context.Background(), uuid.New(), model.FieldEmail, "x")
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, _, err = svc.Submit(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFormSessionService_SubmitResetsStoredForm(t *testing.T) {
	svc, f := newSessionFixture()
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)
	fillSession(t, svc, session.ID, validForm())

	_, outcome, err := svc.Submit(ctx, session.ID)
	require.NoError(t, err)
	require.Contains(t, outcome.Notification.Description, "$105")
	require.Equal(t, 1, f.processor.calls)

	loaded, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	require.True(t, loaded.Form.IsEmpty())
}

func TestFormSessionService_FailedSubmitKeepsStoredForm(t *testing.T) {
	svc, f := newSessionFixture()
	f.processor.err = errors.New("gateway timeout")
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)
	fillSession(t, svc, session.ID, validForm())

	_, outcome, err := svc.Submit(ctx, session.ID)
	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "Payment Failed", outcome.Notification.Title)

	loaded, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, validForm(), loaded.Form)
}
