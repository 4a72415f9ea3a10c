package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sadriving/sadriving-backend/internal/model"
	"github.com/sadriving/sadriving-backend/internal/response"
	"github.com/sadriving/sadriving-backend/internal/service"
	"github.com/sadriving/sadriving-backend/internal/validator"
)

// RegistrationHandler handles course registration, both as a single form
// post and through server-held form sessions.
type RegistrationHandler struct {
	registration *service.RegistrationService
	sessions     *service.FormSessionService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registration *service.RegistrationService, sessions *service.FormSessionService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration, sessions: sessions}
}

// FormView is the form as returned to clients, with its computed price.
type FormView struct {
	SessionID      *uuid.UUID             `json:"session_id,omitempty"`
	Form           model.RegistrationForm `json:"form"`
	TotalPrice     model.Quote            `json:"total_price"`
	SubmitLabel    string                 `json:"submit_label"`
	RegistrationID *uuid.UUID             `json:"registration_id,omitempty"`
}

func (h *RegistrationHandler) view(session *model.FormSession, form model.RegistrationForm) FormView {
	v := FormView{
		Form:        form,
		TotalPrice:  h.registration.ComputeTotalPrice(form),
		SubmitLabel: h.registration.SubmitLabel(form),
	}
	if session != nil {
		id := session.ID
		v.SessionID = &id
	}
	return v
}

// Submit godoc
// POST /api/v1/registrations
// Validates and submits a complete form in one request.
func (h *RegistrationHandler) Submit(c *gin.Context) {
	var form model.RegistrationForm
	if fields := validator.Bind(c, &form); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	outcome, err := h.registration.Submit(c.Request.Context(), form)
	h.respondOutcome(c, nil, outcome, err)
}

// CreateSession godoc
// POST /api/v1/registration-sessions
func (h *RegistrationHandler) CreateSession(c *gin.Context) {
	session, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, h.view(session, session.Form))
}

// GetSession godoc
// GET /api/v1/registration-sessions/:id
func (h *RegistrationHandler) GetSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.view(session, session.Form))
}

// UpdateSessionField godoc
// PATCH /api/v1/registration-sessions/:id/fields
// Sets one form field. Content is not validated until submission.
func (h *RegistrationHandler) UpdateSessionField(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req model.UpdateFieldRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, err := h.sessions.UpdateField(c.Request.Context(), id, req.Field, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.view(session, session.Form))
}

// SubmitSession godoc
// POST /api/v1/registration-sessions/:id/submit
func (h *RegistrationHandler) SubmitSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, outcome, err := h.sessions.Submit(c.Request.Context(), id)
	if outcome == nil {
		respondError(c, err)
		return
	}
	h.respondOutcome(c, session, outcome, err)
}

func (h *RegistrationHandler) respondOutcome(c *gin.Context, session *model.FormSession, outcome *service.Outcome, err error) {
	v := h.view(session, outcome.Form)

	var verr *service.ValidationError
	var serr *service.SubmissionError
	switch {
	case err == nil:
		id := outcome.Registration.ID
		v.RegistrationID = &id
		response.SuccessWithNotification(c, http.StatusOK, v, outcome.Notification)
	case errors.As(err, &verr):
		response.FailWithNotification(c, http.StatusUnprocessableEntity, response.ErrRegistrationInvalid, v, outcome.Notification)
	case errors.As(err, &serr):
		_ = c.Error(err)
		response.FailWithNotification(c, http.StatusBadGateway, response.ErrPaymentFailed, v, outcome.Notification)
	default:
		respondError(c, err)
	}
}

func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors that carry no notification.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, service.ErrUnknownField):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownField)
	case errors.Is(err, service.ErrUnknownCourse):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownCourse)
	case errors.Is(err, service.ErrUnknownPaymentMethod):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownPayment)
	case errors.Is(err, service.ErrFieldTooLong):
		response.Fail(c, http.StatusBadRequest, response.ErrFieldTooLong)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
