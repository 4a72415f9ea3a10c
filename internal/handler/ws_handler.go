package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/sadriving/sadriving-backend/internal/middleware"
	"github.com/sadriving/sadriving-backend/internal/model"
	"github.com/sadriving/sadriving-backend/internal/response"
	"github.com/sadriving/sadriving-backend/internal/service"
	ws "github.com/sadriving/sadriving-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams a registration form session: every field update is
// answered with the new form state and price.
type WSHandler struct {
	registration *service.RegistrationService
	sessions     *service.FormSessionService
	submitLimit  *middleware.RateLimiter
	log          zerolog.Logger
	upgrader     websocket.Upgrader
}

// NewWSHandler creates a new WSHandler. submitLimit is shared with the HTTP
// submit endpoints; nil disables limiting.
func NewWSHandler(
	registration *service.RegistrationService,
	sessions *service.FormSessionService,
	submitLimit *middleware.RateLimiter,
	log zerolog.Logger,
	allowedOrigins []string,
) *WSHandler {
	return &WSHandler{
		registration: registration,
		sessions:     sessions,
		submitLimit:  submitLimit,
		log:          log.With().Str("component", "ws_handler").Logger(),
		upgrader:     buildUpgrader(allowedOrigins),
	}
}

// FormSessionStream godoc
// WS /ws/v1/registration-sessions/:id/stream
func (h *WSHandler) FormSessionStream(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	ctx := c.Request.Context()
	session, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(ws.MaxMessageSize)

	clientIP := c.ClientIP()
	wsLog := h.log.With().Str("session_id", sessionID.String()).Logger()
	wsLog.Debug().Msg("Form stream connected")

	if err := h.writeState(conn, session.Form); err != nil {
		return
	}

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionUpdateField:
			h.handleUpdateField(ctx, conn, sessionID, &msg)
		case ws.ActionSubmit:
			if h.submitLimit != nil && !h.submitLimit.Allow(clientIP) {
				_ = ws.WriteError(conn, response.GetMessage(response.ErrRateLimitExceeded))
				continue
			}
			h.handleSubmit(ctx, conn, sessionID)
		case ws.ActionPing:
			_ = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			_ = ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

func (h *WSHandler) handleUpdateField(ctx context.Context, conn *websocket.Conn, sessionID uuid.UUID, msg *ws.RequestPayload) {
	if msg.Field == "" {
		_ = ws.WriteError(conn, "field is required")
		return
	}

	session, err := h.sessions.UpdateField(ctx, sessionID, msg.Field, msg.Value)
	if err != nil {
		_ = ws.WriteError(conn, streamErrorMessage(err))
		return
	}
	_ = h.writeState(conn, session.Form)
}

func (h *WSHandler) handleSubmit(ctx context.Context, conn *websocket.Conn, sessionID uuid.UUID) {
	_, outcome, err := h.sessions.Submit(ctx, sessionID)
	if outcome == nil {
		_ = ws.WriteError(conn, streamErrorMessage(err))
		return
	}

	event := ws.EventSubmitted
	if err != nil {
		event = ws.EventRejected
	}
	_ = ws.WriteTyped(conn, ws.SubmitResponse{
		Event:        event,
		Form:         outcome.Form,
		TotalPrice:   outcome.Quote,
		Notification: outcome.Notification,
	})
}

func (h *WSHandler) writeState(conn *websocket.Conn, form model.RegistrationForm) error {
	return ws.WriteTyped(conn, ws.StateResponse{
		Event:       ws.EventState,
		Form:        form,
		TotalPrice:  h.registration.ComputeTotalPrice(form),
		SubmitLabel: h.registration.SubmitLabel(form),
	})
}

func streamErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return response.GetMessage(response.ErrSessionNotFound)
	case errors.Is(err, service.ErrUnknownField):
		return response.GetMessage(response.ErrUnknownField)
	case errors.Is(err, service.ErrUnknownCourse):
		return response.GetMessage(response.ErrUnknownCourse)
	case errors.Is(err, service.ErrUnknownPaymentMethod):
		return response.GetMessage(response.ErrUnknownPayment)
	case errors.Is(err, service.ErrFieldTooLong):
		return response.GetMessage(response.ErrFieldTooLong)
	default:
		return response.GetMessage(response.ErrInternal)
	}
}
