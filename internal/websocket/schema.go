package websocket

import (
	"github.com/sadriving/sadriving-backend/internal/model"
)

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionUpdateField Action = "update_field"
	ActionSubmit      Action = "submit"
	ActionPing        Action = "ping"
)

// RequestPayload is any message sent by the client. Field and Value are
// only read for update_field.
type RequestPayload struct {
	Action Action          `json:"action"`
	Field  model.FormField `json:"field,omitempty"`
	Value  string          `json:"value,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventState     Event = "state"
	EventSubmitted Event = "submitted"
	EventRejected  Event = "rejected"
	EventError     Event = "error"
	EventPong      Event = "pong"
)

// StateResponse carries the form after a change, with its live price.
type StateResponse struct {
	Event       Event                  `json:"event"`
	Form        model.RegistrationForm `json:"form"`
	TotalPrice  model.Quote            `json:"total_price"`
	SubmitLabel string                 `json:"submit_label"`
}

// SubmitResponse is sent after a submission attempt. Event is "submitted"
// on success and "rejected" when validation or payment failed.
type SubmitResponse struct {
	Event        Event                  `json:"event"`
	Form         model.RegistrationForm `json:"form"`
	TotalPrice   model.Quote            `json:"total_price"`
	Notification model.Notification     `json:"notification"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
