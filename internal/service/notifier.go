package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sadriving/sadriving-backend/internal/model"
)

// LogNotifier writes notifications to the log. HTTP and WebSocket handlers
// deliver the same notification to the user in their responses.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Notify(_ context.Context, notification model.Notification) {
	event := n.log.Info()
	if notification.Severity == model.SeverityDestructive {
		event = n.log.Warn()
	}
	event.
		Str("title", notification.Title).
		Str("severity", string(notification.Severity)).
		Msg(notification.Description)
}
