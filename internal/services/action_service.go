package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/amqp"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/ledger"
)

var ErrUnknownAction = errors.New("unknown quick action")

// EventPublisher publishes quick action events to a broker.
type EventPublisher interface {
	PublishQuickAction(ctx context.Context, msg *amqp.QuickActionMessage) error
}

// Acknowledgement is shown to the user after a quick action is triggered.
type Acknowledgement struct {
	EventID string
	Action  core.QuickAction
	Title   string
	Message string
}

// ActionService acknowledges quick actions. The flows themselves are demo
// placeholders; when a publisher is configured the request is also
// announced on the broker.
type ActionService struct {
	actions   ledger.ActionLister
	publisher EventPublisher
}

// NewActionService creates the service. publisher may be nil.
func NewActionService(al ledger.ActionLister, publisher EventPublisher) *ActionService {
	return &ActionService{actions: al, publisher: publisher}
}

func (s *ActionService) Trigger(ctx context.Context, actionID, user string) (Acknowledgement, error) {
	actions, err := s.actions.ListActions(ctx)
	if err != nil {
		return Acknowledgement{}, fmt.Errorf("list quick actions: %w", err)
	}

	var (
		action core.QuickAction
		found  bool
	)
	for _, a := range actions {
		if a.ID == actionID {
			action, found = a, true
			break
		}
	}
	if !found {
		return Acknowledgement{}, fmt.Errorf("%w: %s", ErrUnknownAction, actionID)
	}

	ack := Acknowledgement{
		EventID: uuid.NewString(),
		Action:  action,
		Title:   "Quick Action",
		Message: action.Label + " flow - demo",
	}

	if s.publisher == nil {
		slog.DebugContext(ctx, "No event publisher configured, skipping quick action event", "action_id", action.ID)
		return ack, nil
	}
	msg := amqp.NewQuickActionMessage(ack.EventID, action.ID, action.Label, user)
	if err := s.publisher.PublishQuickAction(ctx, msg); err != nil {
		// The acknowledgement does not depend on delivery.
		slog.ErrorContext(ctx, "Failed to publish quick action event",
			"action_id", action.ID, "event_id", ack.EventID, "error", err)
	}
	return ack, nil
}
