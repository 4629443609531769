package amqp

import (
	"encoding/json"
	"time"
)

// QuickActionMessage announces that a user started a quick-action flow.
// Downstream consumers own the actual flow; the dashboard only acknowledges.
type QuickActionMessage struct {
	EventID   string    `json:"event_id"`
	ActionID  string    `json:"action_id"`
	Label     string    `json:"label"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

func NewQuickActionMessage(eventID, actionID, label, user string) *QuickActionMessage {
	return &QuickActionMessage{
		EventID:   eventID,
		ActionID:  actionID,
		Label:     label,
		User:      user,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *QuickActionMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// QuickActionMessageFromJSON creates a message from JSON bytes
func QuickActionMessageFromJSON(data []byte) (*QuickActionMessage, error) {
	var msg QuickActionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
