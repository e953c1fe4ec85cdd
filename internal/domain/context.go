package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommandContext describes where a turn came from and where the reply goes.
type CommandContext struct {
	TurnID    string
	Room      string
	Sender    string
	Message   string
	Timestamp time.Time
}

func NewCommandContext(room, sender, message string) *CommandContext {
	return &CommandContext{
		TurnID:    uuid.NewString(),
		Room:      room,
		Sender:    sender,
		Message:   message,
		Timestamp: time.Now(),
	}
}
