package relay

// Message is an inbound chat event pushed by the relay.
type Message struct {
	Msg    string  `json:"msg"`
	Room   string  `json:"room"`
	Sender *string `json:"sender,omitempty"`
}

// SenderName returns the sender or an empty string when the relay omitted it.
func (m *Message) SenderName() string {
	if m == nil || m.Sender == nil {
		return ""
	}
	return *m.Sender
}

// ReplyRequest is the body posted to the relay's reply endpoint.
type ReplyRequest struct {
	Type string `json:"type"`
	Room string `json:"room"`
	Data string `json:"data"`
}

type State string

const (
	StateConnecting   State = "CONNECTING"
	StateConnected    State = "CONNECTED"
	StateDisconnected State = "DISCONNECTED"
	StateReconnecting State = "RECONNECTING"
	StateFailed       State = "FAILED"
)

func (s State) String() string {
	return string(s)
}
