package relay

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type MessageHandler func(message *Message)

type StateHandler func(state State)

type handlerEntry[T any] struct {
	id int
	fn T
}

// WebSocket receives relay events and reconnects with a growing delay after the
// connection drops.
type WebSocket struct {
	wsURL          string
	maxReconnects  int
	reconnectDelay time.Duration
	logger         *zap.Logger

	connMu   sync.Mutex
	conn     *websocket.Conn
	attempts int

	state   State
	stateMu sync.RWMutex

	handlersMu      sync.RWMutex
	messageHandlers []handlerEntry[MessageHandler]
	stateHandlers   []handlerEntry[StateHandler]
	nextHandlerID   int

	stopCh     chan struct{}
	stopOnce   sync.Once
	listenerWg sync.WaitGroup
}

func NewWebSocket(wsURL string, maxReconnects int, reconnectDelay time.Duration, logger *zap.Logger) *WebSocket {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocket{
		wsURL:          wsURL,
		maxReconnects:  maxReconnects,
		reconnectDelay: reconnectDelay,
		logger:         logger,
		state:          StateDisconnected,
		stopCh:         make(chan struct{}),
		nextHandlerID:  1,
	}
}

// Connect dials the relay and starts the read loop. A failed first dial is returned
// to the caller; later drops are retried in the background.
func (ws *WebSocket) Connect(ctx context.Context) error {
	switch ws.State() {
	case StateConnected, StateConnecting:
		ws.logger.Warn("WebSocket already connected or connecting")
		return nil
	}

	ws.setState(StateConnecting)
	if err := ws.dial(ctx); err != nil {
		ws.setState(StateFailed)
		return err
	}
	return nil
}

func (ws *WebSocket) dial(ctx context.Context) error {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.DialContext(ctx, ws.wsURL, nil)
	if err != nil {
		ws.logger.Error("Failed to connect WebSocket", zap.String("url", ws.wsURL), zap.Error(err))
		return err
	}

	ws.connMu.Lock()
	ws.conn = conn
	ws.attempts = 0
	ws.connMu.Unlock()

	ws.setState(StateConnected)
	ws.logger.Info("WebSocket connected", zap.String("url", ws.wsURL))

	ws.listenerWg.Add(1)
	go ws.listen(ctx, conn)
	return nil
}

func (ws *WebSocket) listen(ctx context.Context, conn *websocket.Conn) {
	defer ws.listenerWg.Done()
	defer ws.logger.Debug("WebSocket listener stopped")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ws.stopped() || ctx.Err() != nil {
				return
			}
			ws.logger.Warn("WebSocket read error", zap.Error(err))
			ws.setState(StateDisconnected)
			go ws.reconnect(ctx)
			return
		}
		ws.dispatch(data)
	}
}

func (ws *WebSocket) dispatch(data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200]
		}
		ws.logger.Warn("Failed to parse relay message",
			zap.Error(err),
			zap.String("data", preview),
		)
		return
	}

	ws.handlersMu.RLock()
	handlers := make([]handlerEntry[MessageHandler], len(ws.messageHandlers))
	copy(handlers, ws.messageHandlers)
	ws.handlersMu.RUnlock()

	for _, entry := range handlers {
		entry.fn(&message)
	}
}

func (ws *WebSocket) reconnect(ctx context.Context) {
	for {
		ws.connMu.Lock()
		ws.attempts++
		attempt := ws.attempts
		ws.connMu.Unlock()

		if attempt > ws.maxReconnects {
			ws.logger.Error("Max reconnect attempts reached", zap.Int("attempts", attempt-1))
			ws.setState(StateFailed)
			return
		}

		delay := ws.reconnectDelay * time.Duration(attempt)
		ws.setState(StateReconnecting)
		ws.logger.Info("Scheduling reconnect",
			zap.Int("attempt", attempt),
			zap.Int("max", ws.maxReconnects),
			zap.Duration("delay", delay),
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		case <-ws.stopCh:
			return
		}

		if err := ws.dial(ctx); err == nil {
			return
		}
	}
}

// OnMessage registers a handler and returns a func that removes it.
func (ws *WebSocket) OnMessage(handler MessageHandler) func() {
	ws.handlersMu.Lock()
	id := ws.nextHandlerID
	ws.nextHandlerID++
	ws.messageHandlers = append(ws.messageHandlers, handlerEntry[MessageHandler]{id: id, fn: handler})
	ws.handlersMu.Unlock()

	return func() {
		ws.handlersMu.Lock()
		defer ws.handlersMu.Unlock()
		ws.messageHandlers = removeHandler(ws.messageHandlers, id)
	}
}

func (ws *WebSocket) OnStateChange(handler StateHandler) func() {
	ws.handlersMu.Lock()
	id := ws.nextHandlerID
	ws.nextHandlerID++
	ws.stateHandlers = append(ws.stateHandlers, handlerEntry[StateHandler]{id: id, fn: handler})
	ws.handlersMu.Unlock()

	return func() {
		ws.handlersMu.Lock()
		defer ws.handlersMu.Unlock()
		ws.stateHandlers = removeHandler(ws.stateHandlers, id)
	}
}

func removeHandler[T any](entries []handlerEntry[T], id int) []handlerEntry[T] {
	for i, entry := range entries {
		if entry.id == id {
			return append(entries[:i], entries[i+1:]...)
		}
	}
	return entries
}

func (ws *WebSocket) setState(next State) {
	ws.stateMu.Lock()
	prev := ws.state
	ws.state = next
	ws.stateMu.Unlock()

	if prev == next {
		return
	}
	ws.logger.Info("WebSocket state changed",
		zap.String("from", prev.String()),
		zap.String("to", next.String()),
	)

	ws.handlersMu.RLock()
	handlers := make([]handlerEntry[StateHandler], len(ws.stateHandlers))
	copy(handlers, ws.stateHandlers)
	ws.handlersMu.RUnlock()

	for _, entry := range handlers {
		entry.fn(next)
	}
}

func (ws *WebSocket) State() State {
	ws.stateMu.RLock()
	defer ws.stateMu.RUnlock()
	return ws.state
}

func (ws *WebSocket) IsConnected() bool {
	return ws.State() == StateConnected
}

func (ws *WebSocket) stopped() bool {
	select {
	case <-ws.stopCh:
		return true
	default:
		return false
	}
}

// Disconnect closes the connection, stops reconnecting and waits briefly for the
// read loop to exit.
func (ws *WebSocket) Disconnect() error {
	ws.stopOnce.Do(func() {
		close(ws.stopCh)
	})

	var closeErr error
	ws.connMu.Lock()
	if ws.conn != nil {
		closeErr = ws.conn.Close()
		ws.conn = nil
	}
	ws.attempts = 0
	ws.connMu.Unlock()

	ws.setState(StateDisconnected)

	done := make(chan struct{})
	go func() {
		ws.listenerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		ws.logger.Warn("Timeout waiting for listener to stop")
	}

	if closeErr != nil && !errors.Is(closeErr, websocket.ErrCloseSent) {
		ws.logger.Error("Failed to close WebSocket", zap.Error(closeErr))
		return closeErr
	}
	return nil
}
