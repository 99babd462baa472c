// Package events publishes client-observed happenings (window transitions,
// declared results, placed bets) for external consumers such as a
// notification bot. Emission is best-effort; the client never blocks on it.
package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	TypeWindowTransition = "window_transition"
	TypeResultDeclared   = "result_declared"
	TypeBetPlaced        = "bet_placed"
	TypeError            = "error"
)

type Event struct {
	Type      string `json:"type"`
	Game      string `json:"game"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type Emitter interface {
	EmitWindowTransition(game string, session string, open bool) error
	EmitResultDeclared(game string, session string, result string) error
	EmitBetPlaced(game string, bet any) error
	EmitError(game string, err error) error
	Emit(event Event) error
	Close()
}

type natsEmitter struct {
	conn    *nats.Conn
	subject string
}

// NewNATSEmitter publishes every event as JSON on subject.
func NewNATSEmitter(conn *nats.Conn, subject string) Emitter {
	return &natsEmitter{conn: conn, subject: subject}
}

func (e *natsEmitter) EmitWindowTransition(game string, session string, open bool) error {
	return e.Emit(Event{
		Type:      TypeWindowTransition,
		Game:      game,
		Data:      map[string]any{"session": session, "open": open},
		Timestamp: time.Now().UTC().Unix(),
	})
}

func (e *natsEmitter) EmitResultDeclared(game string, session string, result string) error {
	return e.Emit(Event{
		Type:      TypeResultDeclared,
		Game:      game,
		Data:      map[string]string{"session": session, "result": result},
		Timestamp: time.Now().UTC().Unix(),
	})
}

func (e *natsEmitter) EmitBetPlaced(game string, bet any) error {
	return e.Emit(Event{
		Type:      TypeBetPlaced,
		Game:      game,
		Data:      bet,
		Timestamp: time.Now().UTC().Unix(),
	})
}

func (e *natsEmitter) EmitError(game string, err error) error {
	payload := map[string]string{}
	if err != nil {
		payload["message"] = err.Error()
	}
	return e.Emit(Event{
		Type:      TypeError,
		Game:      game,
		Data:      payload,
		Timestamp: time.Now().UTC().Unix(),
	})
}

func (e *natsEmitter) Emit(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return e.conn.Publish(e.subject, data)
}

func (e *natsEmitter) Close() {
	if e.conn != nil {
		e.conn.Close()
	}
}

// NoopEmitter drops everything; used when no NATS url is configured.
type NoopEmitter struct{}

func (NoopEmitter) EmitWindowTransition(string, string, bool) error { return nil }
func (NoopEmitter) EmitResultDeclared(string, string, string) error { return nil }
func (NoopEmitter) EmitBetPlaced(string, any) error                 { return nil }
func (NoopEmitter) EmitError(string, error) error                   { return nil }
func (NoopEmitter) Emit(Event) error                                { return nil }
func (NoopEmitter) Close()                                          {}
