package vr

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one frame mirrored to a VR world server.
type Event struct {
	Type    string `json:"type"`
	Payload string `json:"payload"`
}

// RemoteEnvironment decorates a LocalEnvironment with a websocket
// mirror: display messages and portal creations are sent to a VR world
// server as JSON event frames while the local world stays the source
// of truth for lookups.
type RemoteEnvironment struct {
	*LocalEnvironment

	connMu   sync.Mutex
	conn     *websocket.Conn
	writeErr error
}

// Dial connects to a VR world server and wraps inner. A nil inner
// gets a fresh local environment writing to stdout.
func Dial(url string, inner *LocalEnvironment) (*RemoteEnvironment, error) {
	if inner == nil {
		inner = NewLocalEnvironment(nil)
	}
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial vr world %s: %w", url, err)
	}
	return &RemoteEnvironment{LocalEnvironment: inner, conn: conn}, nil
}

// DisplayMessage implements Environment, mirroring the message.
func (env *RemoteEnvironment) DisplayMessage(msg string) {
	env.LocalEnvironment.DisplayMessage(msg)
	env.send(Event{Type: "display", Payload: msg})
}

// CreatePortal implements Environment, mirroring the portal event.
func (env *RemoteEnvironment) CreatePortal(from, to *Terminal) (*Portal, error) {
	portal, err := env.LocalEnvironment.CreatePortal(from, to)
	if err != nil {
		return nil, err
	}
	env.send(Event{Type: "portal", Payload: fmt.Sprintf("%s -> %s", from.Location, to.Location)})
	return portal, nil
}

// send mirrors one event. The first write failure sticks and later
// events are dropped; Close reports it.
func (env *RemoteEnvironment) send(ev Event) {
	env.connMu.Lock()
	defer env.connMu.Unlock()
	if env.writeErr != nil {
		return
	}
	if err := env.conn.WriteJSON(ev); err != nil {
		env.writeErr = err
	}
}

// Close performs the websocket close handshake and returns the first
// mirror write failure, if any.
func (env *RemoteEnvironment) Close() error {
	env.connMu.Lock()
	defer env.connMu.Unlock()
	deadline := time.Now().Add(time.Second)
	env.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	err := env.conn.Close()
	if env.writeErr != nil {
		return env.writeErr
	}
	return err
}
