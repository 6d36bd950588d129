package services

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

func newTestHub(t *testing.T, m *WebSocketManager, username string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		id := m.Add(ws, username)
		defer m.Remove(username, id)
		io.Copy(io.Discard, ws)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialTestHub(t *testing.T, srv *httptest.Server) (*websocket.Conn, string) {
	t.Helper()
	ws, err := websocket.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), "", "http://localhost/")
	if err != nil {
		t.Fatalf("Unable to dial WebSocket: %v", err)
	}
	t.Cleanup(func() { ws.Close() })

	var handshake WebSocketMsg
	if err := websocket.JSON.Receive(ws, &handshake); err != nil {
		t.Fatalf("Unable to receive handshake: %v", err)
	}
	if handshake.Type != Handshake {
		t.Fatalf("First message type = %q, want %q", handshake.Type, Handshake)
	}
	id, ok := handshake.Payload.(string)
	if !ok || id == "" {
		t.Fatalf("Invalid handshake payload %v", handshake.Payload)
	}
	return ws, id
}

func TestWebSocketBroadcastUser(t *testing.T) {
	m := NewWebSocketManager()
	srv := newTestHub(t, m, "alice")

	origin, originId := dialTestHub(t, srv)
	other, _ := dialTestHub(t, srv)
	if n := m.NumSockets("alice"); n != 2 {
		t.Fatalf("NumSockets = %d, want 2", n)
	}

	video := uuid.New()
	m.BroadcastUser("alice", WebSocketMsg{Type: Event, Payload: NotesChangedEvent(video)}, originId)

	var msg WebSocketMsg
	other.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := websocket.JSON.Receive(other, &msg); err != nil {
		t.Fatalf("Unable to receive event: %v", err)
	}
	if msg.Type != Event || msg.Payload != "refresh-notes:"+video.String() {
		t.Errorf("Unexpected event %+v", msg)
	}

	// the originating tab is skipped
	origin.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if err := websocket.JSON.Receive(origin, &msg); err == nil {
		t.Errorf("Originating socket received %+v", msg)
	}
}

func TestWebSocketManagerRemove(t *testing.T) {
	m := NewWebSocketManager()
	srv := newTestHub(t, m, "bob")

	ws, id := dialTestHub(t, srv)
	ws.Close()

	deadline := time.Now().Add(5 * time.Second)
	for m.NumSockets("bob") != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("Socket %s was not removed after close", id)
		}
		time.Sleep(10 * time.Millisecond)
	}

	// sending to a removed socket is a no-op
	m.SendId(id, WebSocketMsg{Type: Event, Payload: string(VideosChanged)})
}
