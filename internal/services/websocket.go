package services

import (
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"sync"

	"github.com/btmxh/dersflix/internal/errs"
	"github.com/btmxh/dersflix/internal/html"
	"github.com/dchest/uniuri"
	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

type WebSocketMsgType string
type WebSocketEventType string

const (
	Handshake WebSocketMsgType = "handshake"
	Swap      WebSocketMsgType = "swap"
	Event     WebSocketMsgType = "event"

	VideosChanged WebSocketEventType = "refresh-videos"
	NotesChanged  WebSocketEventType = "refresh-notes"
)

// SocketIdHeader names the originating socket of a request, so that the
// tab that made a change is not told to refresh.
const SocketIdHeader = "X-Socket-Id"

type WebSocketMsg struct {
	Type    WebSocketMsgType `json:"type"`
	Payload interface{}      `json:"payload"`
}

type WebSocketManager struct {
	users   map[string]map[string]*websocket.Conn
	sockets map[string]*websocket.Conn
	mutex   sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		users:   make(map[string]map[string]*websocket.Conn),
		sockets: make(map[string]*websocket.Conn),
	}
}

func send(id string, ws *websocket.Conn, msg WebSocketMsg) {
	err := websocket.JSON.Send(ws, msg)
	if err != nil {
		slog.Warn("Unable to send WebSocket message to client", "sid", id, "msg", msg, "err", err)
	}
}

var manager = NewWebSocketManager()

func (manager *WebSocketManager) Add(conn *websocket.Conn, username string) string {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	id := uniuri.New()
	if _, ok := manager.users[username]; !ok {
		manager.users[username] = make(map[string]*websocket.Conn)
	}

	manager.users[username][id] = conn
	manager.sockets[id] = conn
	send(id, conn, WebSocketMsg{Type: Handshake, Payload: id})
	return id
}

func (manager *WebSocketManager) Remove(username string, id string) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	delete(manager.sockets, id)
	delete(manager.users[username], id)
	if len(manager.users[username]) == 0 {
		delete(manager.users, username)
	}
}

func (manager *WebSocketManager) NumSockets(username string) int {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	return len(manager.users[username])
}

func (manager *WebSocketManager) SendId(id string, msg WebSocketMsg) {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	if socket, ok := manager.sockets[id]; ok {
		send(id, socket, msg)
	}
}

// BroadcastUser sends msg to every socket of username except exceptId.
func (manager *WebSocketManager) BroadcastUser(username string, msg WebSocketMsg, exceptId string) {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	for id, socket := range manager.users[username] {
		if id != exceptId {
			send(id, socket, msg)
		}
	}
}

func GetManager() *WebSocketManager {
	return manager
}

func WebSocketSwap(socketId string, html template.HTML) {
	manager.SendId(socketId, WebSocketMsg{
		Type:    Swap,
		Payload: string(html),
	})
}

func NotesChangedEvent(video uuid.UUID) string {
	return fmt.Sprintf("%s:%s", NotesChanged, video)
}

func WebSocketVideosEvent(username, exceptId string) {
	manager.BroadcastUser(username, WebSocketMsg{Type: Event, Payload: string(VideosChanged)}, exceptId)
}

func WebSocketNotesEvent(username string, video uuid.UUID, exceptId string) {
	manager.BroadcastUser(username, WebSocketMsg{Type: Event, Payload: NotesChangedEvent(video)}, exceptId)
}

func NewWebSocketErrorHandler(title string, wsId string) errs.ErrorHandler {
	return errs.NewLogErrorHandler(title, func(err error) error {
		return WebSocketToast(wsId, html.ToastError, html.StringAsHTML(title), html.StringAsHTML(err.Error()))
	})
}

func WebSocketToast(socketId string, kind html.ToastKind, title template.HTML, description template.HTML) error {
	var str strings.Builder
	if err := html.RenderToast(&str, kind, title, description); err != nil {
		slog.Warn("error rendering toast notification for WebSocket", "err", err)
		return err
	}

	WebSocketSwap(socketId, template.HTML(str.String()))
	return nil
}
