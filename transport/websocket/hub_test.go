package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tilepairs/tilepairs/game/engine"
)

func testBoard() *engine.BoardView {
	value := 3
	return &engine.BoardView{
		Tiles: []engine.TileView{
			{ID: 0, FaceUp: true, DisplayValue: &value},
			{ID: 1, FaceUp: false},
		},
		GridSize:       4,
		RemainingMoves: 7,
		MoveLimit:      10,
		Phase:          engine.PhaseInProgress,
		Message:        "No match. Remember where they were!",
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}
	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, engine.WebSocketBufferSize),
	}

	hub.registerClient(client)

	if hub.SessionClientCount("test-session") != 1 {
		t.Errorf("Expected 1 client in session, got %d", hub.SessionClientCount("test-session"))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, engine.WebSocketBufferSize),
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}

	// Unregistering twice must not panic or double-close the channel.
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	client1 := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, engine.WebSocketBufferSize),
	}
	client2 := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, engine.WebSocketBufferSize),
	}

	hub.registerClient(client1)
	hub.registerClient(client2)

	if hub.SessionClientCount(sessionID) != 2 {
		t.Errorf("Expected 2 clients in session, got %d", hub.SessionClientCount(sessionID))
	}

	hub.unregisterClient(client1)

	if hub.SessionClientCount(sessionID) != 1 {
		t.Errorf("Expected 1 client remaining in session, got %d", hub.SessionClientCount(sessionID))
	}
	if !hub.sessions[sessionID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub()
	sessionID := "broadcast-test"

	client := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, engine.WebSocketBufferSize),
	}

	hub.registerClient(client)

	hub.BroadcastToSession(sessionID, testBoard())

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.SessionID != sessionID {
			t.Errorf("Expected sessionID %s, got %s", sessionID, message.SessionID)
		}
		if message.Event != "board_update" {
			t.Errorf("Expected event 'board_update', got %s", message.Event)
		}
		if message.Board == nil || message.Board.RemainingMoves != 7 {
			t.Error("Board not correctly transmitted")
		}
		// Face-down tiles never carry a value on the wire.
		if message.Board.Tiles[1].DisplayValue != nil {
			t.Error("Face-down tile leaked its value")
		}

	case <-time.After(100 * time.Millisecond):
		t.Error("No message received within timeout")
	}
}

func TestHubBroadcastDropsSlowClient(t *testing.T) {
	hub := NewHub()
	sessionID := "slow-client"

	// A send buffer of one fills after a single update.
	client := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 1),
	}

	hub.registerClient(client)

	hub.BroadcastToSession(sessionID, testBoard())
	hub.BroadcastToSession(sessionID, testBoard())

	if hub.SessionClientCount(sessionID) != 0 {
		t.Error("Expected slow client to be dropped")
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()
	sessionID := "event-test"

	client := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, engine.WebSocketBufferSize),
	}

	hub.registerClient(client)

	hub.BroadcastEvent(sessionID, "session_deleted", "goodbye")

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.Event != "session_deleted" {
			t.Errorf("Expected event 'session_deleted', got %s", message.Event)
		}
		if message.Data != "goodbye" {
			t.Errorf("Expected data 'goodbye', got %v", message.Data)
		}

	case <-time.After(100 * time.Millisecond):
		t.Error("No message received within timeout")
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			sessionID = "default"
		}
		hub.ServeWS(w, r, sessionID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=ws-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)

	if hub.SessionClientCount("ws-test") != 1 {
		t.Errorf("Expected 1 client in session, got %d", hub.SessionClientCount("ws-test"))
	}

	conn.Close()

	time.Sleep(50 * time.Millisecond)

	if hub.SessionClientCount("ws-test") != 0 {
		t.Error("Session should have been cleaned up after WebSocket close")
	}
}

func TestWebSocketMessageReceive(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			sessionID = "default"
		}
		hub.ServeWS(w, r, sessionID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=msg-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	time.Sleep(10 * time.Millisecond)

	hub.BroadcastToSession("msg-test", testBoard())

	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, messageData, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	var message Message
	if err := json.Unmarshal(messageData, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}

	if message.SessionID != "msg-test" {
		t.Errorf("Expected sessionID 'msg-test', got %s", message.SessionID)
	}
	if message.Board == nil || message.Board.GridSize != 4 {
		t.Error("Board not correctly received")
	}
	if message.Board.Message == "" {
		t.Error("Expected board message to survive the wire")
	}
}
