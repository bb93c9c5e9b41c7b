package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tileclaim/internal/config"
	"tileclaim/internal/room"
	"tileclaim/internal/shared"
	"tileclaim/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		DefaultMap:   "small",
		SmallRadius:  1,
		MediumRadius: 2,
		LargeRadius:  3,
	}
	rm := room.NewManager(store.NewMemoryStore(), cfg)
	hub := NewHub(rm)
	rm.SetHub(hub)

	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, data interface{}) {
	t.Helper()
	if err := conn.WriteJSON(map[string]interface{}{"action": action, "data": data}); err != nil {
		t.Fatalf("send %s: %v", action, err)
	}
}

func read(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg.Action, msg.Data
}

type roomReply struct {
	RoomCode  string          `json:"roomCode"`
	RoomState shared.Snapshot `json:"roomState"`
	Error     string          `json:"error"`
}

func readReply(t *testing.T, conn *websocket.Conn, wantAction string) roomReply {
	t.Helper()
	action, data := read(t, conn)
	if action != wantAction {
		t.Fatalf("got action %q, want %q", action, wantAction)
	}
	var reply roomReply
	if err := json.Unmarshal(data, &reply); err != nil {
		t.Fatalf("decode %s reply: %v", wantAction, err)
	}
	return reply
}

func readUpdate(t *testing.T, conn *websocket.Conn) shared.Snapshot {
	t.Helper()
	action, data := read(t, conn)
	if action != "roomUpdate" {
		t.Fatalf("got action %q, want roomUpdate", action)
	}
	var snap shared.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return snap
}

func TestRoomLifecycleOverWebsocket(t *testing.T) {
	srv := newTestServer(t)

	c1 := dial(t, srv)
	send(t, c1, "createRoom", gin.H{"playerName": "Ana", "mapId": "small"})
	created := readReply(t, c1, "createRoom")
	if len(created.RoomCode) != 4 {
		t.Fatalf("room code %q", created.RoomCode)
	}
	if len(created.RoomState.Players) != 1 || created.RoomState.Players[0].Name != "Ana" {
		t.Fatalf("creator missing from state: %+v", created.RoomState.Players)
	}
	if len(created.RoomState.Board) != 9 { // radius 1 fills the [-1,1] square
		t.Fatalf("got %d tiles, want 9", len(created.RoomState.Board))
	}

	// claim a tile and observe the pushed snapshot
	send(t, c1, "clickTile", gin.H{"roomCode": created.RoomCode, "tileId": 0})
	snap := readUpdate(t, c1)
	if snap.Players[0].Score != 1 || snap.Board[0].OwnerID == "" {
		t.Fatalf("claim not reflected: score %d, owner %q", snap.Players[0].Score, snap.Board[0].OwnerID)
	}

	// a second client: bad code first, then the real one in lower case
	c2 := dial(t, srv)
	send(t, c2, "joinRoom", gin.H{"playerName": "Ben", "roomCode": "0000"})
	if reply := readReply(t, c2, "joinRoom"); reply.Error != "Room not found" {
		t.Fatalf("got error %q, want %q", reply.Error, "Room not found")
	}

	send(t, c2, "joinRoom", gin.H{"playerName": "Ben", "roomCode": strings.ToLower(created.RoomCode)})
	joined := readReply(t, c2, "joinRoom")
	if joined.RoomCode != created.RoomCode {
		t.Fatalf("joined code %q, want %q", joined.RoomCode, created.RoomCode)
	}
	if len(joined.RoomState.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(joined.RoomState.Players))
	}
	if joined.RoomState.Board[0].OwnerID == "" {
		t.Fatal("existing claim lost on join")
	}

	// the first client sees the join
	if snap := readUpdate(t, c1); len(snap.Players) != 2 {
		t.Fatalf("c1 update has %d players, want 2", len(snap.Players))
	}

	// disconnect of the second client reaches the first
	c2.Close()
	snap = readUpdate(t, c1)
	if len(snap.Players) != 1 || snap.Players[0].Name != "Ana" {
		t.Fatalf("c1 update after leave: %+v", snap.Players)
	}
	if snap.Board[0].OwnerID == "" {
		t.Fatal("board reset on member leave")
	}
}

func TestClickWithoutTileIDIsIgnored(t *testing.T) {
	srv := newTestServer(t)

	c1 := dial(t, srv)
	send(t, c1, "createRoom", gin.H{"playerName": "Ana", "mapId": "small"})
	created := readReply(t, c1, "createRoom")

	// no tileId: must be dropped before the store, so the next update comes
	// from the valid click on tile 1 only
	send(t, c1, "clickTile", gin.H{"roomCode": created.RoomCode})
	send(t, c1, "clickTile", gin.H{"roomCode": created.RoomCode, "tileId": 1})

	snap := readUpdate(t, c1)
	if snap.Players[0].Score != 1 {
		t.Fatalf("score %d, want 1", snap.Players[0].Score)
	}
	if snap.Board[0].OwnerID != "" {
		t.Fatal("tileId-less click claimed tile 0")
	}
	if snap.Board[1].OwnerID == "" {
		t.Fatal("valid click did not claim tile 1")
	}
}

func TestEmptyRoomCodeRejectedOnJoin(t *testing.T) {
	srv := newTestServer(t)

	c1 := dial(t, srv)
	send(t, c1, "joinRoom", gin.H{"playerName": "Ana", "roomCode": "   "})
	if reply := readReply(t, c1, "joinRoom"); reply.Error == "" {
		t.Fatal("blank room code accepted")
	}
}
