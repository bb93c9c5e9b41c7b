package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"tileclaim/internal/room"
)

// Message is the envelope used in both directions.
type Message struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// client is one websocket connection with its transient identity. The write
// lock keeps broadcasts and direct replies from interleaving on the wire.
type client struct {
	id   string
	conn *websocket.Conn
	wmu  sync.Mutex
}

func (c *client) send(action string, data interface{}) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.conn.WriteJSON(map[string]interface{}{
		"action": action,
		"data":   data,
	})
}

// Hub binds connections to at-most-one room each and fans room snapshots out
// to every member.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
	rm    RoomManager
}

func NewHub(rm RoomManager) *Hub {
	return &Hub{
		rooms: make(map[string]map[*client]struct{}),
		rm:    rm,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // allow all origins
	},
}

// HandleWS upgrades the connection and runs its session loop. Each event is
// processed to completion before the next one is read. On any read error the
// connection leaves its room exactly once via the deferred cleanup.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("upgrade failed: %v", err)
		return
	}

	cl := &client{id: uuid.NewString(), conn: conn}
	roomCode := ""
	log.Printf("client connected: %s", cl.id)

	defer func() {
		if roomCode != "" {
			h.detach(cl, roomCode)
		}
		h.rm.LeaveRoom(cl.id)
		_ = conn.Close()
		log.Printf("client disconnected: %s", cl.id)
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Action {
		case "createRoom":
			roomCode = h.handleCreateRoom(cl, roomCode, msg.Data)
		case "joinRoom":
			roomCode = h.handleJoinRoom(cl, roomCode, msg.Data)
		case "clickTile":
			h.handleClickTile(cl, msg.Data)
		default:
			log.Printf("unknown action from %s: %q", cl.id, msg.Action)
		}
	}
}

func (h *Hub) handleCreateRoom(cl *client, cur string, data json.RawMessage) string {
	var req struct {
		PlayerName string `json:"playerName"`
		MapID      string `json:"mapId"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		log.Printf("invalid createRoom payload: %v", err)
		return cur
	}

	// the manager detaches the old membership; drop the old fan-out group
	// first so its leave broadcast no longer reaches this client
	if cur != "" {
		h.detach(cl, cur)
	}

	code, snap := h.rm.CreateRoom(req.MapID, req.PlayerName, cl.id)
	h.attach(cl, code)

	if err := cl.send("createRoom", gin.H{"roomCode": code, "roomState": snap}); err != nil {
		log.Printf("send createRoom reply: %v", err)
	}
	return code
}

func (h *Hub) handleJoinRoom(cl *client, cur string, data json.RawMessage) string {
	var req struct {
		PlayerName string `json:"playerName"`
		RoomCode   string `json:"roomCode"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		log.Printf("invalid joinRoom payload: %v", err)
		return cur
	}

	code := room.NormalizeCode(req.RoomCode)
	if code == "" {
		cl.send("joinRoom", gin.H{"error": "room code required"})
		return cur
	}

	snap, err := h.rm.JoinRoom(code, req.PlayerName, cl.id)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, room.ErrRoomNotFound) {
			msg = "Room not found"
		}
		cl.send("joinRoom", gin.H{"error": msg})
		return cur
	}

	if cur != "" && cur != code {
		h.detach(cl, cur)
	}
	h.attach(cl, code)

	if err := cl.send("joinRoom", gin.H{"roomCode": code, "roomState": snap}); err != nil {
		log.Printf("send joinRoom reply: %v", err)
	}
	return code
}

func (h *Hub) handleClickTile(cl *client, data json.RawMessage) {
	var req struct {
		RoomCode string `json:"roomCode"`
		TileID   *int   `json:"tileId"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		log.Printf("invalid clickTile payload: %v", err)
		return
	}
	if req.TileID == nil {
		log.Printf("clickTile from %s without tileId", cl.id)
		return
	}
	h.rm.ClickTile(req.RoomCode, cl.id, *req.TileID)
}

func (h *Hub) attach(cl *client, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[code]; !ok {
		h.rooms[code] = make(map[*client]struct{})
	}
	h.rooms[code][cl] = struct{}{}
}

func (h *Hub) detach(cl *client, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.rooms[code]; ok {
		delete(clients, cl)
		if len(clients) == 0 {
			delete(h.rooms, code)
		}
	}
}

// Broadcast delivers an event to every connection currently in the room.
func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for cl := range h.rooms[roomCode] {
		if err := cl.send(action, data); err != nil {
			log.Printf("broadcast to %s failed: %v", cl.id, err)
		}
	}
}
