package ws

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"reverse-chess/internal/game"
	"reverse-chess/internal/view"
)

const writeWait = 10 * time.Second

type Message struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data,omitempty"`
}

type placeData struct {
	Row *int `mapstructure:"row"`
	Col *int `mapstructure:"col"`
}

// client serialises writes; gorilla connections allow one writer at a time.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*client]struct{}
	roomManager RoomManager
	upgrader    websocket.Upgrader
	log         *zap.Logger
}

// NewHub builds a hub. allowedOrigins is a comma-separated list of hosts
// ("game.example.com") or origins ("https://game.example.com"); empty
// accepts every origin.
func NewHub(roomManager RoomManager, allowedOrigins string, log *zap.Logger) *Hub {
	h := &Hub{
		rooms:       make(map[string]map[*client]struct{}),
		roomManager: roomManager,
		log:         log,
	}
	allowed := splitOrigins(allowedOrigins)
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			return originAllowed(r.Header.Get("Origin"), allowed)
		},
	}
	return h
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, strings.TrimSuffix(o, "/"))
		}
	}
	return out
}

// originAllowed matches the Origin header against allowed exactly, by host
// or by scheme and host.
func originAllowed(origin string, allowed []string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	full := u.Scheme + "://" + u.Host
	for _, a := range allowed {
		if strings.EqualFold(a, u.Host) || strings.EqualFold(a, full) {
			return true
		}
	}
	return false
}

func (h *Hub) HandleWS(c *gin.Context) {
	roomCode := c.Query("room_code")
	if roomCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing room_code"})
		return
	}
	if _, err := h.roomManager.State(roomCode); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{id: uuid.NewString(), conn: conn}
	log := h.log.With(zap.String("room", roomCode), zap.String("client", cl.id))

	// Registration and the initial state happen under the room lock, so no
	// broadcast can slip in between or overtake the initial state.
	var sendErr error
	err = h.roomManager.Attach(roomCode, func(st game.State) {
		h.add(roomCode, cl)
		sendErr = cl.send(Message{Action: "state-updated", Data: view.Build(st)})
	})
	if err != nil {
		log.Debug("room gone before attach", zap.Error(err))
		_ = conn.Close()
		return
	}
	log.Debug("websocket connected")

	defer func() {
		h.remove(roomCode, cl)
		_ = conn.Close()
		log.Debug("websocket closed")
	}()
	if sendErr != nil {
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		if err := h.dispatch(roomCode, msg); err != nil {
			log.Debug("action rejected", zap.String("action", msg.Action), zap.Error(err))
			_ = cl.send(Message{Action: "error", Data: gin.H{"error": err.Error()}})
		}
	}
}

// dispatch applies one inbound action. On success the room manager
// broadcasts the new state to every subscriber.
func (h *Hub) dispatch(roomCode string, msg Message) error {
	var err error
	switch msg.Action {
	case "place":
		var p game.Pos
		if p, err = decodePlace(msg.Data); err != nil {
			return err
		}
		_, err = h.roomManager.Place(roomCode, p)
	case "undo":
		_, err = h.roomManager.Undo(roomCode)
	case "new_game":
		_, err = h.roomManager.NewGame(roomCode)
	case "reset":
		_, err = h.roomManager.ResetSameBlock(roomCode)
	default:
		err = fmt.Errorf("unknown action %q", msg.Action)
	}
	return err
}

func decodePlace(data interface{}) (game.Pos, error) {
	var pd placeData
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &pd,
	})
	if err != nil {
		return game.Pos{}, err
	}
	if err := dec.Decode(data); err != nil {
		return game.Pos{}, fmt.Errorf("invalid place data: %w", err)
	}
	if pd.Row == nil || pd.Col == nil {
		return game.Pos{}, errors.New("invalid place data: row and col required")
	}
	return game.Pos{Row: *pd.Row, Col: *pd.Col}, nil
}

func (h *Hub) add(roomCode string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomCode]; !ok {
		h.rooms[roomCode] = make(map[*client]struct{})
	}
	h.rooms[roomCode][cl] = struct{}{}
}

func (h *Hub) remove(roomCode string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[roomCode], cl)
	if len(h.rooms[roomCode]) == 0 {
		delete(h.rooms, roomCode)
	}
}

// Subscribers reports how many connections watch roomCode.
func (h *Hub) Subscribers(roomCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomCode])
}

func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[roomCode]))
	for cl := range h.rooms[roomCode] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	msg := Message{Action: action, Data: data}
	for _, cl := range clients {
		if err := cl.send(msg); err != nil {
			h.log.Warn("failed to send message",
				zap.String("room", roomCode), zap.String("client", cl.id), zap.Error(err))
			_ = cl.conn.Close()
			h.remove(roomCode, cl)
		}
	}
}
