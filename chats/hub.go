package chats

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"seaops/db"
	"seaops/middleware"
	"seaops/models"
	"seaops/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	Room   string
	UserID string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast pushes a payload to everyone in a room.
func (h *Hub) Broadcast(room string, data []byte) {
	h.broadcast <- broadcastMsg{Room: room, Data: data}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// outboundPayload is what we broadcast to every client.
type outboundPayload struct {
	Action    string `json:"action"` // "chat"
	ID        string `json:"id"`
	Room      string `json:"room,omitempty"`
	SenderID  string `json:"senderId,omitempty"`
	Content   string `json:"content,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type inboundPayload struct {
	Action  string `json:"action"`
	Content string `json:"content,omitempty"`
}

// WebSocketHandler handles GET /ws/chat/:chatid. Tokens arrive as a
// query parameter because browsers cannot set headers on WS upgrades.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		room := ps.ByName("chatid")

		claims, err := middleware.ValidateJWT("Bearer " + r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		userID := claims.UserID

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			Room:   room,
			UserID: userID,
		}

		// send last 30 messages, oldest first
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			opts := options.Find().
				SetSort(bson.D{{Key: "createdAt", Value: -1}}).
				SetLimit(30)

			cur, err := db.MessagesCollection.Find(ctx, bson.M{"chatid": room}, opts)
			if err != nil {
				log.Println("history find:", err)
				return
			}
			defer cur.Close(ctx)

			var history []models.Message
			if err := cur.All(ctx, &history); err != nil {
				log.Println("history decode:", err)
				return
			}
			for i := len(history) - 1; i >= 0; i-- {
				m := history[i]
				out := outboundPayload{
					Action:    "chat",
					ID:        m.MessageID,
					Room:      m.ChatID,
					SenderID:  m.SenderID,
					Content:   m.Text,
					Timestamp: m.CreatedAt,
				}
				if data, err := json.Marshal(out); err == nil {
					client.Send <- data
				}
			}
		}()

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Println("invalid payload:", err)
			continue
		}
		if in.Action != "chat" || in.Content == "" {
			continue
		}

		msg := models.Message{
			MessageID: utils.GenerateRandomDigitString(16),
			ChatID:    c.Room,
			SenderID:  c.UserID,
			Text:      in.Content,
			CreatedAt: time.Now().Unix(),
		}
		bufferMessage(msg)

		out := outboundPayload{
			Action:    "chat",
			ID:        msg.MessageID,
			Room:      msg.ChatID,
			SenderID:  msg.SenderID,
			Content:   msg.Text,
			Timestamp: msg.CreatedAt,
		}
		if data, _ := json.Marshal(out); data != nil {
			hub.broadcast <- broadcastMsg{Room: c.Room, Data: data}
		}
	}
}
