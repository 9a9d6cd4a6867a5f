package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hero-quest-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams progression events to connected players. It is
// the services.Broadcaster implementation wired into the game service.
type WebSocketHandler struct {
	gameService *services.GameService
	hub         *WebSocketHub
}

type WebSocketHub struct {
	clients    map[string]*websocket.Conn
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
}

type Client struct {
	Address string
	Conn    *websocket.Conn
}

type Message struct {
	Type    string      `json:"type"`
	Address string      `json:"address,omitempty"`
	Data    interface{} `json:"data"`
}

func NewWebSocketHandler(gameService *services.GameService) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[string]*websocket.Conn),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 100),
	}

	go hub.run()

	return &WebSocketHandler{
		gameService: gameService,
		hub:         hub,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	address := c.GetString("address")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	client := &Client{
		Address: address,
		Conn:    conn,
	}

	h.hub.register <- client

	defer func() {
		h.hub.unregister <- client
		conn.Close()
	}()

	h.sendCredits(client)

	for {
		var msg Message
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		h.handleMessage(client, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(client *Client, msg *Message) {
	switch msg.Type {
	case "PING":
		h.sendPong(client)
	}
}

func (h *WebSocketHandler) sendCredits(client *Client) {
	credits, err := h.gameService.GetPlayerCredit(context.Background(), client.Address)
	if err != nil {
		return
	}

	msg := Message{
		Type: "CREDITS_CHANGED",
		Data: gin.H{
			"credits": credits,
		},
	}

	client.Conn.WriteJSON(msg)
}

func (h *WebSocketHandler) sendPong(client *Client) {
	msg := Message{
		Type: "PONG",
		Data: gin.H{
			"timestamp": time.Now().Unix(),
		},
	}

	client.Conn.WriteJSON(msg)
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client.Address] = client.Conn
			log.Printf("Client registered: %s", client.Address)

		case client := <-hub.unregister:
			if _, ok := hub.clients[client.Address]; ok {
				delete(hub.clients, client.Address)
				log.Printf("Client unregistered: %s", client.Address)
			}

		case message := <-hub.broadcast:
			hub.broadcastMessage(message)
		}
	}
}

func (hub *WebSocketHub) broadcastMessage(message *Message) {
	if message.Address != "" {
		if conn, ok := hub.clients[message.Address]; ok {
			conn.WriteJSON(message)
		}
	} else {
		for _, conn := range hub.clients {
			conn.WriteJSON(message)
		}
	}
}

func (h *WebSocketHandler) BroadcastRoundPlayed(address string, round int, creditsLeft int64) {
	h.hub.broadcast <- &Message{
		Type:    "ROUND_PLAYED",
		Address: address,
		Data: gin.H{
			"round":        round,
			"credits_left": creditsLeft,
			"timestamp":    time.Now().Unix(),
		},
	}
}

func (h *WebSocketHandler) BroadcastRoundCertified(address string, round int, points int64, finished bool) {
	h.hub.broadcast <- &Message{
		Type:    "ROUND_CERTIFIED",
		Address: address,
		Data: gin.H{
			"round":         round,
			"points":        points,
			"game_finished": finished,
			"timestamp":     time.Now().Unix(),
		},
	}
}

func (h *WebSocketHandler) BroadcastTreasureOpened(address string, round int, reward int64, gold int64) {
	h.hub.broadcast <- &Message{
		Type:    "TREASURE_OPENED",
		Address: address,
		Data: gin.H{
			"round":     round,
			"reward":    reward,
			"gold":      gold,
			"timestamp": time.Now().Unix(),
		},
	}
}

func (h *WebSocketHandler) BroadcastCreditsChanged(address string, credits int64) {
	h.hub.broadcast <- &Message{
		Type:    "CREDITS_CHANGED",
		Address: address,
		Data: gin.H{
			"credits":   credits,
			"timestamp": time.Now().Unix(),
		},
	}
}
