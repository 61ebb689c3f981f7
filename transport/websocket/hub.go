package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
)

const sendBufferSize = 16

type client struct {
	gameID string
	send   chan []byte
}

// Hub fans game events out to the clients subscribed to each game.
type Hub struct {
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[string]map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger.With("component", "hub"),
		subscribers: make(map[string]map[*client]struct{}),
	}
}

// Publish delivers the event to every subscriber of the game. Clients whose queue is
// full are dropped.
func (that *Hub) Publish(gameID string, event *usecase.Event) {
	message, err := json.Marshal(event)
	if err != nil {
		that.logger.Error("failed to marshal event", "game_id", gameID, "error", err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	for c := range that.subscribers[gameID] {
		select {
		case c.send <- message:
		default:
			that.logger.Warn("dropping slow client", "game_id", gameID)
			that.removeLocked(c)
		}
	}
}

func (that *Hub) Subscribers(gameID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.subscribers[gameID])
}

func (that *Hub) subscribe(gameID string) *client {
	c := &client{
		gameID: gameID,
		send:   make(chan []byte, sendBufferSize),
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.subscribers[gameID] == nil {
		that.subscribers[gameID] = make(map[*client]struct{})
	}
	that.subscribers[gameID][c] = struct{}{}

	return c
}

func (that *Hub) unsubscribe(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.removeLocked(c)
}

func (that *Hub) removeLocked(c *client) {
	clients, ok := that.subscribers[c.gameID]
	if !ok {
		return
	}

	if _, ok = clients[c]; !ok {
		return
	}

	delete(clients, c)
	close(c.send)

	if len(clients) == 0 {
		delete(that.subscribers, c.gameID)
	}
}
