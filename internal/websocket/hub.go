package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-homematch-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RoundUpdate is the wire shape pushed to rating clients watching a project.
type RoundUpdate struct {
	Type       string    `json:"type"`
	ProjectId  uuid.UUID `json:"project_id"`
	Round      int       `json:"round"`
	HouseCount int       `json:"house_count,omitempty"`
	Completed  bool      `json:"completed"`
}

type Hub struct {
	// Registered clients map: ProjectID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ProjectID] = append(h.clients[client.ProjectID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"project_id": client.ProjectID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.ProjectID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.ProjectID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.ProjectID]) == 0 {
					delete(h.clients, client.ProjectID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"project_id": client.ProjectID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers a round update to every client watching the project, on this
// instance and (via Redis) on every other instance.
func (h *Hub) Send(projectID uuid.UUID, update RoundUpdate) {
	data, _ := json.Marshal(update)

	h.mu.RLock()
	clients, localFound := h.clients[projectID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				// Slow reader: hand the client to the unregister branch,
				// which owns the single close of Send.
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"project_id": projectID})
				h.unregister <- client
			}
		}
	}

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_project_id": projectID.String(),
			"message":           data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

// subscribeToRedis relays cross-instance updates. Every instance subscribes
// to "cluster_events" and forwards messages for projects it serves locally.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetProjectID string          `json:"target_project_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		pid, err := uuid.Parse(payload.TargetProjectID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[pid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					h.unregister <- client
				}
			}
		}
	}
}
