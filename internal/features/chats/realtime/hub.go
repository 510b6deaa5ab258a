package realtime

import (
	"encoding/json"
	"sync"

	"itconnect-backend/internal/util/logger"
)

var log = logger.GetLogger()

// OutboundFrame wraps every payload pushed over a websocket with the
// topic it was published on.
type OutboundFrame struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

// Hub fans published payloads out to the clients subscribed to a topic
// at publish time. Delivery is at most once, there is no replay for
// late subscribers.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Subscribe(topic string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscribers, ok := h.topics[topic]
	if !ok {
		subscribers = make(map[*Client]struct{})
		h.topics[topic] = subscribers
	}

	subscribers[client] = struct{}{}
}

func (h *Hub) Unsubscribe(topic string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeSubscriber(topic, client)
}

// DropClient removes the client from every topic, called when its
// connection closes.
func (h *Hub) DropClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for topic := range h.topics {
		h.removeSubscriber(topic, client)
	}
}

func (h *Hub) removeSubscriber(topic string, client *Client) {
	subscribers, ok := h.topics[topic]
	if !ok {
		return
	}

	delete(subscribers, client)
	if len(subscribers) == 0 {
		delete(h.topics, topic)
	}
}

// Publish sends the payload to every current subscriber of the topic.
// Clients whose send buffer is full are skipped.
func (h *Hub) Publish(topic string, payload any) {
	data, err := json.Marshal(&OutboundFrame{
		Topic:   topic,
		Payload: payload,
	})
	if err != nil {
		log.Error("failed to marshal websocket frame", "topic", topic, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.topics[topic] {
		select {
		case client.send <- data:
		default:
		}
	}
}
