package realtime

import (
	"encoding/json"
	"time"

	users_models "itconnect-backend/internal/features/users/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBufferSize = 256
)

// InboundFrame is what clients send over the websocket, a routing
// destination plus a destination-specific payload.
type InboundFrame struct {
	Destination string          `json:"destination"`
	Payload     json.RawMessage `json:"payload"`
}

type frameHandler func(client *Client, frame *InboundFrame) error

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	user    *users_models.User
	send    chan []byte
	handler frameHandler
}

func newClient(
	hub *Hub,
	conn *websocket.Conn,
	user *users_models.User,
	handler frameHandler,
) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		user:    user,
		send:    make(chan []byte, sendBufferSize),
		handler: handler,
	}
}

// readPump dispatches inbound frames until the connection dies. Frame
// handler failures are logged and the connection stays open.
func (c *Client) readPump() {
	defer func() {
		c.hub.DropClient(c)
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
			) {
				log.Error("websocket read failed", "userId", c.user.ID, "error", err)
			}

			return
		}

		var frame InboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Error("invalid websocket frame", "userId", c.user.ID, "error", err)
			continue
		}

		if err := c.handler(c, &frame); err != nil {
			log.Error(
				"websocket frame handling failed",
				"userId", c.user.ID,
				"destination", frame.Destination,
				"error", err,
			)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
