package client

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	pb "github.com/mo-shahab/go-pong/proto"
)

const writeWait = 2 * time.Second

// Client is one spectator connection. Frames are queued and written by
// WritePump so a slow viewer never stalls the game loop.
type Client struct {
	ID    string
	Conn  *websocket.Conn
	Codec pb.Codec

	sendQueue chan []byte
	closeOnce sync.Once
}

func New(conn *websocket.Conn, codec pb.Codec, queueSize int) *Client {
	return &Client{
		ID:        uuid.New().String(),
		Conn:      conn,
		Codec:     codec,
		sendQueue: make(chan []byte, queueSize),
	}
}

// Enqueue offers msg to the client without blocking. It reports false when the
// queue is full and the message was dropped.
func (c *Client) Enqueue(msg []byte) bool {
	select {
	case c.sendQueue <- msg:
		return true
	default:
		return false
	}
}

// Pending is the number of queued, unsent messages.
func (c *Client) Pending() int {
	return len(c.sendQueue)
}

// Close stops WritePump once the queued messages are drained. Safe to call
// more than once. Enqueue must not be called after Close.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.sendQueue)
	})
}

// WritePump writes queued frames as binary messages until the queue is closed
// or a write fails.
func (c *Client) WritePump() error {
	for msg := range c.sendQueue {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		if err := c.Conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			return err
		}
	}
	return c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}
