package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 32
)

// Client adapts a websocket connection to the Listener interface. Deliver
// hands the event to a buffered channel so broadcasting never blocks on a
// slow connection; the write pump owns all writes to the socket.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *Client) ID() string { return c.id }

func (c *Client) Deliver(event []byte) error {
	select {
	case <-c.done:
		return errors.New("listener closed")
	case c.send <- event:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

// Close stops the write pump. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// WritePump writes queued events and keepalive pings until the connection
// breaks or Close is called.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
