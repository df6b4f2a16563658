package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// Client sends commands to a running viewer.
type Client struct {
	conn *websocket.Conn
}

// URL builds the endpoint address for a host:port.
func URL(addr string) string {
	u := url.URL{Scheme: "ws", Host: addr, Path: Path}
	return u.String()
}

// Dial connects to the remote control endpoint at addr (host:port).
func Dial(ctx context.Context, addr string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, URL(addr), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// Send issues one command and waits for its reply. A rejected command is
// returned as an error carrying the server's message.
func (c *Client) Send(op string, value any) error {
	cmd := Command{Op: op}
	if value != nil {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s value: %w", op, err)
		}
		cmd.Value = raw
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("send %s: %w", op, err)
	}
	if err := c.conn.WriteJSON(cmd); err != nil {
		return fmt.Errorf("send %s: %w", op, err)
	}

	var reply Reply
	if err := c.conn.ReadJSON(&reply); err != nil {
		return fmt.Errorf("read reply to %s: %w", op, err)
	}
	if !reply.OK {
		return errors.New(reply.Error)
	}
	return nil
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
	return c.conn.Close()
}
