package infrastructure

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"scoutWorkspace/internal/modules/workspace/domain"
)

const (
	writeWait    = 5 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	maxFrameSize = 1 << 16
)

type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	subject     string
	sessionKey  string
	workspaceID string
	token       string
	commands    *CommandProcessor
	subscribed  map[string]struct{}
	closeOnce   sync.Once
	closed      chan struct{}
	closeHooks  []func(*Client)
	hookMu      sync.Mutex
}

// NewClient creates a websocket client bound to one workspace session.
func NewClient(hub *Hub, conn *websocket.Conn, subject, sessionKey, workspaceID, token string, buf int, workspace WorkspaceCommands) *Client {
	if buf <= 0 {
		buf = 64
	}
	client := &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, buf),
		subject:     strings.TrimSpace(subject),
		sessionKey:  strings.TrimSpace(sessionKey),
		workspaceID: strings.TrimSpace(workspaceID),
		token:       token,
		subscribed:  make(map[string]struct{}),
		closed:      make(chan struct{}),
	}
	client.commands = NewCommandProcessor(hub, workspace)
	return client
}

func (c *Client) Subject() string { return c.subject }
func (c *Client) SessionKey() string { return c.sessionKey }
func (c *Client) WorkspaceID() string { return c.workspaceID }
func (c *Client) Token() string { return c.token }

func (c *Client) key() string {
	return c.sessionKey
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.invokeCloseHooks()
	})
}

// AddCloseHook registers a callback that runs once when the client closes.
func (c *Client) AddCloseHook(fn func(*Client)) {
	if fn == nil {
		return
	}
	c.hookMu.Lock()
	c.closeHooks = append(c.closeHooks, fn)
	c.hookMu.Unlock()
}

func (c *Client) invokeCloseHooks() {
	c.hookMu.Lock()
	hooks := append([]func(*Client){}, c.closeHooks...)
	c.closeHooks = nil
	c.hookMu.Unlock()

	for _, hook := range hooks {
		func(h func(*Client)) {
			defer func() {
				if r := recover(); r != nil {
					slog.Warn("ws close hook panic", slog.Any("error", r))
				}
			}()
			h(c)
		}(hook)
	}
}

func (c *Client) SendDomainMessage(msg *domain.Message) {
	data, err := sonic.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	c.enqueue(data)
}

// enqueue hands data to the write pump. A client whose buffer is full is
// detached rather than blocking the sender.
func (c *Client) enqueue(data []byte) {
	select {
	case <-c.closed:
		return
	default:
	}
	select {
	case c.send <- data:
	case <-c.closed:
	default:
		slog.Warn("websocket send buffer full", slog.String("sessionId", c.sessionKey), slog.String("workspaceId", c.workspaceID))
		go c.hub.detachClient(c)
	}
}

func (c *Client) WritePump() {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-c.closed:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.String("sessionId", c.sessionKey), slog.Any("error", err))
				c.hub.detachClient(c)
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				slog.Warn("websocket ping error", slog.String("sessionId", c.sessionKey), slog.Any("error", err))
				c.hub.detachClient(c)
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	defer c.hub.detachClient(c)
	for {
		var cmd Command
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", slog.String("sessionId", c.sessionKey), slog.String("workspaceId", c.workspaceID), slog.Any("error", err))
			}
			return
		}
		c.processCommand(cmd)
	}
}

func (c *Client) processCommand(cmd Command) {
	if c.commands == nil {
		return
	}
	c.commands.Process(c, cmd)
}
