package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"terramythica-server/internal/engine"
	"terramythica-server/internal/network"
	"terramythica-server/pkg/api"
	"terramythica-server/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket и циклом симуляции. Кадры ввода и
// запросы прокачки уходят в каналы цикла, снимки приходят из хаба.
type Client struct {
	ID   string
	Loop *engine.Loop
	Hub  *network.Broadcaster
	Conn *websocket.Conn
	Send chan api.ServerMessage

	// done закрывается при выходе writePump, чтобы пересыльщик снимков
	// не завис навсегда на заполненной очереди мертвого писателя.
	done chan struct{}
}

func NewClient(loop *engine.Loop, hub *network.Broadcaster, conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		Loop: loop,
		Hub:  hub,
		Conn: conn,
		Send: make(chan api.ServerMessage, 256),
		done: make(chan struct{}),
	}
}

// forwardUpdates пересылает снимки из хаба в очередь записи, пока живы
// обе стороны: закрытие канала хаба или выход писателя завершают его.
func (c *Client) forwardUpdates(updates chan api.ServerMessage) {
	defer close(c.Send)

	for {
		select {
		case msg, ok := <-updates:
			if !ok {
				return
			}
			select {
			case c.Send <- msg:
			case <-c.done:
				return
			}
		case <-c.done:
			return
		}
	}
}

// readPump читает сообщения клиента и раскладывает их по каналам цикла.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
		logger.Log.WithField("client_id", c.ID).Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// ПОДПИСКА НА СНИМКИ
	updates := c.Hub.Register(c.ID)
	go c.forwardUpdates(updates)

	logger.Log.WithField("client_id", c.ID).Info("Client connected")

	// ЦИКЛ ЧТЕНИЯ СООБЩЕНИЙ
	for {
		var msg api.ClientMessage
		if err := c.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}

		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to refresh read deadline")
		}

		if err := api.ValidateClientMessage(msg); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"client_id": c.ID,
				"type":      msg.Type,
			}).WithError(err).Warn("Invalid client message dropped")
			continue
		}

		switch msg.Type {
		case api.MessageInput:
			select {
			case c.Loop.InputChan <- *msg.Input:
			default:
			}
		case api.MessageUpgrade:
			select {
			case c.Loop.UpgradeChan <- msg.Attribute:
			default:
			}
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
