package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/AlexZinkM/ton-gamefi/gamefi"
	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StatusHandler streams wallet status changes to the browser
type StatusHandler struct {
	sessions SessionService
	logger   *zap.Logger
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(sessions SessionService, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{sessions: sessions, logger: logger}
}

// Stream handles GET /ws/status
// @Summary      Wallet status stream
// @Description  WebSocket. Sends the current status first, then every transition with the UI layout for it.
// @Tags         wallet
// @Success      101
// @Router       /ws/status [get]
func (h *StatusHandler) Stream(w http.ResponseWriter, r *http.Request) {
	events, cancel := h.sessions.Subscribe(16)
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// reader: only needed for pongs and to notice the close
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s := h.sessions.Session()
	current := model.StatusEvent{From: s.Status, To: s.Status, Account: s.Account, At: time.Now()}
	if err := h.write(conn, current); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case ev := <-events:
			if err := h.write(conn, ev); err != nil {
				h.logger.Debug("status stream closed", zap.Error(err))
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *StatusHandler) write(conn *websocket.Conn, ev model.StatusEvent) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(model.StatusMessage{
		Event: ev,
		View:  gamefi.View(model.WalletSession{Status: ev.To, Account: ev.Account}),
	})
}
