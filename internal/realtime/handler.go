package realtime

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/middleware"
	"petcare-hub/internal/platform/httpx"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Audience resuelve las membresías del usuario al suscribirse (organizations.Service).
type Audience interface {
	MembershipsOf(ctx context.Context, userID string) ([]organizations.Membership, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// el token ya se validó en AuthContext; el origen lo filtra el proxy/CORS
	CheckOrigin: func(r *http.Request) bool { return true },
}

func RegisterRoutes(r chi.Router, hub *Hub, audience Audience) {
	r.Get("/realtime", subscribeHandler(hub, audience))
}

// subscribeHandler godoc
// @Summary Suscripción a cambios
// @Description Upgrade a websocket. Cada mensaje es {table, type, record, commit_timestamp}.
// @Tags realtime
// @Param tables query string true "Tablas separadas por coma"
// @Success 101
// @Failure 400 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /realtime [get]
func subscribeHandler(hub *Hub, audience Audience) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		tables := httpx.QueryCSV(r, "tables")
		if len(tables) == 0 {
			httpx.WriteError(w, http.StatusBadRequest, "tables is required")
			return
		}
		for _, t := range tables {
			if !Tables[t] {
				httpx.WriteError(w, http.StatusBadRequest, "unknown table: "+t)
				return
			}
		}

		orgs, err := audience.MembershipsOf(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade ya respondió con el error
			hub.log.Debug("websocket upgrade failed", map[string]any{"error": err})
			return
		}

		sub := hub.Subscribe(claims.UserID, orgs, tables)
		hub.log.Debug("realtime subscribed", map[string]any{"user_id": claims.UserID, "tables": tables})
		serve(conn, hub, sub)
	}
}

// serve escribe los cambios hasta que el cliente cierra. El cliente no manda
// mensajes; la lectura solo detecta el cierre y procesa pongs.
func serve(conn *websocket.Conn, hub *Hub, sub *Subscription) {
	defer func() {
		hub.Unsubscribe(sub)
		_ = conn.Close()
	}()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case c, ok := <-sub.C:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(c); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// Shutdown cierra todas las suscripciones (los handlers mandan close y salen).
func (h *Hub) Shutdown() {
	h.mu.Lock()
	subs := make([]*Subscription, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		h.Unsubscribe(s)
	}
}
