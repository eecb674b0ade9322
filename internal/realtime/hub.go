// Package realtime reparte los cambios publicados por los servicios a los
// clientes suscriptos por websocket.
package realtime

import (
	"sync"

	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/platform/logger"
	"petcare-hub/internal/platform/metrics"
	"petcare-hub/internal/ports/changefeed"
)

const (
	DefaultBuffer = 64

	membershipsTable = "organization_users"
)

// Tables son las tablas a las que un cliente se puede suscribir.
var Tables = map[string]bool{
	"organization_users":    true,
	"organization_invites":  true,
	"pets":                  true,
	"adoption_applications": true,
	"bookings":              true,
	"medical_records":       true,
	"products":              true,
	"orders":                true,
	"posts":                 true,
	"post_comments":         true,
}

// Hub implementa changefeed.Publisher. Publish nunca bloquea: si el buffer
// de un suscriptor está lleno el cambio se descarta para ese suscriptor.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}

	buffer  int
	metrics *metrics.Metrics
	log     logger.Logger
}

type Option func(*Hub)

func WithBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Hub) { h.metrics = m }
}

func WithLogger(l logger.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.log = l
		}
	}
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: DefaultBuffer,
		log:    logger.Nop(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Subscription recibe los cambios visibles para un usuario en C.
type Subscription struct {
	C <-chan changefeed.Change

	ch     chan changefeed.Change
	userID string
	tables map[string]bool

	mu   sync.Mutex // protege orgs
	orgs map[string]organizations.Role
}

// Subscribe registra al usuario con las membresías que tiene hoy. Altas,
// bajas y cambios de rol posteriores se aplican al vuelo.
func (h *Hub) Subscribe(userID string, memberships []organizations.Membership, tables []string) *Subscription {
	ch := make(chan changefeed.Change, h.buffer)
	s := &Subscription{
		C:      ch,
		ch:     ch,
		userID: userID,
		tables: make(map[string]bool, len(tables)),
		orgs:   make(map[string]organizations.Role, len(memberships)),
	}
	for _, t := range tables {
		s.tables[t] = true
	}
	for _, m := range memberships {
		s.orgs[m.OrganizationID] = m.Role
	}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.RealtimeClients.Set(float64(n))
	}
	return s
}

// Unsubscribe cierra C. Llamarlo dos veces no hace nada.
func (h *Hub) Unsubscribe(s *Subscription) {
	h.mu.Lock()
	if _, ok := h.subs[s]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.subs, s)
	close(s.ch)
	n := len(h.subs)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.RealtimeClients.Set(float64(n))
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Publish(c changefeed.Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs {
		if c.Table == membershipsTable {
			s.trackMembership(c)
		}
		if !s.tables[c.Table] || !s.canSee(c) {
			continue
		}
		select {
		case s.ch <- c:
		default:
			if h.metrics != nil {
				h.metrics.RealtimeDropped.Inc()
			}
			h.log.Debug("realtime subscriber is slow, change dropped", map[string]any{
				"user_id": s.userID,
				"table":   c.Table,
			})
		}
	}
}

// canSee replica las políticas RLS: público, usuario listado o miembro de la
// org con al menos MinRole.
func (s *Subscription) canSee(c changefeed.Change) bool {
	if c.IsPublic() {
		return true
	}
	for _, u := range c.UserIDs {
		if u == s.userID {
			return true
		}
	}
	if c.OrganizationID == "" {
		return false
	}
	s.mu.Lock()
	role, ok := s.orgs[c.OrganizationID]
	s.mu.Unlock()
	return ok && role.Rank() >= organizations.Role(c.MinRole).Rank()
}

func (s *Subscription) trackMembership(c changefeed.Change) {
	if c.OrganizationID == "" {
		return
	}
	mine := false
	for _, u := range c.UserIDs {
		if u == s.userID {
			mine = true
			break
		}
	}
	if !mine {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch c.Type {
	case changefeed.Insert, changefeed.Update:
		s.orgs[c.OrganizationID] = recordRole(c.Record)
	case changefeed.Delete:
		delete(s.orgs, c.OrganizationID)
	}
}

// recordRole lee el rol del registro de membresía; sin rol cuenta como member.
func recordRole(rec any) organizations.Role {
	if m, ok := rec.(map[string]any); ok {
		if r, ok := m["role"].(organizations.Role); ok && r.Valid() {
			return r
		}
	}
	return organizations.RoleMember
}
