package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/middleware"
	"petcare-hub/internal/platform/metrics"
	"petcare-hub/internal/ports/changefeed"
)

func drain(s *Subscription) []changefeed.Change {
	var out []changefeed.Change
	for {
		select {
		case c := <-s.C:
			out = append(out, c)
		default:
			return out
		}
	}
}

func memberships(orgID string, role organizations.Role) []organizations.Membership {
	return []organizations.Membership{{OrganizationID: orgID, Role: role}}
}

func TestPublish_Audience(t *testing.T) {
	h := NewHub()
	vet := h.Subscribe("vet", memberships("clinic", organizations.RoleVet), []string{"bookings", "posts"})
	owner := h.Subscribe("owner", nil, []string{"bookings"})
	stranger := h.Subscribe("stranger", memberships("other", organizations.RoleOwner), []string{"bookings", "posts"})

	h.Publish(changefeed.Change{Table: "bookings", Type: changefeed.Insert, OrganizationID: "clinic", UserIDs: []string{"owner"}})
	h.Publish(changefeed.Change{Table: "posts", Type: changefeed.Insert})
	h.Publish(changefeed.Change{Table: "pets", Type: changefeed.Insert})

	assert.Len(t, drain(vet), 2)
	assert.Len(t, drain(owner), 1)

	got := drain(stranger)
	require.Len(t, got, 1)
	assert.Equal(t, "posts", got[0].Table)
}

func TestPublish_MinRole(t *testing.T) {
	h := NewHub()
	tables := []string{"orders", "organization_invites", "pets", "bookings"}
	member := h.Subscribe("member", memberships("shop", organizations.RoleMember), tables)
	staff := h.Subscribe("staff", memberships("shop", organizations.RoleStaff), tables)
	admin := h.Subscribe("admin", memberships("shop", organizations.RoleAdmin), tables)

	h.Publish(changefeed.Change{Table: "orders", OrganizationID: "shop", MinRole: string(organizations.RoleStaff), UserIDs: []string{"buyer"}})
	h.Publish(changefeed.Change{Table: "organization_invites", OrganizationID: "shop", MinRole: string(organizations.RoleAdmin)})
	h.Publish(changefeed.Change{Table: "pets", OrganizationID: "shop", MinRole: string(organizations.RoleStaff)})
	h.Publish(changefeed.Change{Table: "bookings", OrganizationID: "shop"})

	tablesOf := func(cs []changefeed.Change) []string {
		out := make([]string, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.Table)
		}
		return out
	}
	assert.Equal(t, []string{"bookings"}, tablesOf(drain(member)))
	assert.Equal(t, []string{"orders", "pets", "bookings"}, tablesOf(drain(staff)))
	assert.Equal(t, []string{"orders", "organization_invites", "pets", "bookings"}, tablesOf(drain(admin)))
}

func TestPublish_RoleChangeUpdatesAudience(t *testing.T) {
	h := NewHub()
	s := h.Subscribe("u1", memberships("clinic", organizations.RoleMember), []string{"orders"})
	order := changefeed.Change{Table: "orders", OrganizationID: "clinic", MinRole: string(organizations.RoleStaff)}

	h.Publish(order)
	assert.Empty(t, drain(s))

	// promovido a vet
	h.Publish(changefeed.Change{
		Table:          "organization_users",
		Type:           changefeed.Update,
		Record:         map[string]any{"organization_id": "clinic", "user_id": "u1", "role": organizations.RoleVet},
		OrganizationID: "clinic",
		UserIDs:        []string{"u1"},
	})
	h.Publish(order)
	assert.Len(t, drain(s), 1)
}

func TestPublish_TracksMemberships(t *testing.T) {
	h := NewHub()
	s := h.Subscribe("u1", nil, []string{"bookings", "organization_users"})

	h.Publish(changefeed.Change{Table: "bookings", OrganizationID: "clinic"})
	assert.Empty(t, drain(s))

	h.Publish(changefeed.Change{Table: "organization_users", Type: changefeed.Insert, OrganizationID: "clinic", UserIDs: []string{"u1"}})
	h.Publish(changefeed.Change{Table: "bookings", OrganizationID: "clinic"})
	assert.Len(t, drain(s), 2)

	h.Publish(changefeed.Change{Table: "organization_users", Type: changefeed.Delete, OrganizationID: "clinic", UserIDs: []string{"u1"}})
	h.Publish(changefeed.Change{Table: "bookings", OrganizationID: "clinic"})
	got := drain(s)
	require.Len(t, got, 1)
	assert.Equal(t, changefeed.Delete, got[0].Type)
}

func TestPublish_SlowSubscriberDrops(t *testing.T) {
	m := metrics.New()
	h := NewHub(WithBuffer(2), WithMetrics(m))
	s := h.Subscribe("u1", nil, []string{"posts"})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RealtimeClients))

	for i := 0; i < 5; i++ {
		h.Publish(changefeed.Change{Table: "posts"})
	}
	assert.Len(t, drain(s), 2)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RealtimeDropped))

	h.Unsubscribe(s)
	h.Unsubscribe(s)
	_, open := <-s.C
	assert.False(t, open)
	assert.Equal(t, 0, h.Count())
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RealtimeClients))
}

type staticAudience map[string][]organizations.Membership

func (a staticAudience) MembershipsOf(_ context.Context, userID string) ([]organizations.Membership, error) {
	return a[userID], nil
}

func TestWebsocketStream(t *testing.T) {
	h := NewHub()
	r := chi.NewRouter()
	r.Use(middleware.AuthContext(nil))
	RegisterRoutes(r, h, staticAudience{"vet": memberships("clinic", organizations.RoleVet)})
	srv := httptest.NewServer(r)
	defer srv.Close()

	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/realtime"
	header := http.Header{}
	header.Set(middleware.HeaderDebugUserID, "vet")

	_, resp, err := websocket.DefaultDialer.Dial(base+"?tables=nope", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(base+"?tables=bookings", header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Count() == 1 }, time.Second, 10*time.Millisecond)
	h.Publish(changefeed.Change{
		Table:          "bookings",
		Type:           changefeed.Update,
		Record:         map[string]any{"id": "b1", "status": "confirmed"},
		OrganizationID: "clinic",
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Table  string         `json:"table"`
		Type   string         `json:"type"`
		Record map[string]any `json:"record"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "bookings", msg.Table)
	assert.Equal(t, "UPDATE", msg.Type)
	assert.Equal(t, "confirmed", msg.Record["status"])

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return h.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}
