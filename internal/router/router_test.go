package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"petcare-hub/internal/middleware"
	"petcare-hub/internal/router"
)

type actor struct {
	id    string
	email string
	role  string
}

var (
	clinicOwner = actor{id: "owner-1", email: "owner@clinic.test"}
	vet         = actor{id: "vet-1", email: "vet@clinic.test"}
	petOwner    = actor{id: "ana", email: "ana@example.com"}
	platform    = actor{id: "root", email: "root@petcare.test", role: "admin"}
)

func TestHTTP_EndToEnd_ClinicAccessThroughBooking(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// 1) Owner crea la clínica
	org := mustJSON(t, http.StatusCreated, ts.URL, "POST", "/organizations", clinicOwner, map[string]any{
		"name": "Clínica Centro",
		"type": "clinic",
	})
	orgID := org["id"].(string)

	// 2) Invita al vet, que acepta con su email
	inv := mustJSON(t, http.StatusCreated, ts.URL, "POST", "/organizations/"+orgID+"/invites", clinicOwner, map[string]any{
		"email": vet.email,
		"role":  "vet",
	})
	token, _ := inv["token"].(string)
	if token == "" {
		t.Fatalf("expected invite token on create, got %v", inv)
	}
	mustJSON(t, http.StatusOK, ts.URL, "POST", "/invites/accept", vet, map[string]any{"token": token})

	// 3) Dueña crea mascota
	pet := mustJSON(t, http.StatusCreated, ts.URL, "POST", "/pets", petOwner, map[string]any{
		"name":    "Luna",
		"species": "cat",
	})
	petID := pet["id"].(string)

	// 4) Sin turno, el vet no ve la historia
	if st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID+"/records", vet, nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 before booking, got %d", st)
	}

	// 5) Dueña reserva en la clínica
	mustJSON(t, http.StatusCreated, ts.URL, "POST", "/bookings", petOwner, map[string]any{
		"pet_id":          petID,
		"organization_id": orgID,
		"service":         "consultation",
		"starts_at":       time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
	})

	// 6) Con turno activo el vet registra y lista
	mustJSON(t, http.StatusCreated, ts.URL, "POST", "/pets/"+petID+"/records", vet, map[string]any{
		"type":        "CHECKUP",
		"occurred_at": time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
		"title":       "Control anual",
	})
	st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/records", vet, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 listing records, got %d body=%s", st, string(body))
	}
	var records []map[string]any
	if err := json.Unmarshal(body, &records); err != nil {
		t.Fatalf("decode records: %v body=%s", err, string(body))
	}
	if len(records) != 1 || records[0]["actor_type"] == "" {
		t.Fatalf("expected one record, got %s", string(body))
	}

	// 7) La dueña también la ve
	if st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID+"/records", petOwner, nil); st != http.StatusOK {
		t.Fatalf("expected 200 for pet owner, got %d", st)
	}
}

func TestHTTP_AuthAndRoleGuards(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	if st, body := doReq(t, ts.URL, "GET", "/health", actor{}, nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected health ok, got %d %s", st, string(body))
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets", actor{}, nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/adoptions", actor{}, nil); st != http.StatusOK {
		t.Fatalf("expected public adoptions, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/products", actor{}, nil); st != http.StatusOK {
		t.Fatalf("expected public catalog, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/admin/organizations", petOwner, nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 for non admin, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/admin/organizations", platform, nil); st != http.StatusOK {
		t.Fatalf("expected 200 for platform admin, got %d", st)
	}

	// proveedores sin configurar
	st, body := doReq(t, ts.URL, "POST", "/api/ai/generate", petOwner, map[string]any{"prompt": "hola"})
	if st != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for unconfigured provider, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/metrics", actor{}, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "petcare_http_requests_total") {
		t.Fatalf("expected metrics exposition, got %d", st)
	}
}

func TestHTTP_CommunityFeed(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	post := mustJSON(t, http.StatusCreated, ts.URL, "POST", "/posts", petOwner, map[string]any{"body": "Luna cumple 3 años"})
	postID := post["id"].(string)

	if st, body := doReq(t, ts.URL, "PUT", "/posts/"+postID+"/like", vet, nil); st != http.StatusOK {
		t.Fatalf("expected 200 like, got %d body=%s", st, string(body))
	}
	mustJSON(t, http.StatusCreated, ts.URL, "POST", "/posts/"+postID+"/comments", vet, map[string]any{"body": "¡Feliz cumple!"})

	got := mustJSON(t, http.StatusOK, ts.URL, "GET", "/posts/"+postID, vet, nil)
	if got["like_count"] != 1.0 || got["comment_count"] != 1.0 || got["liked_by_me"] != true {
		t.Fatalf("unexpected post view: %v", got)
	}
}

func mustJSON(t *testing.T, want int, baseURL, method, path string, a actor, payload any) map[string]any {
	t.Helper()

	st, body := doReq(t, baseURL, method, path, a, payload)
	if st != want {
		t.Fatalf("%s %s: expected %d, got %d body=%s", method, path, want, st, string(body))
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("%s %s: decode: %v body=%s", method, path, err, string(body))
	}
	return out
}

func doReq(t *testing.T, baseURL, method, path string, a actor, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.id != "" {
		req.Header.Set(middleware.HeaderDebugUserID, a.id)
		req.Header.Set(middleware.HeaderDebugUserEmail, a.email)
		req.Header.Set(middleware.HeaderDebugUserRole, a.role)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
