package handler_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/eventops/api/internal/enum"
	"github.com/eventops/api/internal/handler"
	"github.com/eventops/api/internal/service"
	"github.com/go-chi/chi/v5"
)

type stateResponse struct {
	EventID         string `json:"event_id"`
	AutoFillEnabled bool   `json:"auto_fill_enabled"`
	Items           struct {
		Plates []struct {
			Item     string `json:"item"`
			Supplier string `json:"supplier"`
			Qty      *int   `json:"qty"`
		} `json:"plates"`
	} `json:"items"`
	Text struct {
		Plates  string `json:"plates"`
		Cutlery string `json:"cutlery"`
	} `json:"text"`
}

func setupServicewareRouter(s *mockEventStore, role string) *chi.Mux {
	svc := service.NewServicewareService(s, nil)
	h := handler.NewServicewareHandler(svc, handler.NewValidator())
	r := chi.NewRouter()
	r.Use(asRole(role))
	r.Route("/events/{eid}/serviceware", h.RegisterRoutes)
	return r
}

func TestServiceware_GetAsKitchen(t *testing.T) {
	ev := sampleEvent()
	ev.PlatesText = "• Dinner Plates (FoodWerx China) – 115"
	r := setupServicewareRouter(newMockEventStore(ev), enum.UserRoleKitchen)

	rr := doRequest(t, r, "GET", "/events/recGala/serviceware", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	var resp stateResponse
	decodeInto(t, rr, &resp)
	if len(resp.Items.Plates) != 1 || *resp.Items.Plates[0].Qty != 115 {
		t.Errorf("plates: %+v", resp.Items.Plates)
	}
}

func TestServiceware_KitchenCannotWrite(t *testing.T) {
	r := setupServicewareRouter(newMockEventStore(sampleEvent()), enum.UserRoleKitchen)

	tests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{"POST", "/events/recGala/serviceware/autofill", map[string]interface{}{}},
		{"PUT", "/events/recGala/serviceware", map[string]interface{}{}},
		{"PUT", "/events/recGala/serviceware/counts", map[string]interface{}{}},
		{"POST", "/events/recGala/serviceware/plates/items", map[string]interface{}{"item": "x"}},
		{"DELETE", "/events/recGala/serviceware/plates/items/0", nil},
	}
	for _, tt := range tests {
		rr := doRequest(t, r, tt.method, tt.path, tt.body)
		if rr.Code != http.StatusForbidden {
			t.Errorf("%s %s: got %d, want %d", tt.method, tt.path, rr.Code, http.StatusForbidden)
		}
	}
}

func TestServiceware_AutoFill(t *testing.T) {
	s := newMockEventStore(sampleEvent())
	r := setupServicewareRouter(s, enum.UserRoleCoordinator)

	rr := doRequest(t, r, "POST", "/events/recGala/serviceware/autofill", map[string]interface{}{})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	var resp stateResponse
	decodeInto(t, rr, &resp)
	if !strings.HasPrefix(resp.Text.Plates, "• B&B Plates (FoodWerx China) – 260") {
		t.Errorf("plates text: %q", resp.Text.Plates)
	}
	if s.events["recGala"].CutleryText == "" {
		t.Error("cutlery text not persisted")
	}
}

func TestServiceware_AutoFillErrors(t *testing.T) {
	client := sampleEvent()
	client.ServicewareSource = enum.ServicewareSourceClient
	r := setupServicewareRouter(newMockEventStore(client), enum.UserRoleAdmin)
	rr := doRequest(t, r, "POST", "/events/recGala/serviceware/autofill", map[string]interface{}{})
	if rr.Code != http.StatusConflict {
		t.Errorf("client source: got %d, want %d", rr.Code, http.StatusConflict)
	}

	unknown := sampleEvent()
	unknown.PaperType = ""
	r = setupServicewareRouter(newMockEventStore(unknown), enum.UserRoleAdmin)
	rr = doRequest(t, r, "POST", "/events/recGala/serviceware/autofill", map[string]interface{}{})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("no paper type: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	rr = doRequest(t, r, "POST", "/events/recNope/serviceware/autofill", map[string]interface{}{})
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing event: got %d, want %d", rr.Code, http.StatusNotFound)
	}

	rr = doRequest(t, r, "POST", "/events/recGala/serviceware/autofill", map[string]interface{}{"carafes_per_table": 99})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("too many carafes: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	rr = doRequest(t, r, "POST", "/events/recGala/serviceware/autofill", map[string]interface{}{"guest_count": 9223372036854775800})
	if got := decodeResponse(t, rr)["error"]; rr.Code != http.StatusBadRequest || got != "guest_count must be <= 100000" {
		t.Errorf("huge guest count: got %d %v", rr.Code, got)
	}
}

func TestServiceware_Replace(t *testing.T) {
	s := newMockEventStore(sampleEvent())
	r := setupServicewareRouter(s, enum.UserRoleCoordinator)

	rr := doRequest(t, r, "PUT", "/events/recGala/serviceware", map[string]interface{}{
		"paper_type":         "Premium Paper",
		"serviceware_source": "Client",
		"items": map[string]interface{}{
			"plates": []map[string]interface{}{
				{"item": "Chargers", "supplier": "Client"},
				{"item": "Dinner Plates", "supplier": "Rentals", "qty": 40},
			},
		},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	var resp stateResponse
	decodeInto(t, rr, &resp)
	if resp.AutoFillEnabled {
		t.Error("client source should disable auto-fill")
	}
	want := "• Chargers (Client) – Provided by host\n• Dinner Plates (Rentals) – 40"
	if s.events["recGala"].PlatesText != want {
		t.Errorf("plates text: got %q, want %q", s.events["recGala"].PlatesText, want)
	}
}

func TestServiceware_ReplaceValidation(t *testing.T) {
	r := setupServicewareRouter(newMockEventStore(sampleEvent()), enum.UserRoleCoordinator)

	rr := doRequest(t, r, "PUT", "/events/recGala/serviceware", map[string]interface{}{
		"serviceware_source": "Caterer",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad source: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	rr = doRequest(t, r, "PUT", "/events/recGala/serviceware", map[string]interface{}{
		"items": map[string]interface{}{
			"plates": []map[string]interface{}{{"item": "Plates", "supplier": "Rentals", "qty": -1}},
		},
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("negative qty: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestServiceware_ReplaceKeepsDraftRowsOutOfText(t *testing.T) {
	s := newMockEventStore(sampleEvent())
	r := setupServicewareRouter(s, enum.UserRoleCoordinator)

	rr := doRequest(t, r, "PUT", "/events/recGala/serviceware", map[string]interface{}{
		"paper_type":         "China",
		"serviceware_source": "FoodWerx",
		"items": map[string]interface{}{
			"plates": []map[string]interface{}{
				{"item": "Dinner Plates", "supplier": "FoodWerx China", "qty": 120},
				{"item": "", "supplier": "FoodWerx China", "qty": nil},
			},
		},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	var resp stateResponse
	decodeInto(t, rr, &resp)
	want := "• Dinner Plates (FoodWerx China) – 120"
	if resp.Text.Plates != want {
		t.Errorf("plates text: got %q, want %q", resp.Text.Plates, want)
	}
	if s.events["recGala"].PlatesText != want {
		t.Errorf("stored text: got %q", s.events["recGala"].PlatesText)
	}
}

func TestServiceware_ReplaceStaleVersion(t *testing.T) {
	ev := sampleEvent()
	ev.UpdatedAt = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	s := newMockEventStore(ev)
	r := setupServicewareRouter(s, enum.UserRoleCoordinator)

	body := map[string]interface{}{
		"paper_type":         "China",
		"serviceware_source": "FoodWerx",
		"updated_at":         "2026-10-01T08:00:00Z",
	}
	rr := doRequest(t, r, "PUT", "/events/recGala/serviceware", body)
	if rr.Code != http.StatusConflict {
		t.Fatalf("stale version: got %d, want %d; body: %s", rr.Code, http.StatusConflict, rr.Body.String())
	}

	body["updated_at"] = "2026-10-01T09:00:00Z"
	rr = doRequest(t, r, "PUT", "/events/recGala/serviceware", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("current version: got %d; body: %s", rr.Code, rr.Body.String())
	}
}

func TestServiceware_AddItemRequiresName(t *testing.T) {
	r := setupServicewareRouter(newMockEventStore(sampleEvent()), enum.UserRoleCoordinator)

	rr := doRequest(t, r, "POST", "/events/recGala/serviceware/plates/items", map[string]interface{}{
		"item": "", "supplier": "Rentals", "qty": 1,
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("blank item: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestServiceware_ItemEdits(t *testing.T) {
	ev := sampleEvent()
	ev.CutleryText = "• Forks (Rentals) – 10"
	s := newMockEventStore(ev)
	r := setupServicewareRouter(s, enum.UserRoleCoordinator)

	rr := doRequest(t, r, "POST", "/events/recGala/serviceware/cutlery/items", map[string]interface{}{
		"item": "Knives", "supplier": "Rentals", "qty": 10,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("add: got %d; body: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, r, "PUT", "/events/recGala/serviceware/cutlery/items/0", map[string]interface{}{
		"item": "Dinner Forks", "supplier": "Rentals", "qty": 12,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("update: got %d; body: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, r, "DELETE", "/events/recGala/serviceware/cutlery/items/1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("remove: got %d; body: %s", rr.Code, rr.Body.String())
	}

	if got := s.events["recGala"].CutleryText; got != "• Dinner Forks (Rentals) – 12" {
		t.Errorf("cutlery text: got %q", got)
	}
}

func TestServiceware_ItemEditErrors(t *testing.T) {
	r := setupServicewareRouter(newMockEventStore(sampleEvent()), enum.UserRoleAdmin)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"bad kind", "POST", "/events/recGala/serviceware/linens/items", map[string]interface{}{"item": "x"}, http.StatusBadRequest},
		{"bad index", "DELETE", "/events/recGala/serviceware/plates/items/abc", nil, http.StatusBadRequest},
		{"index out of range", "DELETE", "/events/recGala/serviceware/plates/items/3", nil, http.StatusNotFound},
		{"negative qty", "POST", "/events/recGala/serviceware/plates/items", map[string]interface{}{"item": "x", "qty": -2}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, r, tt.method, tt.path, tt.body)
			if rr.Code != tt.want {
				t.Errorf("got %d, want %d; body: %s", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestServiceware_Counts(t *testing.T) {
	s := newMockEventStore(sampleEvent())
	r := setupServicewareRouter(s, enum.UserRoleCoordinator)

	if rr := doRequest(t, r, "POST", "/events/recGala/serviceware/autofill", map[string]interface{}{}); rr.Code != http.StatusOK {
		t.Fatalf("autofill: got %d", rr.Code)
	}

	rr := doRequest(t, r, "PUT", "/events/recGala/serviceware/counts", map[string]interface{}{
		"salt_pepper_shakers": 20,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("counts: got %d; body: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(s.events["recGala"].PlatesText, "• S&P Shakers (FoodWerx China) – 20") {
		t.Errorf("plates text: %q", s.events["recGala"].PlatesText)
	}
}

func TestServiceware_CountsRowMissing(t *testing.T) {
	r := setupServicewareRouter(newMockEventStore(sampleEvent()), enum.UserRoleCoordinator)

	rr := doRequest(t, r, "PUT", "/events/recGala/serviceware/counts", map[string]interface{}{
		"bread_baskets": 4,
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("got %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
}
