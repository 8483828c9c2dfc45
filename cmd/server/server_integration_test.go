package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"guidepost/internal/events"
	"guidepost/internal/guidance"
	"guidepost/internal/httpmw"
	"guidepost/internal/server"
	"guidepost/internal/shop"
	"guidepost/internal/store"
	"guidepost/internal/telemetry"
)

type testApp struct {
	t       *testing.T
	handler http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	repo := shop.NewMemoryRepo()
	kv := store.NewMemoryKV()
	bus := events.NewBus()
	telem := telemetry.NewMemoryRepository()
	telemetry.BindBus(bus, telem, zap.NewNop())

	svc := guidance.NewService(kv, guidance.RealClock{}, zap.NewNop(), guidance.Options{
		Telemetry: telem,
	}, repo.Snapshot)
	if err := svc.Load(); err != nil {
		t.Fatalf("load guidance service: %v", err)
	}
	svc.Bind(bus)

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}
	server.RegisterMetaRoutes(mux, rr, time.Now())
	shop.NewHandler(repo, bus).Register(mux, rr)
	guidance.NewHandler(svc).Register(mux, rr)
	telemetry.NewHandler(telem).Register(mux, rr)

	return &testApp{
		t: t,
		handler: httpmw.Chain(mux,
			httpmw.WithRequestID,
			httpmw.WithRecover(zap.NewNop()),
		),
	}
}

func (a *testApp) request(method, path string, body []byte) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res := httptest.NewRecorder()
	a.handler.ServeHTTP(res, req)
	return res
}

func (a *testApp) json(method, path string, payload any) *httptest.ResponseRecorder {
	a.t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		a.t.Fatalf("marshal payload: %v", err)
	}
	return a.request(method, path, b)
}

func decode[T any](t *testing.T, res *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(res.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", res.Body.String(), err)
	}
	return out
}

type guidanceView struct {
	Daily   []taskView `json:"daily"`
	Weekly  []taskView `json:"weekly"`
	Monthly []taskView `json:"monthly"`
}

type taskView struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Progress *struct {
		Current int `json:"current"`
		Total   int `json:"total"`
	} `json:"progress"`
}

func getGuidance(t *testing.T, app *testApp) guidanceView {
	t.Helper()
	res := app.request(http.MethodGet, "/api/guidance", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("guidance expected 200, got %d body=%s", res.Code, res.Body.String())
	}
	return decode[guidanceView](t, res)
}

func taskByID(tasks []taskView, id string) (taskView, bool) {
	for _, tk := range tasks {
		if tk.ID == id {
			return tk, true
		}
	}
	return taskView{}, false
}

func TestServer_MetaRoutes(t *testing.T) {
	app := newTestApp(t)

	health := app.request(http.MethodGet, "/api/health", nil)
	if health.Code != http.StatusOK {
		t.Fatalf("health expected 200, got %d", health.Code)
	}

	routes := app.request(http.MethodGet, "/api/routes", nil)
	if routes.Code != http.StatusOK {
		t.Fatalf("routes expected 200, got %d", routes.Code)
	}
	docs := decode[[]map[string]any](t, routes)
	found := false
	for _, d := range docs {
		if d["pattern"] == "/api/guidance" {
			found = true
		}
	}
	if !found {
		t.Fatalf("route registry missing /api/guidance: %s", routes.Body.String())
	}
}

func TestServer_GuidanceReactsToShopMutations(t *testing.T) {
	app := newTestApp(t)

	// Fresh store: no products yet, nothing awaiting action.
	g := getGuidance(t, app)
	if len(g.Daily) != 3 {
		t.Fatalf("expected 3 daily tasks, got %d", len(g.Daily))
	}
	if tk, _ := taskByID(g.Daily, "add_product"); tk.State != "pending" {
		t.Fatalf("add_product expected pending, got %q", tk.State)
	}
	if tk, _ := taskByID(g.Daily, "confirm_orders"); tk.State != "completed" {
		t.Fatalf("confirm_orders expected completed with no orders, got %q", tk.State)
	}

	// The important one-time setup task leads the weekly tier.
	if len(g.Weekly) == 0 || g.Weekly[0].ID != "verify_dan" {
		t.Fatalf("expected verify_dan first in weekly tier, got %+v", g.Weekly)
	}

	// Creating a product flips add_product without an explicit completion.
	res := app.json(http.MethodPost, "/api/products", map[string]any{
		"name": "Mug", "price_cents": 1200, "currency": "USD", "stock": 10,
	})
	if res.Code != http.StatusCreated {
		t.Fatalf("create product expected 201, got %d body=%s", res.Code, res.Body.String())
	}
	g = getGuidance(t, app)
	if tk, _ := taskByID(g.Daily, "add_product"); tk.State != "completed" {
		t.Fatalf("add_product expected completed after product create, got %q", tk.State)
	}

	// A pending order reopens confirm_orders; moving it past confirmation
	// closes it again.
	res = app.json(http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Ada", "total_cents": 4500, "currency": "USD",
	})
	if res.Code != http.StatusCreated {
		t.Fatalf("create order expected 201, got %d body=%s", res.Code, res.Body.String())
	}
	order := decode[map[string]any](t, res)
	orderID, _ := order["id"].(string)

	g = getGuidance(t, app)
	if tk, _ := taskByID(g.Daily, "confirm_orders"); tk.State != "pending" {
		t.Fatalf("confirm_orders expected pending with an open order, got %q", tk.State)
	}

	res = app.json(http.MethodPost, "/api/orders/"+orderID+"/status", map[string]any{
		"status": "processing",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("set order status expected 200, got %d body=%s", res.Code, res.Body.String())
	}
	g = getGuidance(t, app)
	if tk, _ := taskByID(g.Daily, "confirm_orders"); tk.State != "completed" {
		t.Fatalf("confirm_orders expected completed after processing, got %q", tk.State)
	}

	// Setting the readiness flag retires verify_dan and lets the next
	// template fill the freed slot.
	res = app.json(http.MethodPut, "/api/readiness", map[string]any{
		"dan_verified": true,
	})
	if res.Code != http.StatusOK {
		t.Fatalf("set readiness expected 200, got %d body=%s", res.Code, res.Body.String())
	}
	g = getGuidance(t, app)
	if _, ok := taskByID(g.Weekly, "verify_dan"); ok {
		t.Fatalf("verify_dan should leave the weekly tier once verified: %+v", g.Weekly)
	}
	if len(g.Weekly) != 3 {
		t.Fatalf("weekly tier should refill to capacity, got %d", len(g.Weekly))
	}
}

func TestServer_ExplicitCompleteAndStats(t *testing.T) {
	app := newTestApp(t)

	res := app.json(http.MethodPost, "/api/guidance/complete", map[string]any{
		"task_id": "review_ai_suggestions",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("complete expected 200, got %d body=%s", res.Code, res.Body.String())
	}
	g := decode[guidanceView](t, res)
	if tk, _ := taskByID(g.Weekly, "review_ai_suggestions"); tk.State != "completed" {
		t.Fatalf("review_ai_suggestions expected completed, got %q", tk.State)
	}

	// Unknown ids are a silent no-op, not an error.
	res = app.json(http.MethodPost, "/api/guidance/complete", map[string]any{
		"task_id": "no_such_task",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("unknown complete expected 200, got %d body=%s", res.Code, res.Body.String())
	}

	stats := app.request(http.MethodGet, "/api/stats", nil)
	if stats.Code != http.StatusOK {
		t.Fatalf("stats expected 200, got %d", stats.Code)
	}
	agg := decode[map[string]any](t, stats)
	if n, _ := agg["task_completions"].(float64); n < 1 {
		t.Fatalf("stats should count the explicit completion: %s", stats.Body.String())
	}
}
