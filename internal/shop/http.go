package shop

import (
	"encoding/json"
	"errors"
	"net/http"

	"guidepost/internal/events"
	"guidepost/internal/model"
	"guidepost/internal/server"
)

type Handler struct {
	repo Repo
	bus  *events.Bus
}

func NewHandler(repo Repo, bus *events.Bus) *Handler {
	return &Handler{repo: repo, bus: bus}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func (h *Handler) publish(kind events.Kind, payload string) {
	if h.bus != nil {
		h.bus.Publish(events.Event{Kind: kind, Payload: payload})
	}
}

func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) Register(mux *http.ServeMux, rr *server.RouteRegistry) {
	// Orders
	server.Handle(mux, rr, "GET /api/orders", "List orders", "", h.listOrders)
	server.Handle(mux, rr, "POST /api/orders", "Create order",
		`{"customer_name":"Ada","total_cents":4500,"currency":"USD"}`, h.createOrder)
	server.Handle(mux, rr, "POST /api/orders/{id}/status", "Update order status",
		`{"status":"confirmed"}`, h.setOrderStatus)

	// Conversations
	server.Handle(mux, rr, "GET /api/conversations", "List conversations", "", h.listConversations)
	server.Handle(mux, rr, "POST /api/conversations", "Create conversation",
		`{"customer_name":"Ada","last_message":"Is this in stock?","unread":true}`, h.createConversation)
	server.Handle(mux, rr, "POST /api/conversations/{id}/unread", "Mark conversation read/unread",
		`{"unread":false}`, h.setConversationUnread)

	// Products
	server.Handle(mux, rr, "GET /api/products", "List products", "", h.listProducts)
	server.Handle(mux, rr, "POST /api/products", "Create product",
		`{"name":"Mug","price_cents":1200,"currency":"USD","stock":10}`, h.createProduct)
	server.Handle(mux, rr, "PATCH /api/products/{id}", "Update product",
		`{"stock":7}`, h.updateProduct)

	// Customers
	server.Handle(mux, rr, "GET /api/customers", "List customers", "", h.listCustomers)
	server.Handle(mux, rr, "POST /api/customers", "Create customer",
		`{"name":"Ada","phone":"+15550101"}`, h.createCustomer)

	// Readiness
	server.Handle(mux, rr, "GET /api/readiness", "Store setup readiness flags", "", h.getReadiness)
	server.Handle(mux, rr, "PUT /api/readiness", "Set readiness flags",
		`{"dan_verified":true}`, h.setReadiness)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.ListOrders()
	if err != nil {
		writeErr(w, statusCodeFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var o model.Order
	if err := decodeJSON(r, &o); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	created, err := h.repo.CreateOrder(o)
	if err != nil {
		writeErr(w, statusCodeFor(err), err.Error())
		return
	}
	h.publish(events.KindOrdersChanged, string(created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	updated, err := h.repo.SetOrderStatus(model.OrderID(r.PathValue("id")), body.Status)
	if err != nil {
		writeErr(w, statusCodeFor(err), err.Error())
		return
	}
	h.publish(events.KindOrdersChanged, string(updated.ID))
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) listConversations(w http.ResponseWriter, r *http.Request) {
	convs, err := h.repo.ListConversations()
	if err != nil {
		writeErr(w, statusCodeFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, convs)
}

func (h *Handler) createConversation(w http.ResponseWriter, r *http.Request) {
	var c model.Conversation
	if err := decodeJSON(r, &c); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	created, err := h.repo.CreateConversation(c)
	if err != nil {
		writeErr(w, statusCodeFor(err), err.Error())
		return
	}
	h.publish(events.KindConversationsChanged, string(created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) setConversationUnread(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Unread bool `json:"unread"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	updated, err := h.repo.SetConversationUnread(model.ConversationID(r.PathValue("id")), body.Unread)
	if err != nil {
		writeErr(w, statusCodeFor(err), err.Error())
		return
	}
	h.publish(events.KindConversationsChanged, string(updated.ID))
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListProducts()
	if err != nil {
		writeErr(w, statusCodeFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := decodeJSON(r, &p); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	created, err := h.repo.CreateProduct(p)
	if err != nil {
		writeErr(w, statusCodeFor(err), err.Error())
		return
	}
	h.publish(events.KindCatalogChanged, string(created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var patch ProductPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	updated, err := h.repo.UpdateProduct(model.ProductID(r.PathValue("id")), patch)
	if err != nil {
		writeErr(w, statusCodeFor(err), err.Error())
		return
	}
	h.publish(events.KindCatalogChanged, string(updated.ID))
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repo.ListCustomers()
	if err != nil {
		writeErr(w, statusCodeFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var c model.Customer
	if err := decodeJSON(r, &c); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	created, err := h.repo.CreateCustomer(c)
	if err != nil {
		writeErr(w, statusCodeFor(err), err.Error())
		return
	}
	h.publish(events.KindCustomersChanged, string(created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) getReadiness(w http.ResponseWriter, r *http.Request) {
	ready, err := h.repo.Readiness()
	if err != nil {
		writeErr(w, statusCodeFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ready)
}

func (h *Handler) setReadiness(w http.ResponseWriter, r *http.Request) {
	var ready model.Readiness
	if err := decodeJSON(r, &ready); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	updated, err := h.repo.SetReadiness(ready)
	if err != nil {
		writeErr(w, statusCodeFor(err), err.Error())
		return
	}
	h.publish(events.KindReadinessChanged, "")
	writeJSON(w, http.StatusOK, updated)
}
