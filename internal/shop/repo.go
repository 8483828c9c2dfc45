package shop

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"guidepost/internal/model"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

// ProductPatch is a partial product update. nil pointer => "no change".
type ProductPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Published   *bool   `json:"published,omitempty"`
}

// Repo is the merchant data layer: orders, conversations, catalog, customers
// and the one-time readiness flags, plus the snapshot view the guidance
// engine derives from.
type Repo interface {
	CreateOrder(o model.Order) (model.Order, error)
	GetOrder(id model.OrderID) (model.Order, error)
	SetOrderStatus(id model.OrderID, status model.OrderStatus) (model.Order, error)
	ListOrders() ([]model.Order, error)

	CreateConversation(c model.Conversation) (model.Conversation, error)
	SetConversationUnread(id model.ConversationID, unread bool) (model.Conversation, error)
	ListConversations() ([]model.Conversation, error)

	CreateProduct(p model.Product) (model.Product, error)
	UpdateProduct(id model.ProductID, patch ProductPatch) (model.Product, error)
	ListProducts() ([]model.Product, error)

	CreateCustomer(c model.Customer) (model.Customer, error)
	ListCustomers() ([]model.Customer, error)

	Readiness() (model.Readiness, error)
	SetReadiness(r model.Readiness) (model.Readiness, error)

	Snapshot() (model.Snapshot, error)
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

var validStatuses = map[model.OrderStatus]bool{
	model.OrderPending:    true,
	model.OrderConfirmed:  true,
	model.OrderProcessing: true,
	model.OrderShipped:    true,
	model.OrderDelivered:  true,
	model.OrderCancelled:  true,
}

func applyProductPatch(p *model.Product, patch ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.PriceCents != nil {
		p.PriceCents = *patch.PriceCents
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Published != nil {
		p.Published = *patch.Published
	}
}

// shopState is the full mutable merchant state. MemoryRepo and FileRepo share
// it; FileRepo additionally persists it as JSON.
type shopState struct {
	Orders        map[model.OrderID]model.Order               `json:"orders"`
	Conversations map[model.ConversationID]model.Conversation `json:"conversations"`
	Products      map[model.ProductID]model.Product           `json:"products"`
	Customers     map[model.CustomerID]model.Customer         `json:"customers"`
	Ready         model.Readiness                             `json:"readiness"`
}

func newShopState() shopState {
	return shopState{
		Orders:        map[model.OrderID]model.Order{},
		Conversations: map[model.ConversationID]model.Conversation{},
		Products:      map[model.ProductID]model.Product{},
		Customers:     map[model.CustomerID]model.Customer{},
	}
}

func (s *shopState) normalize() {
	if s.Orders == nil {
		s.Orders = map[model.OrderID]model.Order{}
	}
	if s.Conversations == nil {
		s.Conversations = map[model.ConversationID]model.Conversation{}
	}
	if s.Products == nil {
		s.Products = map[model.ProductID]model.Product{}
	}
	if s.Customers == nil {
		s.Customers = map[model.CustomerID]model.Customer{}
	}
}

// MemoryRepo is the map-backed Repo used by tests and as the embedded core of
// the file-backed repo.
type MemoryRepo struct {
	mu sync.RWMutex
	s  shopState

	// persist is called with the lock held after every mutation; the file
	// repo hooks saving in here.
	persist func() error
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{s: newShopState()}
}

func (r *MemoryRepo) CreateOrder(o model.Order) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	o.ID = model.OrderID(newID("ord"))
	if o.Status == "" {
		o.Status = model.OrderPending
	}
	if !validStatuses[o.Status] {
		return model.Order{}, ErrInvalidStatus
	}
	o.CreatedAt = now
	o.UpdatedAt = now

	r.s.Orders[o.ID] = o
	return o, r.persistLocked()
}

func (r *MemoryRepo) GetOrder(id model.OrderID) (model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.s.Orders[id]
	if !ok {
		return model.Order{}, ErrNotFound
	}
	return o, nil
}

func (r *MemoryRepo) SetOrderStatus(id model.OrderID, status model.OrderStatus) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !validStatuses[status] {
		return model.Order{}, ErrInvalidStatus
	}
	o, ok := r.s.Orders[id]
	if !ok {
		return model.Order{}, ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	r.s.Orders[id] = o
	return o, r.persistLocked()
}

func (r *MemoryRepo) ListOrders() ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Order, 0, len(r.s.Orders))
	for _, o := range r.s.Orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) CreateConversation(c model.Conversation) (model.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	c.ID = model.ConversationID(newID("conv"))
	if c.Channel == "" {
		c.Channel = "web"
	}
	if c.LastMessageAt.IsZero() {
		c.LastMessageAt = now
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	r.s.Conversations[c.ID] = c
	return c, r.persistLocked()
}

func (r *MemoryRepo) SetConversationUnread(id model.ConversationID, unread bool) (model.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.s.Conversations[id]
	if !ok {
		return model.Conversation{}, ErrNotFound
	}
	c.Unread = unread
	c.UpdatedAt = time.Now()
	r.s.Conversations[id] = c
	return c, r.persistLocked()
}

func (r *MemoryRepo) ListConversations() ([]model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Conversation, 0, len(r.s.Conversations))
	for _, c := range r.s.Conversations {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out, nil
}

func (r *MemoryRepo) CreateProduct(p model.Product) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	p.ID = model.ProductID(newID("prod"))
	p.CreatedAt = now
	p.UpdatedAt = now

	r.s.Products[p.ID] = p
	return p, r.persistLocked()
}

func (r *MemoryRepo) UpdateProduct(id model.ProductID, patch ProductPatch) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.s.Products[id]
	if !ok {
		return model.Product{}, ErrNotFound
	}
	applyProductPatch(&p, patch)
	p.UpdatedAt = time.Now()
	r.s.Products[id] = p
	return p, r.persistLocked()
}

func (r *MemoryRepo) ListProducts() ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Product, 0, len(r.s.Products))
	for _, p := range r.s.Products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) CreateCustomer(c model.Customer) (model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	c.ID = model.CustomerID(newID("cust"))
	c.CreatedAt = now
	c.UpdatedAt = now

	r.s.Customers[c.ID] = c
	return c, r.persistLocked()
}

func (r *MemoryRepo) ListCustomers() ([]model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Customer, 0, len(r.s.Customers))
	for _, c := range r.s.Customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Readiness() (model.Readiness, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.Ready, nil
}

func (r *MemoryRepo) SetReadiness(ready model.Readiness) (model.Readiness, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ready.UpdatedAt = time.Now()
	r.s.Ready = ready
	return ready, r.persistLocked()
}

// Snapshot assembles the read-only view the guidance engine consumes.
func (r *MemoryRepo) Snapshot() (model.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := model.Snapshot{
		Readiness:     r.s.Ready,
		Orders:        make([]model.Order, 0, len(r.s.Orders)),
		Conversations: make([]model.Conversation, 0, len(r.s.Conversations)),
		ProductCount:  len(r.s.Products),
		CustomerCount: len(r.s.Customers),
	}
	for _, o := range r.s.Orders {
		snap.Orders = append(snap.Orders, o)
	}
	for _, c := range r.s.Conversations {
		snap.Conversations = append(snap.Conversations, c)
	}
	sort.Slice(snap.Orders, func(i, j int) bool {
		return snap.Orders[i].ID < snap.Orders[j].ID
	})
	sort.Slice(snap.Conversations, func(i, j int) bool {
		return snap.Conversations[i].ID < snap.Conversations[j].ID
	})
	return snap, nil
}

func (r *MemoryRepo) persistLocked() error {
	if r.persist == nil {
		return nil
	}
	return r.persist()
}
