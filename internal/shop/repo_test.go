package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidepost/internal/model"
)

func TestMemoryRepo_OrderLifecycle(t *testing.T) {
	r := NewMemoryRepo()

	created, err := r.CreateOrder(model.Order{CustomerName: "Ada", TotalCents: 4500, Currency: "USD"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.OrderPending, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := r.GetOrder(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	updated, err := r.SetOrderStatus(created.ID, model.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderShipped, updated.Status)

	_, err = r.SetOrderStatus(created.ID, model.OrderStatus("teleported"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = r.GetOrder("ord_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_CreateOrderRejectsBadStatus(t *testing.T) {
	r := NewMemoryRepo()
	_, err := r.CreateOrder(model.Order{Status: model.OrderStatus("nope")})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestMemoryRepo_ConversationUnreadToggle(t *testing.T) {
	r := NewMemoryRepo()

	c, err := r.CreateConversation(model.Conversation{CustomerName: "Ada", LastMessage: "hi", Unread: true})
	require.NoError(t, err)
	assert.Equal(t, "web", c.Channel)
	assert.False(t, c.LastMessageAt.IsZero())

	c, err = r.SetConversationUnread(c.ID, false)
	require.NoError(t, err)
	assert.False(t, c.Unread)

	_, err = r.SetConversationUnread("conv_missing", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_ProductPatch(t *testing.T) {
	r := NewMemoryRepo()

	p, err := r.CreateProduct(model.Product{Name: "Mug", PriceCents: 1200, Stock: 10})
	require.NoError(t, err)

	stock := 7
	published := true
	p, err = r.UpdateProduct(p.ID, ProductPatch{Stock: &stock, Published: &published})
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)
	assert.True(t, p.Published)
	// Untouched fields survive the patch.
	assert.Equal(t, "Mug", p.Name)
	assert.Equal(t, int64(1200), p.PriceCents)

	_, err = r.UpdateProduct("prod_missing", ProductPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_SnapshotCounts(t *testing.T) {
	r := NewMemoryRepo()

	_, err := r.CreateProduct(model.Product{Name: "Mug"})
	require.NoError(t, err)
	_, err = r.CreateCustomer(model.Customer{Name: "Ada"})
	require.NoError(t, err)

	pending, err := r.CreateOrder(model.Order{CustomerName: "Ada"})
	require.NoError(t, err)
	shipped, err := r.CreateOrder(model.Order{CustomerName: "Bob"})
	require.NoError(t, err)
	_, err = r.SetOrderStatus(shipped.ID, model.OrderShipped)
	require.NoError(t, err)

	_, err = r.CreateConversation(model.Conversation{CustomerName: "Ada", Unread: true})
	require.NoError(t, err)
	read, err := r.CreateConversation(model.Conversation{CustomerName: "Bob", Unread: true})
	require.NoError(t, err)
	_, err = r.SetConversationUnread(read.ID, false)
	require.NoError(t, err)

	snap, err := r.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.ProductCount)
	assert.Equal(t, 1, snap.CustomerCount)
	assert.Equal(t, 1, snap.OrdersAwaitingMerchant())
	assert.Equal(t, 1, snap.UnreadConversations())
	assert.Len(t, snap.Orders, 2)

	// Confirmed still counts as awaiting merchant action.
	_, err = r.SetOrderStatus(pending.ID, model.OrderConfirmed)
	require.NoError(t, err)
	snap, err = r.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.OrdersAwaitingMerchant())
}

func TestMemoryRepo_ReadinessRoundTrip(t *testing.T) {
	r := NewMemoryRepo()

	ready, err := r.Readiness()
	require.NoError(t, err)
	assert.False(t, ready.DANVerified)

	ready.DANVerified = true
	ready.PhoneAdded = true
	saved, err := r.SetReadiness(ready)
	require.NoError(t, err)
	assert.False(t, saved.UpdatedAt.IsZero())

	back, err := r.Readiness()
	require.NoError(t, err)
	assert.True(t, back.DANVerified)
	assert.True(t, back.PhoneAdded)
	assert.False(t, back.PaymentsEnabled)
}
