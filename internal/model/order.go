package model

import "time"

type OrderID string

// OrderStatus follows the merchant fulfillment lifecycle.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID           OrderID     `json:"id"`
	CustomerID   CustomerID  `json:"customer_id"`
	CustomerName string      `json:"customer_name"`
	Status       OrderStatus `json:"status"`
	TotalCents   int64       `json:"total_cents"`
	Currency     string      `json:"currency"`
	Items        []OrderItem `json:"items"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ProductID ProductID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitCents int64     `json:"unit_cents"`
}

// AwaitingMerchant reports whether the order still needs merchant action.
func (o *Order) AwaitingMerchant() bool {
	return o.Status == OrderPending || o.Status == OrderConfirmed
}

func (o *Order) IsOpen() bool {
	return o.Status != OrderDelivered && o.Status != OrderCancelled
}
