package model

// Snapshot is a best-effort, read-only view of the business state at one
// moment. The guidance engine derives task tiers from it and never mutates it.
type Snapshot struct {
	Readiness     Readiness      `json:"readiness"`
	Orders        []Order        `json:"orders"`
	Conversations []Conversation `json:"conversations"`
	ProductCount  int            `json:"product_count"`
	CustomerCount int            `json:"customer_count"`
}

func (s *Snapshot) OrdersAwaitingMerchant() int {
	n := 0
	for i := range s.Orders {
		if s.Orders[i].AwaitingMerchant() {
			n++
		}
	}
	return n
}

func (s *Snapshot) UnreadConversations() int {
	n := 0
	for i := range s.Conversations {
		if s.Conversations[i].Unread {
			n++
		}
	}
	return n
}
