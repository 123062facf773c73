package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderEvent struct {
	OrderID    uint64          `json:"orderId"`
	Table      string          `json:"table"`
	Status     OrderStatus     `json:"status"`
	WaiterID   uint64          `json:"waiterId"`
	Lines      int             `json:"lines"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurredAt"`
}

type LineStatusEvent struct {
	OrderID    uint64     `json:"orderId"`
	LineID     uint64     `json:"lineId"`
	ProductID  uint64     `json:"productId"`
	CategoryID uint64     `json:"categoryId"`
	Table      string     `json:"table"`
	From       LineStatus `json:"from"`
	To         LineStatus `json:"to"`
	ChangedBy  uint64     `json:"changedBy"`
	OccurredAt time.Time  `json:"occurredAt"`
}

type PaymentEvent struct {
	OrderID        uint64          `json:"orderId,omitempty"`
	UnifiedOrderID uint64          `json:"unifiedOrderId,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Payments       []Payment       `json:"payments"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

type UnifiedEvent struct {
	UnifiedOrderID uint64      `json:"unifiedOrderId"`
	OrderIDs       []uint64    `json:"orderIds"`
	Table          string      `json:"table"`
	Status         OrderStatus `json:"status"`
	OccurredAt     time.Time   `json:"occurredAt"`
}
