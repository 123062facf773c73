package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LineStatus string

const (
	LinePending   LineStatus = "pendiente"
	LineDelivered LineStatus = "entregado"
	LineCancelled LineStatus = "cancelado"
)

func (s LineStatus) Terminal() bool {
	return s == LineDelivered || s == LineCancelled
}

func ParseLineStatus(s string) (LineStatus, error) {
	switch LineStatus(s) {
	case LinePending, LineDelivered, LineCancelled:
		return LineStatus(s), nil
	}
	return "", validation("estado", "unknown line status %q", s)
}

// OrderLine is one product instance within an order. Name, price, category
// and priority are copied from the product when the line is created so later
// catalog edits do not rewrite historical tickets.
type OrderLine struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID     uint64          `json:"comanda_id" gorm:"not null;index"`
	ProductID   uint64          `json:"producto_id" gorm:"not null;index"`
	CategoryID  uint64          `json:"categoria_id" gorm:"index"`
	Name        string          `json:"nombre" gorm:"size:120;not null"`
	Price       decimal.Decimal `json:"precio" gorm:"type:decimal(10,2);not null"`
	Priority    int             `json:"prioridad"`
	Detail      string          `json:"detalle,omitempty" gorm:"size:255"`
	Status      LineStatus      `json:"estado" gorm:"type:enum('pendiente','entregado','cancelado');default:'pendiente';index"`
	Position    int             `json:"posicion"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	DeliveredAt *time.Time      `json:"delivered_at,omitempty"`
}

func (OrderLine) TableName() string { return "comanda_productos" }

func newLine(orderID uint64, p Product, detail string, position int, now time.Time) OrderLine {
	return OrderLine{
		OrderID:    orderID,
		ProductID:  p.ID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		Price:      p.SalePrice,
		Priority:   p.Priority,
		Detail:     detail,
		Status:     LinePending,
		Position:   position,
		CreatedAt:  now,
	}
}

// SetStatus applies a station transition. Only pendiente -> entregado and
// pendiente -> cancelado are legal; terminal lines never change.
func (l *OrderLine) SetStatus(to LineStatus, now time.Time) error {
	if l.Status != LinePending || !to.Terminal() {
		return &InvalidTransitionError{Entity: "comanda_producto", From: string(l.Status), To: string(to)}
	}
	l.Status = to
	if to == LineDelivered {
		l.DeliveredAt = &now
	}
	return nil
}

// ResetToPending is the administrative override. It is only reachable while
// the parent order is still open.
func (l *OrderLine) ResetToPending(parent *Order) error {
	if parent.Status != OrderOpen {
		return invalidState("order %d is %s; its products cannot be reset", parent.ID, parent.Status)
	}
	if l.Status == LinePending {
		return &InvalidTransitionError{Entity: "comanda_producto", From: string(l.Status), To: string(LinePending)}
	}
	l.Status = LinePending
	l.DeliveredAt = nil
	return nil
}
