package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UnifiedOrder groups two or more open orders under one bill. Members keep
// their own ids and lines; the group only references them.
type UnifiedOrder struct {
	ID        uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Status    OrderStatus     `json:"estado" gorm:"type:enum('abierta','cerrada','pagada','cancelada');default:'abierta'"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null;default:0"`
	Members   []Order         `json:"comandas" gorm:"foreignKey:UnifiedOrderID"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
	ClosedAt  *time.Time      `json:"closed_at,omitempty"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
}

func (UnifiedOrder) TableName() string { return "comandas_unificadas" }

// UnifiedLine is a line seen through the group, keeping its owning order.
type UnifiedLine struct {
	OrderID uint64    `json:"comanda_id"`
	Line    OrderLine `json:"producto"`
}

// Unify validates the candidates and builds the group. Orders must be open,
// distinct and not already unified.
func Unify(orders []Order, now time.Time) (*UnifiedOrder, error) {
	if len(orders) < 2 {
		return nil, validation("ids", "at least two orders are required to unify")
	}
	seen := make(map[uint64]bool, len(orders))
	for _, o := range orders {
		if seen[o.ID] {
			return nil, validation("ids", "order %d listed twice", o.ID)
		}
		seen[o.ID] = true
		if o.Status != OrderOpen {
			return nil, validation("ids", "order %d is %s", o.ID, o.Status)
		}
		if o.Unified() {
			return nil, validation("ids", "order %d is already unified", o.ID)
		}
	}
	return &UnifiedOrder{
		Status:    OrderOpen,
		Total:     decimal.Zero,
		Members:   orders,
		CreatedAt: now,
	}, nil
}

// Attach points every member at the group id once it is known.
func (u *UnifiedOrder) Attach() {
	for i := range u.Members {
		id := u.ID
		u.Members[i].UnifiedOrderID = &id
	}
}

func (u *UnifiedOrder) TableLabel() string {
	tables := make([]string, 0, len(u.Members))
	for _, m := range u.Members {
		tables = append(tables, m.Table)
	}
	return strings.Join(tables, ", ")
}

func (u *UnifiedOrder) DinerLabel() string {
	names := make([]string, 0, len(u.Members))
	for _, m := range u.Members {
		if m.DinerName != "" {
			names = append(names, m.DinerName)
		}
	}
	return strings.Join(names, ", ")
}

func (u *UnifiedOrder) PartySize() int {
	n := 0
	for _, m := range u.Members {
		n += m.PartySize
	}
	return n
}

// Lines concatenates member lines in member order.
func (u *UnifiedOrder) Lines() []UnifiedLine {
	var out []UnifiedLine
	for _, m := range u.Members {
		for _, l := range m.Lines {
			out = append(out, UnifiedLine{OrderID: m.ID, Line: l})
		}
	}
	return out
}

func (u *UnifiedOrder) PayableTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range u.Members {
		total = total.Add(u.Members[i].PayableTotal())
	}
	return total
}

// Close closes every member and snapshots the combined total.
func (u *UnifiedOrder) Close(now time.Time) (*Ticket, error) {
	if !u.Status.CanTransition(OrderClosed) {
		return nil, &InvalidTransitionError{Entity: "comanda_unificada", From: string(u.Status), To: string(OrderClosed)}
	}
	active := 0
	for i := range u.Members {
		active += u.Members[i].ActiveLines()
	}
	if active == 0 {
		return nil, invalidState("unified order %d has no active products", u.ID)
	}
	for i := range u.Members {
		m := &u.Members[i]
		if m.ActiveLines() == 0 {
			// Every line of this member was cancelled; it is billed as empty.
			m.Status = OrderClosed
			m.ClosedAt = &now
			continue
		}
		if err := m.close(now); err != nil {
			return nil, err
		}
	}
	u.Status = OrderClosed
	u.Total = u.PayableTotal()
	u.ClosedAt = &now
	ticket := TicketFor(now, ptrs(u.Members)...)
	id := u.ID
	ticket.UnifiedOrderID = &id
	return ticket, nil
}

// Pay settles the group as a whole; members cannot be paid individually.
func (u *UnifiedOrder) Pay(payments []Payment, now time.Time) ([]Payment, error) {
	valid, err := ValidatePayments(payments, u.Total)
	if err != nil {
		return nil, err
	}
	if !u.Status.CanTransition(OrderPaid) {
		return nil, &InvalidTransitionError{Entity: "comanda_unificada", From: string(u.Status), To: string(OrderPaid)}
	}
	for i := range u.Members {
		m := &u.Members[i]
		m.Status = OrderPaid
		m.PaidAt = &now
	}
	u.Status = OrderPaid
	u.PaidAt = &now
	for i := range valid {
		id := u.ID
		valid[i].UnifiedOrderID = &id
		valid[i].CreatedAt = now
	}
	return valid, nil
}

func ptrs(orders []Order) []*Order {
	out := make([]*Order, len(orders))
	for i := range orders {
		out[i] = &orders[i]
	}
	return out
}
