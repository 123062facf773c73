package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TicketLine struct {
	OrderID uint64          `json:"comanda_id"`
	LineID  uint64          `json:"id"`
	Name    string          `json:"nombre"`
	Detail  string          `json:"detalle,omitempty"`
	Price   decimal.Decimal `json:"precio"`
}

// Ticket is the read-only billing snapshot: delivered lines and their total.
type Ticket struct {
	OrderIDs       []uint64        `json:"comandas"`
	UnifiedOrderID *uint64         `json:"comanda_unificada_id,omitempty"`
	Table          string          `json:"mesa"`
	Diners         string          `json:"comensales,omitempty"`
	PartySize      int             `json:"personas"`
	Lines          []TicketLine    `json:"productos"`
	Total          decimal.Decimal `json:"total"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

func TicketFor(now time.Time, orders ...*Order) *Ticket {
	t := &Ticket{Total: decimal.Zero, GeneratedAt: now}
	var tables, diners []string
	for _, o := range orders {
		t.OrderIDs = append(t.OrderIDs, o.ID)
		tables = append(tables, o.Table)
		if o.DinerName != "" {
			diners = append(diners, o.DinerName)
		}
		t.PartySize += o.PartySize
		for _, l := range o.Lines {
			if l.Status != LineDelivered {
				continue
			}
			t.Lines = append(t.Lines, TicketLine{OrderID: o.ID, LineID: l.ID, Name: l.Name, Detail: l.Detail, Price: l.Price})
			t.Total = t.Total.Add(l.Price)
		}
	}
	t.Table = strings.Join(tables, ", ")
	t.Diners = strings.Join(diners, ", ")
	return t
}
