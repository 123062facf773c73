package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)

const (
	catKitchen uint64 = 1
	catBar     uint64 = 2
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func uptr(v uint64) *uint64 { return &v }

func testProducts() map[uint64]Product {
	return map[uint64]Product{
		10: {ID: 10, Name: "Tacos", CategoryID: catKitchen, SalePrice: money("20"), Priority: 2, Status: StatusActive},
		11: {ID: 11, Name: "Sopa", CategoryID: catKitchen, SalePrice: money("30"), Priority: 1, Status: StatusActive, RecipeID: uptr(100)},
		20: {ID: 20, Name: "Cerveza", CategoryID: catBar, SalePrice: money("15"), Status: StatusActive},
		30: {ID: 30, Name: "Pastel", CategoryID: catKitchen, SalePrice: money("25"), Status: StatusInactive},
	}
}

// orderWith builds an open order whose lines have the given statuses, one
// line per status, alternating Tacos (20) and Sopa (30).
func orderWith(id uint64, table string, statuses ...LineStatus) *Order {
	o := &Order{ID: id, Table: table, PartySize: 2, Status: OrderOpen, Total: decimal.Zero, CreatedAt: testNow}
	products := testProducts()
	for i, s := range statuses {
		p := products[10]
		if i%2 == 1 {
			p = products[11]
		}
		l := newLine(id, p, "", i, testNow.Add(time.Duration(i)*time.Minute))
		l.ID = id*100 + uint64(i) + 1
		l.Status = s
		o.Lines = append(o.Lines, l)
	}
	return o
}
