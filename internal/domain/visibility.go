package domain

import (
	"cmp"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type SortKey string

const (
	SortCreatedAsc   SortKey = "created_asc"
	SortCreatedDesc  SortKey = "created_desc"
	SortTableAsc     SortKey = "table_asc"
	SortTableDesc    SortKey = "table_desc"
	SortPriorityAsc  SortKey = "priority_asc"
	SortPriorityDesc SortKey = "priority_desc"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortCreatedAsc, nil
	case SortCreatedAsc, SortCreatedDesc, SortTableAsc, SortTableDesc, SortPriorityAsc, SortPriorityDesc:
		return k, nil
	}
	return "", validation("sort", "unknown sort key %q", s)
}

// WorkItem is one pending line in a station's queue.
type WorkItem struct {
	LineID      uint64          `json:"id"`
	OrderID     uint64          `json:"comanda_id"`
	Table       string          `json:"mesa"`
	DinerName   string          `json:"nombre_comensal,omitempty"`
	ProductID   uint64          `json:"producto_id"`
	ProductName string          `json:"nombre"`
	CategoryID  uint64          `json:"categoria_id"`
	Priority    int             `json:"prioridad"`
	Detail      string          `json:"detalle,omitempty"`
	Price       decimal.Decimal `json:"precio"`
	Status      LineStatus      `json:"estado"`
	CreatedAt   time.Time       `json:"created_at"`
	Ingredients []Ingredient    `json:"ingredientes,omitempty"`
}

// PendingWork flattens the pending lines of open orders whose category is
// the station's category. A station with no category sees nothing.
func PendingWork(orders []Order, category *uint64, key SortKey) []WorkItem {
	items := []WorkItem{}
	if category == nil {
		return items
	}
	for _, o := range orders {
		if o.Status != OrderOpen {
			continue
		}
		for _, l := range o.Lines {
			if l.Status != LinePending || l.CategoryID != *category {
				continue
			}
			items = append(items, WorkItem{
				LineID:      l.ID,
				OrderID:     o.ID,
				Table:       o.Table,
				DinerName:   o.DinerName,
				ProductID:   l.ProductID,
				ProductName: l.Name,
				CategoryID:  l.CategoryID,
				Priority:    l.Priority,
				Detail:      l.Detail,
				Price:       l.Price,
				Status:      l.Status,
				CreatedAt:   l.CreatedAt,
			})
		}
	}
	SortWork(items, key)
	return items
}

// Visible reports whether a station assigned to category may see the line.
func Visible(l OrderLine, category *uint64) bool {
	return category != nil && l.CategoryID == *category
}

// SortWork orders items by key, breaking ties by creation time then line id.
func SortWork(items []WorkItem, key SortKey) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch key {
		case SortCreatedDesc:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		case SortTableAsc, SortTableDesc:
			if c := compareTables(a.Table, b.Table); c != 0 {
				return (c < 0) == (key == SortTableAsc)
			}
		case SortPriorityAsc:
			if a.Priority != b.Priority {
				return a.Priority < b.Priority
			}
		case SortPriorityDesc:
			if a.Priority != b.Priority {
				return a.Priority > b.Priority
			}
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.LineID < b.LineID
	})
}

// compareTables sorts numeric table labels numerically and the rest
// lexically after them.
func compareTables(a, b string) int {
	na, aok := tableNumber(a)
	nb, bok := tableNumber(b)
	switch {
	case aok && bok:
		return cmp.Compare(na, nb)
	case aok:
		return -1
	case bok:
		return 1
	}
	return cmp.Compare(a, b)
}

func tableNumber(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
