package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Tabular is implemented by reports that can be exported as a sheet.
type Tabular interface {
	Title() string
	Rows() (header []string, rows [][]any)
}

type ProductSales struct {
	ProductID uint64          `json:"producto_id"`
	Name      string          `json:"nombre"`
	Quantity  int             `json:"cantidad"`
	Total     decimal.Decimal `json:"total"`
}

type SalesReport struct {
	From      time.Time                         `json:"desde"`
	To        time.Time                         `json:"hasta"`
	Orders    int                               `json:"comandas"`
	Cancelled int                               `json:"canceladas"`
	Total     decimal.Decimal                   `json:"total"`
	ByMethod  map[PaymentMethod]decimal.Decimal `json:"por_metodo"`
	Products  []ProductSales                    `json:"productos"`
}

// BuildSalesReport aggregates paid orders and the payments received in
// [from, to).
func BuildSalesReport(from, to time.Time, orders []Order, payments []Payment) SalesReport {
	r := SalesReport{From: from, To: to, Total: decimal.Zero, ByMethod: map[PaymentMethod]decimal.Decimal{}}
	byProduct := map[uint64]*ProductSales{}
	for _, o := range orders {
		switch o.Status {
		case OrderCancelled:
			r.Cancelled++
			continue
		case OrderPaid:
		default:
			continue
		}
		r.Orders++
		r.Total = r.Total.Add(o.Total)
		for _, l := range o.Lines {
			if l.Status != LineDelivered {
				continue
			}
			ps, ok := byProduct[l.ProductID]
			if !ok {
				ps = &ProductSales{ProductID: l.ProductID, Name: l.Name, Total: decimal.Zero}
				byProduct[l.ProductID] = ps
			}
			ps.Quantity++
			ps.Total = ps.Total.Add(l.Price)
		}
	}
	for _, p := range payments {
		r.ByMethod[p.Method] = r.ByMethod[p.Method].Add(p.Amount)
	}
	r.Products = make([]ProductSales, 0, len(byProduct))
	for _, ps := range byProduct {
		r.Products = append(r.Products, *ps)
	}
	sort.Slice(r.Products, func(i, j int) bool {
		if !r.Products[i].Total.Equal(r.Products[j].Total) {
			return r.Products[i].Total.GreaterThan(r.Products[j].Total)
		}
		return r.Products[i].ProductID < r.Products[j].ProductID
	})
	return r
}

func (r SalesReport) Title() string { return "Ventas" }

func (r SalesReport) Rows() ([]string, [][]any) {
	rows := make([][]any, 0, len(r.Products)+1)
	for _, p := range r.Products {
		rows = append(rows, []any{p.ProductID, p.Name, p.Quantity, p.Total.StringFixed(2)})
	}
	rows = append(rows, []any{"", "Total", r.Orders, r.Total.StringFixed(2)})
	return []string{"ID", "Producto", "Cantidad", "Total"}, rows
}

type UserReport struct {
	UserID uint64      `json:"usuario_id"`
	Name   string      `json:"nombre"`
	Role   Role        `json:"rol"`
	Sales  SalesReport `json:"ventas"`
}

func BuildUserReport(u User, from, to time.Time, orders []Order, payments []Payment) UserReport {
	own := make([]Order, 0, len(orders))
	ids := map[uint64]bool{}
	unified := map[uint64]bool{}
	for _, o := range orders {
		if o.WaiterID == u.ID {
			own = append(own, o)
			ids[o.ID] = true
			if o.UnifiedOrderID != nil {
				unified[*o.UnifiedOrderID] = true
			}
		}
	}
	var ownPayments []Payment
	for _, p := range payments {
		if (p.OrderID != nil && ids[*p.OrderID]) || (p.UnifiedOrderID != nil && unified[*p.UnifiedOrderID]) {
			ownPayments = append(ownPayments, p)
		}
	}
	return UserReport{UserID: u.ID, Name: u.Name, Role: u.Role, Sales: BuildSalesReport(from, to, own, ownPayments)}
}

func (r UserReport) Title() string { return "Usuario " + r.Name }

func (r UserReport) Rows() ([]string, [][]any) { return r.Sales.Rows() }

type OrdersReport struct {
	From     time.Time           `json:"desde"`
	To       time.Time           `json:"hasta"`
	ByStatus map[OrderStatus]int `json:"por_estado"`
	Orders   []Order             `json:"comandas"`
}

func BuildOrdersReport(from, to time.Time, orders []Order) OrdersReport {
	r := OrdersReport{From: from, To: to, ByStatus: map[OrderStatus]int{}, Orders: orders}
	for _, o := range orders {
		r.ByStatus[o.Status]++
	}
	return r
}

func (r OrdersReport) Title() string { return "Comandas" }

func (r OrdersReport) Rows() ([]string, [][]any) {
	rows := make([][]any, 0, len(r.Orders))
	for _, o := range r.Orders {
		rows = append(rows, []any{o.ID, o.Table, o.PartySize, o.DinerName, string(o.Status), len(o.Lines), o.Total.StringFixed(2), o.CreatedAt.Format(time.RFC3339)})
	}
	return []string{"ID", "Mesa", "Personas", "Comensal", "Estado", "Productos", "Total", "Creada"}, rows
}

type StockValue struct {
	ID       uint64          `json:"id"`
	Code     string          `json:"clave"`
	Name     string          `json:"nombre"`
	Unit     string          `json:"unidad_medida"`
	Stock    decimal.Decimal `json:"cantidad"`
	UnitCost decimal.Decimal `json:"costo_unitario"`
	Value    decimal.Decimal `json:"valor"`
}

type InventoryReport struct {
	RawMaterials []StockValue    `json:"materias_primas"`
	Products     []StockValue    `json:"productos"`
	Total        decimal.Decimal `json:"total"`
}

// BuildInventoryReport values raw materials and directly stocked products.
func BuildInventoryReport(materials []RawMaterial, products []Product) InventoryReport {
	r := InventoryReport{RawMaterials: []StockValue{}, Products: []StockValue{}, Total: decimal.Zero}
	for _, m := range materials {
		v := m.Stock.Mul(m.UnitCost)
		r.RawMaterials = append(r.RawMaterials, StockValue{ID: m.ID, Code: m.Code, Name: m.Name, Unit: m.Unit, Stock: m.Stock, UnitCost: m.UnitCost, Value: v})
		r.Total = r.Total.Add(v)
	}
	for _, p := range products {
		if !p.Stocked() || p.Stock == nil {
			continue
		}
		v := p.Stock.Mul(p.UnitCost)
		r.Products = append(r.Products, StockValue{ID: p.ID, Code: p.Code, Name: p.Name, Unit: p.Unit, Stock: *p.Stock, UnitCost: p.UnitCost, Value: v})
		r.Total = r.Total.Add(v)
	}
	return r
}

func (r InventoryReport) Title() string { return "Inventario" }

func (r InventoryReport) Rows() ([]string, [][]any) {
	var rows [][]any
	add := func(kind string, items []StockValue) {
		for _, s := range items {
			rows = append(rows, []any{kind, s.Code, s.Name, s.Unit, s.Stock.String(), s.UnitCost.String(), s.Value.StringFixed(2)})
		}
	}
	add("materia prima", r.RawMaterials)
	add("producto", r.Products)
	rows = append(rows, []any{"", "", "Total", "", "", "", r.Total.StringFixed(2)})
	return []string{"Tipo", "Clave", "Nombre", "Unidad", "Cantidad", "Costo", "Valor"}, rows
}

type TodayReport struct {
	Date         string      `json:"fecha"`
	OpenOrders   int         `json:"comandas_abiertas"`
	PendingLines int         `json:"productos_pendientes"`
	Sales        SalesReport `json:"ventas"`
}

func BuildTodayReport(day time.Time, orders []Order, payments []Payment) TodayReport {
	from := StartOfDay(day)
	r := TodayReport{Date: from.Format("2006-01-02"), Sales: BuildSalesReport(from, from.AddDate(0, 0, 1), orders, payments)}
	for _, o := range orders {
		if o.Status != OrderOpen {
			continue
		}
		r.OpenOrders++
		for _, l := range o.Lines {
			if l.Status == LinePending {
				r.PendingLines++
			}
		}
	}
	return r
}

func (r TodayReport) Title() string { return "Hoy " + r.Date }

func (r TodayReport) Rows() ([]string, [][]any) { return r.Sales.Rows() }

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
