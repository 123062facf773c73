package client

import (
	"context"
	"time"

	"comanda-service/internal/domain"
)

// Dashboard is the view a session lands on after login. The concrete type
// decides which operations are reachable; roles without one get NoDashboard.
type Dashboard interface {
	Role() domain.Role
	dashboard()
}

// OrderTaker is the order side of the client, without station or admin
// operations.
type OrderTaker interface {
	ListOpenOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id uint64) (*domain.Order, error)
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error)
	EditOrder(ctx context.Context, id uint64, draft domain.OrderDraft) (*domain.Order, error)
	EditOrderPreserving(ctx context.Context, current *domain.Order, edit OrderEdit) (*domain.Order, error)
	AddLines(ctx context.Context, id uint64, lines []domain.LineInput) (*domain.Order, error)
	CancelOrder(ctx context.Context, id uint64) (*domain.Order, error)
	CloseOrder(ctx context.Context, id uint64) (*domain.Ticket, error)
	PayOrder(ctx context.Context, id uint64, payments []domain.Payment) (*domain.Order, error)
	Unify(ctx context.Context, ids []uint64) (*UnifiedOrder, error)
	GetUnified(ctx context.Context, id uint64) (*UnifiedOrder, error)
	UnifiedTicket(ctx context.Context, id uint64) (*domain.Ticket, error)
	PayUnified(ctx context.Context, id uint64, payments []domain.Payment) (*domain.UnifiedOrder, error)
}

type Reporter interface {
	SalesReport(ctx context.Context, from, to time.Time) (*domain.SalesReport, error)
	InventoryReport(ctx context.Context) (*domain.InventoryReport, error)
	UserReport(ctx context.Context, userID uint64, from, to time.Time) (*domain.UserReport, error)
	OrdersReport(ctx context.Context, from, to time.Time, status domain.OrderStatus) (*domain.OrdersReport, error)
	TodayReport(ctx context.Context) (*domain.TodayReport, error)
	Export(ctx context.Context, r ReportRequest) (string, error)
}

// orderTaker and reporter hide the rest of the Client's method set.
type (
	orderTaker struct{ OrderTaker }
	reporter   struct{ Reporter }
)

type WaiterDashboard struct {
	c    *Client
	role domain.Role
}

func (d *WaiterDashboard) Role() domain.Role { return d.role }
func (*WaiterDashboard) dashboard() {}

func (d *WaiterDashboard) OpenOrders(ctx context.Context) ([]domain.Order, error) {
	return d.c.ListOpenOrders(ctx)
}

func (d *WaiterDashboard) Menu() *CatalogReader { return d.c.Menu() }

// Orders exposes the order operations a waiter can run.
func (d *WaiterDashboard) Orders() OrderTaker { return orderTaker{d.c} }

// StationDashboard serves kitchen, bar and chef. Only the chef sees recipe
// ingredients on work items.
type StationDashboard struct {
	c    *Client
	role domain.Role
}

func (d *StationDashboard) Role() domain.Role { return d.role }
func (*StationDashboard) dashboard() {}

func (d *StationDashboard) ShowsIngredients() bool {
	return d.role.Can(domain.CapRecipeBreakdown)
}

func (d *StationDashboard) Pending(ctx context.Context, sort domain.SortKey) ([]domain.WorkItem, error) {
	return d.c.PendingWork(ctx, d.role, sort)
}

func (d *StationDashboard) Deliver(ctx context.Context, lineID uint64) (*domain.OrderLine, error) {
	return d.c.SetLineStatus(ctx, d.role, lineID, domain.LineDelivered)
}

func (d *StationDashboard) CancelLine(ctx context.Context, lineID uint64) (*domain.OrderLine, error) {
	return d.c.SetLineStatus(ctx, d.role, lineID, domain.LineCancelled)
}

type AdminDashboard struct {
	c *Client
}

func (*AdminDashboard) Role() domain.Role { return domain.RoleAdmin }
func (*AdminDashboard) dashboard() {}

func (d *AdminDashboard) DailyOrders(ctx context.Context) ([]domain.Order, error) {
	return d.c.DailyOrders(ctx)
}

func (d *AdminDashboard) ResetLine(ctx context.Context, lineID uint64) (*domain.OrderLine, error) {
	return d.c.ResetLineToPending(ctx, lineID)
}

func (d *AdminDashboard) Catalog() *CatalogReader { return d.c.Catalog() }

// Waiter gives the administrator the waiter's view to follow, close and
// bill orders. Opening orders stays with waiters.
func (d *AdminDashboard) Waiter() *WaiterDashboard {
	return &WaiterDashboard{c: d.c, role: domain.RoleAdmin}
}

func (d *AdminDashboard) Reports() Reporter { return reporter{d.c} }

// NoDashboard is returned for an empty session or a role the client does
// not know.
type NoDashboard struct {
	role domain.Role
}

func (d NoDashboard) Role() domain.Role { return d.role }
func (NoDashboard) dashboard() {}

// DashboardFor picks the view for the current session.
func (c *Client) DashboardFor() Dashboard {
	ident, ok := c.session.Current()
	if !ok {
		return NoDashboard{}
	}
	switch {
	case ident.Role.Can(domain.CapManageCatalog):
		return &AdminDashboard{c: c}
	case ident.Role.Can(domain.CapTakeOrders):
		return &WaiterDashboard{c: c, role: ident.Role}
	case ident.Role.Station():
		return &StationDashboard{c: c, role: ident.Role}
	}
	return NoDashboard{role: ident.Role}
}
