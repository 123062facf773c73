package services

import (
	"context"
	"time"

	"comanda-service/internal/domain"
	rabbit "comanda-service/internal/infra/rabbitmq"
	"comanda-service/internal/repository"

	"go.uber.org/zap"
)

const (
	EventOrderCreated      = "comanda.created"
	EventOrderUpdated      = "comanda.updated"
	EventLineStatusChanged = "comanda.line_status_changed"
	EventOrderClosed       = "comanda.closed"
	EventOrderPaid         = "comanda.paid"
	EventOrderCancelled    = "comanda.cancelled"
	EventOrderUnified      = "comanda.unified"
)

type OrderService struct {
	repo      repository.OrderRepository
	catalog   repository.CatalogRepository
	publisher rabbit.PublisherInterface
	now       func() time.Time
}

func NewOrderService(r repository.OrderRepository, c repository.CatalogRepository, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		repo:      r,
		catalog:   c,
		publisher: pub,
		now:       time.Now,
	}
}

// CreateOrder opens an order on behalf of a waiter; no other role opens
// orders.
func (u *OrderService) CreateOrder(ctx context.Context, waiter domain.Identity, draft domain.OrderDraft) (*domain.Order, error) {
	if !waiter.Role.Can(domain.CapTakeOrders) {
		return nil, &domain.ForbiddenError{Message: "only waiters open orders"}
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	products, recipes, err := u.loadProducts(ctx, draft.Lines)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(draft, waiter.UserID, products, u.now())
	if err != nil {
		return nil, err
	}
	lines := make([]*domain.OrderLine, len(order.Lines))
	for i := range order.Lines {
		lines[i] = &order.Lines[i]
	}
	if err := u.repo.Create(ctx, order, domain.ComputeConsumption(lines, products, recipes)); err != nil {
		return nil, err
	}

	go u.publish(EventOrderCreated, orderEvent(order))
	return order, nil
}

// loadProducts fetches the products referenced by lines and the recipes
// behind them.
func (u *OrderService) loadProducts(ctx context.Context, lines []domain.LineInput) (map[uint64]domain.Product, map[uint64]domain.Recipe, error) {
	ids := make([]uint64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := u.catalog.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	var recipeIDs []uint64
	for _, p := range products {
		if p.RecipeID != nil {
			recipeIDs = append(recipeIDs, *p.RecipeID)
		}
	}
	recipes, err := u.catalog.RecipesByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, nil, err
	}
	return products, recipes, nil
}

func (u *OrderService) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &domain.NotFoundError{Resource: "comanda", ID: id}
	}
	return o, nil
}

func (u *OrderService) ListOpen(ctx context.Context) ([]domain.Order, error) {
	return u.repo.FindOpen(ctx)
}

// DailyOrders returns every order created since local midnight.
func (u *OrderService) DailyOrders(ctx context.Context) ([]domain.Order, error) {
	from := domain.StartOfDay(u.now())
	return u.repo.FindBetween(ctx, from, from.AddDate(0, 0, 1), "")
}

func (u *OrderService) EditOrder(ctx context.Context, id uint64, draft domain.OrderDraft) (*domain.Order, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	order, err := u.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	products, recipes, err := u.loadProducts(ctx, draft.Lines)
	if err != nil {
		return nil, err
	}
	added, err := order.ApplyEdit(draft, products, u.now())
	if err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, order, domain.ComputeConsumption(added, products, recipes)); err != nil {
		return nil, err
	}
	go u.publish(EventOrderUpdated, orderEvent(order))
	return order, nil
}

func (u *OrderService) AddLines(ctx context.Context, id uint64, lines []domain.LineInput) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, &domain.ValidationError{Field: "productos", Message: "at least one product is required"}
	}
	order, err := u.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	products, recipes, err := u.loadProducts(ctx, lines)
	if err != nil {
		return nil, err
	}
	added, err := order.AddLines(lines, products, u.now())
	if err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, order, domain.ComputeConsumption(added, products, recipes)); err != nil {
		return nil, err
	}
	go u.publish(EventOrderUpdated, orderEvent(order))
	return order, nil
}

// SetLineStatus is the station transition. Lines outside the station's
// category are reported as missing.
func (u *OrderService) SetLineStatus(ctx context.Context, station domain.Identity, lineID uint64, to domain.LineStatus) (*domain.OrderLine, error) {
	if !station.Role.Can(domain.CapWorkQueue) {
		return nil, &domain.ForbiddenError{Message: "only kitchen, bar and chef users update products"}
	}
	order, line, err := u.findLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if !domain.Visible(*line, station.CategoryID) {
		return nil, &domain.NotFoundError{Resource: "comanda_producto", ID: lineID}
	}
	if order.Status != domain.OrderOpen {
		return nil, &domain.InvalidStateError{Message: "order is " + string(order.Status)}
	}
	from := line.Status
	if err := line.SetStatus(to, u.now()); err != nil {
		return nil, err
	}
	if err := u.repo.UpdateLine(ctx, line); err != nil {
		return nil, err
	}
	go u.publish(EventLineStatusChanged, lineEvent(order, line, from, station.UserID))
	return line, nil
}

// ResetLineToPending is the admin override used from the daily orders view.
func (u *OrderService) ResetLineToPending(ctx context.Context, admin domain.Identity, lineID uint64) (*domain.OrderLine, error) {
	if !admin.Role.Can(domain.CapResetLine) {
		return nil, &domain.ForbiddenError{Message: "only administrators reset products to pending"}
	}
	order, line, err := u.findLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	from := line.Status
	if err := line.ResetToPending(order); err != nil {
		return nil, err
	}
	if err := u.repo.UpdateLine(ctx, line); err != nil {
		return nil, err
	}
	go u.publish(EventLineStatusChanged, lineEvent(order, line, from, admin.UserID))
	return line, nil
}

func (u *OrderService) findLine(ctx context.Context, lineID uint64) (*domain.Order, *domain.OrderLine, error) {
	order, err := u.repo.FindByLineID(ctx, lineID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, &domain.NotFoundError{Resource: "comanda_producto", ID: lineID}
	}
	line, err := order.Line(lineID)
	if err != nil {
		return nil, nil, err
	}
	return order, line, nil
}

// CloseOrder closes the order and returns its ticket.
func (u *OrderService) CloseOrder(ctx context.Context, id uint64) (*domain.Ticket, error) {
	order, err := u.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket, err := order.Close(u.now())
	if err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, order, domain.Consumption{}); err != nil {
		return nil, err
	}
	go u.publish(EventOrderClosed, orderEvent(order))
	return ticket, nil
}

func (u *OrderService) PayOrder(ctx context.Context, id uint64, payments []domain.Payment) (*domain.Order, error) {
	order, err := u.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	recorded, err := order.Pay(payments, u.now())
	if err != nil {
		return nil, err
	}
	if err := u.repo.SavePayments(ctx, order, recorded); err != nil {
		return nil, err
	}
	go u.publish(EventOrderPaid, paymentEvent(order.ID, 0, recorded))
	return order, nil
}

func (u *OrderService) CancelOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	order, err := u.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(u.now()); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, order, domain.Consumption{}); err != nil {
		return nil, err
	}
	go u.publish(EventOrderCancelled, orderEvent(order))
	return order, nil
}

func (u *OrderService) publish(pattern string, evt any) {
	if err := u.publisher.Publish(context.Background(), pattern, evt); err != nil {
		zap.L().Warn("failed to publish event", zap.String("pattern", pattern), zap.Error(err))
	}
}
