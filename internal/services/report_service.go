package services

import (
	"context"
	"time"

	"comanda-service/internal/domain"
	"comanda-service/internal/infra"
	"comanda-service/internal/repository"

	"golang.org/x/sync/errgroup"
)

type ReportService struct {
	orders   repository.OrderRepository
	catalog  repository.CatalogRepository
	users    repository.UserRepository
	exporter infra.ExporterInterface
	now      func() time.Time
}

func NewReportService(o repository.OrderRepository, c repository.CatalogRepository, u repository.UserRepository, e infra.ExporterInterface) *ReportService {
	return &ReportService{orders: o, catalog: c, users: u, exporter: e, now: time.Now}
}

// Range is a half-open [From, To) window of whole days.
type Range struct {
	From time.Time
	To   time.Time
}

// ParseRange reads desde/hasta as YYYY-MM-DD. Missing values default to
// today; hasta is inclusive.
func ParseRange(desde, hasta string, now time.Time) (Range, error) {
	day := func(field, v string) (time.Time, error) {
		if v == "" {
			return domain.StartOfDay(now), nil
		}
		t, err := time.ParseInLocation("2006-01-02", v, now.Location())
		if err != nil {
			return time.Time{}, &domain.ValidationError{Field: field, Message: "expected YYYY-MM-DD"}
		}
		return t, nil
	}
	from, err := day("desde", desde)
	if err != nil {
		return Range{}, err
	}
	to, err := day("hasta", hasta)
	if err != nil {
		return Range{}, err
	}
	if to.Before(from) {
		return Range{}, &domain.ValidationError{Field: "hasta", Message: "must not be before desde"}
	}
	return Range{From: from, To: to.AddDate(0, 0, 1)}, nil
}

func (s *ReportService) ordersAndPayments(ctx context.Context, r Range, status domain.OrderStatus) ([]domain.Order, []domain.Payment, error) {
	var (
		orders   []domain.Order
		payments []domain.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.FindBetween(gctx, r.From, r.To, status)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.orders.PaymentsBetween(gctx, r.From, r.To)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return orders, payments, nil
}

func (s *ReportService) Sales(ctx context.Context, r Range) (*domain.SalesReport, error) {
	orders, payments, err := s.ordersAndPayments(ctx, r, "")
	if err != nil {
		return nil, err
	}
	rep := domain.BuildSalesReport(r.From, r.To, orders, payments)
	return &rep, nil
}

func (s *ReportService) User(ctx context.Context, userID uint64, r Range) (*domain.UserReport, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &domain.NotFoundError{Resource: "usuario", ID: userID}
	}
	orders, payments, err := s.ordersAndPayments(ctx, r, "")
	if err != nil {
		return nil, err
	}
	rep := domain.BuildUserReport(*u, r.From, r.To, orders, payments)
	return &rep, nil
}

func (s *ReportService) Orders(ctx context.Context, r Range, status domain.OrderStatus) (*domain.OrdersReport, error) {
	orders, err := s.orders.FindBetween(ctx, r.From, r.To, status)
	if err != nil {
		return nil, err
	}
	rep := domain.BuildOrdersReport(r.From, r.To, orders)
	return &rep, nil
}

func (s *ReportService) Inventory(ctx context.Context) (*domain.InventoryReport, error) {
	var (
		materials []domain.RawMaterial
		products  []domain.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		materials, err = s.catalog.ListRawMaterials(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.catalog.ListProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	rep := domain.BuildInventoryReport(materials, products)
	return &rep, nil
}

func (s *ReportService) Today(ctx context.Context) (*domain.TodayReport, error) {
	now := s.now()
	from := domain.StartOfDay(now)
	orders, payments, err := s.ordersAndPayments(ctx, Range{From: from, To: from.AddDate(0, 0, 1)}, "")
	if err != nil {
		return nil, err
	}
	rep := domain.BuildTodayReport(now, orders, payments)
	return &rep, nil
}

// Export writes the report as a spreadsheet and returns its download URL.
func (s *ReportService) Export(report domain.Tabular) (string, error) {
	return s.exporter.Export(report)
}

func (s *ReportService) Now() time.Time { return s.now() }
