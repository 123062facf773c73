package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"comanda-service/internal/domain"
	"comanda-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name          string
		desde, hasta  string
		expectedFrom  string
		expectedTo    string
		expectedError string
	}{
		{name: "defaults to today", expectedFrom: "2026-03-14", expectedTo: "2026-03-15"},
		{name: "inclusive end", desde: "2026-03-01", hasta: "2026-03-10", expectedFrom: "2026-03-01", expectedTo: "2026-03-11"},
		{name: "bad date", desde: "01/03/2026", expectedError: "desde: expected YYYY-MM-DD"},
		{name: "reversed", desde: "2026-03-10", hasta: "2026-03-01", expectedError: "hasta: must not be before desde"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.desde, tt.hasta, testNow)
			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedFrom, r.From.Format("2006-01-02"))
			assert.Equal(t, tt.expectedTo, r.To.Format("2006-01-02"))
		})
	}
}

func newReportService() (*ReportService, *mocks.MockOrderRepository, *mocks.MockCatalogRepository, *mocks.MockUserRepository, *mocks.MockExporter) {
	orders := new(mocks.MockOrderRepository)
	catalog := new(mocks.MockCatalogRepository)
	users := new(mocks.MockUserRepository)
	exporter := new(mocks.MockExporter)
	svc := NewReportService(orders, catalog, users, exporter)
	svc.now = func() time.Time { return testNow }
	return svc, orders, catalog, users, exporter
}

func TestReportService_Sales(t *testing.T) {
	svc, orders, _, _, _ := newReportService()
	r, err := ParseRange("2026-03-01", "2026-03-14", testNow)
	require.NoError(t, err)

	paid := CreateMockOrder(1, domain.OrderPaid, domain.LineDelivered, domain.LineDelivered)
	paid.Total = money("35")
	orders.On("FindBetween", mock.Anything, r.From, r.To, domain.OrderStatus("")).Return([]domain.Order{*paid}, nil)
	orders.On("PaymentsBetween", mock.Anything, r.From, r.To).Return([]domain.Payment{
		{OrderID: uptr(1), Method: domain.PaymentCard, Amount: money("35")},
	}, nil)

	rep, err := svc.Sales(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Orders)
	assert.True(t, money("35").Equal(rep.Total))
	assert.True(t, money("35").Equal(rep.ByMethod[domain.PaymentCard]))
}

func TestReportService_SalesFailure(t *testing.T) {
	svc, orders, _, _, _ := newReportService()
	orders.On("FindBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("database error"))
	orders.On("PaymentsBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Payment{}, nil).Maybe()

	_, err := svc.Sales(context.Background(), Range{From: testNow, To: testNow})
	assert.EqualError(t, err, "database error")
}

func TestReportService_UserNotFound(t *testing.T) {
	svc, _, _, users, _ := newReportService()
	users.On("FindByID", mock.Anything, uint64(99)).Return(nil, nil)

	_, err := svc.User(context.Background(), 99, Range{From: testNow, To: testNow})
	assert.IsType(t, &domain.NotFoundError{}, err)
}

func TestReportService_InventoryAndExport(t *testing.T) {
	svc, _, catalog, _, exporter := newReportService()
	catalog.On("ListRawMaterials", mock.Anything).Return([]domain.RawMaterial{{ID: 1, Stock: money("2"), UnitCost: money("10")}}, nil)
	catalog.On("ListProducts", mock.Anything).Return([]domain.Product{}, nil)

	rep, err := svc.Inventory(context.Background())
	require.NoError(t, err)
	assert.True(t, money("20").Equal(rep.Total))

	exporter.On("Export", rep).Return("http://localhost:8080/exports/inventario.xlsx", nil)
	url, err := svc.Export(rep)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/exports/inventario.xlsx", url)
}

func TestReportService_Today(t *testing.T) {
	svc, orders, _, _, _ := newReportService()
	from := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	orders.On("FindBetween", mock.Anything, from, from.AddDate(0, 0, 1), domain.OrderStatus("")).Return([]domain.Order{
		*CreateMockOrder(1, domain.OrderOpen, domain.LinePending, domain.LinePending),
	}, nil)
	orders.On("PaymentsBetween", mock.Anything, from, from.AddDate(0, 0, 1)).Return(nil, nil)

	rep, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", rep.Date)
	assert.Equal(t, 1, rep.OpenOrders)
	assert.Equal(t, 2, rep.PendingLines)
}
