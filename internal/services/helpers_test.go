package services

import (
	"time"

	"comanda-service/internal/domain"
	"comanda-service/internal/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)

const (
	TestWaiterID   = uint64(7)
	TestStationID  = uint64(8)
	TestKitchenCat = uint64(1)
	TestBarCat     = uint64(2)
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func uptr(v uint64) *uint64 { return &v }

func CreateMockProducts() map[uint64]domain.Product {
	stock := money("10")
	return map[uint64]domain.Product{
		10: {ID: 10, Name: "Tacos", CategoryID: TestKitchenCat, SalePrice: money("20"), Stock: &stock, Unit: "orden", Status: domain.StatusActive},
		11: {ID: 11, Name: "Sopa", CategoryID: TestKitchenCat, SalePrice: money("30"), RecipeID: uptr(100), Status: domain.StatusActive},
		20: {ID: 20, Name: "Cerveza", CategoryID: TestBarCat, SalePrice: money("15"), Stock: &stock, Unit: "pz", Status: domain.StatusActive},
	}
}

func CreateMockRecipes() map[uint64]domain.Recipe {
	return map[uint64]domain.Recipe{
		100: {ID: 100, Name: "Sopa", Items: []domain.RecipeItem{{RecipeID: 100, RawMaterialID: 1, Quantity: money("0.5")}}},
	}
}

// CreateMockOrder returns an open order with one line per product id. Line
// ids are id*100 + position + 1.
func CreateMockOrder(id uint64, status domain.OrderStatus, lines ...domain.LineStatus) *domain.Order {
	products := CreateMockProducts()
	o := &domain.Order{ID: id, Table: "3", PartySize: 2, WaiterID: TestWaiterID, Status: status, Total: decimal.Zero, CreatedAt: testNow}
	ids := []uint64{10, 20, 11}
	for i, s := range lines {
		p := products[ids[i%len(ids)]]
		o.Lines = append(o.Lines, domain.OrderLine{
			ID:         id*100 + uint64(i) + 1,
			OrderID:    id,
			ProductID:  p.ID,
			CategoryID: p.CategoryID,
			Name:       p.Name,
			Price:      p.SalePrice,
			Status:     s,
			Position:   i,
			CreatedAt:  testNow,
		})
	}
	return o
}

func waiter() domain.Identity {
	return domain.Identity{UserID: TestWaiterID, Name: "Luis", Role: domain.RoleWaiter}
}

func kitchen() domain.Identity {
	return domain.Identity{UserID: TestStationID, Name: "Cocina", Role: domain.RoleKitchen, CategoryID: uptr(TestKitchenCat)}
}

func admin() domain.Identity {
	return domain.Identity{UserID: 1, Name: "Admin", Role: domain.RoleAdmin}
}

func newOrderService() (*OrderService, *mocks.MockOrderRepository, *mocks.MockCatalogRepository, *mocks.MockPublisher) {
	repo := new(mocks.MockOrderRepository)
	catalog := new(mocks.MockCatalogRepository)
	pub := new(mocks.MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	svc := NewOrderService(repo, catalog, pub)
	svc.now = func() time.Time { return testNow }
	return svc, repo, catalog, pub
}
