package services

import (
	"context"
	"testing"

	"comanda-service/internal/domain"
	"comanda-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_PendingWork(t *testing.T) {
	open := []domain.Order{
		*CreateMockOrder(1, domain.OrderOpen, domain.LinePending, domain.LinePending, domain.LinePending),
		*CreateMockOrder(2, domain.OrderOpen, domain.LineDelivered),
	}

	tests := []struct {
		name          string
		ident         domain.Identity
		user          *domain.User
		expectedNames []string
		expectedError error
		ingredients   bool
	}{
		{
			name:          "kitchen sees kitchen lines",
			ident:         kitchen(),
			user:          &domain.User{ID: TestStationID, Role: domain.RoleKitchen, CategoryID: uptr(TestKitchenCat)},
			expectedNames: []string{"Tacos", "Sopa"},
		},
		{
			name:          "reassignment applies without a new login",
			ident:         kitchen(),
			user:          &domain.User{ID: TestStationID, Role: domain.RoleKitchen, CategoryID: uptr(TestBarCat)},
			expectedNames: []string{"Cerveza"},
		},
		{
			name:          "station without category sees nothing",
			ident:         domain.Identity{UserID: TestStationID, Role: domain.RoleBartender},
			user:          &domain.User{ID: TestStationID, Role: domain.RoleBartender},
			expectedNames: []string{},
		},
		{
			name:          "chef gets recipe breakdown",
			ident:         domain.Identity{UserID: TestStationID, Role: domain.RoleChef},
			user:          &domain.User{ID: TestStationID, Role: domain.RoleChef, CategoryID: uptr(TestKitchenCat)},
			expectedNames: []string{"Tacos", "Sopa"},
			ingredients:   true,
		},
		{
			name:          "waiter has no queue",
			ident:         waiter(),
			expectedError: &domain.ForbiddenError{},
		},
		{
			name:          "deleted user",
			ident:         kitchen(),
			expectedError: &domain.AuthError{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mocks.MockOrderRepository)
			catalog := new(mocks.MockCatalogRepository)
			users := new(mocks.MockUserRepository)
			users.On("FindByID", mock.Anything, tt.ident.UserID).Return(tt.user, nil).Maybe()
			orders.On("FindOpen", mock.Anything).Return(open, nil).Maybe()
			if tt.ingredients {
				catalog.On("ProductsByIDs", mock.Anything, mock.Anything).Return(CreateMockProducts(), nil)
				catalog.On("RecipesByIDs", mock.Anything, []uint64{100}).Return(CreateMockRecipes(), nil)
				catalog.On("RawMaterialsByIDs", mock.Anything, []uint64{1}).Return(map[uint64]domain.RawMaterial{
					1: {ID: 1, Name: "Pollo", Unit: "kg"},
				}, nil)
			}
			svc := NewDashboardService(orders, catalog, users)

			items, err := svc.PendingWork(context.Background(), tt.ident, domain.SortCreatedAsc)
			if tt.expectedError != nil {
				assert.IsType(t, tt.expectedError, err)
				return
			}
			require.NoError(t, err)
			names := make([]string, 0, len(items))
			for _, it := range items {
				names = append(names, it.ProductName)
			}
			assert.Equal(t, tt.expectedNames, names)
			if tt.ingredients {
				require.Len(t, items[1].Ingredients, 1)
				assert.Equal(t, "Pollo", items[1].Ingredients[0].Name)
				assert.Empty(t, items[0].Ingredients)
			}
			catalog.AssertExpectations(t)
		})
	}
}
