package services

import (
	"context"
	"testing"

	"comanda-service/internal/domain"
	"comanda-service/internal/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogService() (*CatalogService, *mocks.MockCatalogRepository, *mocks.MockUserRepository, *mocks.MockCache) {
	repo := new(mocks.MockCatalogRepository)
	users := new(mocks.MockUserRepository)
	cache := new(mocks.MockCache)
	return NewCatalogService(repo, users, cache), repo, users, cache
}

func TestCatalogService_ListCategories(t *testing.T) {
	t.Run("cache hit skips the database", func(t *testing.T) {
		svc, repo, _, cache := newCatalogService()
		cache.On("Get", mock.Anything, cacheCategories, mock.Anything).Return(true, nil).Run(func(args mock.Arguments) {
			*args.Get(2).(*[]domain.Category) = []domain.Category{{ID: 1, Name: "Platillos"}}
		})

		cats, err := svc.ListCategories(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Platillos", cats[0].Name)
		repo.AssertNotCalled(t, "ListCategories", mock.Anything)
	})

	t.Run("miss loads and stores", func(t *testing.T) {
		svc, repo, _, cache := newCatalogService()
		cats := []domain.Category{{ID: 1, Name: "Platillos"}, {ID: 2, Name: "Bebidas"}}
		cache.On("Get", mock.Anything, cacheCategories, mock.Anything).Return(false, nil)
		repo.On("ListCategories", mock.Anything).Return(cats, nil)
		cache.On("Set", mock.Anything, cacheCategories, cats, cacheTTL).Return(nil)

		got, err := svc.ListCategories(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 2)
		cache.AssertExpectations(t)
	})
}

func TestCatalogService_SaveCategoryInvalidates(t *testing.T) {
	svc, repo, _, cache := newCatalogService()
	repo.On("SaveCategory", mock.Anything, mock.AnythingOfType("*domain.Category")).Return(nil)
	cache.On("Del", mock.Anything, []string{cacheCategories}).Return(nil)

	c := &domain.Category{Name: "  Postres "}
	require.NoError(t, svc.SaveCategory(context.Background(), c))
	assert.Equal(t, "Postres", c.Name)
	assert.Equal(t, domain.StatusActive, c.Status)
	cache.AssertExpectations(t)

	assert.Error(t, svc.SaveCategory(context.Background(), &domain.Category{}))
}

func TestCatalogService_DeleteCategoryWithProducts(t *testing.T) {
	svc, repo, _, _ := newCatalogService()
	repo.On("FindCategory", mock.Anything, uint64(1)).Return(&domain.Category{ID: 1, Name: "Platillos"}, nil)
	repo.On("CountProductsInCategory", mock.Anything, uint64(1)).Return(int64(3), nil)

	err := svc.DeleteCategory(context.Background(), 1)
	assert.IsType(t, &domain.InvalidStateError{}, err)
	repo.AssertNotCalled(t, "DeleteCategory", mock.Anything, mock.Anything)
}

func TestCatalogService_SaveProductFromRecipe(t *testing.T) {
	svc, repo, _, cache := newCatalogService()
	repo.On("FindCategory", mock.Anything, uint64(1)).Return(&domain.Category{ID: 1}, nil)
	repo.On("FindRecipe", mock.Anything, uint64(100)).Return(&domain.Recipe{ID: 100, Name: "Sopa", Items: []domain.RecipeItem{
		{RawMaterialID: 1, Quantity: money("0.5")},
	}}, nil)
	repo.On("RawMaterialsByIDs", mock.Anything, []uint64{1}).Return(map[uint64]domain.RawMaterial{
		1: {ID: 1, UnitCost: money("40")},
	}, nil)
	repo.On("SaveProduct", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
	cache.On("Del", mock.Anything, []string{cacheProducts}).Return(nil)

	stock := money("3")
	p := &domain.Product{Code: "SOP", Name: "Sopa", CategoryID: 1, RecipeID: uptr(100), SalePrice: money("30"), Stock: &stock, Unit: "plato"}
	require.NoError(t, svc.SaveProduct(context.Background(), p))

	assert.True(t, money("20").Equal(p.UnitCost))
	assert.Nil(t, p.Stock)
	assert.Empty(t, p.Unit)
	repo.AssertExpectations(t)
}

func TestCatalogService_SaveRecipeRecostsProducts(t *testing.T) {
	svc, repo, _, cache := newCatalogService()
	repo.On("RawMaterialsByIDs", mock.Anything, []uint64{1, 2}).Return(map[uint64]domain.RawMaterial{
		1: {ID: 1, UnitCost: money("40")},
		2: {ID: 2, UnitCost: money("2")},
	}, nil)
	repo.On("SaveRecipe", mock.Anything, mock.AnythingOfType("*domain.Recipe")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Recipe).ID = 5
	})
	repo.On("UpdateRecipeCost", mock.Anything, uint64(5), mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(money("26"))
	})).Return(nil)
	cache.On("Del", mock.Anything, []string{cacheProducts}).Return(nil)

	view, err := svc.SaveRecipe(context.Background(), &domain.Recipe{Name: "Sopa", Items: []domain.RecipeItem{
		{RawMaterialID: 1, Quantity: money("0.5")},
		{RawMaterialID: 2, Quantity: money("3")},
	}})
	require.NoError(t, err)
	assert.Equal(t, "26.00", view.UnitCost)
	repo.AssertExpectations(t)
}

func TestCatalogService_SaveRecipeUnknownMaterial(t *testing.T) {
	svc, repo, _, _ := newCatalogService()
	repo.On("RawMaterialsByIDs", mock.Anything, []uint64{9}).Return(map[uint64]domain.RawMaterial{}, nil)

	_, err := svc.SaveRecipe(context.Background(), &domain.Recipe{Name: "X", Items: []domain.RecipeItem{{RawMaterialID: 9, Quantity: money("1")}}})
	assert.IsType(t, &domain.NotFoundError{}, err)
	repo.AssertNotCalled(t, "SaveRecipe", mock.Anything, mock.Anything)
}

func TestCatalogService_RecordMovement(t *testing.T) {
	svc, repo, _, _ := newCatalogService()
	repo.On("FindRawMaterial", mock.Anything, uint64(1)).Return(&domain.RawMaterial{ID: 1, Name: "Pollo", Stock: money("2")}, nil)
	repo.On("RecordMovement", mock.Anything, mock.AnythingOfType("*domain.RawMaterial"), mock.MatchedBy(func(mv *domain.InventoryMovement) bool {
		return *mv.RawMaterialID == 1 && mv.UserID == 1 && mv.Kind == domain.MovementIn
	})).Return(nil)

	m, err := svc.RecordMovement(context.Background(), admin(), 1, domain.InventoryMovement{Kind: domain.MovementIn, Quantity: money("3")})
	require.NoError(t, err)
	assert.True(t, money("5").Equal(m.Stock))

	_, err = svc.RecordMovement(context.Background(), admin(), 1, domain.InventoryMovement{Kind: domain.MovementOut, Quantity: money("9")})
	assert.IsType(t, &domain.ValidationError{}, err)
}

func TestCatalogService_SaveUser(t *testing.T) {
	tests := []struct {
		name          string
		id            uint64
		input         UserInput
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockCatalogRepository)
		expectedError string
	}{
		{
			name:  "create station user",
			input: UserInput{Name: "Cocina 1", Email: "Cocina@Example.com", Password: "x", Role: domain.RoleKitchen, CategoryID: uptr(1)},
			setupMocks: func(users *mocks.MockUserRepository, repo *mocks.MockCatalogRepository) {
				repo.On("FindCategory", mock.Anything, uint64(1)).Return(&domain.Category{ID: 1}, nil)
				users.On("FindByEmail", mock.Anything, "cocina@example.com").Return(nil, nil)
				users.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
					return u.PasswordHash != "" && u.Status == domain.StatusActive
				})).Return(nil)
			},
		},
		{
			name:          "password required on create",
			input:         UserInput{Name: "Ana", Email: "ana@example.com", Role: domain.RoleWaiter},
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockCatalogRepository) {},
			expectedError: "password: password is required",
		},
		{
			name:          "waiters take no category",
			input:         UserInput{Name: "Ana", Email: "ana@example.com", Password: "x", Role: domain.RoleWaiter, CategoryID: uptr(1)},
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockCatalogRepository) {},
			expectedError: "categoria_id: only kitchen, bar and chef users take a category",
		},
		{
			name:  "email taken",
			input: UserInput{Name: "Ana", Email: "ana@example.com", Password: "x", Role: domain.RoleWaiter},
			setupMocks: func(users *mocks.MockUserRepository, _ *mocks.MockCatalogRepository) {
				users.On("FindByEmail", mock.Anything, "ana@example.com").Return(&domain.User{ID: 3}, nil)
			},
			expectedError: "email: email already in use",
		},
		{
			name:  "update keeps the hash",
			id:    3,
			input: UserInput{Name: "Ana M", Email: "ana@example.com", Role: domain.RoleWaiter},
			setupMocks: func(users *mocks.MockUserRepository, _ *mocks.MockCatalogRepository) {
				users.On("FindByID", mock.Anything, uint64(3)).Return(&domain.User{ID: 3, PasswordHash: "hash", Status: domain.StatusActive}, nil)
				users.On("FindByEmail", mock.Anything, "ana@example.com").Return(&domain.User{ID: 3}, nil)
				users.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
					return u.PasswordHash == "hash" && u.Name == "Ana M"
				})).Return(nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, users, _ := newCatalogService()
			tt.setupMocks(users, repo)

			u, err := svc.SaveUser(context.Background(), tt.id, tt.input)
			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
				users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, u)
			users.AssertExpectations(t)
		})
	}
}

func TestCatalogService_Associate(t *testing.T) {
	svc, repo, users, _ := newCatalogService()
	users.On("FindByID", mock.Anything, uint64(4)).Return(&domain.User{ID: 4, Role: domain.RoleWaiter}, nil)
	_, err := svc.Associate(context.Background(), 4, uptr(1))
	assert.IsType(t, &domain.ValidationError{}, err)

	users.On("FindByID", mock.Anything, uint64(8)).Return(&domain.User{ID: 8, Role: domain.RoleBartender}, nil)
	repo.On("FindCategory", mock.Anything, uint64(2)).Return(&domain.Category{ID: 2}, nil)
	users.On("Save", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	u, err := svc.Associate(context.Background(), 8, uptr(2))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), *u.CategoryID)
}
