package mocks

import (
	"context"
	"time"

	"comanda-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// value returns args.Get(i) as T, or the zero T when the mock returned nil.
func value[T any](args mock.Arguments, i int) T {
	var zero T
	if args.Get(i) == nil {
		return zero
	}
	return args.Get(i).(T)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order, c domain.Consumption) error {
	args := m.Called(ctx, order, c)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *domain.Order, c domain.Consumption) error {
	args := m.Called(ctx, order, c)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateLine(ctx context.Context, line *domain.OrderLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	return value[*domain.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) FindByLineID(ctx context.Context, lineID uint64) (*domain.Order, error) {
	args := m.Called(ctx, lineID)
	return value[*domain.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) FindOpen(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return value[[]domain.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) FindBetween(ctx context.Context, from, to time.Time, status domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(ctx, from, to, status)
	return value[[]domain.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) SavePayments(ctx context.Context, order *domain.Order, payments []domain.Payment) error {
	args := m.Called(ctx, order, payments)
	return args.Error(0)
}

func (m *MockOrderRepository) PaymentsBetween(ctx context.Context, from, to time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, from, to)
	return value[[]domain.Payment](args, 0), args.Error(1)
}

func (m *MockOrderRepository) CreateUnified(ctx context.Context, u *domain.UnifiedOrder) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockOrderRepository) FindUnified(ctx context.Context, id uint64) (*domain.UnifiedOrder, error) {
	args := m.Called(ctx, id)
	return value[*domain.UnifiedOrder](args, 0), args.Error(1)
}

func (m *MockOrderRepository) UpdateUnified(ctx context.Context, u *domain.UnifiedOrder, payments []domain.Payment) error {
	args := m.Called(ctx, u, payments)
	return args.Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return value[[]domain.Category](args, 0), args.Error(1)
}

func (m *MockCatalogRepository) FindCategory(ctx context.Context, id uint64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	return value[*domain.Category](args, 0), args.Error(1)
}

func (m *MockCatalogRepository) SaveCategory(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCatalogRepository) DeleteCategory(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogRepository) CountProductsInCategory(ctx context.Context, id uint64) (int64, error) {
	args := m.Called(ctx, id)
	return value[int64](args, 0), args.Error(1)
}

func (m *MockCatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return value[[]domain.Product](args, 0), args.Error(1)
}

func (m *MockCatalogRepository) FindProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	return value[*domain.Product](args, 0), args.Error(1)
}

func (m *MockCatalogRepository) ProductsByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.Product, error) {
	args := m.Called(ctx, ids)
	return value[map[uint64]domain.Product](args, 0), args.Error(1)
}

func (m *MockCatalogRepository) SaveProduct(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockCatalogRepository) UpdateRecipeCost(ctx context.Context, recipeID uint64, cost decimal.Decimal) error {
	return m.Called(ctx, recipeID, cost).Error(0)
}

func (m *MockCatalogRepository) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	args := m.Called(ctx)
	return value[[]domain.Recipe](args, 0), args.Error(1)
}

func (m *MockCatalogRepository) FindRecipe(ctx context.Context, id uint64) (*domain.Recipe, error) {
	args := m.Called(ctx, id)
	return value[*domain.Recipe](args, 0), args.Error(1)
}

func (m *MockCatalogRepository) RecipesByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.Recipe, error) {
	args := m.Called(ctx, ids)
	return value[map[uint64]domain.Recipe](args, 0), args.Error(1)
}

func (m *MockCatalogRepository) SaveRecipe(ctx context.Context, r *domain.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockCatalogRepository) DeleteRecipe(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogRepository) ListRawMaterials(ctx context.Context) ([]domain.RawMaterial, error) {
	args := m.Called(ctx)
	return value[[]domain.RawMaterial](args, 0), args.Error(1)
}

func (m *MockCatalogRepository) FindRawMaterial(ctx context.Context, id uint64) (*domain.RawMaterial, error) {
	args := m.Called(ctx, id)
	return value[*domain.RawMaterial](args, 0), args.Error(1)
}

func (m *MockCatalogRepository) RawMaterialsByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.RawMaterial, error) {
	args := m.Called(ctx, ids)
	return value[map[uint64]domain.RawMaterial](args, 0), args.Error(1)
}

func (m *MockCatalogRepository) SaveRawMaterial(ctx context.Context, rm *domain.RawMaterial) error {
	return m.Called(ctx, rm).Error(0)
}

func (m *MockCatalogRepository) DeleteRawMaterial(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogRepository) RecordMovement(ctx context.Context, rm *domain.RawMaterial, mv *domain.InventoryMovement) error {
	return m.Called(ctx, rm, mv).Error(0)
}

func (m *MockCatalogRepository) Movements(ctx context.Context, rawMaterialID uint64) ([]domain.InventoryMovement, error) {
	args := m.Called(ctx, rawMaterialID)
	return value[[]domain.InventoryMovement](args, 0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return value[[]domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) ListStationUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return value[[]domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	args := m.Called(ctx, id)
	return value[*domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return value[*domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	return m.Called(ctx, routingKey, data).Error(0)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Put(ctx context.Context, id string, ident domain.Identity, ttl time.Duration) error {
	return m.Called(ctx, id, ident, ttl).Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*domain.Identity, error) {
	args := m.Called(ctx, id)
	return value[*domain.Identity](args, 0), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCache struct {
	mock.Mock
}

// Get reports a miss unless the expectation returns true.
func (m *MockCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	args := m.Called(ctx, key, dst)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	return m.Called(ctx, key, v, ttl).Error(0)
}

func (m *MockCache) Del(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(report domain.Tabular) (string, error) {
	args := m.Called(report)
	return args.String(0), args.Error(1)
}
