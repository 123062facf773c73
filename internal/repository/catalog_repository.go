package repository

import (
	"context"

	"comanda-service/internal/domain"

	"github.com/shopspring/decimal"
)

type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	FindCategory(ctx context.Context, id uint64) (*domain.Category, error)
	SaveCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id uint64) error
	CountProductsInCategory(ctx context.Context, id uint64) (int64, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)
	FindProduct(ctx context.Context, id uint64) (*domain.Product, error)
	ProductsByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.Product, error)
	SaveProduct(ctx context.Context, p *domain.Product) error
	UpdateRecipeCost(ctx context.Context, recipeID uint64, cost decimal.Decimal) error

	ListRecipes(ctx context.Context) ([]domain.Recipe, error)
	FindRecipe(ctx context.Context, id uint64) (*domain.Recipe, error)
	RecipesByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.Recipe, error)
	SaveRecipe(ctx context.Context, r *domain.Recipe) error
	DeleteRecipe(ctx context.Context, id uint64) error

	ListRawMaterials(ctx context.Context) ([]domain.RawMaterial, error)
	FindRawMaterial(ctx context.Context, id uint64) (*domain.RawMaterial, error)
	RawMaterialsByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.RawMaterial, error)
	SaveRawMaterial(ctx context.Context, m *domain.RawMaterial) error
	DeleteRawMaterial(ctx context.Context, id uint64) error
	RecordMovement(ctx context.Context, m *domain.RawMaterial, mv *domain.InventoryMovement) error
	Movements(ctx context.Context, rawMaterialID uint64) ([]domain.InventoryMovement, error)
}

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	ListStationUsers(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Save(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id uint64) error
}
