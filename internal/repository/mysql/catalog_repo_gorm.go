package mysql

import (
	"context"

	"comanda-service/internal/domain"
	"comanda-service/internal/repository"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepo{db: db}
}

// first loads one row into dst, mapping a missing row to found=false.
func first(db *gorm.DB, dst any, id uint64) (bool, error) {
	if err := db.First(dst, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *catalogRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, errors.Wrap(err, "list categorias")
}

func (r *catalogRepo) FindCategory(ctx context.Context, id uint64) (*domain.Category, error) {
	var c domain.Category
	ok, err := first(r.db.WithContext(ctx), &c, id)
	if err != nil || !ok {
		return nil, errors.Wrapf(err, "find categoria %d", id)
	}
	return &c, nil
}

func (r *catalogRepo) SaveCategory(ctx context.Context, c *domain.Category) error {
	return errors.Wrap(r.db.WithContext(ctx).Save(c).Error, "save categoria")
}

func (r *catalogRepo) DeleteCategory(ctx context.Context, id uint64) error {
	return errors.Wrapf(r.db.WithContext(ctx).Delete(&domain.Category{}, id).Error, "delete categoria %d", id)
}

func (r *catalogRepo) CountProductsInCategory(ctx context.Context, id uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("category_id = ?", id).Count(&n).Error
	return n, errors.Wrap(err, "count productos")
}

func (r *catalogRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, errors.Wrap(err, "list productos")
}

func (r *catalogRepo) FindProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	ok, err := first(r.db.WithContext(ctx), &p, id)
	if err != nil || !ok {
		return nil, errors.Wrapf(err, "find producto %d", id)
	}
	return &p, nil
}

func (r *catalogRepo) ProductsByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.Product, error) {
	out := make(map[uint64]domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "find productos")
	}
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}

func (r *catalogRepo) SaveProduct(ctx context.Context, p *domain.Product) error {
	return errors.Wrap(r.db.WithContext(ctx).Save(p).Error, "save producto")
}

func (r *catalogRepo) UpdateRecipeCost(ctx context.Context, recipeID uint64, cost decimal.Decimal) error {
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("recipe_id = ?", recipeID).
		Update("unit_cost", cost).Error
	return errors.Wrapf(err, "update cost of receta %d", recipeID)
}

func (r *catalogRepo) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	var out []domain.Recipe
	err := r.db.WithContext(ctx).Preload("Items").Order("name ASC").Find(&out).Error
	return out, errors.Wrap(err, "list recetas")
}

func (r *catalogRepo) FindRecipe(ctx context.Context, id uint64) (*domain.Recipe, error) {
	var rec domain.Recipe
	ok, err := first(r.db.WithContext(ctx).Preload("Items"), &rec, id)
	if err != nil || !ok {
		return nil, errors.Wrapf(err, "find receta %d", id)
	}
	return &rec, nil
}

func (r *catalogRepo) RecipesByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.Recipe, error) {
	out := make(map[uint64]domain.Recipe, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.Recipe
	if err := r.db.WithContext(ctx).Preload("Items").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "find recetas")
	}
	for _, rec := range rows {
		out[rec.ID] = rec
	}
	return out, nil
}

// SaveRecipe replaces the item list wholesale.
func (r *catalogRepo) SaveRecipe(ctx context.Context, rec *domain.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(rec).Error; err != nil {
			return errors.Wrap(err, "save receta")
		}
		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&domain.RecipeItem{}).Error; err != nil {
			return errors.Wrap(err, "clear receta items")
		}
		for i := range rec.Items {
			rec.Items[i].ID = 0
			rec.Items[i].RecipeID = rec.ID
		}
		if len(rec.Items) == 0 {
			return nil
		}
		return errors.Wrap(tx.Create(&rec.Items).Error, "insert receta items")
	})
}

func (r *catalogRepo) DeleteRecipe(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.RecipeItem{}).Error; err != nil {
			return errors.Wrap(err, "delete receta items")
		}
		return errors.Wrapf(tx.Delete(&domain.Recipe{}, id).Error, "delete receta %d", id)
	})
}

func (r *catalogRepo) ListRawMaterials(ctx context.Context) ([]domain.RawMaterial, error) {
	var out []domain.RawMaterial
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, errors.Wrap(err, "list materias primas")
}

func (r *catalogRepo) FindRawMaterial(ctx context.Context, id uint64) (*domain.RawMaterial, error) {
	var m domain.RawMaterial
	ok, err := first(r.db.WithContext(ctx), &m, id)
	if err != nil || !ok {
		return nil, errors.Wrapf(err, "find materia prima %d", id)
	}
	return &m, nil
}

func (r *catalogRepo) RawMaterialsByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.RawMaterial, error) {
	out := make(map[uint64]domain.RawMaterial, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.RawMaterial
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "find materias primas")
	}
	for _, m := range rows {
		out[m.ID] = m
	}
	return out, nil
}

func (r *catalogRepo) SaveRawMaterial(ctx context.Context, m *domain.RawMaterial) error {
	return errors.Wrap(r.db.WithContext(ctx).Save(m).Error, "save materia prima")
}

func (r *catalogRepo) DeleteRawMaterial(ctx context.Context, id uint64) error {
	return errors.Wrapf(r.db.WithContext(ctx).Delete(&domain.RawMaterial{}, id).Error, "delete materia prima %d", id)
}

func (r *catalogRepo) RecordMovement(ctx context.Context, m *domain.RawMaterial, mv *domain.InventoryMovement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(m).Update("stock", m.Stock).Error; err != nil {
			return errors.Wrapf(err, "update stock of materia prima %d", m.ID)
		}
		return errors.Wrap(tx.Create(mv).Error, "insert movimiento")
	})
}

func (r *catalogRepo) Movements(ctx context.Context, rawMaterialID uint64) ([]domain.InventoryMovement, error) {
	var out []domain.InventoryMovement
	err := r.db.WithContext(ctx).
		Where("raw_material_id = ?", rawMaterialID).
		Order("created_at DESC").Find(&out).Error
	return out, errors.Wrap(err, "list movimientos")
}
