package services

import (
	"context"
	"strings"

	"comanda-service/internal/domain"

	"github.com/shopspring/decimal"
)

func (s *CatalogService) recipeCost(ctx context.Context, r domain.Recipe) (decimal.Decimal, error) {
	ids := make([]uint64, 0, len(r.Items))
	for _, it := range r.Items {
		ids = append(ids, it.RawMaterialID)
	}
	materials, err := s.repo.RawMaterialsByIDs(ctx, ids)
	if err != nil {
		return decimal.Zero, err
	}
	return r.UnitCost(materials), nil
}

func (s *CatalogService) view(ctx context.Context, r domain.Recipe) (RecipeView, error) {
	cost, err := s.recipeCost(ctx, r)
	if err != nil {
		return RecipeView{}, err
	}
	return RecipeView{Recipe: r, UnitCost: cost.StringFixed(2)}, nil
}

func (s *CatalogService) ListRecipes(ctx context.Context) ([]RecipeView, error) {
	recipes, err := s.repo.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		v, err := s.view(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *CatalogService) GetRecipe(ctx context.Context, id uint64) (*RecipeView, error) {
	r, err := s.repo.FindRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &domain.NotFoundError{Resource: "receta", ID: id}
	}
	v, err := s.view(ctx, *r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// SaveRecipe stores the recipe and re-costs the products built from it.
func (s *CatalogService) SaveRecipe(ctx context.Context, r *domain.Recipe) (*RecipeView, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.ID != 0 {
		if _, err := s.GetRecipe(ctx, r.ID); err != nil {
			return nil, err
		}
	}
	ids := make([]uint64, 0, len(r.Items))
	for _, it := range r.Items {
		ids = append(ids, it.RawMaterialID)
	}
	materials, err := s.repo.RawMaterialsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := materials[id]; !ok {
			return nil, &domain.NotFoundError{Resource: "materia_prima", ID: id}
		}
	}
	if err := s.repo.SaveRecipe(ctx, r); err != nil {
		return nil, err
	}
	cost := r.UnitCost(materials)
	if err := s.repo.UpdateRecipeCost(ctx, r.ID, cost); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheProducts)
	return &RecipeView{Recipe: *r, UnitCost: cost.StringFixed(2)}, nil
}

func (s *CatalogService) DeleteRecipe(ctx context.Context, id uint64) error {
	if _, err := s.GetRecipe(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteRecipe(ctx, id)
}

func (s *CatalogService) ListRawMaterials(ctx context.Context) ([]domain.RawMaterial, error) {
	return s.repo.ListRawMaterials(ctx)
}

func (s *CatalogService) GetRawMaterial(ctx context.Context, id uint64) (*domain.RawMaterial, error) {
	m, err := s.repo.FindRawMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &domain.NotFoundError{Resource: "materia_prima", ID: id}
	}
	return m, nil
}

// SaveRawMaterial creates or updates a material. Stock of an existing
// material only changes through movements.
func (s *CatalogService) SaveRawMaterial(ctx context.Context, m *domain.RawMaterial) error {
	m.Name = strings.TrimSpace(m.Name)
	if err := m.Validate(); err != nil {
		return err
	}
	if m.ID != 0 {
		current, err := s.GetRawMaterial(ctx, m.ID)
		if err != nil {
			return err
		}
		m.Stock = current.Stock
	}
	return s.repo.SaveRawMaterial(ctx, m)
}

func (s *CatalogService) DeleteRawMaterial(ctx context.Context, id uint64) error {
	if _, err := s.GetRawMaterial(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteRawMaterial(ctx, id)
}

// RecordMovement applies an entrada or salida and appends it to the history.
func (s *CatalogService) RecordMovement(ctx context.Context, by domain.Identity, id uint64, mv domain.InventoryMovement) (*domain.RawMaterial, error) {
	m, err := s.GetRawMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.Apply(mv); err != nil {
		return nil, err
	}
	mv.ID = 0
	mv.RawMaterialID = &m.ID
	mv.ProductID = nil
	mv.OrderID = nil
	mv.UserID = by.UserID
	mv.CreatedAt = s.now()
	if err := s.repo.RecordMovement(ctx, m, &mv); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CatalogService) Movements(ctx context.Context, id uint64) ([]domain.InventoryMovement, error) {
	if _, err := s.GetRawMaterial(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Movements(ctx, id)
}
