package services

import (
	"context"

	"comanda-service/internal/domain"
	"comanda-service/internal/repository"
)

// DashboardService builds the category-scoped work queues of the kitchen,
// bar and chef stations.
type DashboardService struct {
	orders  repository.OrderRepository
	catalog repository.CatalogRepository
	users   repository.UserRepository
}

func NewDashboardService(o repository.OrderRepository, c repository.CatalogRepository, u repository.UserRepository) *DashboardService {
	return &DashboardService{orders: o, catalog: c, users: u}
}

// Station refreshes the caller's category assignment from the user record,
// so reassignments apply without a new login.
func (s *DashboardService) Station(ctx context.Context, ident domain.Identity) (domain.Identity, error) {
	if !ident.Role.Station() {
		return ident, &domain.ForbiddenError{Message: "role " + string(ident.Role) + " has no work queue"}
	}
	u, err := s.users.FindByID(ctx, ident.UserID)
	if err != nil {
		return ident, err
	}
	if u == nil {
		return ident, &domain.AuthError{Message: "user no longer exists"}
	}
	ident.CategoryID = u.CategoryID
	return ident, nil
}

// PendingWork is a fresh snapshot on every call.
func (s *DashboardService) PendingWork(ctx context.Context, ident domain.Identity, key domain.SortKey) ([]domain.WorkItem, error) {
	station, err := s.Station(ctx, ident)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	items := domain.PendingWork(orders, station.CategoryID, key)
	if station.Role.Can(domain.CapRecipeBreakdown) && len(items) > 0 {
		if err := s.attachIngredients(ctx, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *DashboardService) attachIngredients(ctx context.Context, items []domain.WorkItem) error {
	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.catalog.ProductsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	var recipeIDs []uint64
	for _, p := range products {
		if p.RecipeID != nil {
			recipeIDs = append(recipeIDs, *p.RecipeID)
		}
	}
	recipes, err := s.catalog.RecipesByIDs(ctx, recipeIDs)
	if err != nil {
		return err
	}
	var materialIDs []uint64
	for _, r := range recipes {
		for _, it := range r.Items {
			materialIDs = append(materialIDs, it.RawMaterialID)
		}
	}
	materials, err := s.catalog.RawMaterialsByIDs(ctx, materialIDs)
	if err != nil {
		return err
	}
	for i := range items {
		p, ok := products[items[i].ProductID]
		if !ok || p.RecipeID == nil {
			continue
		}
		if r, ok := recipes[*p.RecipeID]; ok {
			items[i].Ingredients = r.Ingredients(materials)
		}
	}
	return nil
}
