package services

import (
	"context"
	"strings"
	"time"

	"comanda-service/internal/domain"
	"comanda-service/internal/infra"
	"comanda-service/internal/repository"

	"go.uber.org/zap"
)

const (
	cacheCategories = "catalog:categorias"
	cacheProducts   = "catalog:productos"
	cacheTTL        = time.Minute
)

// RecipeView is a recipe with its derived unit cost.
type RecipeView struct {
	domain.Recipe
	UnitCost string `json:"costo_unitario"`
}

type UserInput struct {
	Name       string      `json:"nombre"`
	Email      string      `json:"email"`
	Password   string      `json:"password,omitempty"`
	Role       domain.Role `json:"rol"`
	CategoryID *uint64     `json:"categoria_id,omitempty"`
}

type CatalogService struct {
	repo  repository.CatalogRepository
	users repository.UserRepository
	cache infra.CacheInterface
	now   func() time.Time
}

func NewCatalogService(r repository.CatalogRepository, users repository.UserRepository, cache infra.CacheInterface) *CatalogService {
	return &CatalogService{repo: r, users: users, cache: cache, now: time.Now}
}

// cached serves key from the cache, loading and storing it on a miss. Cache
// failures fall through to the repository.
func cached[T any](ctx context.Context, c infra.CacheInterface, key string, load func() (T, error)) (T, error) {
	var v T
	if c != nil {
		if ok, err := c.Get(ctx, key, &v); err == nil && ok {
			return v, nil
		} else if err != nil {
			zap.L().Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	if c != nil {
		if err := c.Set(ctx, key, v, cacheTTL); err != nil {
			zap.L().Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, nil
}

func (s *CatalogService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		zap.L().Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return cached(ctx, s.cache, cacheCategories, func() ([]domain.Category, error) {
		return s.repo.ListCategories(ctx)
	})
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint64) (*domain.Category, error) {
	c, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Resource: "categoria", ID: id}
	}
	return c, nil
}

func (s *CatalogService) SaveCategory(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID != 0 {
		if _, err := s.GetCategory(ctx, c.ID); err != nil {
			return err
		}
	}
	if c.Status == "" {
		c.Status = domain.StatusActive
	}
	if err := s.repo.SaveCategory(ctx, c); err != nil {
		return err
	}
	s.invalidate(ctx, cacheCategories)
	return nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint64) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountProductsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.InvalidStateError{Message: "category still has products"}
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheCategories)
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return cached(ctx, s.cache, cacheProducts, func() ([]domain.Product, error) {
		return s.repo.ListProducts(ctx)
	})
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	p, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Resource: "producto", ID: id}
	}
	return p, nil
}

// SaveProduct creates or updates a product. Recipe-backed products take their
// cost from the recipe and drop stock fields.
func (s *CatalogService) SaveProduct(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID != 0 {
		if _, err := s.GetProduct(ctx, p.ID); err != nil {
			return err
		}
	}
	if _, err := s.GetCategory(ctx, p.CategoryID); err != nil {
		return err
	}
	if p.RecipeID != nil {
		view, err := s.GetRecipe(ctx, *p.RecipeID)
		if err != nil {
			return err
		}
		cost, err := s.recipeCost(ctx, view.Recipe)
		if err != nil {
			return err
		}
		p.UnitCost = cost
		p.Stock = nil
		p.Unit = ""
	}
	if p.Status == "" {
		p.Status = domain.StatusActive
	}
	if err := s.repo.SaveProduct(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx, cacheProducts)
	return nil
}

func (s *CatalogService) ToggleProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Toggle()
	if err := s.repo.SaveProduct(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheProducts)
	return p, nil
}
