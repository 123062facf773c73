package client

import (
	"context"
	"fmt"
	"net/http"

	"comanda-service/internal/domain"
)

const adminPath = "/restaurante/admin"

// CatalogReader is the read side of the catalog. Waiters only see
// categories and products; the administrator sees everything.
type CatalogReader struct {
	c    *Client
	base string
}

// Menu reads categories and products through the waiter endpoints.
func (c *Client) Menu() *CatalogReader { return &CatalogReader{c: c, base: waiterPath} }

func (c *Client) Catalog() *CatalogReader { return &CatalogReader{c: c, base: adminPath} }

func (r *CatalogReader) Categories(ctx context.Context) ([]domain.Category, error) {
	return list[domain.Category](ctx, r.c, r.base+"/categorias")
}

func (r *CatalogReader) Products(ctx context.Context) ([]domain.Product, error) {
	return list[domain.Product](ctx, r.c, r.base+"/productos")
}

func (r *CatalogReader) Product(ctx context.Context, id uint64) (*domain.Product, error) {
	var out domain.Product
	if err := r.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/productos/%d", adminPath, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CatalogReader) Recipes(ctx context.Context) ([]domain.Recipe, error) {
	return list[domain.Recipe](ctx, r.c, adminPath+"/recetas")
}

func (r *CatalogReader) RawMaterials(ctx context.Context) ([]domain.RawMaterial, error) {
	return list[domain.RawMaterial](ctx, r.c, adminPath+"/materias-primas")
}

func (r *CatalogReader) Movements(ctx context.Context, rawMaterialID uint64) ([]domain.InventoryMovement, error) {
	return list[domain.InventoryMovement](ctx, r.c, fmt.Sprintf("%s/materias-primas/%d/movimientos", adminPath, rawMaterialID))
}

func (r *CatalogReader) Users(ctx context.Context) ([]domain.User, error) {
	return list[domain.User](ctx, r.c, adminPath+"/usuarios")
}

// Associations lists station users with their category.
func (r *CatalogReader) Associations(ctx context.Context) ([]domain.User, error) {
	return list[domain.User](ctx, r.c, adminPath+"/usuarios_")
}

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var out []T
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
