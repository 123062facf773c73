package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CatalogStatus string

const (
	StatusActive   CatalogStatus = "activo"
	StatusInactive CatalogStatus = "inactivo"
)

type Category struct {
	ID        uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string        `json:"nombre" gorm:"size:80;uniqueIndex;not null"`
	Status    CatalogStatus `json:"estado" gorm:"size:10;default:'activo'"`
	CreatedAt time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

func (Category) TableName() string { return "categorias" }

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return validation("nombre", "name is required")
	}
	return nil
}

// Product is a sellable menu item. When RecipeID is set, consumption comes
// from the recipe and Stock/Unit are not authoritative.
type Product struct {
	ID         uint64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Code       string           `json:"clave" gorm:"size:20;uniqueIndex;not null"`
	Name       string           `json:"nombre" gorm:"size:120;not null"`
	CategoryID uint64           `json:"categoria_id" gorm:"not null;index"`
	RecipeID   *uint64          `json:"receta_id,omitempty" gorm:"index"`
	UnitCost   decimal.Decimal  `json:"costo_unitario" gorm:"type:decimal(10,2);not null;default:0"`
	SalePrice  decimal.Decimal  `json:"precio_venta" gorm:"type:decimal(10,2);not null"`
	Stock      *decimal.Decimal `json:"cantidad,omitempty" gorm:"type:decimal(12,3)"`
	Unit       string           `json:"unidad_medida,omitempty" gorm:"size:20"`
	Priority   int              `json:"prioridad" gorm:"default:0"`
	Status     CatalogStatus    `json:"estado" gorm:"size:10;default:'activo'"`
	CreatedAt  time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Product) TableName() string { return "productos" }

func (p Product) Stocked() bool { return p.RecipeID == nil }

func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Code) == "":
		return validation("clave", "code is required")
	case strings.TrimSpace(p.Name) == "":
		return validation("nombre", "name is required")
	case p.CategoryID == 0:
		return validation("categoria_id", "category is required")
	case p.SalePrice.IsNegative():
		return validation("precio_venta", "price cannot be negative")
	case p.UnitCost.IsNegative():
		return validation("costo_unitario", "cost cannot be negative")
	}
	if p.Stocked() {
		if p.Stock == nil {
			return validation("cantidad", "stock is required for products without recipe")
		}
		if strings.TrimSpace(p.Unit) == "" {
			return validation("unidad_medida", "unit is required for products without recipe")
		}
	}
	return nil
}

// Toggle flips activo/inactivo.
func (p *Product) Toggle() {
	if p.Status == StatusInactive {
		p.Status = StatusActive
		return
	}
	p.Status = StatusInactive
}

type RawMaterial struct {
	ID        uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Code      string          `json:"clave" gorm:"size:20;uniqueIndex;not null"`
	Name      string          `json:"nombre" gorm:"size:120;not null"`
	Unit      string          `json:"unidad_medida" gorm:"size:20;not null"`
	UnitCost  decimal.Decimal `json:"costo_unitario" gorm:"type:decimal(10,4);not null"`
	Stock     decimal.Decimal `json:"cantidad" gorm:"type:decimal(12,3);not null;default:0"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (RawMaterial) TableName() string { return "materias_primas" }

func (m RawMaterial) Validate() error {
	switch {
	case strings.TrimSpace(m.Code) == "":
		return validation("clave", "code is required")
	case strings.TrimSpace(m.Name) == "":
		return validation("nombre", "name is required")
	case strings.TrimSpace(m.Unit) == "":
		return validation("unidad_medida", "unit is required")
	case m.UnitCost.IsNegative():
		return validation("costo_unitario", "cost cannot be negative")
	case m.Stock.IsNegative():
		return validation("cantidad", "stock cannot be negative")
	}
	return nil
}

type MovementKind string

const (
	MovementIn  MovementKind = "entrada"
	MovementOut MovementKind = "salida"
)

type InventoryMovement struct {
	ID            uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	RawMaterialID *uint64         `json:"materia_prima_id,omitempty" gorm:"index"`
	ProductID     *uint64         `json:"producto_id,omitempty" gorm:"index"`
	OrderID       *uint64         `json:"comanda_id,omitempty" gorm:"index"`
	Kind          MovementKind    `json:"tipo" gorm:"size:10;not null"`
	Quantity      decimal.Decimal `json:"cantidad" gorm:"type:decimal(12,3);not null"`
	Reason        string          `json:"motivo,omitempty" gorm:"size:255"`
	UserID        uint64          `json:"usuario_id" gorm:"index"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
}

func (InventoryMovement) TableName() string { return "movimientos_inventario" }

// Apply records an entry or exit against the material's stock.
func (m *RawMaterial) Apply(mv InventoryMovement) error {
	if !mv.Quantity.IsPositive() {
		return validation("cantidad", "quantity must be positive")
	}
	switch mv.Kind {
	case MovementIn:
		m.Stock = m.Stock.Add(mv.Quantity)
	case MovementOut:
		if mv.Quantity.GreaterThan(m.Stock) {
			return validation("cantidad", "exit of %s exceeds stock %s of %q", mv.Quantity, m.Stock, m.Name)
		}
		m.Stock = m.Stock.Sub(mv.Quantity)
	default:
		return validation("tipo", "unknown movement kind %q", mv.Kind)
	}
	return nil
}

type Recipe struct {
	ID        uint64       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string       `json:"nombre" gorm:"size:120;not null"`
	Items     []RecipeItem `json:"materias_primas" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time    `json:"created_at" gorm:"autoCreateTime"`
}

func (Recipe) TableName() string { return "recetas" }

type RecipeItem struct {
	ID            uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID      uint64          `json:"receta_id" gorm:"not null;index"`
	RawMaterialID uint64          `json:"materia_prima_id" gorm:"not null;index"`
	Quantity      decimal.Decimal `json:"cantidad" gorm:"type:decimal(12,3);not null"`
}

func (RecipeItem) TableName() string { return "receta_materias_primas" }

func (r Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return validation("nombre", "name is required")
	}
	if len(r.Items) == 0 {
		return validation("materias_primas", "a recipe needs at least one raw material")
	}
	for _, it := range r.Items {
		if it.RawMaterialID == 0 || !it.Quantity.IsPositive() {
			return validation("materias_primas", "every raw material needs an id and a positive quantity")
		}
	}
	return nil
}

// UnitCost is the sum of quantity times raw material cost. Unknown
// materials contribute nothing.
func (r Recipe) UnitCost(materials map[uint64]RawMaterial) decimal.Decimal {
	cost := decimal.Zero
	for _, it := range r.Items {
		if m, ok := materials[it.RawMaterialID]; ok {
			cost = cost.Add(it.Quantity.Mul(m.UnitCost))
		}
	}
	return cost
}

// Ingredient is the chef's read-only view of one recipe component.
type Ingredient struct {
	RawMaterialID uint64          `json:"materia_prima_id"`
	Name          string          `json:"nombre"`
	Unit          string          `json:"unidad_medida"`
	Quantity      decimal.Decimal `json:"cantidad"`
}

func (r Recipe) Ingredients(materials map[uint64]RawMaterial) []Ingredient {
	out := make([]Ingredient, 0, len(r.Items))
	for _, it := range r.Items {
		m := materials[it.RawMaterialID]
		out = append(out, Ingredient{RawMaterialID: it.RawMaterialID, Name: m.Name, Unit: m.Unit, Quantity: it.Quantity})
	}
	return out
}

// Consumption is the stock an order's new lines draw down.
type Consumption struct {
	Products     map[uint64]decimal.Decimal
	RawMaterials map[uint64]decimal.Decimal
}

func (c Consumption) Empty() bool {
	return len(c.Products) == 0 && len(c.RawMaterials) == 0
}

// ComputeConsumption expands lines into product stock for directly stocked
// items and raw material quantities for recipe items.
func ComputeConsumption(lines []*OrderLine, products map[uint64]Product, recipes map[uint64]Recipe) Consumption {
	c := Consumption{Products: map[uint64]decimal.Decimal{}, RawMaterials: map[uint64]decimal.Decimal{}}
	one := decimal.NewFromInt(1)
	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok {
			continue
		}
		if p.Stocked() {
			c.Products[p.ID] = c.Products[p.ID].Add(one)
			continue
		}
		r, ok := recipes[*p.RecipeID]
		if !ok {
			continue
		}
		for _, it := range r.Items {
			c.RawMaterials[it.RawMaterialID] = c.RawMaterials[it.RawMaterialID].Add(it.Quantity)
		}
	}
	return c
}
