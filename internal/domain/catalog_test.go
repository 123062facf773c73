package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecipes() map[uint64]Recipe {
	return map[uint64]Recipe{
		100: {ID: 100, Name: "Sopa", Items: []RecipeItem{
			{RawMaterialID: 1, Quantity: money("0.25")},
			{RawMaterialID: 2, Quantity: money("2")},
		}},
	}
}

func TestRecipe_UnitCost(t *testing.T) {
	materials := map[uint64]RawMaterial{
		1: {ID: 1, Name: "Pollo", Unit: "kg", UnitCost: money("120")},
		2: {ID: 2, Name: "Tortilla", Unit: "pz", UnitCost: money("1.5")},
	}
	r := testRecipes()[100]
	assert.True(t, money("33").Equal(r.UnitCost(materials)))

	delete(materials, 2)
	assert.True(t, money("30").Equal(r.UnitCost(materials)))

	ing := r.Ingredients(materials)
	require.Len(t, ing, 2)
	assert.Equal(t, "Pollo", ing[0].Name)
	assert.Equal(t, "kg", ing[0].Unit)
}

func TestComputeConsumption(t *testing.T) {
	products := testProducts()
	lines := []*OrderLine{
		{ProductID: 10},
		{ProductID: 10},
		{ProductID: 11},
		{ProductID: 99},
	}
	c := ComputeConsumption(lines, products, testRecipes())

	assert.False(t, c.Empty())
	assert.True(t, money("2").Equal(c.Products[10]))
	assert.True(t, money("0.25").Equal(c.RawMaterials[1]))
	assert.True(t, money("2").Equal(c.RawMaterials[2]))
	assert.NotContains(t, c.Products, uint64(11))

	assert.True(t, ComputeConsumption(nil, products, nil).Empty())
}

func TestRawMaterial_Apply(t *testing.T) {
	m := RawMaterial{Name: "Pollo", Stock: money("5")}

	require.NoError(t, m.Apply(InventoryMovement{Kind: MovementIn, Quantity: money("2.5")}))
	assert.True(t, money("7.5").Equal(m.Stock))

	require.NoError(t, m.Apply(InventoryMovement{Kind: MovementOut, Quantity: money("7.5")}))
	assert.True(t, m.Stock.Equal(decimal.Zero))

	assert.Error(t, m.Apply(InventoryMovement{Kind: MovementOut, Quantity: money("1")}))
	assert.Error(t, m.Apply(InventoryMovement{Kind: "ajuste", Quantity: money("1")}))
}

func TestRole_Capabilities(t *testing.T) {
	assert.True(t, RoleAdmin.Can(CapResetLine))
	assert.False(t, RoleWaiter.Can(CapResetLine))
	assert.True(t, RoleWaiter.Can(CapTakeOrders))
	assert.False(t, RoleAdmin.Can(CapTakeOrders))
	assert.True(t, RoleAdmin.Can(CapBill))
	assert.True(t, RoleChef.Can(CapRecipeBreakdown))
	assert.False(t, RoleKitchen.Can(CapRecipeBreakdown))
	assert.True(t, RoleBartender.Station())
	assert.False(t, RoleAdmin.Station())

	_, err := ParseRole("gerente")
	assert.Error(t, err)
}
