package domain

type Role string

const (
	RoleAdmin     Role = "admin_local_restaurante"
	RoleWaiter    Role = "meseros_restaurant"
	RoleKitchen   Role = "cocina"
	RoleBartender Role = "bartender_restaurante"
	RoleChef      Role = "chef"
)

type Capability int

const (
	CapManageCatalog Capability = iota
	CapReports
	CapResetLine
	CapDailyOrders
	CapTakeOrders
	CapBill
	CapWorkQueue
	CapRecipeBreakdown
)

var capabilities = map[Role][]Capability{
	RoleAdmin:     {CapManageCatalog, CapReports, CapResetLine, CapDailyOrders, CapBill},
	RoleWaiter:    {CapTakeOrders, CapBill},
	RoleKitchen:   {CapWorkQueue},
	RoleBartender: {CapWorkQueue},
	RoleChef:      {CapWorkQueue, CapRecipeBreakdown},
}

func (r Role) Valid() bool {
	_, ok := capabilities[r]
	return ok
}

// Station reports whether the role works a category-scoped queue.
func (r Role) Station() bool {
	return r.Can(CapWorkQueue)
}

func (r Role) Can(c Capability) bool {
	for _, have := range capabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", validation("rol", "unknown role %q", s)
	}
	return r, nil
}
