package http

import (
	"net/http"

	"comanda-service/internal/domain"
	"comanda-service/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) registerCatalog(g *gin.RouterGroup) {
	g.GET("/categorias", h.ListCategories)
	g.GET("/categorias/:id", h.GetCategory)
	g.POST("/categorias", h.SaveCategory)
	g.PUT("/categorias/:id", h.SaveCategory)
	g.DELETE("/categorias/:id", h.DeleteCategory)

	g.GET("/materias-primas", h.ListRawMaterials)
	g.GET("/materias-primas/:id", h.GetRawMaterial)
	g.POST("/materias-primas", h.SaveRawMaterial)
	g.PUT("/materias-primas/:id", h.SaveRawMaterial)
	g.DELETE("/materias-primas/:id", h.DeleteRawMaterial)
	g.GET("/materias-primas/:id/movimientos", h.Movements)
	g.POST("/materias-primas/:id/movimientos", h.RecordMovement)

	g.GET("/recetas", h.ListRecipes)
	g.GET("/recetas/:id", h.GetRecipe)
	g.POST("/recetas", h.SaveRecipe)
	g.PUT("/recetas/:id", h.SaveRecipe)
	g.DELETE("/recetas/:id", h.DeleteRecipe)

	g.GET("/productos", h.ListProducts)
	g.GET("/productos/:id", h.GetProduct)
	g.POST("/productos", h.SaveProduct)
	g.PUT("/productos/:id", h.SaveProduct)
	g.PATCH("/productos/:id/estado", h.ToggleProduct)

	g.GET("/usuarios", h.ListUsers)
	g.GET("/usuarios/:id", h.GetUser)
	g.POST("/usuarios", h.SaveUser)
	g.PUT("/usuarios/:id", h.SaveUser)
	g.DELETE("/usuarios/:id", h.DeleteUser)
	g.GET("/usuarios_", h.Associations)
	g.PUT("/usuarios_/:id", h.Associate)
}

// updateID returns 0 on POST and the path id on PUT.
func updateID(c *gin.Context) (uint64, bool) {
	if c.Param("id") == "" {
		return 0, true
	}
	return paramID(c)
}

// respond writes a single-value service result, created on POST.
func respond(c *gin.Context, data any, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	status := http.StatusOK
	if c.Request.Method == http.MethodPost {
		status = http.StatusCreated
	}
	ok(c, status, data)
}

func (h *Handler) ListCategories(c *gin.Context) {
	out, err := h.catalog.ListCategories(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	out, err := h.catalog.GetCategory(c.Request.Context(), id)
	respond(c, out, err)
}

func (h *Handler) SaveCategory(c *gin.Context) {
	id, valid := updateID(c)
	if !valid {
		return
	}
	var cat domain.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		badRequest(c, err)
		return
	}
	cat.ID = id
	respond(c, &cat, h.catalog.SaveCategory(c.Request.Context(), &cat))
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	okMessage(c, "category deleted")
}

func (h *Handler) ListRawMaterials(c *gin.Context) {
	out, err := h.catalog.ListRawMaterials(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) GetRawMaterial(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	out, err := h.catalog.GetRawMaterial(c.Request.Context(), id)
	respond(c, out, err)
}

func (h *Handler) SaveRawMaterial(c *gin.Context) {
	id, valid := updateID(c)
	if !valid {
		return
	}
	var m domain.RawMaterial
	if err := c.ShouldBindJSON(&m); err != nil {
		badRequest(c, err)
		return
	}
	m.ID = id
	respond(c, &m, h.catalog.SaveRawMaterial(c.Request.Context(), &m))
}

func (h *Handler) DeleteRawMaterial(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	if err := h.catalog.DeleteRawMaterial(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	okMessage(c, "raw material deleted")
}

func (h *Handler) Movements(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	out, err := h.catalog.Movements(c.Request.Context(), id)
	respond(c, out, err)
}

func (h *Handler) RecordMovement(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	mv := domain.InventoryMovement{Kind: req.Kind, Quantity: req.Quantity, Reason: req.Reason}
	out, err := h.catalog.RecordMovement(c.Request.Context(), identity(c), id, mv)
	respond(c, out, err)
}

func (h *Handler) ListRecipes(c *gin.Context) {
	out, err := h.catalog.ListRecipes(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) GetRecipe(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	out, err := h.catalog.GetRecipe(c.Request.Context(), id)
	respond(c, out, err)
}

func (h *Handler) SaveRecipe(c *gin.Context) {
	id, valid := updateID(c)
	if !valid {
		return
	}
	var r domain.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}
	r.ID = id
	out, err := h.catalog.SaveRecipe(c.Request.Context(), &r)
	respond(c, out, err)
}

func (h *Handler) DeleteRecipe(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	if err := h.catalog.DeleteRecipe(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	okMessage(c, "recipe deleted")
}

func (h *Handler) ListProducts(c *gin.Context) {
	out, err := h.catalog.ListProducts(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	out, err := h.catalog.GetProduct(c.Request.Context(), id)
	respond(c, out, err)
}

func (h *Handler) SaveProduct(c *gin.Context) {
	id, valid := updateID(c)
	if !valid {
		return
	}
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	p.ID = id
	respond(c, &p, h.catalog.SaveProduct(c.Request.Context(), &p))
}

func (h *Handler) ToggleProduct(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	out, err := h.catalog.ToggleProduct(c.Request.Context(), id)
	respond(c, out, err)
}

func (h *Handler) ListUsers(c *gin.Context) {
	out, err := h.catalog.ListUsers(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	out, err := h.catalog.GetUser(c.Request.Context(), id)
	respond(c, out, err)
}

func (h *Handler) SaveUser(c *gin.Context) {
	id, valid := updateID(c)
	if !valid {
		return
	}
	var in services.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.catalog.SaveUser(c.Request.Context(), id, in)
	respond(c, out, err)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	if err := h.catalog.DeleteUser(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	okMessage(c, "user deleted")
}

func (h *Handler) Associations(c *gin.Context) {
	out, err := h.catalog.Associations(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) Associate(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	var req AssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.catalog.Associate(c.Request.Context(), id, req.CategoryID)
	respond(c, out, err)
}
