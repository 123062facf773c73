package http

import (
	"net/http"
	"strconv"

	"comanda-service/internal/domain"
	"comanda-service/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	orders    *services.OrderService
	dashboard *services.DashboardService
	sessions  *services.SessionService
	catalog   *services.CatalogService
	reports   *services.ReportService
	exportDir string
}

func NewHandler(o *services.OrderService, d *services.DashboardService, s *services.SessionService, c *services.CatalogService, r *services.ReportService, exportDir string) *Handler {
	return &Handler{orders: o, dashboard: d, sessions: s, catalog: c, reports: r, exportDir: exportDir}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	if h.exportDir != "" {
		r.Static("/exports", h.exportDir)
	}

	api := r.Group("/restaurante", Auth(h.sessions))

	admin := api.Group("/admin", RequireRoles(domain.RoleAdmin))
	h.registerCatalog(admin)
	admin.GET("/comandas-diarias", h.DailyOrders)
	admin.PATCH("/comandas/:id/marcar-pendiente", h.ResetLine)
	h.registerReports(admin)

	waiter := api.Group("/mesero", RequireRoles(domain.RoleWaiter, domain.RoleAdmin))
	waiter.GET("/categorias", h.ListCategories)
	waiter.GET("/productos", h.ListProducts)
	waiter.GET("/comanda", h.ListOpenOrders)
	waiter.GET("/comanda/:id", h.GetOrder)
	waiter.POST("/comanda", RequireRoles(domain.RoleWaiter), h.CreateOrder)
	waiter.PUT("/comanda/:id", h.EditOrder)
	waiter.POST("/comanda/:id/productos", h.AddLines)
	waiter.PATCH("/comanda/:id/cancelar", h.CancelOrder)
	waiter.GET("/comanda_ticket/:id", h.CloseOrder)
	waiter.GET("/comanda_ticket_multiple/:id", h.CloseUnified)
	waiter.POST("/comanda_pago/:id", h.PayOrder)
	waiter.POST("/comanda_pago_multiple/:id", h.PayUnified)
	waiter.GET("/comanda_unificada/:id", h.GetUnified)
	waiter.POST("/comandas/unificar", h.Unify)

	kitchen := api.Group("/cocina", RequireRoles(domain.RoleKitchen, domain.RoleChef))
	kitchen.GET("/comandas", h.PendingWork)
	kitchen.PATCH("/comandas/:id/estado", h.SetLineStatus)

	chef := api.Group("/chef", RequireRoles(domain.RoleChef))
	chef.GET("/comandas", h.PendingWork)
	chef.PATCH("/comandas/:id/estado", h.SetLineStatus)

	bar := api.Group("/bar", RequireRoles(domain.RoleBartender))
	bar.GET("/comandas_", h.PendingWork)
	bar.PATCH("/comandas_/:id/estado", h.SetLineStatus)
}

func paramID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		failWith(c, http.StatusBadRequest, "invalid id parameter", nil)
		return 0, false
	}
	return id, true
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

func (h *Handler) Logout(c *gin.Context) {
	token := bearer(c)
	if token == "" {
		failWith(c, http.StatusUnauthorized, "missing bearer token", nil)
		return
	}
	if err := h.sessions.Logout(c.Request.Context(), token); err != nil {
		fail(c, err)
		return
	}
	okMessage(c, "session closed")
}
