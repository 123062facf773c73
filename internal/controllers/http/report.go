package http

import (
	"net/http"

	"comanda-service/internal/domain"
	"comanda-service/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) registerReports(g *gin.RouterGroup) {
	g.GET("/reporte-fechas", h.SalesReport)
	g.GET("/reporte-inventario", h.InventoryReport)
	g.GET("/reporte-usuario/:id", h.UserReport)
	g.GET("/reporte-comandas", h.OrdersReport)
	g.GET("/reporte-hoy", h.TodayReport)
}

// report writes the report as JSON, or as an exported workbook URL when
// format=excel.
func (h *Handler) report(c *gin.Context, r domain.Tabular) {
	if c.Query("format") != "excel" {
		ok(c, http.StatusOK, r)
		return
	}
	url, err := h.reports.Export(r)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, ExportResponse{URL: url})
}

func (h *Handler) dateRange(c *gin.Context) (services.Range, bool) {
	rng, err := services.ParseRange(c.Query("desde"), c.Query("hasta"), h.reports.Now())
	if err != nil {
		fail(c, err)
		return services.Range{}, false
	}
	return rng, true
}

func (h *Handler) SalesReport(c *gin.Context) {
	rng, valid := h.dateRange(c)
	if !valid {
		return
	}
	r, err := h.reports.Sales(c.Request.Context(), rng)
	if err != nil {
		fail(c, err)
		return
	}
	h.report(c, r)
}

func (h *Handler) UserReport(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	rng, valid := h.dateRange(c)
	if !valid {
		return
	}
	r, err := h.reports.User(c.Request.Context(), id, rng)
	if err != nil {
		fail(c, err)
		return
	}
	h.report(c, r)
}

func (h *Handler) OrdersReport(c *gin.Context) {
	rng, valid := h.dateRange(c)
	if !valid {
		return
	}
	status := domain.OrderStatus(c.Query("estado"))
	switch status {
	case "", domain.OrderOpen, domain.OrderClosed, domain.OrderPaid, domain.OrderCancelled:
	default:
		fail(c, &domain.ValidationError{Field: "estado", Message: "unknown order status " + string(status)})
		return
	}
	r, err := h.reports.Orders(c.Request.Context(), rng, status)
	if err != nil {
		fail(c, err)
		return
	}
	h.report(c, r)
}

func (h *Handler) InventoryReport(c *gin.Context) {
	r, err := h.reports.Inventory(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	h.report(c, r)
}

func (h *Handler) TodayReport(c *gin.Context) {
	r, err := h.reports.Today(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	h.report(c, r)
}
