package http

import (
	"net/http"

	"comanda-service/internal/domain"

	"github.com/gin-gonic/gin"
)

// PendingWork serves the kitchen, chef and bar queues; the caller's role
// and category decide what is visible.
func (h *Handler) PendingWork(c *gin.Context) {
	key, err := domain.ParseSortKey(c.Query("sort"))
	if err != nil {
		fail(c, err)
		return
	}
	items, err := h.dashboard.PendingWork(c.Request.Context(), identity(c), key)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}

func (h *Handler) SetLineStatus(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	var req LineStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	status, err := domain.ParseLineStatus(req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	station, err := h.dashboard.Station(c.Request.Context(), identity(c))
	if err != nil {
		fail(c, err)
		return
	}
	line, err := h.orders.SetLineStatus(c.Request.Context(), station, id, status)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, line)
}

func (h *Handler) DailyOrders(c *gin.Context) {
	orders, err := h.orders.DailyOrders(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, orders)
}

func (h *Handler) ResetLine(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	line, err := h.orders.ResetLineToPending(c.Request.Context(), identity(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, line)
}
