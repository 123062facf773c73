package http

import (
	"net/http"

	"comanda-service/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListOpenOrders(c *gin.Context) {
	orders, err := h.orders.ListOpen(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, order)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var draft domain.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.orders.CreateOrder(c.Request.Context(), identity(c), draft)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, order)
}

func (h *Handler) EditOrder(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	var draft domain.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.orders.EditOrder(c.Request.Context(), id, draft)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, order)
}

func (h *Handler) AddLines(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	var req LinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.orders.AddLines(c.Request.Context(), id, req.Lines)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, order)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	order, err := h.orders.CancelOrder(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, order)
}

// CloseOrder generates the ticket; pending products are cancelled.
func (h *Handler) CloseOrder(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	ticket, err := h.orders.CloseOrder(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, ticket)
}

func (h *Handler) CloseUnified(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	ticket, err := h.orders.CloseUnified(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, ticket)
}

func (h *Handler) PayOrder(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	var req []PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.orders.PayOrder(c.Request.Context(), id, toPayments(req))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, order)
}

func (h *Handler) PayUnified(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	var req []PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	unified, err := h.orders.PayUnified(c.Request.Context(), id, toPayments(req))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, unified)
}

func (h *Handler) GetUnified(c *gin.Context) {
	id, valid := paramID(c)
	if !valid {
		return
	}
	unified, err := h.orders.GetUnified(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, unifiedView(unified))
}

func (h *Handler) Unify(c *gin.Context) {
	var req UnifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	unified, err := h.orders.Unify(c.Request.Context(), req.IDs)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, unifiedView(unified))
}

type UnifiedOrderView struct {
	*domain.UnifiedOrder
	Table     string               `json:"mesas"`
	Diners    string               `json:"comensales,omitempty"`
	PartySize int                  `json:"personas"`
	Lines     []domain.UnifiedLine `json:"productos"`
}

func unifiedView(u *domain.UnifiedOrder) UnifiedOrderView {
	return UnifiedOrderView{
		UnifiedOrder: u,
		Table:        u.TableLabel(),
		Diners:       u.DinerLabel(),
		PartySize:    u.PartySize(),
		Lines:        u.Lines(),
	}
}
