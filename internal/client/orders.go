package client

import (
	"context"
	"fmt"
	"net/http"

	"comanda-service/internal/domain"

	"github.com/shopspring/decimal"
)

const waiterPath = "/restaurante/mesero"

// UnifiedOrder is the group as served to waiters, with labels derived from
// its members.
type UnifiedOrder struct {
	domain.UnifiedOrder
	Tables    string               `json:"mesas"`
	Diners    string               `json:"comensales,omitempty"`
	PartySize int                  `json:"personas"`
	Lines     []domain.UnifiedLine `json:"productos"`
}

func (c *Client) ListOpenOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, waiterPath+"/comanda", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/comanda/%d", waiterPath, id), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder validates the draft locally; an invalid draft never reaches
// the server.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	if ident, ok := c.session.Current(); ok && !ident.Role.Can(domain.CapTakeOrders) {
		return nil, &domain.ForbiddenError{Message: "only waiters open orders"}
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, waiterPath+"/comanda", nil, draft, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// EditOrder sends the full desired line set. Terminal lines must be present
// and unchanged; EditOrderPreserving builds such a draft.
func (c *Client) EditOrder(ctx context.Context, id uint64, draft domain.OrderDraft) (*domain.Order, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var order domain.Order
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/comanda/%d", waiterPath, id), nil, draft, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderEdit describes a waiter's changes. Empty header fields keep the
// current value. Pending replaces the order's pending lines: entries with an
// ID keep or modify that line, entries without one are new.
type OrderEdit struct {
	Table     string
	PartySize int
	DinerName string
	Comment   string
	Pending   []domain.LineInput
}

// PreservingDraft merges edit into current so that delivered and cancelled
// lines are re-sent exactly as they are.
func PreservingDraft(current *domain.Order, edit OrderEdit) (domain.OrderDraft, error) {
	d := domain.OrderDraft{
		Table:     current.Table,
		PartySize: current.PartySize,
		DinerName: current.DinerName,
		Comment:   current.Comment,
	}
	if edit.Table != "" {
		d.Table = edit.Table
	}
	if edit.PartySize != 0 {
		d.PartySize = edit.PartySize
	}
	if edit.DinerName != "" {
		d.DinerName = edit.DinerName
	}
	if edit.Comment != "" {
		d.Comment = edit.Comment
	}

	pending := make(map[uint64]bool)
	for _, l := range current.Lines {
		if l.Status.Terminal() {
			d.Lines = append(d.Lines, domain.LineInput{ID: l.ID, ProductID: l.ProductID, Detail: l.Detail})
			continue
		}
		pending[l.ID] = true
	}
	for _, l := range edit.Pending {
		if l.ID != 0 && !pending[l.ID] {
			return d, &domain.ValidationError{Field: "productos", Message: fmt.Sprintf("line %d is not pending in order %d", l.ID, current.ID)}
		}
		d.Lines = append(d.Lines, l)
	}
	return d, d.Validate()
}

func (c *Client) EditOrderPreserving(ctx context.Context, current *domain.Order, edit OrderEdit) (*domain.Order, error) {
	draft, err := PreservingDraft(current, edit)
	if err != nil {
		return nil, err
	}
	return c.EditOrder(ctx, current.ID, draft)
}

func (c *Client) AddLines(ctx context.Context, id uint64, lines []domain.LineInput) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, &domain.ValidationError{Field: "productos", Message: "at least one product is required"}
	}
	for i, l := range lines {
		if l.ProductID == 0 {
			return nil, &domain.ValidationError{Field: "productos", Message: fmt.Sprintf("line %d has no product", i+1)}
		}
	}
	var order domain.Order
	body := map[string]any{"productos": lines}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/comanda/%d/productos", waiterPath, id), nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CancelOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/comanda/%d/cancelar", waiterPath, id), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CloseOrder closes the order and returns its ticket.
func (c *Client) CloseOrder(ctx context.Context, id uint64) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/comanda_ticket/%d", waiterPath, id), nil, nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// PayOrder checks the split locally. The total is only known to the server,
// so coverage is checked there.
func (c *Client) PayOrder(ctx context.Context, id uint64, payments []domain.Payment) (*domain.Order, error) {
	body, err := paymentBody(payments)
	if err != nil {
		return nil, err
	}
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/comanda_pago/%d", waiterPath, id), nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Unify(ctx context.Context, ids []uint64) (*UnifiedOrder, error) {
	seen := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	if len(seen) < 2 {
		return nil, &domain.ValidationError{Field: "ids", Message: "at least two orders are required to unify"}
	}
	if len(seen) != len(ids) {
		return nil, &domain.ValidationError{Field: "ids", Message: "order ids must be distinct"}
	}
	var unified UnifiedOrder
	if err := c.do(ctx, http.MethodPost, waiterPath+"/comandas/unificar", nil, map[string]any{"ids": ids}, &unified); err != nil {
		return nil, err
	}
	return &unified, nil
}

func (c *Client) GetUnified(ctx context.Context, id uint64) (*UnifiedOrder, error) {
	var unified UnifiedOrder
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/comanda_unificada/%d", waiterPath, id), nil, nil, &unified); err != nil {
		return nil, err
	}
	return &unified, nil
}

// UnifiedTicket closes the group and returns the combined ticket.
func (c *Client) UnifiedTicket(ctx context.Context, id uint64) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/comanda_ticket_multiple/%d", waiterPath, id), nil, nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *Client) PayUnified(ctx context.Context, id uint64, payments []domain.Payment) (*domain.UnifiedOrder, error) {
	body, err := paymentBody(payments)
	if err != nil {
		return nil, err
	}
	var unified domain.UnifiedOrder
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/comanda_pago_multiple/%d", waiterPath, id), nil, body, &unified); err != nil {
		return nil, err
	}
	return &unified, nil
}

type paymentLine struct {
	Method domain.PaymentMethod `json:"metodo"`
	Amount string               `json:"monto"`
}

func paymentBody(payments []domain.Payment) ([]paymentLine, error) {
	valid, err := domain.ValidatePayments(payments, decimal.Zero)
	if err != nil {
		return nil, err
	}
	body := make([]paymentLine, len(valid))
	for i, p := range valid {
		body[i] = paymentLine{Method: p.Method, Amount: p.Amount.StringFixed(2)}
	}
	return body, nil
}
