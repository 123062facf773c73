package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"comanda-service/internal/domain"
)

// stationPath is the queue endpoint each station role works from.
func stationPath(role domain.Role) (string, error) {
	switch role {
	case domain.RoleKitchen:
		return "/restaurante/cocina/comandas", nil
	case domain.RoleChef:
		return "/restaurante/chef/comandas", nil
	case domain.RoleBartender:
		return "/restaurante/bar/comandas_", nil
	}
	return "", &domain.ForbiddenError{Message: fmt.Sprintf("role %q has no work queue", role)}
}

// PendingWork fetches the visible pending lines for a station role.
func (c *Client) PendingWork(ctx context.Context, role domain.Role, sort domain.SortKey) ([]domain.WorkItem, error) {
	path, err := stationPath(role)
	if err != nil {
		return nil, err
	}
	key, err := domain.ParseSortKey(string(sort))
	if err != nil {
		return nil, err
	}
	var items []domain.WorkItem
	if err := c.do(ctx, http.MethodGet, path, url.Values{"sort": {string(key)}}, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetLineStatus marks a pending line delivered or cancelled.
func (c *Client) SetLineStatus(ctx context.Context, role domain.Role, lineID uint64, status domain.LineStatus) (*domain.OrderLine, error) {
	path, err := stationPath(role)
	if err != nil {
		return nil, err
	}
	if !status.Terminal() {
		return nil, &domain.ValidationError{Field: "estado", Message: fmt.Sprintf("a station can only set %q or %q", domain.LineDelivered, domain.LineCancelled)}
	}
	var line domain.OrderLine
	body := map[string]string{"estado": string(status)}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/estado", path, lineID), nil, body, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

// ResetLineToPending is the administrator's correction for a line settled
// by mistake.
func (c *Client) ResetLineToPending(ctx context.Context, lineID uint64) (*domain.OrderLine, error) {
	var line domain.OrderLine
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/comandas/%d/marcar-pendiente", adminPath, lineID), nil, nil, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

func (c *Client) DailyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, adminPath+"/comandas-diarias", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
