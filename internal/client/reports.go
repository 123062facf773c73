package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"comanda-service/internal/domain"
)

type ReportKind string

const (
	ReportSales     ReportKind = "reporte-fechas"
	ReportInventory ReportKind = "reporte-inventario"
	ReportUser      ReportKind = "reporte-usuario"
	ReportOrders    ReportKind = "reporte-comandas"
	ReportToday     ReportKind = "reporte-hoy"
)

// ReportRequest selects a report. Zero dates let the server default to
// today; UserID is only used by ReportUser and Status by ReportOrders.
type ReportRequest struct {
	Kind   ReportKind
	From   time.Time
	To     time.Time
	UserID uint64
	Status domain.OrderStatus
}

func (r ReportRequest) path() (string, url.Values, error) {
	q := url.Values{}
	if !r.From.IsZero() {
		q.Set("desde", r.From.Format("2006-01-02"))
	}
	if !r.To.IsZero() {
		q.Set("hasta", r.To.Format("2006-01-02"))
	}
	switch r.Kind {
	case ReportSales, ReportInventory, ReportToday:
		return adminPath + "/" + string(r.Kind), q, nil
	case ReportUser:
		if r.UserID == 0 {
			return "", nil, &domain.ValidationError{Field: "usuario", Message: "user is required"}
		}
		return fmt.Sprintf("%s/%s/%d", adminPath, r.Kind, r.UserID), q, nil
	case ReportOrders:
		if r.Status != "" {
			q.Set("estado", string(r.Status))
		}
		return adminPath + "/" + string(r.Kind), q, nil
	}
	return "", nil, &domain.ValidationError{Field: "reporte", Message: fmt.Sprintf("unknown report %q", r.Kind)}
}

func (c *Client) report(ctx context.Context, r ReportRequest, out any) error {
	path, q, err := r.path()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodGet, path, q, nil, out)
}

// Export asks the server for the spreadsheet version and returns its URL.
func (c *Client) Export(ctx context.Context, r ReportRequest) (string, error) {
	path, q, err := r.path()
	if err != nil {
		return "", err
	}
	q.Set("format", "excel")
	var res struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, path, q, nil, &res); err != nil {
		return "", err
	}
	return res.URL, nil
}

func (c *Client) SalesReport(ctx context.Context, from, to time.Time) (*domain.SalesReport, error) {
	var out domain.SalesReport
	if err := c.report(ctx, ReportRequest{Kind: ReportSales, From: from, To: to}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) InventoryReport(ctx context.Context) (*domain.InventoryReport, error) {
	var out domain.InventoryReport
	if err := c.report(ctx, ReportRequest{Kind: ReportInventory}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserReport(ctx context.Context, userID uint64, from, to time.Time) (*domain.UserReport, error) {
	var out domain.UserReport
	if err := c.report(ctx, ReportRequest{Kind: ReportUser, UserID: userID, From: from, To: to}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) OrdersReport(ctx context.Context, from, to time.Time, status domain.OrderStatus) (*domain.OrdersReport, error) {
	var out domain.OrdersReport
	if err := c.report(ctx, ReportRequest{Kind: ReportOrders, From: from, To: to, Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TodayReport(ctx context.Context) (*domain.TodayReport, error) {
	var out domain.TodayReport
	if err := c.report(ctx, ReportRequest{Kind: ReportToday}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
