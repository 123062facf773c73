package repository

import (
	"context"
	"time"

	"comanda-service/internal/domain"
)

// Lookups return (nil, nil) when the record does not exist.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order, c domain.Consumption) error
	Update(ctx context.Context, order *domain.Order, c domain.Consumption) error
	UpdateLine(ctx context.Context, line *domain.OrderLine) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByLineID(ctx context.Context, lineID uint64) (*domain.Order, error)
	FindOpen(ctx context.Context) ([]domain.Order, error)
	FindBetween(ctx context.Context, from, to time.Time, status domain.OrderStatus) ([]domain.Order, error)
	SavePayments(ctx context.Context, order *domain.Order, payments []domain.Payment) error
	PaymentsBetween(ctx context.Context, from, to time.Time) ([]domain.Payment, error)

	CreateUnified(ctx context.Context, u *domain.UnifiedOrder) error
	FindUnified(ctx context.Context, id uint64) (*domain.UnifiedOrder, error)
	UpdateUnified(ctx context.Context, u *domain.UnifiedOrder, payments []domain.Payment) error
}
