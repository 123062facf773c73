package services

import (
	"context"

	"comanda-service/internal/domain"
)

// Unify groups open orders under one bill.
func (u *OrderService) Unify(ctx context.Context, ids []uint64) (*domain.UnifiedOrder, error) {
	if len(ids) < 2 {
		return nil, &domain.ValidationError{Field: "ids", Message: "at least two orders are required to unify"}
	}
	orders := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		o, err := u.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if o == nil {
			return nil, &domain.NotFoundError{Resource: "comanda", ID: id}
		}
		orders = append(orders, *o)
	}
	unified, err := domain.Unify(orders, u.now())
	if err != nil {
		return nil, err
	}
	if err := u.repo.CreateUnified(ctx, unified); err != nil {
		return nil, err
	}
	go u.publish(EventOrderUnified, unifiedEvent(unified))
	return unified, nil
}

func (u *OrderService) GetUnified(ctx context.Context, id uint64) (*domain.UnifiedOrder, error) {
	unified, err := u.repo.FindUnified(ctx, id)
	if err != nil {
		return nil, err
	}
	if unified == nil {
		return nil, &domain.NotFoundError{Resource: "comanda_unificada", ID: id}
	}
	return unified, nil
}

// CloseUnified closes every member and returns the combined ticket.
func (u *OrderService) CloseUnified(ctx context.Context, id uint64) (*domain.Ticket, error) {
	unified, err := u.GetUnified(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket, err := unified.Close(u.now())
	if err != nil {
		return nil, err
	}
	if err := u.repo.UpdateUnified(ctx, unified, nil); err != nil {
		return nil, err
	}
	go u.publish(EventOrderClosed, unifiedEvent(unified))
	return ticket, nil
}

func (u *OrderService) PayUnified(ctx context.Context, id uint64, payments []domain.Payment) (*domain.UnifiedOrder, error) {
	unified, err := u.GetUnified(ctx, id)
	if err != nil {
		return nil, err
	}
	recorded, err := unified.Pay(payments, u.now())
	if err != nil {
		return nil, err
	}
	if err := u.repo.UpdateUnified(ctx, unified, recorded); err != nil {
		return nil, err
	}
	go u.publish(EventOrderPaid, paymentEvent(0, unified.ID, recorded))
	return unified, nil
}
