package services

import (
	"time"

	"comanda-service/internal/domain"
)

func orderEvent(o *domain.Order) domain.OrderEvent {
	return domain.OrderEvent{
		OrderID:    o.ID,
		Table:      o.Table,
		Status:     o.Status,
		WaiterID:   o.WaiterID,
		Lines:      len(o.Lines),
		Total:      o.Total,
		OccurredAt: time.Now(),
	}
}

func lineEvent(o *domain.Order, l *domain.OrderLine, from domain.LineStatus, by uint64) domain.LineStatusEvent {
	return domain.LineStatusEvent{
		OrderID:    o.ID,
		LineID:     l.ID,
		ProductID:  l.ProductID,
		CategoryID: l.CategoryID,
		Table:      o.Table,
		From:       from,
		To:         l.Status,
		ChangedBy:  by,
		OccurredAt: time.Now(),
	}
}

func paymentEvent(orderID, unifiedID uint64, payments []domain.Payment) domain.PaymentEvent {
	return domain.PaymentEvent{
		OrderID:        orderID,
		UnifiedOrderID: unifiedID,
		Amount:         domain.SumPayments(payments),
		Payments:       payments,
		OccurredAt:     time.Now(),
	}
}

func unifiedEvent(u *domain.UnifiedOrder) domain.UnifiedEvent {
	ids := make([]uint64, len(u.Members))
	for i, m := range u.Members {
		ids[i] = m.ID
	}
	return domain.UnifiedEvent{
		UnifiedOrderID: u.ID,
		OrderIDs:       ids,
		Table:          u.TableLabel(),
		Status:         u.Status,
		OccurredAt:     time.Now(),
	}
}
