package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentCard     PaymentMethod = "tarjeta"
	PaymentTransfer PaymentMethod = "transferencia"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

type Payment struct {
	ID             uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID        *uint64         `json:"comanda_id,omitempty" gorm:"index"`
	UnifiedOrderID *uint64         `json:"comanda_unificada_id,omitempty" gorm:"index"`
	Method         PaymentMethod   `json:"metodo" gorm:"size:20;not null"`
	Amount         decimal.Decimal `json:"monto" gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Payment) TableName() string { return "pagos" }

// ValidatePayments drops blank lines and checks that what is left is a
// usable split payment covering total.
func ValidatePayments(payments []Payment, total decimal.Decimal) ([]Payment, error) {
	valid := make([]Payment, 0, len(payments))
	sum := decimal.Zero
	for _, p := range payments {
		if p.Amount.IsNegative() {
			return nil, validation("monto", "payment amounts cannot be negative")
		}
		if p.Amount.IsZero() {
			continue
		}
		if !p.Method.Valid() {
			return nil, validation("metodo", "unknown payment method %q", p.Method)
		}
		valid = append(valid, Payment{Method: p.Method, Amount: p.Amount})
		sum = sum.Add(p.Amount)
	}
	if len(valid) == 0 {
		return nil, validation("pagos", "at least one payment with an amount is required")
	}
	if sum.LessThan(total) {
		return nil, validation("pagos", "payments (%s) do not cover the total (%s)", sum.StringFixed(2), total.StringFixed(2))
	}
	return valid, nil
}

func SumPayments(payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}
