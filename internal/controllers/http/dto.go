package http

import (
	"comanda-service/internal/domain"

	"github.com/shopspring/decimal"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LinesRequest struct {
	Lines []domain.LineInput `json:"productos" binding:"required,min=1,dive"`
}

type PaymentRequest struct {
	Method domain.PaymentMethod `json:"metodo"`
	Amount decimal.Decimal      `json:"monto"`
}

type UnifyRequest struct {
	IDs []uint64 `json:"ids" binding:"required"`
}

type LineStatusRequest struct {
	Status string `json:"estado" binding:"required"`
}

type AssociationRequest struct {
	CategoryID *uint64 `json:"categoria_id"`
}

type MovementRequest struct {
	Kind     domain.MovementKind `json:"tipo" binding:"required"`
	Quantity decimal.Decimal     `json:"cantidad"`
	Reason   string              `json:"motivo"`
}

type ExportResponse struct {
	URL string `json:"url"`
}

func toPayments(reqs []PaymentRequest) []domain.Payment {
	out := make([]domain.Payment, len(reqs))
	for i, r := range reqs {
		out[i] = domain.Payment{Method: r.Method, Amount: r.Amount}
	}
	return out
}
