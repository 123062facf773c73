package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderOpen      OrderStatus = "abierta"
	OrderClosed    OrderStatus = "cerrada"
	OrderPaid      OrderStatus = "pagada"
	OrderCancelled OrderStatus = "cancelada"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderOpen:   {OrderClosed, OrderCancelled},
	OrderClosed: {OrderPaid, OrderCancelled},
}

func (s OrderStatus) Terminal() bool {
	return s == OrderPaid || s == OrderCancelled
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID             uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Table          string          `json:"mesa" gorm:"size:32;not null;index"`
	PartySize      int             `json:"personas" gorm:"not null"`
	DinerName      string          `json:"nombre_comensal,omitempty" gorm:"size:120"`
	Comment        string          `json:"comentario,omitempty" gorm:"size:255"`
	WaiterID       uint64          `json:"mesero_id" gorm:"index"`
	Status         OrderStatus     `json:"estado" gorm:"type:enum('abierta','cerrada','pagada','cancelada');default:'abierta';index"`
	UnifiedOrderID *uint64         `json:"comanda_unificada_id,omitempty" gorm:"index"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null;default:0"`
	Lines          []OrderLine     `json:"productos" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
}

func (Order) TableName() string { return "comandas" }

// LineInput is one requested product when creating or editing an order.
// A zero ID means a new line.
type LineInput struct {
	ID        uint64 `json:"id,omitempty"`
	ProductID uint64 `json:"producto_id" binding:"required"`
	Detail    string `json:"detalle,omitempty"`
}

type OrderDraft struct {
	Table     string      `json:"mesa"`
	PartySize int         `json:"personas"`
	DinerName string      `json:"nombre_comensal,omitempty"`
	Comment   string      `json:"comentario,omitempty"`
	Lines     []LineInput `json:"productos"`
}

// Validate checks the fields required to open or edit an order.
func (d OrderDraft) Validate() error {
	if strings.TrimSpace(d.Table) == "" {
		return validation("mesa", "table is required")
	}
	if d.PartySize <= 0 {
		return validation("personas", "party size is required")
	}
	if len(d.Lines) == 0 {
		return validation("productos", "at least one product is required")
	}
	for i, l := range d.Lines {
		if l.ProductID == 0 {
			return validation("productos", "line %d has no product", i+1)
		}
	}
	return nil
}

// NewOrder builds an open order with every line pending. Products must hold
// every referenced product id.
func NewOrder(d OrderDraft, waiterID uint64, products map[uint64]Product, now time.Time) (*Order, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	o := &Order{
		Table:     strings.TrimSpace(d.Table),
		PartySize: d.PartySize,
		DinerName: strings.TrimSpace(d.DinerName),
		Comment:   d.Comment,
		WaiterID:  waiterID,
		Status:    OrderOpen,
		Total:     decimal.Zero,
		CreatedAt: now,
	}
	if _, err := o.appendLines(d.Lines, products, now); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) appendLines(inputs []LineInput, products map[uint64]Product, now time.Time) ([]*OrderLine, error) {
	start := len(o.Lines)
	for _, in := range inputs {
		p, ok := products[in.ProductID]
		if !ok {
			return nil, &NotFoundError{Resource: "producto", ID: in.ProductID}
		}
		if p.Status == StatusInactive {
			return nil, validation("productos", "product %q is inactive", p.Name)
		}
		o.Lines = append(o.Lines, newLine(o.ID, p, in.Detail, len(o.Lines), now))
	}
	added := make([]*OrderLine, 0, len(o.Lines)-start)
	for i := start; i < len(o.Lines); i++ {
		added = append(added, &o.Lines[i])
	}
	return added, nil
}

// ActiveLines counts lines that were not cancelled.
func (o *Order) ActiveLines() int {
	n := 0
	for _, l := range o.Lines {
		if l.Status != LineCancelled {
			n++
		}
	}
	return n
}

// PayableTotal sums delivered lines only.
func (o *Order) PayableTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		if l.Status == LineDelivered {
			total = total.Add(l.Price)
		}
	}
	return total
}

func (o *Order) Line(lineID uint64) (*OrderLine, error) {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i], nil
		}
	}
	return nil, &NotFoundError{Resource: "comanda_producto", ID: lineID}
}

func (o *Order) Unified() bool { return o.UnifiedOrderID != nil }

func (o *Order) transition(to OrderStatus) error {
	if !o.Status.CanTransition(to) {
		return &InvalidTransitionError{Entity: "comanda", From: string(o.Status), To: string(to)}
	}
	o.Status = to
	return nil
}

// EnsureEditable rejects edits on paid or cancelled orders.
func (o *Order) EnsureEditable() error {
	if o.Status.Terminal() {
		return invalidState("order %d is %s and can no longer be edited", o.ID, o.Status)
	}
	return nil
}

// ensureAcceptsLines allows new pending lines only on open orders; stations
// never see lines of a closed order.
func (o *Order) ensureAcceptsLines() error {
	if o.Status != OrderOpen {
		return invalidState("order %d is %s and takes no new products", o.ID, o.Status)
	}
	return nil
}

// AddLines appends pending lines and returns them.
func (o *Order) AddLines(inputs []LineInput, products map[uint64]Product, now time.Time) ([]*OrderLine, error) {
	if err := o.EnsureEditable(); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, validation("productos", "at least one product is required")
	}
	if err := o.ensureAcceptsLines(); err != nil {
		return nil, err
	}
	added, err := o.appendLines(inputs, products, now)
	if err != nil {
		return nil, err
	}
	o.refreshTotal()
	return added, nil
}

// ApplyEdit replaces the order header and its full line set. Delivered and
// cancelled lines are immutable and must be sent back unchanged. Pending
// lines left out are cancelled, never removed. A pending line whose product
// changed is cancelled and replaced by a new line. A closed order only takes
// header changes.
func (o *Order) ApplyEdit(d OrderDraft, products map[uint64]Product, now time.Time) ([]*OrderLine, error) {
	if err := o.EnsureEditable(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	sent := make(map[uint64]LineInput, len(d.Lines))
	var fresh []LineInput
	for _, in := range d.Lines {
		if in.ID == 0 {
			fresh = append(fresh, in)
			continue
		}
		if _, err := o.Line(in.ID); err != nil {
			return nil, err
		}
		if _, dup := sent[in.ID]; dup {
			return nil, validation("productos", "line %d sent twice", in.ID)
		}
		sent[in.ID] = in
	}
	if len(fresh) > 0 {
		if err := o.ensureAcceptsLines(); err != nil {
			return nil, err
		}
	}

	for i := range o.Lines {
		l := &o.Lines[i]
		in, kept := sent[l.ID]
		if l.Status.Terminal() {
			if !kept {
				return nil, invalidState("line %d is %s and must be preserved", l.ID, l.Status)
			}
			if in.ProductID != l.ProductID || in.Detail != l.Detail {
				return nil, invalidState("line %d is %s and cannot be modified", l.ID, l.Status)
			}
		}
	}

	for i := range o.Lines {
		l := &o.Lines[i]
		if l.Status.Terminal() {
			continue
		}
		in, kept := sent[l.ID]
		switch {
		case !kept:
			l.Status = LineCancelled
		case in.ProductID != l.ProductID:
			if err := o.ensureAcceptsLines(); err != nil {
				return nil, err
			}
			l.Status = LineCancelled
			fresh = append(fresh, LineInput{ProductID: in.ProductID, Detail: in.Detail})
		default:
			l.Detail = in.Detail
		}
	}

	o.Table = strings.TrimSpace(d.Table)
	o.PartySize = d.PartySize
	o.DinerName = strings.TrimSpace(d.DinerName)
	o.Comment = d.Comment

	added, err := o.appendLines(fresh, products, now)
	if err != nil {
		return nil, err
	}
	o.refreshTotal()
	return added, nil
}

// refreshTotal keeps the snapshot of a closed order in sync after an edit.
func (o *Order) refreshTotal() {
	if o.Status == OrderClosed {
		o.Total = o.PayableTotal()
	}
}

// Close moves an open order to cerrada. Pending lines are cancelled and the
// payable total is snapshotted. Members of a unified order are closed only
// through the unified order.
func (o *Order) Close(now time.Time) (*Ticket, error) {
	if o.Unified() {
		return nil, invalidState("order %d is unified; close unified order %d", o.ID, *o.UnifiedOrderID)
	}
	if err := o.close(now); err != nil {
		return nil, err
	}
	return TicketFor(now, o), nil
}

func (o *Order) close(now time.Time) error {
	if o.ActiveLines() == 0 {
		return invalidState("order %d has no active products", o.ID)
	}
	if err := o.transition(OrderClosed); err != nil {
		return err
	}
	for i := range o.Lines {
		if o.Lines[i].Status == LinePending {
			o.Lines[i].Status = LineCancelled
		}
	}
	o.Total = o.PayableTotal()
	o.ClosedAt = &now
	return nil
}

// Pay settles a closed order. The payments must cover the snapshotted total.
func (o *Order) Pay(payments []Payment, now time.Time) ([]Payment, error) {
	if o.Unified() {
		return nil, invalidState("order %d is unified; pay unified order %d", o.ID, *o.UnifiedOrderID)
	}
	valid, err := ValidatePayments(payments, o.Total)
	if err != nil {
		return nil, err
	}
	if err := o.pay(now); err != nil {
		return nil, err
	}
	for i := range valid {
		id := o.ID
		valid[i].OrderID = &id
		valid[i].CreatedAt = now
	}
	return valid, nil
}

func (o *Order) pay(now time.Time) error {
	if o.ActiveLines() == 0 {
		return invalidState("order %d has no active products", o.ID)
	}
	if err := o.transition(OrderPaid); err != nil {
		return err
	}
	o.PaidAt = &now
	return nil
}

// Cancel moves an open or closed order to cancelada, cancelling pending lines.
func (o *Order) Cancel(now time.Time) error {
	if o.Unified() {
		return invalidState("order %d is unified and cannot be cancelled on its own", o.ID)
	}
	if err := o.transition(OrderCancelled); err != nil {
		return err
	}
	for i := range o.Lines {
		if o.Lines[i].Status == LinePending {
			o.Lines[i].Status = LineCancelled
		}
	}
	o.ClosedAt = &now
	return nil
}
