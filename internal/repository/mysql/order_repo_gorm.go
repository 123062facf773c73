package mysql

import (
	"context"
	"fmt"
	"time"

	"comanda-service/internal/domain"
	"comanda-service/internal/repository"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func byPosition(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }

// Create inserts the order with its lines and draws down stock in the same
// transaction, so a failed deduction leaves no order behind.
func (r *orderRepo) Create(ctx context.Context, order *domain.Order, c domain.Consumption) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return errors.Wrap(err, "insert comanda")
		}
		if order.ID == 0 {
			return errors.New("failed to assign order ID")
		}
		return consume(tx, order.ID, order.WaiterID, c)
	})
	if err != nil {
		zap.L().Error("order create failed", zap.Error(err))
		return err
	}
	zap.L().Info("order saved", zap.Uint64("order_id", order.ID), zap.Int("lines", len(order.Lines)))
	return nil
}

func (r *orderRepo) Update(ctx context.Context, order *domain.Order, c domain.Consumption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveOrder(tx, order); err != nil {
			return err
		}
		return consume(tx, order.ID, order.WaiterID, c)
	})
}

func saveOrder(tx *gorm.DB, order *domain.Order) error {
	if err := tx.Omit("Lines").Save(order).Error; err != nil {
		return errors.Wrapf(err, "save comanda %d", order.ID)
	}
	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
		if err := tx.Save(&order.Lines[i]).Error; err != nil {
			return errors.Wrapf(err, "save line of comanda %d", order.ID)
		}
	}
	return nil
}

// consume subtracts stock only where enough remains and logs a salida
// movement per item.
func consume(tx *gorm.DB, orderID, userID uint64, c domain.Consumption) error {
	oid := orderID
	for id, qty := range c.Products {
		res := tx.Model(&domain.Product{}).
			Where("id = ? AND stock >= ?", id, qty).
			Update("stock", gorm.Expr("stock - ?", qty))
		if res.Error != nil {
			return errors.Wrapf(res.Error, "deduct product %d", id)
		}
		if res.RowsAffected == 0 {
			return &domain.ValidationError{Field: "productos", Message: fmt.Sprintf("insufficient stock for product %d", id)}
		}
		pid := id
		mv := domain.InventoryMovement{ProductID: &pid, OrderID: &oid, Kind: domain.MovementOut, Quantity: qty, Reason: "comanda", UserID: userID}
		if err := tx.Create(&mv).Error; err != nil {
			return errors.Wrap(err, "record product movement")
		}
	}
	for id, qty := range c.RawMaterials {
		res := tx.Model(&domain.RawMaterial{}).
			Where("id = ? AND stock >= ?", id, qty).
			Update("stock", gorm.Expr("stock - ?", qty))
		if res.Error != nil {
			return errors.Wrapf(res.Error, "deduct raw material %d", id)
		}
		if res.RowsAffected == 0 {
			return &domain.ValidationError{Field: "productos", Message: fmt.Sprintf("insufficient stock for raw material %d", id)}
		}
		mid := id
		mv := domain.InventoryMovement{RawMaterialID: &mid, OrderID: &oid, Kind: domain.MovementOut, Quantity: qty, Reason: "comanda", UserID: userID}
		if err := tx.Create(&mv).Error; err != nil {
			return errors.Wrap(err, "record raw material movement")
		}
	}
	return nil
}

func (r *orderRepo) UpdateLine(ctx context.Context, line *domain.OrderLine) error {
	err := r.db.WithContext(ctx).Model(line).
		Select("Status", "DeliveredAt").
		Updates(line).Error
	return errors.Wrapf(err, "update line %d", line.ID)
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Lines", byPosition).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		zap.L().Error("FindByID failed", zap.Uint64("order_id", id), zap.Error(err))
		return nil, errors.Wrapf(err, "find comanda %d", id)
	}
	return &o, nil
}

func (r *orderRepo) FindByLineID(ctx context.Context, lineID uint64) (*domain.Order, error) {
	var line domain.OrderLine
	if err := r.db.WithContext(ctx).Select("id", "order_id").First(&line, lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "find line %d", lineID)
	}
	return r.FindByID(ctx, line.OrderID)
}

func (r *orderRepo) FindOpen(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Preload("Lines", byPosition).
		Where("status = ?", domain.OrderOpen).
		Order("created_at ASC").Find(&out).Error
	return out, errors.Wrap(err, "find open comandas")
}

func (r *orderRepo) FindBetween(ctx context.Context, from, to time.Time, status domain.OrderStatus) ([]domain.Order, error) {
	var out []domain.Order
	q := r.db.WithContext(ctx).Preload("Lines", byPosition).
		Where("created_at >= ? AND created_at < ?", from, to)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&out).Error
	return out, errors.Wrap(err, "find comandas between")
}

// SavePayments marks a closed order paid and records its payments. The
// status change only applies to a row still cerrada, so a second payment of
// the same order fails instead of recording a duplicate set.
func (r *orderRepo) SavePayments(ctx context.Context, order *domain.Order, payments []domain.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Order{}).
			Where("id = ? AND status = ?", order.ID, domain.OrderClosed).
			Updates(map[string]any{"status": order.Status, "paid_at": order.PaidAt})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "save comanda %d", order.ID)
		}
		if res.RowsAffected != 1 {
			return &domain.InvalidStateError{Message: fmt.Sprintf("order %d was settled meanwhile; reload and retry", order.ID)}
		}
		if err := tx.Create(&payments).Error; err != nil {
			return errors.Wrapf(err, "insert payments of comanda %d", order.ID)
		}
		return nil
	})
}

func (r *orderRepo) PaymentsBetween(ctx context.Context, from, to time.Time) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").Find(&out).Error
	return out, errors.Wrap(err, "find payments between")
}

// CreateUnified inserts the group and claims its members. Members that were
// closed or unified by someone else meanwhile make the whole call fail.
func (r *orderRepo) CreateUnified(ctx context.Context, u *domain.UnifiedOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Create(u).Error; err != nil {
			return errors.Wrap(err, "insert comanda unificada")
		}
		u.Attach()
		ids := make([]uint64, len(u.Members))
		for i, m := range u.Members {
			ids[i] = m.ID
		}
		res := tx.Model(&domain.Order{}).
			Where("id IN ? AND status = ? AND unified_order_id IS NULL", ids, domain.OrderOpen).
			Update("unified_order_id", u.ID)
		if res.Error != nil {
			return errors.Wrap(res.Error, "attach members")
		}
		if res.RowsAffected != int64(len(ids)) {
			return &domain.InvalidStateError{Message: "some orders changed while unifying; reload and retry"}
		}
		return nil
	})
}

func (r *orderRepo) FindUnified(ctx context.Context, id uint64) (*domain.UnifiedOrder, error) {
	var u domain.UnifiedOrder
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Members.Lines", byPosition).
		First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "find comanda unificada %d", id)
	}
	return &u, nil
}

// unifiedFrom is the status a unified order must still have for a move to
// its current status to apply.
var unifiedFrom = map[domain.OrderStatus]domain.OrderStatus{
	domain.OrderClosed: domain.OrderOpen,
	domain.OrderPaid:   domain.OrderClosed,
}

// UpdateUnified persists a close or a payment of the group. The change only
// applies if nobody moved the group first.
func (r *orderRepo) UpdateUnified(ctx context.Context, u *domain.UnifiedOrder, payments []domain.Payment) error {
	from, ok := unifiedFrom[u.Status]
	if !ok {
		return &domain.InvalidStateError{Message: fmt.Sprintf("unified order %d cannot be saved as %s", u.ID, u.Status)}
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.UnifiedOrder{}).
			Where("id = ? AND status = ?", u.ID, from).
			Updates(map[string]any{"status": u.Status, "total": u.Total, "closed_at": u.ClosedAt, "paid_at": u.PaidAt})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "save comanda unificada %d", u.ID)
		}
		if res.RowsAffected != 1 {
			return &domain.InvalidStateError{Message: fmt.Sprintf("unified order %d changed meanwhile; reload and retry", u.ID)}
		}
		for i := range u.Members {
			if err := saveOrder(tx, &u.Members[i]); err != nil {
				return err
			}
		}
		if len(payments) == 0 {
			return nil
		}
		return errors.Wrap(tx.Create(&payments).Error, "insert unified payments")
	})
}
