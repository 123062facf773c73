package mysql

import (
	"context"

	"comanda-service/internal/domain"
	"comanda-service/internal/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, errors.Wrap(err, "list usuarios")
}

func (r *userRepo) ListStationUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := r.db.WithContext(ctx).
		Where("role IN ?", []domain.Role{domain.RoleKitchen, domain.RoleBartender, domain.RoleChef}).
		Order("name ASC").Find(&out).Error
	return out, errors.Wrap(err, "list station usuarios")
}

func (r *userRepo) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	var u domain.User
	ok, err := first(r.db.WithContext(ctx), &u, id)
	if err != nil || !ok {
		return nil, errors.Wrapf(err, "find usuario %d", id)
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find usuario by email")
	}
	return &u, nil
}

func (r *userRepo) Save(ctx context.Context, u *domain.User) error {
	return errors.Wrap(r.db.WithContext(ctx).Save(u).Error, "save usuario")
}

func (r *userRepo) Delete(ctx context.Context, id uint64) error {
	return errors.Wrapf(r.db.WithContext(ctx).Delete(&domain.User{}, id).Error, "delete usuario %d", id)
}
