package services

import (
	"context"
	"strings"

	"comanda-service/internal/domain"
)

func (s *CatalogService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *CatalogService) GetUser(ctx context.Context, id uint64) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &domain.NotFoundError{Resource: "usuario", ID: id}
	}
	return u, nil
}

// SaveUser creates a user (id 0) or updates one. The password is only
// required on create; an empty password on update keeps the current hash.
func (s *CatalogService) SaveUser(ctx context.Context, id uint64, in UserInput) (*domain.User, error) {
	u := &domain.User{Status: domain.StatusActive}
	if id != 0 {
		current, err := s.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		u = current
	}
	u.Name = strings.TrimSpace(in.Name)
	u.Email = strings.TrimSpace(strings.ToLower(in.Email))
	u.Role = in.Role
	u.CategoryID = in.CategoryID
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if id == 0 && in.Password == "" {
		return nil, &domain.ValidationError{Field: "password", Message: "password is required"}
	}
	if in.Password != "" {
		hash, err := HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if u.CategoryID != nil {
		if _, err := s.GetCategory(ctx, *u.CategoryID); err != nil {
			return nil, err
		}
	}
	if other, err := s.users.FindByEmail(ctx, u.Email); err != nil {
		return nil, err
	} else if other != nil && other.ID != u.ID {
		return nil, &domain.ValidationError{Field: "email", Message: "email already in use"}
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *CatalogService) DeleteUser(ctx context.Context, id uint64) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

// Associations lists station users with their category.
func (s *CatalogService) Associations(ctx context.Context) ([]domain.User, error) {
	return s.users.ListStationUsers(ctx)
}

// Associate assigns (or clears, with nil) the category a station user works.
func (s *CatalogService) Associate(ctx context.Context, userID uint64, categoryID *uint64) (*domain.User, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.Role.Station() {
		return nil, &domain.ValidationError{Field: "categoria_id", Message: "only kitchen, bar and chef users take a category"}
	}
	if categoryID != nil {
		if _, err := s.GetCategory(ctx, *categoryID); err != nil {
			return nil, err
		}
	}
	u.CategoryID = categoryID
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
