package services

import (
	"context"
	"strings"
	"time"

	"comanda-service/internal/domain"
	"comanda-service/internal/infra"
	"comanda-service/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type LoginResult struct {
	Token string      `json:"token"`
	Role  domain.Role `json:"role"`
	ID    uint64      `json:"id"`
	Name  string      `json:"name"`
}

type sessionClaims struct {
	UserID uint64      `json:"uid"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionService issues bearer tokens and keeps them revocable: a token is
// only accepted while its id is present in the session store.
type SessionService struct {
	users  repository.UserRepository
	store  infra.SessionStoreInterface
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(users repository.UserRepository, store infra.SessionStoreInterface, secret string, ttl time.Duration) *SessionService {
	return &SessionService{users: users, store: store, secret: []byte(secret), ttl: ttl, now: time.Now}
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), errors.Wrap(err, "hash password")
}

func (s *SessionService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, &domain.ValidationError{Message: "email and password are required"}
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Status == domain.StatusInactive {
		return nil, &domain.AuthError{Message: domain.ErrInvalidCredentials.Error()}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, &domain.AuthError{Message: domain.ErrInvalidCredentials.Error()}
	}

	now := s.now()
	id := uuid.New().String()
	claims := sessionClaims{
		UserID: u.ID,
		Name:   u.Name,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}
	ident := domain.Identity{UserID: u.ID, Name: u.Name, Role: u.Role, CategoryID: u.CategoryID}
	if err := s.store.Put(ctx, id, ident, s.ttl); err != nil {
		return nil, err
	}

	zap.L().Info("user logged in", zap.Uint64("user_id", u.ID), zap.String("role", string(u.Role)))
	return &LoginResult{Token: token, Role: u.Role, ID: u.ID, Name: u.Name}, nil
}

func (s *SessionService) parse(token string, validate bool) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if !validate {
		parser = jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	}
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, &domain.AuthError{Message: "invalid or expired session"}
	}
	return claims, nil
}

// Authenticate resolves a bearer token to the session identity.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := s.parse(token, true)
	if err != nil {
		return nil, err
	}
	ident, err := s.store.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if ident == nil {
		return nil, &domain.AuthError{Message: "session ended"}
	}
	return ident, nil
}

// Logout revokes the token. Expired tokens are accepted so a client can
// always tear its session down.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token, false)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, claims.ID)
}
