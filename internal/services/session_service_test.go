package services

import (
	"context"
	"testing"
	"time"

	"comanda-service/internal/domain"
	"comanda-service/internal/mocks"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T) (*SessionService, *mocks.MockUserRepository, *mocks.MockSessionStore) {
	t.Helper()
	users := new(mocks.MockUserRepository)
	store := new(mocks.MockSessionStore)
	svc := NewSessionService(users, store, "test-secret", time.Hour)
	return svc, users, store
}

func TestSessionService_Login(t *testing.T) {
	hash, err := HashPassword("s3creto")
	require.NoError(t, err)
	active := &domain.User{ID: 4, Name: "Luis", Email: "luis@example.com", PasswordHash: hash, Role: domain.RoleWaiter, Status: domain.StatusActive}
	inactive := *active
	inactive.Status = domain.StatusInactive

	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockSessionStore)
		expectedError string
	}{
		{
			name:     "valid credentials",
			email:    " Luis@Example.com ",
			password: "s3creto",
			setupMocks: func(users *mocks.MockUserRepository, store *mocks.MockSessionStore) {
				users.On("FindByEmail", mock.Anything, "luis@example.com").Return(active, nil)
				store.On("Put", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(i domain.Identity) bool {
					return i.UserID == 4 && i.Role == domain.RoleWaiter
				}), time.Hour).Return(nil)
			},
		},
		{
			name:          "missing password",
			email:         "luis@example.com",
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockSessionStore) {},
			expectedError: "email and password are required",
		},
		{
			name:     "wrong password",
			email:    "luis@example.com",
			password: "otra",
			setupMocks: func(users *mocks.MockUserRepository, _ *mocks.MockSessionStore) {
				users.On("FindByEmail", mock.Anything, "luis@example.com").Return(active, nil)
			},
			expectedError: domain.ErrInvalidCredentials.Error(),
		},
		{
			name:     "unknown user",
			email:    "nadie@example.com",
			password: "s3creto",
			setupMocks: func(users *mocks.MockUserRepository, _ *mocks.MockSessionStore) {
				users.On("FindByEmail", mock.Anything, "nadie@example.com").Return(nil, nil)
			},
			expectedError: domain.ErrInvalidCredentials.Error(),
		},
		{
			name:     "inactive user",
			email:    "luis@example.com",
			password: "s3creto",
			setupMocks: func(users *mocks.MockUserRepository, _ *mocks.MockSessionStore) {
				users.On("FindByEmail", mock.Anything, "luis@example.com").Return(&inactive, nil)
			},
			expectedError: domain.ErrInvalidCredentials.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, store := newSessionService(t)
			tt.setupMocks(users, store)

			res, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
				store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, res.Token)
			assert.Equal(t, domain.RoleWaiter, res.Role)
			assert.Equal(t, uint64(4), res.ID)
			store.AssertExpectations(t)
		})
	}
}

func TestSessionService_AuthenticateAndLogout(t *testing.T) {
	svc, users, store := newSessionService(t)
	hash, err := HashPassword("s3creto")
	require.NoError(t, err)
	users.On("FindByEmail", mock.Anything, "chef@example.com").Return(&domain.User{
		ID: 6, Name: "Chef", Email: "chef@example.com", PasswordHash: hash, Role: domain.RoleChef, CategoryID: uptr(1), Status: domain.StatusActive,
	}, nil)

	var jti string
	var stored domain.Identity
	store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		jti = args.String(1)
		stored = args.Get(2).(domain.Identity)
	})

	res, err := svc.Login(context.Background(), "chef@example.com", "s3creto")
	require.NoError(t, err)

	store.On("Get", mock.Anything, jti).Return(&stored, nil).Once()
	ident, err := svc.Authenticate(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleChef, ident.Role)
	require.NotNil(t, ident.CategoryID)

	store.On("Delete", mock.Anything, jti).Return(nil)
	require.NoError(t, svc.Logout(context.Background(), res.Token))

	store.On("Get", mock.Anything, jti).Return(nil, nil)
	_, err = svc.Authenticate(context.Background(), res.Token)
	assert.IsType(t, &domain.AuthError{}, err)
	store.AssertExpectations(t)
}

func TestSessionService_RejectsForeignTokens(t *testing.T) {
	svc, _, _ := newSessionService(t)
	other := NewSessionService(nil, nil, "other-secret", time.Hour)

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.IsType(t, &domain.AuthError{}, err)

	token, err := forgeToken(other, 1)
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), token)
	assert.IsType(t, &domain.AuthError{}, err)
}

func forgeToken(s *SessionService, uid uint64) (string, error) {
	claims := sessionClaims{
		UserID:           uid,
		Role:             domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ID: "forged", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
