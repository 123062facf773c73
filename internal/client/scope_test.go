package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"comanda-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesResult(t *testing.T) {
	scope := NewViewScope(context.Background())
	defer scope.Close()

	var got int
	err := Load(scope, func(ctx context.Context) (int, error) { return 42, nil }, func(v int) { got = v })
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestLoad_PassesErrorsThrough(t *testing.T) {
	scope := NewViewScope(context.Background())
	defer scope.Close()

	boom := errors.New("boom")
	err := Load(scope, func(ctx context.Context) (int, error) { return 0, boom }, func(int) { t.Fatal("apply called") })
	assert.ErrorIs(t, err, boom)
}

func TestLoad_ClosedWhileFetching(t *testing.T) {
	scope := NewViewScope(context.Background())
	started := make(chan struct{})

	go func() {
		<-started
		scope.Close()
	}()

	err := Load(scope, func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 1, nil
	}, func(int) { t.Fatal("apply called after close") })
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestLoad_CancelsInFlightRequest(t *testing.T) {
	started := make(chan struct{})
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})
	f.loginAs(domain.RoleWaiter)
	scope := NewViewScope(context.Background())

	go func() {
		<-started
		scope.Close()
	}()

	err := Load(scope, f.client.ListOpenOrders, func([]domain.Order) { t.Fatal("apply called after close") })
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = f.client.ListOpenOrders(scope.Context())
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, int32(1), f.hits.Load())
}
