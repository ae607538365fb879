package signals

import (
	"context"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnShutdownRunsInLIFOOrder(t *testing.T) {
	m := NewManager()
	var mu sync.Mutex
	var order []int

	m.OnShutdown(func(ctx context.Context) error {
		mu.Lock()
		order = append(order, 1)
		mu.Unlock()
		return nil
	})
	m.OnShutdown(func(ctx context.Context) error {
		mu.Lock()
		order = append(order, 2)
		mu.Unlock()
		return nil
	})

	m.shutdown()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, 2)
	assert.Equal(t, []int{2, 1}, order)
}

func TestListenCancelsContextOnSignal(t *testing.T) {
	m := NewManager()
	ctx := m.Listen(context.Background())

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGHUP))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not canceled after SIGHUP")
	}
}

func TestListenStopWithoutSignal(t *testing.T) {
	m := NewManager()
	ctx := m.Listen(context.Background())
	m.Stop()

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled by Stop alone")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSupports(t *testing.T) {
	assert.True(t, Supports(syscall.SIGINT))
	assert.True(t, Supports(syscall.SIGTERM))
	assert.True(t, Supports(syscall.SIGHUP))
	assert.False(t, Supports(syscall.SIGUSR1))
}
