package reservation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockerSerializesOneRoom(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, 1)
	require.NoError(t, err)

	var acquired atomic.Bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		second, err := locker.Lock(ctx, 1)
		if err == nil {
			acquired.Store(true)
			second()
		}
	}()

	time.Sleep(20 * time.Millisecond)
	assert.False(t, acquired.Load(), "second holder must wait")

	unlock()
	unlock() // second call is a no-op

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second lock was never acquired")
	}
	assert.True(t, acquired.Load())
}

func TestLocalLockerRoomsAreIndependent(t *testing.T) {
	locker := NewLocalLocker()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	unlock1, err := locker.Lock(ctx, 1)
	require.NoError(t, err)
	defer unlock1()

	unlock2, err := locker.Lock(ctx, 2)
	require.NoError(t, err)
	unlock2()
}

func TestLocalLockerTimesOut(t *testing.T) {
	locker := NewLocalLocker()

	unlock, err := locker.Lock(context.Background(), 1)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLocalLockerCancelledContext(t *testing.T) {
	locker := NewLocalLocker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := locker.Lock(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
