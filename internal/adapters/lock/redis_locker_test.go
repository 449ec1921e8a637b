package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"transport-optimizer-service/internal/ports"
)

func newTestLocker(t *testing.T) *RedisLocker {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLocker(client, time.Minute)
}

func TestRedisLockerMutualExclusion(t *testing.T) {
	l := newTestLocker(t)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "2026-09-01")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	if _, err := l.Acquire(ctx, "2026-09-01"); !errors.Is(err, ports.ErrRunInProgress) {
		t.Fatalf("second acquire err = %v, want ErrRunInProgress", err)
	}

	// A different date is an independent lock.
	release2, err := l.Acquire(ctx, "2026-09-02")
	if err != nil {
		t.Fatalf("other-date acquire: %v", err)
	}
	release2()

	release()
	if _, err := l.Acquire(ctx, "2026-09-01"); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}

func TestNoopLockerAlwaysAcquires(t *testing.T) {
	var l Noop
	ctx := context.Background()

	r1, err := l.Acquire(ctx, "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := l.Acquire(ctx, "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r1()
	r2()
}
