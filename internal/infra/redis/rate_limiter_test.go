//go:build !integration

package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memRedis struct {
	counters map[string]int64
	expires  map[string]time.Duration
	incrErr  error
}

func newMemRedis() *memRedis {
	return &memRedis{counters: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memRedis) Ping(ctx context.Context) error { return nil }
func (m *memRedis) Close() error                   { return nil }

func (m *memRedis) Incr(ctx context.Context, key string) (int64, error) {
	if m.incrErr != nil {
		return 0, m.incrErr
	}
	m.counters[key]++
	return m.counters[key], nil
}

func (m *memRedis) Expire(ctx context.Context, key string, expiration time.Duration) error {
	m.expires[key] = expiration
	return nil
}

func TestRateLimiterAllow(t *testing.T) {
	ctx := context.Background()
	mem := newMemRedis()
	rl := NewRateLimiter(mem)
	key := UserCommandKey(42, "catalog")

	for i := 1; i <= 3; i++ {
		ok, err := rl.Allow(ctx, key, 3, time.Minute)
		if err != nil || !ok {
			t.Fatalf("call %d: expected allowed, got ok=%v err=%v", i, ok, err)
		}
	}
	ok, err := rl.Allow(ctx, key, 3, time.Minute)
	if err != nil || ok {
		t.Fatalf("4th call: expected blocked, got ok=%v err=%v", ok, err)
	}
	if mem.expires[key] != time.Minute {
		t.Errorf("expected window set on first hit, got %v", mem.expires[key])
	}
	if key != "rate_limit:42:catalog" {
		t.Errorf("unexpected key %q", key)
	}
}

func TestRateLimiterPropagatesErrors(t *testing.T) {
	mem := newMemRedis()
	mem.incrErr = errors.New("redis down")
	if _, err := NewRateLimiter(mem).Allow(context.Background(), "k", 1, time.Second); err == nil {
		t.Fatal("expected error")
	}
}
