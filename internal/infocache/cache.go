// Package infocache keeps time-bounded snapshots of everpay, express and dex info.
//
// The cache holds exactly one snapshot per kind, not per key. A snapshot is
// refetched once it is older than the TTL; concurrent refreshes of the same kind
// are collapsed into a single fetch.
package infocache

import (
	"context"
	"sync"
	"time"

	"everpay-go/internal/constant"
	"everpay-go/internal/types"
	"everpay-go/internal/xerr"

	"github.com/zeromicro/go-zero/core/syncx"
)

// Fetcher loads a fresh snapshot from the network.
type Fetcher[T any] func(ctx context.Context) (T, error)

type slot[T any] struct {
	mu        sync.RWMutex
	value     T
	fetchedAt time.Time
	loaded    bool
}

func (s *slot[T]) fresh(now time.Time, ttl time.Duration) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded || now.Sub(s.fetchedAt) >= ttl {
		var zero T
		return zero, false
	}
	return s.value, true
}

func (s *slot[T]) store(v T, at time.Time) {
	s.mu.Lock()
	s.value = v
	s.fetchedAt = at
	s.loaded = true
	s.mu.Unlock()
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	var zero T
	s.value = zero
	s.fetchedAt = time.Time{}
	s.loaded = false
	s.mu.Unlock()
}

func (s *slot[T]) age(now time.Time) (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return 0, false
	}
	return now.Sub(s.fetchedAt), true
}

// Cache is safe for concurrent use. Snapshots it returns are shared and must be treated as read-only.
type Cache struct {
	ttl    time.Duration
	nowFn  func() time.Time
	flight syncx.SingleFlight

	everpay slot[types.EverpayInfo]
	express slot[types.ExpressInfo]
	dex     slot[types.DexInfo]
}

type Option func(*Cache)

// WithTTL overrides the freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(nowFn func() time.Time) Option {
	return func(c *Cache) {
		c.nowFn = nowFn
	}
}

// New creates an empty cache with the default 3 minute TTL.
func New(opts ...Option) *Cache {
	c := &Cache{
		ttl:    constant.InfoTTL,
		nowFn:  time.Now,
		flight: syncx.NewSingleFlight(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Everpay returns the cached network info, fetching it when missing or stale.
func (c *Cache) Everpay(ctx context.Context, fetch Fetcher[types.EverpayInfo]) (types.EverpayInfo, error) {
	return getOrRefresh(ctx, c, constant.InfoKindEverpay, &c.everpay, fetch)
}

// Express returns the cached quick withdraw provider info.
func (c *Cache) Express(ctx context.Context, fetch Fetcher[types.ExpressInfo]) (types.ExpressInfo, error) {
	return getOrRefresh(ctx, c, constant.InfoKindExpress, &c.express, fetch)
}

// Dex returns the cached swap info.
func (c *Cache) Dex(ctx context.Context, fetch Fetcher[types.DexInfo]) (types.DexInfo, error) {
	return getOrRefresh(ctx, c, constant.InfoKindDex, &c.dex, fetch)
}

// Invalidate drops the snapshot of kind so the next read refetches it.
func (c *Cache) Invalidate(kind constant.InfoKind) error {
	switch kind {
	case constant.InfoKindEverpay:
		c.everpay.reset()
	case constant.InfoKindExpress:
		c.express.reset()
	case constant.InfoKindDex:
		c.dex.reset()
	default:
		return xerr.New(xerr.ErrInvalidRequest, "unknown info kind: %s", kind)
	}
	return nil
}

// Age reports how old the snapshot of kind is; false when nothing is cached.
func (c *Cache) Age(kind constant.InfoKind) (time.Duration, bool) {
	now := c.nowFn()
	switch kind {
	case constant.InfoKindEverpay:
		return c.everpay.age(now)
	case constant.InfoKindExpress:
		return c.express.age(now)
	case constant.InfoKindDex:
		return c.dex.age(now)
	}
	return 0, false
}

func getOrRefresh[T any](ctx context.Context, c *Cache, kind constant.InfoKind, s *slot[T], fetch Fetcher[T]) (T, error) {
	if v, ok := s.fresh(c.nowFn(), c.ttl); ok {
		return v, nil
	}

	res, err := c.flight.Do(string(kind), func() (any, error) {
		// a flight that finished just before this one may already have refreshed the slot
		if v, ok := s.fresh(c.nowFn(), c.ttl); ok {
			return v, nil
		}
		// shared by every waiter, so it must outlive the caller that started it
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.store(v, c.nowFn())
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}
