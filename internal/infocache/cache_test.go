package infocache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"everpay-go/internal/constant"
	"everpay-go/internal/types"
	"everpay-go/internal/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func countingEverpayFetch(calls *int32) Fetcher[types.EverpayInfo] {
	return func(ctx context.Context) (types.EverpayInfo, error) {
		n := atomic.AddInt32(calls, 1)
		return types.EverpayInfo{FeeRecipient: "0xfee", TxVersion: "v1", Owner: string(rune('a' + n - 1))}, nil
	}
}

func TestCache_FreshWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := New(WithClock(clock.Now))
	var calls int32
	fetch := countingEverpayFetch(&calls)

	info, err := c.Everpay(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, "0xfee", info.FeeRecipient)

	clock.Advance(179 * time.Second)
	_, err = c.Everpay(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second read within 180s must not fetch")

	clock.Advance(1 * time.Second)
	info, err = c.Everpay(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "read at 180s must refetch")
	assert.Equal(t, "b", info.Owner)
}

func TestCache_SlotsAreIndependent(t *testing.T) {
	c := New()
	var everpayCalls, expressCalls int32

	_, err := c.Everpay(context.Background(), countingEverpayFetch(&everpayCalls))
	require.NoError(t, err)

	express, err := c.Express(context.Background(), func(ctx context.Context) (types.ExpressInfo, error) {
		atomic.AddInt32(&expressCalls, 1)
		return types.ExpressInfo{Address: "0xexpress"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "0xexpress", express.Address)

	dex, err := c.Dex(context.Background(), func(ctx context.Context) (types.DexInfo, error) {
		return types.DexInfo{Address: "0xdex"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "0xdex", dex.Address)

	assert.Equal(t, int32(1), everpayCalls)
	assert.Equal(t, int32(1), expressCalls)
}

func TestCache_FetchErrorKeepsPreviousSnapshot(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := New(WithClock(clock.Now), WithTTL(time.Minute))
	var calls int32

	_, err := c.Everpay(context.Background(), countingEverpayFetch(&calls))
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	boom := xerr.New(xerr.ErrNetworkUnavailable, "down")
	_, err = c.Everpay(context.Background(), func(ctx context.Context) (types.EverpayInfo, error) {
		return types.EverpayInfo{}, boom
	})
	assert.True(t, errors.Is(err, xerr.ErrNetworkUnavailable))

	age, ok := c.Age(constant.InfoKindEverpay)
	require.True(t, ok)
	assert.Equal(t, 2*time.Minute, age)
}

func TestCache_ConcurrentRefreshCollapses(t *testing.T) {
	c := New()
	var calls int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (types.ExpressInfo, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return types.ExpressInfo{Address: "0xexpress"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			info, err := c.Express(context.Background(), fetch)
			assert.NoError(t, err)
			assert.Equal(t, "0xexpress", info.Address)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestCache_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c := New()
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (types.ExpressInfo, error) {
		close(started)
		select {
		case <-ctx.Done():
			return types.ExpressInfo{}, ctx.Err()
		case <-release:
			return types.ExpressInfo{Address: "0xexpress"}, nil
		}
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := c.Express(leaderCtx, fetch)
		leaderErr <- err
	}()
	<-started

	var follower types.ExpressInfo
	var followerErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		follower, followerErr = c.Express(context.Background(), fetch)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	close(release)
	<-done

	require.NoError(t, followerErr)
	assert.Equal(t, "0xexpress", follower.Address)
	assert.NoError(t, <-leaderErr)
}

func TestCache_Invalidate(t *testing.T) {
	c := New()
	var calls int32
	_, err := c.Everpay(context.Background(), countingEverpayFetch(&calls))
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(constant.InfoKindEverpay))
	_, ok := c.Age(constant.InfoKindEverpay)
	assert.False(t, ok)

	_, err = c.Everpay(context.Background(), countingEverpayFetch(&calls))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls)

	assert.ErrorIs(t, c.Invalidate("unknown"), xerr.ErrInvalidRequest)
}

func TestResolveToken(t *testing.T) {
	tokens := []types.Token{
		{ID: "0xdac17f958d2ee523a2206206994597c13d831ec7", Symbol: "USDT", Decimals: 6, ChainType: "ethereum"},
		{ID: "0x0000000000000000000000000000000000000000", Symbol: "ETH", Decimals: 18, ChainType: "ethereum"},
	}

	upper, err := ResolveToken("USDT", tokens)
	require.NoError(t, err)
	lower, err := ResolveToken("usdt", tokens)
	require.NoError(t, err)
	assert.Equal(t, upper, lower)

	_, err = ResolveToken("DOGE", tokens)
	assert.ErrorIs(t, err, xerr.ErrTokenNotFound)

	_, err = ResolveToken("", tokens)
	assert.ErrorIs(t, err, xerr.ErrTokenNotFound)
}

func TestFindExpressToken(t *testing.T) {
	token := types.Token{ID: "0xDAC17F958D2EE523A2206206994597C13D831EC7", Symbol: "USDT", ChainType: "ethereum"}
	info := types.ExpressInfo{Tokens: []types.ExpressToken{
		{TokenTag: "ethereum-usdt-0xdac17f958d2ee523a2206206994597c13d831ec7", WalletBalance: "1000", WithdrawFee: "500000"},
	}}

	entry, ok := FindExpressToken(token.Tag(), info)
	require.True(t, ok)
	assert.Equal(t, "500000", entry.WithdrawFee)

	_, ok = FindExpressToken("ethereum-eth-0x0000000000000000000000000000000000000000", info)
	assert.False(t, ok)
}
