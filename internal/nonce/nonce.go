// Package nonce supplies the anti-replay nonce stamped on everpay transactions.
//
// everpay expects a wall-clock millisecond timestamp. Two transactions built in the
// same millisecond would carry the same nonce, so Millis never hands out a value
// twice within a process: when the clock has not moved it returns last+1.
// Separate processes signing for the same account can still collide.
package nonce

import (
	"strconv"
	"sync"
	"time"
)

// Source hands out nonces as decimal strings.
type Source interface {
	Next() string
}

// Millis is a strictly increasing millisecond clock.
type Millis struct {
	mu    sync.Mutex
	last  int64
	nowFn func() time.Time
}

func NewMillis() *Millis {
	return &Millis{nowFn: time.Now}
}

// NewMillisWithClock is NewMillis with an injected clock.
func NewMillisWithClock(nowFn func() time.Time) *Millis {
	return &Millis{nowFn: nowFn}
}

func (m *Millis) Next() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.nowFn().UnixMilli()
	if now <= m.last {
		now = m.last + 1
	}
	m.last = now
	return strconv.FormatInt(now, 10)
}

// Fixed always returns the same nonce. Only useful for reproducible messages.
type Fixed string

func (f Fixed) Next() string {
	return string(f)
}
