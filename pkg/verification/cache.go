// Package verification holds short-lived password-recovery codes.
//
// Codes live only in process memory. Each account email has at most one
// active code; issuing a new code replaces the previous one. A background
// sweeper evicts expired entries so abandoned recovery attempts do not
// accumulate.
package verification

import (
	"crypto/rand"
	"errors"
	"fmt"
	"hash/fnv"
	"math/big"
	"strconv"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

var (
	// ErrCodeNotFound is returned when no code has been issued for the account
	ErrCodeNotFound = errors.New("no verification code found for account")

	// ErrCodeMismatch is returned when the submitted code does not match the stored one
	ErrCodeMismatch = errors.New("verification code does not match")

	// ErrCodeExpired is returned when the stored code has lapsed
	ErrCodeExpired = errors.New("verification code has expired")
)

const (
	// DefaultTTL is how long an issued code stays valid.
	DefaultTTL = 30 * time.Minute

	// DefaultSweepInterval is how often expired entries are evicted.
	DefaultSweepInterval = 60 * time.Second

	codeUpperBound = 1000000
	shardCount     = 32
)

// Entry is a stored verification code with its validity window.
type Entry struct {
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// shard holds a slice of the keyspace under its own lock so concurrent
// issue/validate calls for unrelated accounts do not contend.
type shard struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// Cache is a concurrent, expiring store of verification codes keyed by
// account email. Construct with NewCache; the zero value is not usable.
type Cache struct {
	shards        [shardCount]*shard
	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// CacheOption configures a Cache
type CacheOption func(*Cache)

// WithTTL sets the validity window for issued codes
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithSweepInterval sets the period of the background sweeper
func WithSweepInterval(interval time.Duration) CacheOption {
	return func(c *Cache) {
		c.sweepInterval = interval
	}
}

// WithClock overrides the time source, used by tests to control expiry
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a verification code cache. Call Start to run the
// background sweeper and Stop at shutdown.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		ttl:           DefaultTTL,
		sweepInterval: DefaultSweepInterval,
		now:           time.Now,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	for i := range c.shards {
		c.shards[i] = &shard{entries: make(map[string]Entry)}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) shardFor(key string) *shard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return c.shards[h.Sum32()%shardCount]
}

// Issue generates a new code for the account and stores it, replacing any
// code issued earlier. The returned code is what gets dispatched to the
// account owner.
//
// Codes are drawn uniformly from [0, 999999] and are not zero-padded, so
// a code may print with fewer than six digits. Concurrent Issue calls for
// the same account race and the last write wins; a recovery email already
// in flight can be superseded by a later request.
func (c *Cache) Issue(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeUpperBound))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	code := strconv.FormatInt(n.Int64(), 10)

	now := c.now()
	entry := Entry{
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(c.ttl),
	}

	s := c.shardFor(email)
	s.mu.Lock()
	s.entries[email] = entry
	s.mu.Unlock()

	return code, nil
}

// Validate checks the submitted code against the stored entry. A
// successful validation does not consume the entry: the code stays valid
// until it expires or a new one is issued.
func (c *Cache) Validate(email, submitted string) error {
	s := c.shardFor(email)
	s.mu.RLock()
	entry, ok := s.entries[email]
	s.mu.RUnlock()

	if !ok {
		return ErrCodeNotFound
	}
	if entry.Code != submitted {
		return ErrCodeMismatch
	}
	if c.now().After(entry.ExpiresAt) {
		return ErrCodeExpired
	}
	return nil
}

// Remove drops the entry for the account, if any.
func (c *Cache) Remove(email string) {
	s := c.shardFor(email)
	s.mu.Lock()
	delete(s.entries, email)
	s.mu.Unlock()
}

// Sweep removes all expired entries. It locks one shard at a time, so
// issue/validate calls on other shards proceed unblocked.
func (c *Cache) Sweep() {
	now := c.now()
	removed := 0
	for _, s := range c.shards {
		s.mu.Lock()
		for key, entry := range s.entries {
			if now.After(entry.ExpiresAt) {
				delete(s.entries, key)
				removed++
			}
		}
		s.mu.Unlock()
	}
	if removed > 0 {
		slog.Debug("Swept expired verification codes", "removed", removed)
	}
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

// Start launches the background sweeper. Calling Start more than once has
// no effect.
func (c *Cache) Start() {
	c.startOnce.Do(func() {
		go c.run()
	})
}

// Stop shuts the sweeper down and waits for an in-flight sweep to finish.
// Safe to call without a prior Start.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	c.startOnce.Do(func() {
		close(c.done)
	})
	<-c.done
}

func (c *Cache) run() {
	defer close(c.done)

	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Sweep()
		case <-c.stop:
			return
		}
	}
}
