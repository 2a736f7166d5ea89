package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rgehrsitz/dcasim/internal/domain"
)

// CacheRepository stores rendered projection responses by key.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

const cacheKeyPrefix = "dcasim:projection:"

// CacheKey hashes the canonical form of an input and milestone step.
// Equal inputs always produce equal keys.
func CacheKey(in domain.SimulationInput, step float64) string {
	parts := []string{
		formatFloat(in.MonthlyContribution),
		formatFloat(in.InitialCapital),
		formatFloat(in.AnnualReturnRate),
		strconv.Itoa(in.DurationYears),
		formatFloat(in.AnnualInflationRate),
		formatFloat(step),
	}
	return fmt.Sprintf("%s%016x", cacheKeyPrefix, xxhash.Sum64String(strings.Join(parts, "|")))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

const (
	memoryCacheMaxEntries    = 10000
	memoryCacheSweepInterval = 5 * time.Minute
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-process CacheRepository with per-entry expiry.
// A zero TTL keeps entries until they are evicted to make room.
// Expired entries are swept periodically until Stop is called.
type MemoryCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	data       map[string]memoryEntry
	now        func() time.Time
	stopSweep  chan struct{}
	stopOnce   sync.Once
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	m := &MemoryCache{
		ttl:        ttl,
		maxEntries: memoryCacheMaxEntries,
		data:       make(map[string]memoryEntry),
		now:        time.Now,
		stopSweep:  make(chan struct{}),
	}
	go m.sweepLoop()
	return m
}

func (m *MemoryCache) sweepLoop() {
	ticker := time.NewTicker(memoryCacheSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stopSweep:
			return
		}
	}
}

func (m *MemoryCache) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
}

func (m *MemoryCache) sweepLocked() {
	now := m.now()
	for key, entry := range m.data {
		if m.expired(entry, now) {
			delete(m.data, key)
		}
	}
}

func (m *MemoryCache) expired(entry memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}

// Stop ends the background sweep. It is safe to call more than once.
func (m *MemoryCache) Stop() {
	m.stopOnce.Do(func() { close(m.stopSweep) })
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return "", false
	}
	if m.expired(entry, m.now()) {
		delete(m.data, key)
		return "", false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists && m.maxEntries > 0 && len(m.data) >= m.maxEntries {
		m.sweepLocked()
		if len(m.data) >= m.maxEntries {
			m.evictOldestLocked()
		}
	}

	entry := memoryEntry{value: value}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.data[key] = entry
	return nil
}

// evictOldestLocked drops the entry closest to expiry.
func (m *MemoryCache) evictOldestLocked() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, entry := range m.data {
		if !found || entry.expiresAt.Before(oldest) {
			oldestKey, oldest, found = key, entry.expiresAt, true
		}
	}
	if found {
		delete(m.data, oldestKey)
	}
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// RedisCache stores projections in redis with the configured expiry.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr, password string, db int, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: rdb, ttl: ttl}
}

// Ping checks that the redis server is reachable.
func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// Close releases the redis connection pool.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
