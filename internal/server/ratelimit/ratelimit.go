// Package ratelimit provides per-client request rate limiting backed by
// golang.org/x/time/rate token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// RequestsPerSecond is the steady refill rate of every bucket.
	RequestsPerSecond float64
	// Burst is the bucket capacity.
	Burst           int
	CleanupInterval time.Duration
	// IdleTimeout is how long an unused bucket is kept.
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig returns a configuration with the given default rate and the
// default endpoint overrides. rps <= 0 disables limiting.
func NewConfig(rps float64, burst int) *Config {
	if burst <= 0 {
		burst = 1
	}
	return &Config{
		Enabled:           rps > 0,
		RequestsPerSecond: rps,
		Burst:             burst,
		CleanupInterval:   5 * time.Minute,
		IdleTimeout:       time.Hour,
		Whitelist:         make(map[string]bool),
		Blacklist:         make(map[string]bool),
		EndpointConfigs:   DefaultEndpointConfigs(rps, burst),
	}
}

type entry struct {
	limiter    *rate.Limiter
	limit      EndpointConfig
	lastAccess time.Time
}

// Limiter manages one token bucket per client, endpoint and method.
type Limiter struct {
	config      *Config
	mu          sync.Mutex
	buckets     map[string]*entry
	cleanupStop chan struct{}
	stopOnce    sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration. A nil
// config allows 10 requests per second with a burst of 20.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = NewConfig(10, 20)
	}

	l := &Limiter{
		config:  config,
		buckets: make(map[string]*entry),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupStop = make(chan struct{})
		go l.cleanup(config.CleanupInterval)
	}
	return l
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Returns true if allowed, false if rate limited, along with rate limit information.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	limit := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if limit == nil {
		limit = &EndpointConfig{
			RequestsPerSecond: l.config.RequestsPerSecond,
			Burst:             l.config.Burst,
		}
	}
	if limit.Unlimited() {
		return true, Info{Allowed: true}
	}

	now := time.Now()
	lim := l.bucket(clientID+":"+endpoint+":"+method, *limit, now)
	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)

	info := Info{
		Allowed:   allowed,
		Limit:     limit.Burst,
		Remaining: max(int(tokens), 0),
		ResetTime: now.Add(refillTime(float64(limit.Burst)-tokens, limit.RequestsPerSecond)),
	}
	if !allowed {
		info.RetryAfter = refillTime(1-tokens, limit.RequestsPerSecond)
	}
	return allowed, info
}

func (l *Limiter) bucket(key string, limit EndpointConfig, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.buckets[key]
	if !ok || e.limit != limit {
		e = &entry{
			limiter: rate.NewLimiter(rate.Limit(limit.RequestsPerSecond), limit.Burst),
			limit:   limit,
		}
		l.buckets[key] = e
	}
	e.lastAccess = now
	return e.limiter
}

// refillTime is how long it takes to regain tokens at rps.
func refillTime(tokens, rps float64) time.Duration {
	if tokens <= 0 || rps <= 0 {
		return 0
	}
	return time.Duration(tokens / rps * float64(time.Second))
}

func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanupBuckets(time.Now())
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets removes buckets that have been idle longer than IdleTimeout.
func (l *Limiter) cleanupBuckets(now time.Time) {
	idle := l.config.IdleTimeout
	if idle <= 0 {
		idle = time.Hour
	}
	cutoff := now.Add(-idle)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.buckets {
		if e.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Size returns the number of live buckets.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
