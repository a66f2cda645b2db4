// Package ranking computes the trending creators, trending shows and
// featured content lists from the content store, cache-aside through a
// shared TTL cache.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"gorm.io/gorm"

	"trending-api/internal/cache"
	"trending-api/internal/logging"
	"trending-api/internal/metrics"
)

const (
	// TrendingWindow is the lookback for recent activity counters.
	TrendingWindow = 7 * 24 * time.Hour
	// FeaturedWindow is the lookback for featured content.
	FeaturedWindow = 30 * 24 * time.Hour

	defaultQueryTimeout    = 5 * time.Second
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second

	breakerName = "ranking-store"
)

// Options configures a Service. Zero values select defaults.
type Options struct {
	// Now is the clock used to resolve trailing windows.
	Now func() time.Time
	// Rand shuffles featured content. Defaults to a randomly seeded PCG.
	Rand *rand.Rand
	// QueryTimeout bounds each aggregation query.
	QueryTimeout time.Duration
	// BreakerFailures is the number of consecutive query failures that
	// opens the circuit breaker.
	BreakerFailures uint32
	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration
}

// Service runs the ranking pipelines.
type Service struct {
	db    *gorm.DB
	cache *cache.TTLCache[any]

	now          func() time.Time
	queryTimeout time.Duration
	breaker      *gobreaker.CircuitBreaker[any]

	randMu sync.Mutex
	rand   *rand.Rand
}

// NewService creates a ranking service reading from db and caching in c.
func NewService(db *gorm.DB, c *cache.TTLCache[any], opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = defaultQueryTimeout
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = defaultBreakerFailures
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = defaultBreakerTimeout
	}

	return &Service{
		db:           db,
		cache:        c,
		now:          opts.Now,
		queryTimeout: opts.QueryTimeout,
		breaker:      newBreaker(opts.BreakerFailures, opts.BreakerTimeout),
		rand:         opts.Rand,
	}
}

func newBreaker(failures uint32, timeout time.Duration) *gobreaker.CircuitBreaker[any] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// A caller giving up is not a store failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// BreakerState returns the current state of the query circuit breaker.
func (s *Service) BreakerState() gobreaker.State {
	return s.breaker.State()
}

// scan runs one raw aggregation query into dest, bounded by the query
// timeout and guarded by the circuit breaker.
func (s *Service) scan(ctx context.Context, dest any, query string, args map[string]any) error {
	_, err := s.breaker.Execute(func() (any, error) {
		qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
		return nil, s.db.WithContext(qctx).Raw(query, args).Scan(dest).Error
	})
	return err
}

// observe times one uncached pipeline run and fails it with sentinel when
// fn errors. The original error stays in the chain.
func observe[T any](ctx context.Context, pipeline string, sentinel error, fn func() (T, error)) (T, error) {
	start := time.Now()
	out, err := fn()
	metrics.RankingDuration.WithLabelValues(pipeline).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RankingErrors.WithLabelValues(pipeline).Inc()
		logging.Ctx(ctx).Error().Err(err).Str("pipeline", pipeline).Msg("Ranking computation failed")
		var zero T
		return zero, fmt.Errorf("%w: %w", sentinel, err)
	}
	return out, nil
}

func (s *Service) shuffle(n int, swap func(i, j int)) {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	s.rand.Shuffle(n, swap)
}
