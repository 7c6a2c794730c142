package graph

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerSettings tunes the circuit breaker wrapped around a Client.
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerSettings trips after most of at least five calls fail and
// probes again after thirty seconds.
func DefaultBreakerSettings(name string) BreakerSettings {
	return BreakerSettings{
		Name:             name,
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// BreakerClient short-circuits queries while the graph database keeps failing.
type BreakerClient struct {
	next Client
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerClient wraps next. Context cancellation does not count as a
// failure of the database.
func NewBreakerClient(next Client, settings BreakerSettings, logger *slog.Logger) *BreakerClient {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= settings.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("graph circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	})
	return &BreakerClient{next: next, cb: cb}
}

// State reports the breaker state.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerClient) ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error) {
	return b.execute(func() (Result, error) {
		return b.next.ExecuteWrite(ctx, cypher, params)
	})
}

func (b *BreakerClient) ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error) {
	return b.execute(func() (Result, error) {
		return b.next.ExecuteRead(ctx, cypher, params)
	})
}

// VerifyConnectivity bypasses the breaker so health probes always reach the database.
func (b *BreakerClient) VerifyConnectivity(ctx context.Context) error {
	return b.next.VerifyConnectivity(ctx)
}

func (b *BreakerClient) Close(ctx context.Context) error {
	return b.next.Close(ctx)
}

func (b *BreakerClient) execute(fn func() (Result, error)) (Result, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return Result{}, err
	}
	return out.(Result), nil
}

var _ Client = (*BreakerClient)(nil)
