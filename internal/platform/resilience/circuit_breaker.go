package resilience

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker trips after consecutive failures of a dependency and lets a
// limited number of probes through once the open timeout has passed.
type CircuitBreaker struct {
	cfg   CircuitBreakerConfig
	clock clockwork.Clock

	mu        sync.Mutex
	state     CircuitState
	failures  int
	openedAt  time.Time
	inFlight  int
	successes int
	onChange  func(from, to CircuitState)
}

func NewCircuitBreaker(cfg CircuitBreakerConfig, clock clockwork.Clock) *CircuitBreaker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CircuitBreaker{
		cfg:   cfg.withDefaults(),
		clock: clock,
		state: CircuitStateClosed,
	}
}

// OnStateChange registers fn to run after every transition. fn runs without
// the breaker lock held.
func (b *CircuitBreaker) OnStateChange(fn func(from, to CircuitState)) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Allow reports whether a call may proceed. A nil return in half-open state
// reserves a probe slot that RecordSuccess or RecordFailure releases.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	notify := b.refreshLocked()

	var err error
	switch b.state {
	case CircuitStateOpen:
		err = ErrCircuitOpen
	case CircuitStateHalfOpen:
		if b.inFlight >= b.cfg.HalfOpenMaxReq {
			err = ErrCircuitOpen
		} else {
			b.inFlight++
		}
	}
	b.mu.Unlock()

	notify()
	return err
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	notify := func() {}
	switch b.state {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		b.inFlight = max(b.inFlight-1, 0)
		b.successes++
		if b.successes >= b.cfg.HalfOpenMaxReq && b.inFlight == 0 {
			notify = b.setStateLocked(CircuitStateClosed)
		}
	}
	b.mu.Unlock()
	notify()
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	notify := func() {}
	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			notify = b.setStateLocked(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		notify = b.setStateLocked(CircuitStateOpen)
	case CircuitStateOpen:
		b.openedAt = b.clock.Now()
	}
	b.mu.Unlock()
	notify()
}

// Do runs fn when the breaker allows it and records the outcome.
func (b *CircuitBreaker) Do(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		b.RecordFailure()
		return err
	}
	b.RecordSuccess()
	return nil
}

// State reports half-open once the open timeout has elapsed, even before the
// next Allow performs the transition.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.openTimeoutElapsedLocked() {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) openTimeoutElapsedLocked() bool {
	return b.state == CircuitStateOpen && b.clock.Since(b.openedAt) >= b.cfg.OpenTimeout
}

func (b *CircuitBreaker) refreshLocked() func() {
	if b.openTimeoutElapsedLocked() {
		return b.setStateLocked(CircuitStateHalfOpen)
	}
	return func() {}
}

// setStateLocked resets the counters for the new state and returns the
// callback to run once the lock is released.
func (b *CircuitBreaker) setStateLocked(to CircuitState) func() {
	from := b.state
	b.state = to
	b.inFlight = 0
	b.successes = 0
	switch to {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.clock.Now()
	}

	hook := b.onChange
	if hook == nil || from == to {
		return func() {}
	}
	return func() { hook(from, to) }
}
