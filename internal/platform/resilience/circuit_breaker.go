package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker trips after a run of consecutive failures, rejects calls
// for a cooldown window, then lets a bounded number of trial calls through
// before closing again.
type CircuitBreaker struct {
	mu sync.Mutex

	tripAfter  int
	cooldown   time.Duration
	trialQuota int

	state      CircuitState
	failureRun int
	trippedAt  time.Time
	trialing   int
	trialsOK   int
	now        func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	b := &CircuitBreaker{
		tripAfter:  failureThreshold,
		cooldown:   openTimeout,
		trialQuota: halfOpenMaxReq,
		state:      CircuitStateClosed,
		now:        time.Now,
	}
	if b.tripAfter < 1 {
		b.tripAfter = 1
	}
	if b.cooldown <= 0 {
		b.cooldown = 15 * time.Second
	}
	if b.trialQuota < 1 {
		b.trialQuota = 1
	}
	return b
}

func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.cooldownElapsed() {
		b.reset(CircuitStateHalfOpen)
	}

	switch b.state {
	case CircuitStateOpen:
		return ErrCircuitOpen
	case CircuitStateHalfOpen:
		if b.trialing >= b.trialQuota {
			return ErrCircuitOpen
		}
		b.trialing++
	}
	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureRun = 0
	case CircuitStateHalfOpen:
		b.trialDone()
		b.trialsOK++
		if b.trialsOK >= b.trialQuota && b.trialing == 0 {
			b.reset(CircuitStateClosed)
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureRun++
		if b.failureRun >= b.tripAfter {
			b.trip()
		}
	case CircuitStateHalfOpen:
		b.trialDone()
		b.trip()
	case CircuitStateOpen:
		b.trippedAt = b.now()
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.cooldownElapsed() {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) cooldownElapsed() bool {
	return b.now().Sub(b.trippedAt) >= b.cooldown
}

func (b *CircuitBreaker) trialDone() {
	if b.trialing > 0 {
		b.trialing--
	}
}

func (b *CircuitBreaker) trip() {
	b.reset(CircuitStateOpen)
	b.trippedAt = b.now()
}

func (b *CircuitBreaker) reset(state CircuitState) {
	b.state = state
	b.trialing = 0
	b.trialsOK = 0
	if state == CircuitStateClosed {
		b.failureRun = 0
		b.trippedAt = time.Time{}
	}
}
