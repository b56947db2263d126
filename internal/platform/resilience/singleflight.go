package resilience

import "sync"

// SingleFlight deduplicates concurrent calls for the same key. Followers
// block on the leader's result; the third return reports whether the
// result was shared.
type SingleFlight struct {
	mu     sync.Mutex
	active map[string]*flight
}

type flight struct {
	done chan struct{}
	val  any
	err  error
}

func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.active == nil {
		g.active = make(map[string]*flight)
	}
	if f, ok := g.active[key]; ok {
		g.mu.Unlock()
		<-f.done
		return f.val, f.err, true
	}
	f := &flight{done: make(chan struct{})}
	g.active[key] = f
	g.mu.Unlock()

	f.val, f.err = fn()

	g.mu.Lock()
	delete(g.active, key)
	g.mu.Unlock()
	close(f.done)

	return f.val, f.err, false
}
