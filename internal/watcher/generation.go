package watcher

import "sync"

// Generation disambiguates overlapping refresh results. Each refresh calls
// Begin before starting; the result is applied only when Current still
// matches the generation handed out, so a superseded refresh is discarded
// instead of overwriting newer data.
type Generation struct {
	mu     sync.Mutex
	latest uint64
}

// Begin issues the next generation number.
func (g *Generation) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest++
	return g.latest
}

// Current reports whether gen is still the latest issued generation.
func (g *Generation) Current(gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return gen == g.latest
}
