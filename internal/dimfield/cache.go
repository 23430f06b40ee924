package dimfield

import (
	"sync"
	"sync/atomic"
)

// cacheController gates lazy recomputation of the derived tables with a
// dirty flag. The flag starts Dirty; any parameter write or dimension change
// re-dirties it; the first read after invalidation runs the refresh
// synchronously on the calling goroutine and clears the flag. A clean read
// costs one atomic load. The mutex is non-reentrant and held only for the
// refresh/publish window; refreshes never run in the background and are
// never cancelled mid-flight.
type cacheController struct {
	dirty atomic.Bool
	mu    sync.Mutex
}

func newCacheController() *cacheController {
	c := &cacheController{}
	c.dirty.Store(true)
	return c
}

func (c *cacheController) invalidate() { c.dirty.Store(true) }

// ensure runs refresh if the cache is dirty. Double-checks under the lock so
// concurrent first readers trigger exactly one refresh. The flag is cleared
// before refresh runs: an invalidation that lands while the refresh is in
// flight re-dirties the cache, so the next read picks the write up instead
// of losing it to a trailing clear.
func (c *cacheController) ensure(refresh func()) {
	if !c.dirty.Load() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty.Load() {
		return
	}
	c.dirty.Store(false)
	refresh()
}
