package bplus

import (
	"LeafDB/types"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
)

/*
recordCache memoizes Find results in front of the page walk.

Only hits are cached. Keys are never deleted from the tree, so a cached
location stays valid; Insert still drops the key so a duplicate landing in a
different leaf cannot leave a stale answer behind.
Ristretto applies Set asynchronously, so a Find right after another Find may
still walk the tree. That only costs time.
*/
type recordCache struct {
	cache *ristretto.Cache[int32, types.RecordLocation]
}

func newRecordCache(numCounters, maxCost int64) (*recordCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[int32, types.RecordLocation]{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create record cache")
	}
	return &recordCache{cache: cache}, nil
}

func (c *recordCache) get(key int32) (types.RecordLocation, bool) {
	return c.cache.Get(key)
}

func (c *recordCache) set(key int32, loc types.RecordLocation) {
	c.cache.Set(key, loc, 1)
}

func (c *recordCache) invalidate(key int32) {
	c.cache.Del(key)
}

// wait blocks until buffered writes are applied. Used by tests.
func (c *recordCache) wait() {
	c.cache.Wait()
}

func (c *recordCache) hits() uint64 {
	return c.cache.Metrics.Hits()
}

func (c *recordCache) close() {
	c.cache.Clear()
	c.cache.Close()
}
