package bufferpool

import (
	diskmanager "LeafDB/storage_engine/disk_manager"
	"LeafDB/storage_engine/page"

	"go.uber.org/zap"
)

// ############################################# BUFFER POOL #############################################

// frame is one cached page plus its recency links.
// Frames form an intrusive doubly linked list: head is most recently used,
// tail is least recently used.
type frame struct {
	page  *page.Page
	dirty bool
	prev  *frame
	next  *frame
}

// BufferPool caches at most capacity pages with LRU eviction and deferred write-back.
// Single-threaded: callers must not share it across goroutines.
type BufferPool struct {
	frames      map[int32]*frame // pageID -> frame
	head        *frame           // most recently used
	tail        *frame           // least recently used
	capacity    int
	diskManager *diskmanager.DiskManager
	logger      *zap.Logger

	hits       uint64
	misses     uint64
	evictions  uint64
	writeBacks uint64
}

// BufferPoolStats is a point-in-time view of the pool.
type BufferPoolStats struct {
	TotalPages int
	DirtyPages int
	Capacity   int
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	WriteBacks uint64
}

// HitRate is hits / (hits + misses), or 0 before the first access.
func (s BufferPoolStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
