package bufferpool

/*
This file holds helper functions for the bufferpool:
the recency list plumbing and read-only accessors.
*/

func (bp *BufferPool) pushFront(f *frame) {
	f.prev = nil
	f.next = bp.head
	if bp.head != nil {
		bp.head.prev = f
	}
	bp.head = f
	if bp.tail == nil {
		bp.tail = f
	}
}

func (bp *BufferPool) unlink(f *frame) {
	if f.prev != nil {
		f.prev.next = f.next
	} else {
		bp.head = f.next
	}
	if f.next != nil {
		f.next.prev = f.prev
	} else {
		bp.tail = f.prev
	}
	f.prev = nil
	f.next = nil
}

func (bp *BufferPool) moveToFront(f *frame) {
	if bp.head == f {
		return
	}
	bp.unlink(f)
	bp.pushFront(f)
}

// GetStats returns current buffer pool statistics
func (bp *BufferPool) GetStats() BufferPoolStats {
	stats := BufferPoolStats{
		TotalPages: len(bp.frames),
		Capacity:   bp.capacity,
		Hits:       bp.hits,
		Misses:     bp.misses,
		Evictions:  bp.evictions,
		WriteBacks: bp.writeBacks,
	}
	for _, f := range bp.frames {
		if f.dirty {
			stats.DirtyPages++
		}
	}
	return stats
}

// Size returns the current number of pages in the buffer pool
func (bp *BufferPool) Size() int {
	return len(bp.frames)
}

// Capacity returns the maximum capacity of the buffer pool
func (bp *BufferPool) Capacity() int {
	return bp.capacity
}

// IsCached reports whether pageID is resident, without touching its recency.
func (bp *BufferPool) IsCached(pageID int32) bool {
	_, exists := bp.frames[pageID]
	return exists
}

// IsDirty reports the dirty flag of a cached page; false when not cached.
func (bp *BufferPool) IsDirty(pageID int32) bool {
	f, exists := bp.frames[pageID]
	return exists && f.dirty
}

// LRUOrder lists cached page ids from least to most recently used.
func (bp *BufferPool) LRUOrder() []int32 {
	ids := make([]int32, 0, len(bp.frames))
	for f := bp.tail; f != nil; f = f.prev {
		ids = append(ids, f.page.ID)
	}
	return ids
}
