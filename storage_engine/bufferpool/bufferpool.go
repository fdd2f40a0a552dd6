package bufferpool

import (
	diskmanager "LeafDB/storage_engine/disk_manager"
	"LeafDB/storage_engine/page"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

/*
This file is the main file of the bufferpool.
The buffer pool works on an LRU caching mechanism
and holds the disk manager for writing evicted dirty pages back to disk.
If a page is not found in the cache, the disk manager loads it and the pool
keeps it for future access.

A dirty page is only written when it is evicted or on FlushAll.
*/

// NewBufferPool creates a buffer pool holding at most capacity pages.
func NewBufferPool(capacity int, diskManager *diskmanager.DiskManager, logger *zap.Logger) *BufferPool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BufferPool{
		frames:      make(map[int32]*frame, capacity+1),
		capacity:    capacity,
		diskManager: diskManager,
		logger:      logger,
	}
}

// GetPage returns the cached page, loading it from disk on a miss.
// A miss that pushes the pool over capacity evicts exactly one page, the least recently used.
func (bp *BufferPool) GetPage(pageID int32) (*page.Page, error) {
	if f, exists := bp.frames[pageID]; exists {
		bp.hits++
		bp.logger.Debug("buffer pool hit", zap.Int32("page_id", pageID))
		bp.moveToFront(f)
		return f.page, nil
	}

	bp.misses++
	bp.logger.Debug("buffer pool miss", zap.Int32("page_id", pageID))

	pg, err := bp.diskManager.ReadPage(pageID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load page %d", pageID)
	}

	f := &frame{page: pg}
	bp.frames[pageID] = f
	bp.pushFront(f)

	if len(bp.frames) > bp.capacity {
		if err := bp.evictLRU(); err != nil {
			// The victim stays; drop the page just loaded so the pool is back at capacity.
			bp.unlink(f)
			delete(bp.frames, pageID)
			return nil, errors.Wrap(err, "failed to evict page")
		}
	}

	return pg, nil
}

// SetPageDirty records the dirty flag of a cached page. Pages that are not cached are ignored.
func (bp *BufferPool) SetPageDirty(pageID int32, dirty bool) {
	if f, exists := bp.frames[pageID]; exists {
		f.dirty = dirty
	}
}

// FlushAll writes every dirty page back and empties the cache.
func (bp *BufferPool) FlushAll() error {
	bp.logger.Debug("buffer pool flush all", zap.Int("pool_size", len(bp.frames)))

	for f := bp.tail; f != nil; f = f.prev {
		if err := bp.writeBack(f); err != nil {
			return errors.Wrapf(err, "failed to flush page %d", f.page.ID)
		}
	}

	bp.frames = make(map[int32]*frame, bp.capacity+1)
	bp.head = nil
	bp.tail = nil
	return nil
}

// AllocateNewPage extends the file by one zero page and returns its id.
// The page is written immediately so the next allocation sees the new file length.
// It is not cached; GetPage loads it.
func (bp *BufferPool) AllocateNewPage() (int32, error) {
	newPageID, err := bp.diskManager.PageCount()
	if err != nil {
		return 0, errors.Wrap(err, "failed to count pages")
	}

	if err := bp.diskManager.WritePage(page.NewPage(newPageID)); err != nil {
		return 0, errors.Wrapf(err, "failed to allocate page %d", newPageID)
	}

	bp.logger.Debug("allocated page", zap.Int32("page_id", newPageID))
	return newPageID, nil
}

// evictLRU drops the tail frame, writing it first if dirty.
// If the write fails the frame stays cached so no modification is lost.
func (bp *BufferPool) evictLRU() error {
	victim := bp.tail
	if victim == nil {
		return nil
	}

	bp.logger.Debug("buffer pool evict",
		zap.Int32("page_id", victim.page.ID), zap.Bool("dirty", victim.dirty))

	if err := bp.writeBack(victim); err != nil {
		return errors.Wrapf(err, "failed to write page %d during eviction", victim.page.ID)
	}

	bp.unlink(victim)
	delete(bp.frames, victim.page.ID)
	bp.evictions++
	return nil
}

func (bp *BufferPool) writeBack(f *frame) error {
	if !f.dirty {
		return nil
	}
	if err := bp.diskManager.WritePage(f.page); err != nil {
		return err
	}
	f.dirty = false
	bp.writeBacks++
	return nil
}
