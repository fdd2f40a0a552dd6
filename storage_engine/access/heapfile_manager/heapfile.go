package heapfile

import (
	"LeafDB/storage_engine/bufferpool"
	"LeafDB/storage_engine/page"
	"LeafDB/types"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// InsertRecord stores data and returns where it landed.
// Records are appended: only the last page is tried before a new one is allocated.
func (hf *HeapFile) InsertRecord(data []byte) (types.RecordLocation, error) {
	if len(data) > MaxRecordSize {
		return types.RecordLocation{}, errors.Wrapf(ErrRecordTooLarge, "%d bytes (max: %d)", len(data), MaxRecordSize)
	}

	pg, err := hf.pageWithRoom(len(data))
	if err != nil {
		return types.RecordLocation{}, errors.Wrap(err, "failed to find suitable page")
	}

	slot, err := InsertRecord(pg, data)
	if err != nil {
		return types.RecordLocation{}, err
	}
	hf.bufferPool.SetPageDirty(pg.ID, true)

	hf.logger.Debug("insert", zap.Int32("page", pg.ID), zap.Int32("slot", slot), zap.Int("len", len(data)))
	return types.RecordLocation{PageID: pg.ID, SlotNum: slot}, nil
}

func (hf *HeapFile) pageWithRoom(size int) (*page.Page, error) {
	numPages, err := hf.NumPages()
	if err != nil {
		return nil, err
	}

	if numPages > 0 {
		pg, err := hf.bufferPool.GetPage(numPages - 1)
		if err != nil {
			return nil, err
		}
		if !IsHeapPage(pg) {
			InitHeapPage(pg)
			hf.bufferPool.SetPageDirty(pg.ID, true)
		}
		if FreeSpace(pg) >= size {
			return pg, nil
		}
	}

	pageID, err := hf.bufferPool.AllocateNewPage()
	if err != nil {
		return nil, err
	}
	pg, err := hf.bufferPool.GetPage(pageID)
	if err != nil {
		return nil, err
	}
	InitHeapPage(pg)
	hf.bufferPool.SetPageDirty(pageID, true)
	return pg, nil
}

// GetRecord returns a copy of the record at loc.
func (hf *HeapFile) GetRecord(loc types.RecordLocation) ([]byte, error) {
	pg, err := hf.bufferPool.GetPage(loc.PageID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch page %d", loc.PageID)
	}
	if !IsHeapPage(pg) {
		return nil, errors.Wrapf(ErrInvalidSlot, "page %d holds no records", loc.PageID)
	}
	return GetRecord(pg, loc.SlotNum)
}

// Scan calls fn for every record in page then slot order. fn gets its own copy
// of the bytes. A non-nil error from fn stops the scan and is returned.
func (hf *HeapFile) Scan(fn func(loc types.RecordLocation, data []byte) error) error {
	numPages, err := hf.NumPages()
	if err != nil {
		return err
	}

	for pageID := int32(0); pageID < numPages; pageID++ {
		pg, err := hf.bufferPool.GetPage(pageID)
		if err != nil {
			return errors.Wrapf(err, "failed to fetch page %d", pageID)
		}
		records, err := Records(pg)
		if err != nil {
			return err
		}
		for slot, rec := range records {
			if err := fn(types.RecordLocation{PageID: pageID, SlotNum: int32(slot)}, rec); err != nil {
				return err
			}
		}
	}
	return nil
}

// NumPages returns the number of pages in the file.
func (hf *HeapFile) NumPages() (int32, error) {
	return hf.diskManager.PageCount()
}

func (hf *HeapFile) TableName() string {
	return hf.tableName
}

func (hf *HeapFile) Path() string {
	return hf.filePath
}

func (hf *HeapFile) FileSize() (int64, error) {
	return hf.diskManager.FileSize()
}

func (hf *HeapFile) BufferPoolStats() bufferpool.BufferPoolStats {
	return hf.bufferPool.GetStats()
}

// Flush writes every dirty page and syncs the file.
func (hf *HeapFile) Flush() error {
	if err := hf.bufferPool.FlushAll(); err != nil {
		return err
	}
	return hf.diskManager.Sync()
}

func (hf *HeapFile) Close() error {
	if err := hf.Flush(); err != nil {
		return err
	}
	return hf.diskManager.Close()
}
