package heapfile

import (
	"LeafDB/storage_engine/bufferpool"
	diskmanager "LeafDB/storage_engine/disk_manager"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrRecordTooLarge = errors.New("record too large for a heap page")
	ErrInvalidSlot    = errors.New("invalid slot")
	ErrNoSpace        = errors.New("not enough free space on heap page")
)

// HeapFile is one table's records in its own file.
// It has its own disk manager and buffer pool; nothing is shared with the index.
type HeapFile struct {
	tableName   string
	filePath    string
	diskManager *diskmanager.DiskManager
	bufferPool  *bufferpool.BufferPool
	logger      *zap.Logger
}

// HeapFileManager manages all heap files under baseDir, one per table.
type HeapFileManager struct {
	baseDir      string
	poolCapacity int
	files        map[string]*HeapFile // tableName -> open heap file
	logger       *zap.Logger
	mu           sync.RWMutex
}
