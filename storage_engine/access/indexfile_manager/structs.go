package indexfile

import (
	bplus "LeafDB/storage_engine/access/indexfile_manager/bplustree"
	"LeafDB/storage_engine/bufferpool"
	diskmanager "LeafDB/storage_engine/disk_manager"
	"sync"

	"go.uber.org/zap"
)

// Options shared by every index the manager opens.
type Options struct {
	PoolCapacity     int   // buffer pool pages per index file, at least 2
	CacheNumCounters int64 // record cache admission counters, 0 = 10x CacheMaxCost
	CacheMaxCost     int64 // record cache entries, 0 disables it
}

// IndexFile is one B+ tree together with the file and buffer pool under it.
type IndexFile struct {
	name        string
	path        string
	readOnly    bool
	diskManager *diskmanager.DiskManager
	bufferPool  *bufferpool.BufferPool
	tree        *bplus.BPlusTree
	logger      *zap.Logger
}

type IndexFileManager struct {
	baseDir string                // e.g., /data/mydb/indexes
	indexes map[string]*IndexFile // tableName → open index
	opts    Options
	logger  *zap.Logger
	mu      sync.RWMutex
}
