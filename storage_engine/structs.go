package storageengine

import (
	heapfile "LeafDB/storage_engine/access/heapfile_manager"
	indexfile "LeafDB/storage_engine/access/indexfile_manager"
	"LeafDB/storage_engine/bufferpool"
	"LeafDB/storage_engine/catalog"
	"LeafDB/types"

	"go.uber.org/zap"
)

// StorageEngine stores the rows of one table in a heap file and keys them
// through a B+ tree primary index.
type StorageEngine struct {
	CatalogManager *catalog.CatalogManager
	HeapManager    *heapfile.HeapFileManager
	IndexManager   *indexfile.IndexFileManager

	DataDir string
	table   string
	schema  types.Schema
	heap    *heapfile.HeapFile
	index   *indexfile.IndexFile
	logger  *zap.Logger
}

// Stats is a snapshot of both files and their buffer pools.
type Stats struct {
	Table        string
	HeapPages    int32
	HeapBytes    int64
	IndexBytes   int64
	IndexRoot    int32
	IndexHeight  int
	HeapBufPool  bufferpool.BufferPoolStats
	IndexBufPool bufferpool.BufferPoolStats
}
