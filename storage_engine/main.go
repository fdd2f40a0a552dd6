package storageengine

import (
	"LeafDB/config"
	heapfile "LeafDB/storage_engine/access/heapfile_manager"
	indexfile "LeafDB/storage_engine/access/indexfile_manager"
	"LeafDB/storage_engine/catalog"
	"LeafDB/storage_engine/tuple"
	"LeafDB/types"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

/*
The main file of storage engine.
Rows go to <data_dir>/tables/<table>.heap, keys to <data_dir>/indexes/<table>_primary.idx.

The index root is not stored in either file. It comes from the config and
Close logs the current one; a grown tree must be reopened with that id.
*/

var ErrDuplicateKey = errors.New("duplicate key")

func NewStorageEngine(cfg config.Storage, logger *zap.Logger) (*StorageEngine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	schema, err := types.ParseSchema(cfg.Schema)
	if err != nil {
		return nil, errors.Wrap(err, "invalid table schema")
	}

	tablesDir := filepath.Join(cfg.DataDir, "tables")
	catalogManager, err := catalog.NewCatalogManager(tablesDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init catalog manager")
	}
	if err := catalogManager.RegisterTable(cfg.Table, schema); err != nil {
		return nil, err
	}

	heapManager, err := heapfile.NewHeapFileManager(tablesDir, cfg.BufferPoolSize, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init heap file manager")
	}
	indexManager, err := indexfile.NewIndexFileManager(filepath.Join(cfg.DataDir, "indexes"), indexfile.Options{
		PoolCapacity:     cfg.BufferPoolSize,
		CacheNumCounters: cfg.RecordCacheCount,
		CacheMaxCost:     cfg.RecordCacheSize,
	}, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init index file manager")
	}

	heap, err := heapManager.OpenHeapFile(cfg.Table)
	if err != nil {
		return nil, err
	}
	index, err := indexManager.GetOrCreateIndex(cfg.Table, cfg.IndexRootPageID)
	if err != nil {
		heapManager.CloseAll()
		return nil, err
	}

	se := &StorageEngine{
		CatalogManager: catalogManager,
		HeapManager:    heapManager,
		IndexManager:   indexManager,
		DataDir:        cfg.DataDir,
		table:          cfg.Table,
		schema:         schema,
		heap:           heap,
		index:          index,
		logger:         logger,
	}
	logger.Info("storage engine ready",
		zap.String("table", cfg.Table),
		zap.Stringer("schema", schema),
		zap.Int32("index_root", index.RootPageID()))
	return se, nil
}

// InsertRow stores values under key. The record is written before the key, so
// an index failure leaves an unreachable record in the heap.
func (se *StorageEngine) InsertRow(key int32, values []any) (types.RecordLocation, error) {
	if _, found, err := se.index.Find(key); err != nil {
		return types.RecordLocation{}, err
	} else if found {
		return types.RecordLocation{}, errors.Wrapf(ErrDuplicateKey, "key %d", key)
	}

	data, err := tuple.Encode(se.schema, values)
	if err != nil {
		return types.RecordLocation{}, err
	}

	loc, err := se.heap.InsertRecord(data)
	if err != nil {
		return types.RecordLocation{}, errors.Wrap(err, "failed to store row")
	}
	if err := se.index.Insert(key, loc); err != nil {
		se.logger.Error("row stored but not indexed", zap.Int32("key", key), zap.Stringer("loc", loc), zap.Error(err))
		return types.RecordLocation{}, err
	}
	return loc, nil
}

// GetRow looks key up in the index and decodes the record it points to.
func (se *StorageEngine) GetRow(key int32) (types.Row, bool, error) {
	loc, found, err := se.index.Find(key)
	if err != nil || !found {
		return types.Row{}, false, err
	}

	data, err := se.heap.GetRecord(loc)
	if err != nil {
		return types.Row{}, false, errors.Wrapf(err, "key %d points at %s", key, loc)
	}
	values, err := tuple.Decode(se.schema, data)
	if err != nil {
		return types.Row{}, false, err
	}
	return types.Row{Location: loc, Values: values}, true, nil
}

// Scan decodes every row of the heap file in storage order.
func (se *StorageEngine) Scan(fn func(row types.Row) error) error {
	return se.heap.Scan(func(loc types.RecordLocation, data []byte) error {
		values, err := tuple.Decode(se.schema, data)
		if err != nil {
			return errors.Wrapf(err, "row at %s", loc)
		}
		return fn(types.Row{Location: loc, Values: values})
	})
}

func (se *StorageEngine) Schema() types.Schema {
	return se.schema
}

func (se *StorageEngine) RootPageID() int32 {
	return se.index.RootPageID()
}

// Flush writes every dirty page of both files.
func (se *StorageEngine) Flush() error {
	if err := se.heap.Flush(); err != nil {
		return err
	}
	return se.index.Flush()
}

func (se *StorageEngine) Stats() (Stats, error) {
	stats := Stats{
		Table:        se.table,
		IndexRoot:    se.index.RootPageID(),
		HeapBufPool:  se.heap.BufferPoolStats(),
		IndexBufPool: se.index.BufferPoolStats(),
	}

	var err error
	if stats.HeapPages, err = se.heap.NumPages(); err != nil {
		return stats, err
	}
	if stats.HeapBytes, err = se.heap.FileSize(); err != nil {
		return stats, err
	}
	if stats.IndexBytes, err = se.index.FileSize(); err != nil {
		return stats, err
	}
	if stats.IndexHeight, err = se.index.Height(); err != nil {
		return stats, err
	}
	return stats, nil
}

// Close flushes and closes both files. The returned root id is what the next
// open must use.
func (se *StorageEngine) Close() (int32, error) {
	root := se.index.RootPageID()
	heapErr := se.HeapManager.CloseAll()
	indexErr := se.IndexManager.CloseAll()
	if heapErr != nil {
		return root, heapErr
	}
	if indexErr != nil {
		return root, indexErr
	}
	se.logger.Info("storage engine closed", zap.String("table", se.table), zap.Int32("index_root", root))
	return root, nil
}
