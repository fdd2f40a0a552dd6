package indexfile

import (
	bplus "LeafDB/storage_engine/access/indexfile_manager/bplustree"
	"LeafDB/storage_engine/bufferpool"
	diskmanager "LeafDB/storage_engine/disk_manager"
	"LeafDB/types"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

/*
This file is the main file for Index File Manager that deals with the Index pages.
Every index lives in its own file with its own disk manager and buffer pool.

An empty index file gets page 0 allocated as the root leaf. The root moves when
it splits and that is not recorded in the file, so callers must keep
RootPageID() and pass it back when they reopen.
*/

func NewIndexFileManager(baseDir string, opts Options, logger *zap.Logger) (*IndexFileManager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create indexes directory")
	}

	return &IndexFileManager{
		baseDir: baseDir,
		indexes: make(map[string]*IndexFile),
		opts:    opts,
		logger:  logger,
	}, nil
}

// GetOrCreateIndex returns the primary index of tableName, opening
// indexes/<table>_primary.idx on first use with the given root page.
func (ifm *IndexFileManager) GetOrCreateIndex(tableName string, rootPageID int32) (*IndexFile, error) {
	ifm.mu.RLock()
	idx, exists := ifm.indexes[tableName]
	ifm.mu.RUnlock()

	if exists {
		return idx, nil
	}

	ifm.mu.Lock()
	defer ifm.mu.Unlock()

	if idx, exists := ifm.indexes[tableName]; exists {
		return idx, nil
	}

	indexPath := filepath.Join(ifm.baseDir, tableName+"_primary.idx")
	idx, err := Open(indexPath, rootPageID, ifm.opts, ifm.logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open B+ tree for table '%s'", tableName)
	}
	idx.name = tableName

	ifm.indexes[tableName] = idx
	return idx, nil
}

// CloseIndex flushes and closes the index of tableName.
func (ifm *IndexFileManager) CloseIndex(tableName string) error {
	ifm.mu.Lock()
	defer ifm.mu.Unlock()

	idx, exists := ifm.indexes[tableName]
	if !exists {
		return nil
	}

	if err := idx.Close(); err != nil {
		return errors.Wrapf(err, "failed to close index for table '%s'", tableName)
	}

	delete(ifm.indexes, tableName)
	return nil
}

// CloseAll closes all open indexes.
func (ifm *IndexFileManager) CloseAll() error {
	ifm.mu.Lock()
	defer ifm.mu.Unlock()

	var lastErr error
	for tableName, idx := range ifm.indexes {
		if err := idx.Close(); err != nil {
			lastErr = errors.Wrapf(err, "failed to close index for table '%s'", tableName)
		}
		delete(ifm.indexes, tableName)
	}

	return lastErr
}

// ErrInvalidRoot means the requested root page cannot be the root of this file.
var ErrInvalidRoot = errors.New("invalid index root page")

// Open opens a single index file outside of any manager. An empty file gets
// page 0 as its root, so rootPageID must be 0 for a new file.
func Open(path string, rootPageID int32, opts Options, logger *zap.Logger) (*IndexFile, error) {
	return open(path, rootPageID, opts, logger, false)
}

// OpenExisting opens an index for reading only. Nothing is allocated or
// initialized: the file must hold rootPageID and that page must be a written
// tree node. Insert fails and Close writes nothing.
func OpenExisting(path string, rootPageID int32, opts Options, logger *zap.Logger) (*IndexFile, error) {
	return open(path, rootPageID, opts, logger, true)
}

func open(path string, rootPageID int32, opts Options, logger *zap.Logger, readOnly bool) (*IndexFile, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dm, err := diskmanager.Open(path, logger)
	if err != nil {
		return nil, err
	}

	idx := &IndexFile{
		name:        filepath.Base(path),
		path:        path,
		readOnly:    readOnly,
		diskManager: dm,
		bufferPool:  bufferpool.NewBufferPool(opts.PoolCapacity, dm, logger),
		logger:      logger.With(zap.String("index", filepath.Base(path))),
	}

	if err := idx.prepareRoot(rootPageID); err != nil {
		dm.Close()
		return nil, err
	}

	treeOpts := []bplus.Option{bplus.WithLogger(idx.logger)}
	if opts.CacheMaxCost > 0 {
		treeOpts = append(treeOpts, bplus.WithRecordCache(opts.CacheNumCounters, opts.CacheMaxCost))
	}

	tree, err := bplus.NewBPlusTree(idx.bufferPool, rootPageID, treeOpts...)
	if err != nil {
		dm.Close()
		return nil, err
	}
	idx.tree = tree
	return idx, nil
}

// prepareRoot checks rootPageID against the file and, for a writable empty
// file, allocates page 0 as the root.
func (idx *IndexFile) prepareRoot(rootPageID int32) error {
	numPages, err := idx.diskManager.PageCount()
	if err != nil {
		return err
	}

	if numPages == 0 {
		if idx.readOnly {
			return errors.Wrapf(ErrInvalidRoot, "%s is empty", idx.path)
		}
		if rootPageID != 0 {
			return errors.Wrapf(ErrInvalidRoot, "root %d requested for empty file %s", rootPageID, idx.path)
		}
		first, err := idx.bufferPool.AllocateNewPage()
		if err != nil {
			return errors.Wrap(err, "failed to allocate root page")
		}
		idx.logger.Info("created index file", zap.Int32("root", first))
		return nil
	}

	if rootPageID < 0 || rootPageID >= numPages {
		return errors.Wrapf(ErrInvalidRoot, "root %d outside file of %d pages", rootPageID, numPages)
	}
	if idx.readOnly {
		pg, err := idx.bufferPool.GetPage(rootPageID)
		if err != nil {
			return err
		}
		if bplus.IsFreshPage(pg) {
			return errors.Wrapf(ErrInvalidRoot, "root %d was never written", rootPageID)
		}
	}
	return nil
}

func (idx *IndexFile) Insert(key int32, loc types.RecordLocation) error {
	if idx.readOnly {
		return errors.Errorf("index %s is open read-only", idx.name)
	}
	return idx.tree.Insert(key, loc)
}

func (idx *IndexFile) Find(key int32) (types.RecordLocation, bool, error) {
	return idx.tree.Find(key)
}

func (idx *IndexFile) RootPageID() int32 {
	return idx.tree.RootPageID()
}

func (idx *IndexFile) Height() (int, error) {
	return idx.tree.Height()
}

func (idx *IndexFile) Inspect(w io.Writer, verbose bool) (bplus.TreeStats, error) {
	return idx.tree.Inspect(w, verbose)
}

func (idx *IndexFile) Name() string {
	return idx.name
}

func (idx *IndexFile) Path() string {
	return idx.path
}

func (idx *IndexFile) FileSize() (int64, error) {
	return idx.diskManager.FileSize()
}

func (idx *IndexFile) BufferPoolStats() bufferpool.BufferPoolStats {
	return idx.bufferPool.GetStats()
}

// Flush writes every dirty page and syncs the file.
func (idx *IndexFile) Flush() error {
	if err := idx.bufferPool.FlushAll(); err != nil {
		return errors.Wrapf(err, "failed to flush index %s", idx.name)
	}
	return idx.diskManager.Sync()
}

// Close flushes, releases the tree and closes the file.
// A read-only index is closed without writing.
func (idx *IndexFile) Close() error {
	if !idx.readOnly {
		if err := idx.Flush(); err != nil {
			return err
		}
	}
	if err := idx.tree.Close(); err != nil {
		return err
	}
	idx.logger.Debug("closed index", zap.Int32("root", idx.tree.RootPageID()))
	return idx.diskManager.Close()
}
