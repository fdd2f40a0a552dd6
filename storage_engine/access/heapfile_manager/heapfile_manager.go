package heapfile

import (
	"LeafDB/storage_engine/bufferpool"
	diskmanager "LeafDB/storage_engine/disk_manager"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

/*
This file is the start of the heapfile manager.
It maps table names to heap files under baseDir (<table>.heap) and opens each
one with its own disk manager and buffer pool of poolCapacity pages.
*/

// NewHeapFileManager creates a new heap file manager
func NewHeapFileManager(baseDir string, poolCapacity int, logger *zap.Logger) (*HeapFileManager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create heap directory")
	}
	return &HeapFileManager{
		baseDir:      baseDir,
		poolCapacity: poolCapacity,
		files:        make(map[string]*HeapFile),
		logger:       logger,
	}, nil
}

// OpenHeapFile returns the heap file for tableName, creating it on first use.
func (hfm *HeapFileManager) OpenHeapFile(tableName string) (*HeapFile, error) {
	hfm.mu.RLock()
	hf, exists := hfm.files[tableName]
	hfm.mu.RUnlock()
	if exists {
		return hf, nil
	}

	hfm.mu.Lock()
	defer hfm.mu.Unlock()

	if hf, exists := hfm.files[tableName]; exists {
		return hf, nil
	}

	heapPath := filepath.Join(hfm.baseDir, tableName+".heap")
	hf, err := Open(heapPath, hfm.poolCapacity, hfm.logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open heap file for table '%s'", tableName)
	}
	hf.tableName = tableName

	hfm.files[tableName] = hf
	return hf, nil
}

func (hfm *HeapFileManager) GetHeapFileByTable(tableName string) (*HeapFile, error) {
	hfm.mu.RLock()
	defer hfm.mu.RUnlock()

	hf, exists := hfm.files[tableName]
	if !exists {
		return nil, errors.Errorf("no heap file open for table '%s'", tableName)
	}
	return hf, nil
}

// CloseAll flushes and closes every open heap file.
func (hfm *HeapFileManager) CloseAll() error {
	hfm.mu.Lock()
	defer hfm.mu.Unlock()

	var lastErr error
	for tableName, hf := range hfm.files {
		if err := hf.Close(); err != nil {
			lastErr = errors.Wrapf(err, "failed to close heap file for table '%s'", tableName)
		}
		delete(hfm.files, tableName)
	}
	return lastErr
}

// Open opens (or creates) a single heap file outside of any manager.
func Open(path string, poolCapacity int, logger *zap.Logger) (*HeapFile, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dm, err := diskmanager.Open(path, logger)
	if err != nil {
		return nil, err
	}

	hf := &HeapFile{
		tableName:   filepath.Base(path),
		filePath:    path,
		diskManager: dm,
		bufferPool:  bufferpool.NewBufferPool(poolCapacity, dm, logger),
		logger:      logger.With(zap.String("heap", filepath.Base(path))),
	}

	numPages, err := hf.NumPages()
	if err != nil {
		dm.Close()
		return nil, err
	}
	hf.logger.Debug("opened heap file", zap.Int32("pages", numPages))
	return hf, nil
}
