package bplus

import (
	"LeafDB/storage_engine/bufferpool"
	"LeafDB/types"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Option configures a BPlusTree.
type Option func(*treeOptions)

type treeOptions struct {
	logger           *zap.Logger
	cacheNumCounters int64
	cacheMaxCost     int64
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *treeOptions) {
		o.logger = logger
	}
}

// WithRecordCache puts a ristretto cache of at most maxCost locations in front of Find.
// A maxCost of 0 leaves the cache disabled.
func WithRecordCache(numCounters, maxCost int64) Option {
	return func(o *treeOptions) {
		o.cacheNumCounters = numCounters
		o.cacheMaxCost = maxCost
	}
}

// NewBPlusTree opens the tree rooted at rootPageID. The root page must already
// exist in the file. If its header was never written it becomes an empty leaf.
//
// The root id is not stored anywhere on disk: after the tree grows, callers
// must remember RootPageID() and pass it back on the next open.
func NewBPlusTree(bufferPool *bufferpool.BufferPool, rootPageID int32, opts ...Option) (*BPlusTree, error) {
	o := treeOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	// A split holds the old page and the freshly allocated one at the same time.
	if bufferPool.Capacity() < 2 {
		return nil, errors.Errorf("b+ tree needs a buffer pool of at least 2 pages, got %d", bufferPool.Capacity())
	}

	t := &BPlusTree{
		root:       rootPageID,
		bufferPool: bufferPool,
		logger:     o.logger,
	}

	if err := t.initRootIfNeeded(); err != nil {
		return nil, err
	}

	if o.cacheMaxCost > 0 {
		numCounters := o.cacheNumCounters
		if numCounters <= 0 {
			numCounters = o.cacheMaxCost * 10
		}
		cache, err := newRecordCache(numCounters, o.cacheMaxCost)
		if err != nil {
			return nil, err
		}
		t.cache = cache
	}

	return t, nil
}

func (t *BPlusTree) initRootIfNeeded() error {
	pg, err := t.bufferPool.GetPage(t.root)
	if err != nil {
		return errors.Wrapf(err, "failed to load root page %d", t.root)
	}
	if !IsFreshPage(pg) {
		return nil
	}

	NewLeafPage(pg)
	t.bufferPool.SetPageDirty(t.root, true)
	t.logger.Debug("initialized empty root leaf", zap.Int32("root", t.root))
	return nil
}

// RootPageID returns the current root. It changes when the root splits.
func (t *BPlusTree) RootPageID() int32 {
	return t.root
}

// Height counts the levels from the root down to the leaves.
func (t *BPlusTree) Height() (int, error) {
	height := 1
	pageID := t.root
	for {
		n, err := t.fetchNode(pageID)
		if err != nil {
			return 0, err
		}
		if n.kind == types.PageTypeLeaf {
			return height, nil
		}
		pageID = n.internal.ChildAt(0)
		height++
	}
}

// Close releases the record cache. Pages stay in the buffer pool; flushing them
// is the owner's job.
func (t *BPlusTree) Close() error {
	if t.cache != nil {
		t.cache.close()
		t.cache = nil
	}
	return nil
}
