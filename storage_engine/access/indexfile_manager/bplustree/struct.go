// Structure of the B+ tree
/*
Tree
 ├── Internal page (separator keys + child page ids, entry 0 = leftmost child)
 │      └── Leaf pages (sorted key -> record location entries)

- every node is one buffer-pool page, interpreted through a 12 byte header
- keys are int32, values are types.RecordLocation
- the root id lives only in memory; the caller must hand it back on reopen
- the tree grows by splitting leaves and, at most, the root; an internal page
  below the root that fills up is reported as ErrInternalNodeFull
*/
package bplus

import (
	"LeafDB/storage_engine/bufferpool"
	"LeafDB/types"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrPageFull is the capacity fault of a single leaf or internal page.
	ErrPageFull = errors.New("b+ tree page is full")
	// ErrInternalNodeFull means a split reached an internal page with no room.
	// Splitting internal pages is not supported, so the insert cannot complete.
	ErrInternalNodeFull = errors.New("internal node full: cascading internal splits are not supported")
	// ErrMalformedPage is returned for a page whose header type is neither leaf nor internal.
	ErrMalformedPage = errors.New("malformed b+ tree page")
)

// pushUp is what a split hands to the parent: the separator and the new right page.
type pushUp struct {
	separator int32
	pageID    int32
}

type BPlusTree struct {
	root       int32                  // page id of the root node
	bufferPool *bufferpool.BufferPool // owns every page the tree touches
	cache      *recordCache           // nil when the record cache is disabled
	logger     *zap.Logger
}

// Entry is one leaf entry, used by inspection and tests.
type Entry struct {
	Key      int32
	Location types.RecordLocation
}
