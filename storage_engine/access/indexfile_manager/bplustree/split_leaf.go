package bplus

import (
	"LeafDB/types"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// insertIntoLeaf inserts directly when there is room, otherwise splits the leaf
// into a newly allocated page and reports the split to the parent.
func (t *BPlusTree) insertIntoLeaf(leaf *LeafPage, key int32, loc types.RecordLocation) (pushUp, bool, error) {
	leafID := leaf.PageID()

	if !leaf.IsFull() {
		if err := leaf.Insert(key, loc); err != nil {
			return pushUp{}, false, err
		}
		t.bufferPool.SetPageDirty(leafID, true)
		return pushUp{}, false, nil
	}

	newPageID, err := t.bufferPool.AllocateNewPage()
	if err != nil {
		return pushUp{}, false, errors.Wrap(err, "splitLeaf: failed to allocate right sibling")
	}
	right, err := t.fetchLeaf(newPageID)
	if err != nil {
		return pushUp{}, false, err
	}

	// Loading the new page may have evicted the leaf; work on the cached instance.
	left, err := t.fetchLeaf(leafID)
	if err != nil {
		return pushUp{}, false, err
	}

	separator := left.Split(right)

	target := left
	if key >= separator {
		target = right
	}
	if err := target.Insert(key, loc); err != nil {
		return pushUp{}, false, err
	}

	t.bufferPool.SetPageDirty(leafID, true)
	t.bufferPool.SetPageDirty(newPageID, true)

	t.logger.Debug("split leaf",
		zap.Int32("left", leafID),
		zap.Int32("right", newPageID),
		zap.Int32("separator", separator))

	return pushUp{separator: separator, pageID: newPageID}, true, nil
}
