package bplus

import (
	"github.com/pkg/errors"
)

// insertIntoParent absorbs a child's split into the internal page parentID.
// There is no internal split: a full parent fails the insert.
func (t *BPlusTree) insertIntoParent(parentID int32, up pushUp) (pushUp, bool, error) {
	// The child's split may have evicted the parent; fetch it again.
	parent, err := t.fetchInternal(parentID)
	if err != nil {
		return pushUp{}, false, err
	}

	if parent.IsFull() {
		return pushUp{}, false, errors.Wrapf(ErrInternalNodeFull,
			"page %d cannot take separator %d -> %d", parentID, up.separator, up.pageID)
	}

	if err := parent.Insert(up.separator, up.pageID); err != nil {
		return pushUp{}, false, err
	}
	t.bufferPool.SetPageDirty(parentID, true)
	return pushUp{}, false, nil
}
