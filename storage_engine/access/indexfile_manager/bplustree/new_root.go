package bplus

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// createNewRoot grows the tree by one level: a new internal page whose leftmost
// child is the old root and whose only separator points at the split-off page.
func (t *BPlusTree) createNewRoot(up pushUp) error {
	newRootID, err := t.bufferPool.AllocateNewPage()
	if err != nil {
		return errors.Wrap(err, "createNewRoot: failed to allocate new root")
	}
	root, err := t.fetchInternal(newRootID)
	if err != nil {
		return err
	}

	root.SetPointer(0, t.root)
	if err := root.Insert(up.separator, up.pageID); err != nil {
		return errors.Wrap(err, "createNewRoot")
	}
	t.bufferPool.SetPageDirty(newRootID, true)

	t.logger.Info("tree grew",
		zap.Int32("old_root", t.root),
		zap.Int32("new_root", newRootID),
		zap.Int32("separator", up.separator))

	t.root = newRootID
	return nil
}
