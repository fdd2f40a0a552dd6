package bplus

import (
	"LeafDB/types"

	"github.com/pkg/errors"
)

/*
Insert is a recursive descent:

	descend ─┬─ leaf with room      → insert, done
	         └─ full leaf           → split, push (separator, new page) up
	internal ─┬─ child did not split → done
	          ├─ room for push-up    → absorb it, done
	          └─ full               → ErrInternalNodeFull
	top level: a push-up from the root grows the tree by one level

Nothing is rolled back on error: pages already marked dirty stay dirty and
reach disk with the next eviction or flush.
*/

func (t *BPlusTree) Insert(key int32, loc types.RecordLocation) error {
	if t.cache != nil {
		t.cache.invalidate(key)
	}

	up, split, err := t.insertRecursive(t.root, key, loc)
	if err != nil {
		return errors.Wrapf(err, "insert key %d", key)
	}
	if split {
		return t.createNewRoot(up)
	}
	return nil
}

// insertRecursive returns split == true with the push-up when pageID split.
func (t *BPlusTree) insertRecursive(pageID int32, key int32, loc types.RecordLocation) (pushUp, bool, error) {
	n, err := t.fetchNode(pageID)
	if err != nil {
		return pushUp{}, false, err
	}

	switch n.kind {
	case types.PageTypeLeaf:
		return t.insertIntoLeaf(n.leaf, key, loc)
	case types.PageTypeInternal:
		return t.insertIntoInternal(n.internal, key, loc)
	}
	return pushUp{}, false, errors.Wrapf(ErrMalformedPage, "page %d", pageID)
}

func (t *BPlusTree) insertIntoInternal(internal *InternalPage, key int32, loc types.RecordLocation) (pushUp, bool, error) {
	pageID := internal.PageID()
	childID := internal.Lookup(key)

	up, split, err := t.insertRecursive(childID, key, loc)
	if err != nil || !split {
		return pushUp{}, false, err
	}

	return t.insertIntoParent(pageID, up)
}
