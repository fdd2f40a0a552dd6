package bplus

import (
	"LeafDB/types"
)

// Find walks from the root to the leaf responsible for key.
// A missing key is reported with found == false, not an error.
func (t *BPlusTree) Find(key int32) (loc types.RecordLocation, found bool, err error) {
	if t.cache != nil {
		if loc, ok := t.cache.get(key); ok {
			return loc, true, nil
		}
	}

	pageID := t.root
	for {
		n, err := t.fetchNode(pageID)
		if err != nil {
			return types.RecordLocation{}, false, err
		}

		switch n.kind {
		case types.PageTypeLeaf:
			loc, found := n.leaf.Lookup(key)
			if found && t.cache != nil {
				t.cache.set(key, loc)
			}
			return loc, found, nil
		case types.PageTypeInternal:
			pageID = n.internal.Lookup(key)
		}
	}
}
