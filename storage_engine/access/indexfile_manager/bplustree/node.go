package bplus

import (
	"LeafDB/types"

	"github.com/pkg/errors"
)

/*
node is the tagged variant the tree uses to decide how to read a page.
Exactly one of leaf / internal is set, matching kind.
The wrapped page belongs to the buffer pool; a node is only valid until the
next GetPage call that could evict it.
*/
type node struct {
	kind     types.PageType
	leaf     *LeafPage
	internal *InternalPage
}

func (t *BPlusTree) fetchNode(pageID int32) (node, error) {
	pg, err := t.bufferPool.GetPage(pageID)
	if err != nil {
		return node{}, errors.Wrapf(err, "failed to fetch node %d", pageID)
	}

	switch kind := ReadPageType(pg); kind {
	case types.PageTypeLeaf:
		return node{kind: kind, leaf: NewLeafPage(pg)}, nil
	case types.PageTypeInternal:
		return node{kind: kind, internal: NewInternalPage(pg)}, nil
	default:
		return node{}, errors.Wrapf(ErrMalformedPage, "page %d has type %d", pageID, int32(kind))
	}
}

func (t *BPlusTree) fetchLeaf(pageID int32) (*LeafPage, error) {
	pg, err := t.bufferPool.GetPage(pageID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch leaf %d", pageID)
	}
	return NewLeafPage(pg), nil
}

func (t *BPlusTree) fetchInternal(pageID int32) (*InternalPage, error) {
	pg, err := t.bufferPool.GetPage(pageID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch internal node %d", pageID)
	}
	return NewInternalPage(pg), nil
}
