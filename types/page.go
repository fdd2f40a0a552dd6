package types

const (
	PageSize = 4096 // 4KB page
)

// PageType is the first int of every B+ tree page.
// A zero page reads as an empty internal page, which is how a fresh
// page is recognised before its header is written.
type PageType int32

const (
	PageTypeInternal PageType = 0
	PageTypeLeaf     PageType = 1
)

func (pt PageType) String() string {
	switch pt {
	case PageTypeInternal:
		return "INTERNAL"
	case PageTypeLeaf:
		return "LEAF"
	default:
		return "UNKNOWN"
	}
}
