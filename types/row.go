package types

import "fmt"

// RecordLocation points to a specific record in a heap file.
// The index stores it verbatim and never looks inside.
type RecordLocation struct {
	PageID  int32 `json:"page_id"`
	SlotNum int32 `json:"slot_num"`
}

func (r RecordLocation) String() string {
	return fmt.Sprintf("(page=%d slot=%d)", r.PageID, r.SlotNum)
}

// Row is a decoded record: field values in schema order.
type Row struct {
	Location RecordLocation
	Values   []any
}
