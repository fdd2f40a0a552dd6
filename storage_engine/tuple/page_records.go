package tuple

import (
	heapfile "LeafDB/storage_engine/access/heapfile_manager"
	"LeafDB/storage_engine/page"
	"LeafDB/types"

	"github.com/pkg/errors"
)

// DecodePageRecords decodes every record stored on a heap page.
// A page without a heap header yields no rows.
func DecodePageRecords(pg *page.Page, schema types.Schema) ([]types.Row, error) {
	records, err := heapfile.Records(pg)
	if err != nil {
		return nil, err
	}

	rows := make([]types.Row, 0, len(records))
	for slot, rec := range records {
		values, err := Decode(schema, rec)
		if err != nil {
			return nil, errors.Wrapf(err, "page %d slot %d", pg.ID, slot)
		}
		rows = append(rows, types.Row{
			Location: types.RecordLocation{PageID: pg.ID, SlotNum: int32(slot)},
			Values:   values,
		})
	}
	return rows, nil
}
