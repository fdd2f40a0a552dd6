package page

import (
	"LeafDB/types"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

const (
	PageSize = types.PageSize
)

/*
This contains the page struct shared by every layer.

The disk manager fills it on a read, the buffer pool owns it while it is cached,
and the heap / index layers interpret its bytes through their own accessors.
Nobody else keeps a copy of Data: all mutations happen on the cached instance so
the buffer pool's dirty flag stays the single source of truth.

Integers are 4 bytes, big-endian, at caller-chosen offsets. Callers own the
bounds; an out-of-range offset is a programming error and panics.
*/

var ErrMalformedPage = errors.New("malformed page")

type Page struct {
	ID   int32
	Data []byte
}

// NewPage returns a zero-filled page.
func NewPage(id int32) *Page {
	return &Page{
		ID:   id,
		Data: make([]byte, PageSize),
	}
}

// FromBytes wraps data loaded from disk. data must be exactly PageSize bytes.
func FromBytes(id int32, data []byte) (*Page, error) {
	if len(data) != PageSize {
		return nil, errors.Wrapf(ErrMalformedPage, "page %d: data is %d bytes, want %d", id, len(data), PageSize)
	}
	return &Page{ID: id, Data: data}, nil
}

func (p *Page) GetInt(offset int) int32 {
	return int32(binary.BigEndian.Uint32(p.Data[offset : offset+4]))
}

func (p *Page) SetInt(offset int, v int32) {
	binary.BigEndian.PutUint32(p.Data[offset:offset+4], uint32(v))
}

// Zero clears the bytes in [from, to).
func (p *Page) Zero(from, to int) {
	clear(p.Data[from:to])
}

func (p *Page) String() string {
	return fmt.Sprintf("Page{id=%d}", p.ID)
}
