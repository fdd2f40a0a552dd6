package diskmanager

import (
	"LeafDB/storage_engine/page"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

/*
This is the main file for the disk manager.
It owns:
the file descriptor (os.File)
reading/writing whole pages at page-aligned offsets (ReadAt, WriteAt)
the page count, derived from the file length

There is no buffering here; every call goes straight to the file.
The bufferpool sits on top and decides when pages actually get read or written.
*/

// ErrPageNotOnDisk is returned when a page id lies beyond the end of the file.
var ErrPageNotOnDisk = errors.New("page not on disk")

// Open opens or creates the backing file at filePath.
func Open(filePath string, logger *zap.Logger) (*DiskManager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file %s", filePath)
	}

	dm := &DiskManager{
		filePath: filePath,
		file:     file,
		logger:   logger.With(zap.String("file", filePath)),
	}

	size, err := dm.FileSize()
	if err != nil {
		file.Close()
		return nil, err
	}
	if size%page.PageSize != 0 {
		dm.logger.Warn("file length is not a multiple of the page size",
			zap.Int64("size", size), zap.Int("page_size", page.PageSize))
	}

	return dm, nil
}

// ReadPage reads page id from disk. Reading past the end of the file is an I/O fault.
func (dm *DiskManager) ReadPage(id int32) (*page.Page, error) {
	if dm.file == nil {
		return nil, errors.Errorf("read page %d: file %s is closed", id, dm.filePath)
	}

	size, err := dm.FileSize()
	if err != nil {
		return nil, err
	}
	offset := int64(id) * page.PageSize
	if id < 0 || offset+page.PageSize > size {
		return nil, errors.Wrapf(ErrPageNotOnDisk, "page %d (file holds %d pages)", id, size/page.PageSize)
	}

	data := make([]byte, page.PageSize)
	if _, err := dm.file.ReadAt(data, offset); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "failed to read page %d", id)
	}

	return page.FromBytes(id, data)
}

// WritePage writes the whole page at its offset, extending the file if needed.
func (dm *DiskManager) WritePage(pg *page.Page) error {
	if dm.file == nil {
		return errors.Errorf("write page %d: file %s is closed", pg.ID, dm.filePath)
	}
	if pg.ID < 0 {
		return errors.Errorf("write page: invalid page id %d", pg.ID)
	}
	if len(pg.Data) != page.PageSize {
		return errors.Wrapf(page.ErrMalformedPage, "page %d: data is %d bytes, want %d", pg.ID, len(pg.Data), page.PageSize)
	}

	offset := int64(pg.ID) * page.PageSize
	if _, err := dm.file.WriteAt(pg.Data, offset); err != nil {
		return errors.Wrapf(err, "failed to write page %d", pg.ID)
	}
	return nil
}

// PageCount returns floor(fileLength / PageSize).
func (dm *DiskManager) PageCount() (int32, error) {
	size, err := dm.FileSize()
	if err != nil {
		return 0, err
	}
	return int32(size / page.PageSize), nil
}

func (dm *DiskManager) FileSize() (int64, error) {
	if dm.file == nil {
		return 0, errors.Errorf("file %s is closed", dm.filePath)
	}
	stat, err := dm.file.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to stat %s", dm.filePath)
	}
	return stat.Size(), nil
}

func (dm *DiskManager) Path() string {
	return dm.filePath
}

// Sync flushes the OS file buffers to stable storage.
func (dm *DiskManager) Sync() error {
	if dm.file == nil {
		return nil
	}
	if err := dm.file.Sync(); err != nil {
		return errors.Wrapf(err, "failed to sync %s", dm.filePath)
	}
	return nil
}

// Close syncs and closes the backing file. Closing twice is a no-op.
func (dm *DiskManager) Close() error {
	if dm.file == nil {
		return nil
	}
	if err := dm.file.Sync(); err != nil {
		return errors.Wrap(err, "failed to sync before close")
	}
	if err := dm.file.Close(); err != nil {
		return errors.Wrap(err, "failed to close file")
	}
	dm.file = nil
	return nil
}
