package bufferpool

import (
	diskmanager "LeafDB/storage_engine/disk_manager"
	"LeafDB/storage_engine/page"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T, capacity int, pages int) (*BufferPool, *diskmanager.DiskManager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "buffer_test.dat")
	dm, err := diskmanager.Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { dm.Close() })

	for i := 0; i < pages; i++ {
		pg := page.NewPage(int32(i))
		pg.SetInt(0, int32(100+i))
		require.NoError(t, dm.WritePage(pg))
	}
	return NewBufferPool(capacity, dm, nil), dm, path
}

// TestCacheEvictionAndDirtyWrite: with room for one page, loading page 1
// evicts the dirty page 0 and its in-memory content reaches disk.
func TestCacheEvictionAndDirtyWrite(t *testing.T) {
	bp, _, path := newTestPool(t, 1, 2)

	p0, err := bp.GetPage(0)
	require.NoError(t, err)
	assert.Equal(t, int32(100), p0.GetInt(0))

	p0.SetInt(0, 200)
	bp.SetPageDirty(0, true)

	_, err = bp.GetPage(1)
	require.NoError(t, err)
	assert.False(t, bp.IsCached(0))
	assert.Equal(t, 1, bp.Size())

	check, err := diskmanager.Open(path, nil)
	require.NoError(t, err)
	defer check.Close()

	onDisk, err := check.ReadPage(0)
	require.NoError(t, err)
	assert.Equal(t, int32(200), onDisk.GetInt(0), "page 0 should have been written back on eviction")
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	bp, _, _ := newTestPool(t, 3, 5)

	for _, id := range []int32{0, 1, 2} {
		_, err := bp.GetPage(id)
		require.NoError(t, err)
	}
	assert.Equal(t, []int32{0, 1, 2}, bp.LRUOrder())

	// Touch 0 so 1 becomes the oldest.
	_, err := bp.GetPage(0)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 0}, bp.LRUOrder())

	_, err = bp.GetPage(3)
	require.NoError(t, err)

	assert.False(t, bp.IsCached(1))
	assert.Equal(t, []int32{2, 0, 3}, bp.LRUOrder())
	assert.Equal(t, 3, bp.Size())
	assert.Equal(t, uint64(1), bp.GetStats().Evictions)
}

// Inserting N+1 pages with no intervening access evicts the first.
func TestFirstOfNPlusOneIsEvicted(t *testing.T) {
	const n = 4
	bp, _, _ := newTestPool(t, n, n+1)

	for id := int32(0); id <= n; id++ {
		_, err := bp.GetPage(id)
		require.NoError(t, err)
	}

	assert.False(t, bp.IsCached(0))
	for id := int32(1); id <= n; id++ {
		assert.True(t, bp.IsCached(id), "page %d", id)
	}
}

func TestCleanEvictionDoesNotWrite(t *testing.T) {
	bp, _, _ := newTestPool(t, 1, 2)

	p0, err := bp.GetPage(0)
	require.NoError(t, err)
	p0.SetInt(0, 555) // not marked dirty

	_, err = bp.GetPage(1)
	require.NoError(t, err)

	reloaded, err := bp.GetPage(0)
	require.NoError(t, err)
	assert.Equal(t, int32(100), reloaded.GetInt(0))
	assert.Equal(t, uint64(0), bp.GetStats().WriteBacks)
}

func TestSetPageDirtyIgnoresUncachedPages(t *testing.T) {
	bp, _, _ := newTestPool(t, 2, 2)

	bp.SetPageDirty(1, true)
	assert.False(t, bp.IsDirty(1))

	_, err := bp.GetPage(1)
	require.NoError(t, err)
	assert.False(t, bp.IsDirty(1), "no deferred dirty state on load")

	bp.SetPageDirty(1, true)
	assert.True(t, bp.IsDirty(1))
	bp.SetPageDirty(1, false)
	assert.False(t, bp.IsDirty(1))
}

func TestFlushAllWritesDirtyAndEmptiesCache(t *testing.T) {
	bp, dm, _ := newTestPool(t, 4, 3)

	for _, id := range []int32{0, 1, 2} {
		pg, err := bp.GetPage(id)
		require.NoError(t, err)
		pg.SetInt(4, id*10+7)
		if id != 1 {
			bp.SetPageDirty(id, true)
		}
	}
	assert.Equal(t, 2, bp.GetStats().DirtyPages)

	require.NoError(t, bp.FlushAll())
	assert.Equal(t, 0, bp.Size())
	assert.Empty(t, bp.LRUOrder())

	p0, err := dm.ReadPage(0)
	require.NoError(t, err)
	p1, err := dm.ReadPage(1)
	require.NoError(t, err)
	p2, err := dm.ReadPage(2)
	require.NoError(t, err)

	assert.Equal(t, int32(7), p0.GetInt(4))
	assert.Equal(t, int32(0), p1.GetInt(4), "clean page must not be written")
	assert.Equal(t, int32(27), p2.GetInt(4))
}

func TestAllocateNewPage(t *testing.T) {
	bp, dm, _ := newTestPool(t, 2, 2)

	id, err := bp.AllocateNewPage()
	require.NoError(t, err)
	assert.Equal(t, int32(2), id)
	assert.False(t, bp.IsCached(id), "allocation does not populate the cache")

	n, err := dm.PageCount()
	require.NoError(t, err)
	assert.Equal(t, int32(3), n)

	next, err := bp.AllocateNewPage()
	require.NoError(t, err)
	assert.Equal(t, int32(3), next)

	pg, err := bp.GetPage(id)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, page.PageSize), pg.Data)
}

func TestGetPageMissingPropagatesDiskFault(t *testing.T) {
	bp, _, _ := newTestPool(t, 2, 1)

	_, err := bp.GetPage(5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diskmanager.ErrPageNotOnDisk))
	assert.Equal(t, 0, bp.Size())
}

func TestStatsCountHitsAndMisses(t *testing.T) {
	bp, _, _ := newTestPool(t, 2, 2)

	_, _ = bp.GetPage(0)
	_, _ = bp.GetPage(0)
	_, _ = bp.GetPage(1)

	stats := bp.GetStats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
	assert.InDelta(t, 1.0/3.0, stats.HitRate(), 1e-9)
	assert.Equal(t, 2, stats.Capacity)
}

func TestFailedWriteBackKeepsVictimAndCapacity(t *testing.T) {
	bp, _, _ := newTestPool(t, 1, 2)

	p0, err := bp.GetPage(0)
	require.NoError(t, err)
	p0.Data = p0.Data[:10] // WritePage rejects it
	bp.SetPageDirty(0, true)

	_, err = bp.GetPage(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, page.ErrMalformedPage))

	assert.True(t, bp.IsCached(0))
	assert.True(t, bp.IsDirty(0))
	assert.False(t, bp.IsCached(1))
	assert.Equal(t, 1, bp.Size())
	assert.Equal(t, []int32{0}, bp.LRUOrder())
}
