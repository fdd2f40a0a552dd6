package indexfile

import (
	"LeafDB/types"
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenReservesRootOnEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.idx")
	idx, err := Open(path, 0, Options{PoolCapacity: 4}, nil)
	require.NoError(t, err)
	defer idx.Close()

	assert.Equal(t, int32(0), idx.RootPageID())
	size, err := idx.FileSize()
	require.NoError(t, err)
	assert.Equal(t, int64(4096), size)
}

func TestIndexSurvivesReopenWithRememberedRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.idx")
	idx, err := Open(path, 0, Options{PoolCapacity: 4, CacheMaxCost: 64}, nil)
	require.NoError(t, err)

	for k := int32(0); k < 1000; k++ {
		require.NoError(t, idx.Insert(k, types.RecordLocation{PageID: k, SlotNum: 1}))
	}
	root := idx.RootPageID()
	assert.NotEqual(t, int32(0), root)
	require.NoError(t, idx.Close())

	reopened, err := Open(path, root, Options{PoolCapacity: 4}, nil)
	require.NoError(t, err)
	defer reopened.Close()

	loc, found, err := reopened.Find(777)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, types.RecordLocation{PageID: 777, SlotNum: 1}, loc)

	var out bytes.Buffer
	stats, err := reopened.Inspect(&out, false)
	require.NoError(t, err)
	assert.Equal(t, 1000, stats.Keys)
	assert.Contains(t, out.String(), "INTERNAL")
}

func TestOpenRejectsTinyPool(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "t.idx"), 0, Options{PoolCapacity: 1}, nil)
	assert.Error(t, err)
}

func TestIndexFileManager(t *testing.T) {
	ifm, err := NewIndexFileManager(filepath.Join(t.TempDir(), "indexes"), Options{PoolCapacity: 4}, nil)
	require.NoError(t, err)

	users, err := ifm.GetOrCreateIndex("users", 0)
	require.NoError(t, err)
	again, err := ifm.GetOrCreateIndex("users", 0)
	require.NoError(t, err)
	assert.Same(t, users, again)
	assert.Equal(t, "users", users.Name())
	assert.Equal(t, "users_primary.idx", filepath.Base(users.Path()))

	require.NoError(t, users.Insert(1, types.RecordLocation{PageID: 0, SlotNum: 0}))
	require.NoError(t, ifm.CloseIndex("users"))
	require.NoError(t, ifm.CloseIndex("users"))

	users, err = ifm.GetOrCreateIndex("users", 0)
	require.NoError(t, err)
	_, found, err := users.Find(1)
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, ifm.CloseAll())
}

func TestOpenRejectsNonzeroRootForEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.idx")
	_, err := Open(path, 5, Options{PoolCapacity: 4}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRoot)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestOpenExistingDoesNotWrite(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.idx")
	_, err := OpenExisting(empty, 0, Options{PoolCapacity: 4}, nil)
	assert.ErrorIs(t, err, ErrInvalidRoot)
	info, err := os.Stat(empty)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())

	zeroed := filepath.Join(dir, "zeroed.idx")
	require.NoError(t, os.WriteFile(zeroed, make([]byte, 4096), 0o644))
	_, err = OpenExisting(zeroed, 0, Options{PoolCapacity: 4}, nil)
	assert.ErrorIs(t, err, ErrInvalidRoot)
	raw, err := os.ReadFile(zeroed)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 4096), raw)

	_, err = OpenExisting(zeroed, 3, Options{PoolCapacity: 4}, nil)
	assert.ErrorIs(t, err, ErrInvalidRoot)
}

func TestOpenExistingReadsPopulatedIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.idx")
	idx, err := Open(path, 0, Options{PoolCapacity: 4}, nil)
	require.NoError(t, err)
	for k := int32(0); k < 500; k++ {
		require.NoError(t, idx.Insert(k, types.RecordLocation{PageID: k, SlotNum: 2}))
	}
	root := idx.RootPageID()
	require.NoError(t, idx.Close())

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	ro, err := OpenExisting(path, root, Options{PoolCapacity: 4}, nil)
	require.NoError(t, err)
	loc, found, err := ro.Find(321)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, types.RecordLocation{PageID: 321, SlotNum: 2}, loc)

	var out bytes.Buffer
	stats, err := ro.Inspect(&out, false)
	require.NoError(t, err)
	assert.Equal(t, 500, stats.Keys)

	assert.Error(t, ro.Insert(900, types.RecordLocation{PageID: 1, SlotNum: 1}))
	require.NoError(t, ro.Close())

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestIndexFileManagerSharedAcrossGoroutines(t *testing.T) {
	ifm, err := NewIndexFileManager(filepath.Join(t.TempDir(), "indexes"), Options{PoolCapacity: 4}, nil)
	require.NoError(t, err)
	defer ifm.CloseAll()

	const workers = 8
	got := make([]*IndexFile, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = ifm.GetOrCreateIndex("orders", 0)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, got[0], got[i])
	}
}
