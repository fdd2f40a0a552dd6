// Seed program: creates database "demo" with a users table and sample rows.
// Run: go run ./cmd/seed [rows]
// Then inspect: databases/demo/tables/users.heap and databases/demo/indexes/users_primary.idx.
package main

import (
	"LeafDB/config"
	"LeafDB/logger"
	storageengine "LeafDB/storage_engine"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
)

const baseDir = "databases/demo"

var names = []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi"}

func main() {
	rows := 1000
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 0 {
			log.Fatalf("invalid row count %q", os.Args[1])
		}
		rows = n
	}

	// Clean previous run so the index starts at page 0.
	if err := os.RemoveAll(baseDir); err != nil {
		log.Fatalf("clean %s: %v", baseDir, err)
	}

	cfg := config.Default()
	cfg.Storage.DataDir = baseDir
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	se, err := storageengine.NewStorageEngine(cfg.Storage, zl)
	if err != nil {
		log.Fatalf("open storage engine: %v", err)
	}

	fmt.Printf("Seeding %s rows into %s (%s)...\n", humanize.Comma(int64(rows)), cfg.Storage.Table, cfg.Storage.Schema)
	for i := 0; i < rows; i++ {
		id := int32(i + 1)
		if _, err := se.InsertRow(id, []any{id, names[i%len(names)], 18 + i%50}); err != nil {
			log.Fatalf("insert %d: %v", id, err)
		}
	}

	stats, err := se.Stats()
	if err != nil {
		log.Fatalf("stats: %v", err)
	}
	root, err := se.Close()
	if err != nil {
		log.Fatalf("close: %v", err)
	}

	fmt.Printf("heap: %d pages, %s\n", stats.HeapPages, humanize.IBytes(uint64(stats.HeapBytes)))
	fmt.Printf("index: height %d, %s\n", stats.IndexHeight, humanize.IBytes(uint64(stats.IndexBytes)))
	fmt.Printf("index root page id = %d (pass it to inspect_idx and set storage.index_root_page_id)\n", root)
}
