// Inspect a B+ tree primary key index file (.idx).
// Usage: go run ./cmd/inspect_idx <path-to-.idx> [root-page-id] [-v]
// Example: go run ./cmd/inspect_idx databases/demo/indexes/users_primary.idx 2 -v
//
// The root is not stored in the file; pass the id printed by seed or the REPL.
package main

import (
	indexfile "LeafDB/storage_engine/access/indexfile_manager"
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <index.idx> [root-page-id] [-v]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s databases/demo/indexes/users_primary.idx 2 -v\n", os.Args[0])
		os.Exit(1)
	}
	path := os.Args[1]

	root := int32(0)
	verbose := false
	for _, arg := range os.Args[2:] {
		if arg == "-v" {
			verbose = true
			continue
		}
		n, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid root page id %q\n", arg)
			os.Exit(1)
		}
		root = int32(n)
	}

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	idx, err := indexfile.OpenExisting(path, root, indexfile.Options{PoolCapacity: 8}, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer idx.Close()

	size, err := idx.FileSize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Index file: %s (%s)\n", path, humanize.IBytes(uint64(size)))

	if _, err := idx.Inspect(os.Stdout, verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
