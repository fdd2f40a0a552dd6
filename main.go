package main

import (
	"LeafDB/config"
	"LeafDB/logger"
	storageengine "LeafDB/storage_engine"
	"LeafDB/storage_engine/tuple"
	"LeafDB/types"
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Usage: go run . [data-dir] [index-root-page-id]
func main() {
	cfg := config.Default()
	cfg.Logger.LogLevel = "warn"
	if len(os.Args) > 1 {
		cfg.Storage.DataDir = os.Args[1]
	}
	if len(os.Args) > 2 {
		root, err := strconv.ParseInt(os.Args[2], 10, 32)
		if err != nil {
			log.Fatalf("invalid root page id %q", os.Args[2])
		}
		cfg.Storage.IndexRootPageID = int32(root)
	}
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
		log.Fatal(err)
	}

	fmt.Printf("table %s (%s), index root %d. Type 'help' for commands.\n",
		cfg.Storage.Table, se.Schema(), se.RootPageID())

	scanner := bufio.NewScanner(os.Stdin)
	// REPL
	for {
		fmt.Print("db> ")

		if !scanner.Scan() { // Ctrl+D pressed
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "exit") {
			break
		}
		if line == "" {
			continue
		}

		if err := execute(se, strings.Fields(line)); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}

	root, err := se.Close()
	if err != nil {
		zl.Error("close failed", zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("closed. reopen with index root %d\n", root)
}

func execute(se *storageengine.StorageEngine, args []string) error {
	switch strings.ToLower(args[0]) {
	case "help":
		fmt.Println("  insert <values...>   key is the first value")
		fmt.Println("  get <key>")
		fmt.Println("  scan")
		fmt.Println("  flush | stats | root | exit")

	case "insert":
		values, err := tuple.ParseValues(se.Schema(), args[1:])
		if err != nil {
			return err
		}
		key, err := tuple.ToInt(values[0])
		if err != nil {
			return err
		}
		loc, err := se.InsertRow(key, values)
		if err != nil {
			return err
		}
		fmt.Printf("inserted %d at %s\n", key, loc)

	case "get":
		if len(args) != 2 {
			return errors.New("usage: get <key>")
		}
		key, err := tuple.ToInt(args[1])
		if err != nil {
			return err
		}
		row, found, err := se.GetRow(key)
		if err != nil {
			return err
		}
		if !found {
			fmt.Println("(not found)")
			return nil
		}
		printRow(row)

	case "scan":
		count := 0
		if err := se.Scan(func(row types.Row) error {
			printRow(row)
			count++
			return nil
		}); err != nil {
			return err
		}
		fmt.Printf("(%s rows)\n", humanize.Comma(int64(count)))

	case "flush":
		if err := se.Flush(); err != nil {
			return err
		}
		fmt.Println("flushed")

	case "stats":
		s, err := se.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("heap:  %d pages, %s, pool %d/%d hit rate %.1f%%\n",
			s.HeapPages, humanize.IBytes(uint64(s.HeapBytes)),
			s.HeapBufPool.TotalPages, s.HeapBufPool.Capacity, 100*s.HeapBufPool.HitRate())
		fmt.Printf("index: height %d, root %d, %s, pool %d/%d hit rate %.1f%%\n",
			s.IndexHeight, s.IndexRoot, humanize.IBytes(uint64(s.IndexBytes)),
			s.IndexBufPool.TotalPages, s.IndexBufPool.Capacity, 100*s.IndexBufPool.HitRate())

	case "root":
		fmt.Println(se.RootPageID())

	default:
		return errors.Errorf("unknown command %q", args[0])
	}
	return nil
}

func printRow(row types.Row) {
	parts := make([]string, len(row.Values))
	for i, v := range row.Values {
		parts[i] = fmt.Sprint(v)
	}
	fmt.Printf("%-16s %s\n", row.Location, strings.Join(parts, " | "))
}
