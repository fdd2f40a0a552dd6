// dump_heap prints every row of a heap file under a schema.
// Usage: go run ./cmd/dump_heap <path-to-.heap> [schema]
// Example: go run ./cmd/dump_heap databases/demo/tables/users.heap id:int,name:string,age:int
package main

import (
	diskmanager "LeafDB/storage_engine/disk_manager"
	"LeafDB/storage_engine/tuple"
	"LeafDB/types"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
)

const defaultSchema = "id:int,name:string,age:int"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <table.heap> [schema]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s databases/demo/tables/users.heap %s\n", os.Args[0], defaultSchema)
		os.Exit(1)
	}
	path := os.Args[1]
	schemaText := defaultSchema
	if len(os.Args) > 2 {
		schemaText = os.Args[2]
	}

	if err := dump(path, schemaText); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// dump reads pages straight from the disk manager; nothing is cached or written.
func dump(path, schemaText string) error {
	schema, err := types.ParseSchema(schemaText)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}

	dm, err := diskmanager.Open(path, nil)
	if err != nil {
		return err
	}
	defer dm.Close()

	size, err := dm.FileSize()
	if err != nil {
		return err
	}
	numPages, err := dm.PageCount()
	if err != nil {
		return err
	}
	fmt.Printf("Reading %s from %s (%d pages)...\n\n", humanize.IBytes(uint64(size)), path, numPages)

	header := make([]string, schema.NumFields())
	for i, f := range schema.Fields {
		header[i] = fmt.Sprintf("%-20s", strings.ToUpper(f.Name))
	}
	line := strings.Repeat("-", 20*schema.NumFields()+16)
	fmt.Printf("%-16s%s\n%s\n", "LOCATION", strings.Join(header, ""), line)

	total := 0
	for id := int32(0); id < numPages; id++ {
		pg, err := dm.ReadPage(id)
		if err != nil {
			return err
		}
		rows, err := tuple.DecodePageRecords(pg, schema)
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Printf("%-16s", fmt.Sprintf("%d:%d", row.Location.PageID, row.Location.SlotNum))
			for _, v := range row.Values {
				fmt.Printf("%-20v", v)
			}
			fmt.Println()
		}
		total += len(rows)
	}

	fmt.Println(line)
	fmt.Printf("%s rows. End of file.\n", humanize.Comma(int64(total)))
	return nil
}
