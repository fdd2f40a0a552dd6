// Index inspection for debugging.
// Use Inspect(w) to print a human-readable dump of the tree, level by level.

package bplus

import (
	"LeafDB/types"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// TreeStats summarizes a full walk of the tree.
type TreeStats struct {
	Height        int
	InternalPages int
	LeafPages     int
	Keys          int
}

// Inspect writes every node, breadth first, to w and returns the totals.
// Leaves print their key -> location entries when verbose is set.
func (t *BPlusTree) Inspect(w io.Writer, verbose bool) (TreeStats, error) {
	p := func(format string, args ...any) { fmt.Fprintf(w, format, args...) }

	var stats TreeStats
	p("  root page id = %d\n", t.root)
	p("\n  Nodes (BFS):\n  ---\n")

	queue := []int32{t.root}
	level := 0
	for len(queue) > 0 {
		size := len(queue)
		p("  Level %d:\n", level)
		for _, pageID := range queue[:size] {
			n, err := t.fetchNode(pageID)
			if err != nil {
				return stats, err
			}
			switch n.kind {
			case types.PageTypeInternal:
				stats.InternalPages++
				p("    [page %d] INTERNAL entries=%d/%d separators=%v children=%v\n",
					pageID, n.internal.KeyCount(), n.internal.MaxCapacity(),
					n.internal.Separators(), n.internal.Children())
				queue = append(queue, n.internal.Children()...)
			case types.PageTypeLeaf:
				stats.LeafPages++
				entries := n.leaf.Entries()
				stats.Keys += len(entries)
				if len(entries) == 0 {
					p("    [page %d] LEAF keys=0/%d\n", pageID, n.leaf.MaxCapacity())
					break
				}
				p("    [page %d] LEAF keys=%d/%d range=[%d..%d]\n",
					pageID, len(entries), n.leaf.MaxCapacity(), entries[0].Key, entries[len(entries)-1].Key)
				if verbose {
					for _, e := range entries {
						p("      %d -> %s\n", e.Key, e.Location)
					}
				}
			}
		}
		p("  ---\n")
		queue = queue[size:]
		level++
	}

	stats.Height = level
	p("\n  height=%d internal=%s leaves=%s keys=%s\n",
		stats.Height,
		humanize.Comma(int64(stats.InternalPages)),
		humanize.Comma(int64(stats.LeafPages)),
		humanize.Comma(int64(stats.Keys)))
	return stats, nil
}
