package geometry

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/olekukonko/tablewriter"
)

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int     // Interior BVH nodes
	LeafRefs   int     // Child slots that reference a scene object
	Objects    int     // Distinct scene objects reachable from the root
	MaxDepth   int     // Deepest node, root at depth 0
	AvgDepth   float64 // Average depth of object references
}

// Stats walks the tree and collects structure statistics
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	seen := make(map[Hittable]struct{})
	depthSum := 0
	n.collectStats(0, &stats, seen, &depthSum)

	if stats.LeafRefs > 0 {
		stats.AvgDepth = float64(depthSum) / float64(stats.LeafRefs)
	}
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats, seen map[Hittable]struct{}, depthSum *int) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	children := []Hittable{n.Left}
	if !sameObject(n.Left, n.Right) {
		children = append(children, n.Right)
	}

	for _, child := range children {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats, seen, depthSum)
			continue
		}
		stats.LeafRefs++
		*depthSum += depth + 1
		if !isComparable(child) {
			stats.Objects++
			continue
		}
		if _, ok := seen[child]; !ok {
			seen[child] = struct{}{}
			stats.Objects++
		}
	}
}

// isComparable reports whether h can be used as a map key.
// HittableList is a slice and is not.
func isComparable(h Hittable) bool {
	return reflect.TypeOf(h).Comparable()
}

func sameObject(a, b Hittable) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) || !isComparable(a) {
		return false
	}
	return a == b
}

// Table renders the statistics as a text table
func (s BVHStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"BVH", "Value"})
	table.Append([]string{"Nodes", fmt.Sprintf("%d", s.TotalNodes)})
	table.Append([]string{"Object refs", fmt.Sprintf("%d", s.LeafRefs)})
	table.Append([]string{"Objects", fmt.Sprintf("%d", s.Objects)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", s.MaxDepth)})
	table.Append([]string{"Avg depth", fmt.Sprintf("%.2f", s.AvgDepth)})
	table.Render()
	return buf.String()
}
