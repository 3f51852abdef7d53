package octree

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Stats describes the shape of a tree. Empty counts branches holding no points, including children
// left behind by failed insertions. Depths are relative to the node Stats was called on and
// LeafDepths lists them in post-order.
type Stats struct {
	Nodes      int
	Branches   int
	Leaves     int
	Empty      int
	Points     int
	MaxDepth   int
	LeafDepths []float64
}

// Stats walks the subtree rooted at n once and reports its shape.
func (n *Node) Stats() Stats {
	var s Stats
	if n == nil {
		return s
	}
	s.Points = n.count
	record := func(node *Node) {
		s.Nodes++
		if d := node.depth - n.depth; d > s.MaxDepth {
			s.MaxDepth = d
		}
	}
	n.PostOrder(
		func(node *Node) {
			record(node)
			s.Branches++
			if node.count == 0 {
				s.Empty++
			}
		},
		func(node *Node) {
			record(node)
			s.Leaves++
			s.LeafDepths = append(s.LeafDepths, float64(node.depth-n.depth))
		},
	)
	return s
}

// Summary aggregates the leaf depths of s.
type Summary struct {
	Stats
	MeanLeafDepth   float64
	MedianLeafDepth float64
	MaxLeafDepth    float64
}

// Summary computes leaf depth statistics. A tree without leaves reports zeroes.
func (s Stats) Summary() (Summary, error) {
	sum := Summary{Stats: s}
	if len(s.LeafDepths) == 0 {
		return sum, nil
	}
	var err error
	if sum.MeanLeafDepth, err = stats.Mean(s.LeafDepths); err != nil {
		return Summary{}, err
	}
	if sum.MedianLeafDepth, err = stats.Median(s.LeafDepths); err != nil {
		return Summary{}, err
	}
	if sum.MaxLeafDepth, err = stats.Max(s.LeafDepths); err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func (s Summary) String() string {
	return fmt.Sprintf("%d point(s) in %d node(s) (%d leaves, %d branches, %d empty), depth %d, leaf depth mean %.2f median %.2f",
		s.Points, s.Nodes, s.Leaves, s.Branches, s.Empty, s.MaxDepth, s.MeanLeafDepth, s.MedianLeafDepth)
}
