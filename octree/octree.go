// Package octree implements a point octree that recursively partitions an axis-aligned volume into
// octants, storing each point together with an opaque caller-owned value.
//
// A node holding exactly one point is a leaf. Every other node, including an empty one, is a branch
// whose points live in its children. A node is subdivided the first time it has to hold a second point.
//
// An octree is not safe for concurrent mutation. Callers that share a tree across goroutines must guard
// the whole tree with their own lock.
//
// Inserting coincident points recurses until the split planes stop separating them. Without a depth
// guard (see WithMaxDepth) this exhausts the stack, so trees that may see duplicate coordinates should
// set one.
package octree

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// NumOctants is the number of child slots of every node.
const NumOctants = 8

// Bits contributed to an octant index by each axis whose coordinate is above the split plane.
const (
	octantX = 1 << iota
	octantY
	octantZ
)

var (
	// ErrAllocation is returned when storage for a node or a point cannot be obtained.
	ErrAllocation = errors.New("octree allocation failed")

	// ErrMaxDepthExceeded is returned when a point would have to be routed below the configured
	// maximum depth.
	ErrMaxDepthExceeded = errors.New("octree maximum depth exceeded")
)

// Point is a location in space and the opaque value associated with it.
type Point struct {
	P     r3.Vector
	Value interface{}
}

// Visitor is invoked with each node during a traversal.
type Visitor func(n *Node)

// Octant returns the index of the child octant that p falls into relative to mid. A coordinate equal
// to mid on an axis is routed to the lower half of that axis.
func Octant(mid, p r3.Vector) int {
	idx := 0
	if p.X > mid.X {
		idx |= octantX
	}
	if p.Y > mid.Y {
		idx |= octantY
	}
	if p.Z > mid.Z {
		idx |= octantZ
	}
	return idx
}

// octantBounds returns the corners of octant idx of the cuboid min..max split at mid.
func octantBounds(idx int, min, mid, max r3.Vector) (r3.Vector, r3.Vector) {
	lo, hi := min, mid
	if idx&octantX != 0 {
		lo.X, hi.X = mid.X, max.X
	}
	if idx&octantY != 0 {
		lo.Y, hi.Y = mid.Y, max.Y
	}
	if idx&octantZ != 0 {
		lo.Z, hi.Z = mid.Z, max.Z
	}
	return lo, hi
}
