package octree

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Node is one axis-aligned cuboid of an octree. It stores a point directly only while its subtree holds
// exactly one point; otherwise its points are delegated to the children selected by their octant.
type Node struct {
	boundsMin r3.Vector
	boundsMax r3.Vector
	boundsMid r3.Vector
	depth     int
	count     int
	point     *Point
	children  [NumOctants]*Node
	opts      *options
	released  bool
}

// NewNode creates an empty root node spanning the cuboid with the given opposite corners. The corners
// may be given in any order.
func NewNode(cornerA, cornerB r3.Vector, opts ...Option) (*Node, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(o)
	}
	return newNode(cornerA, cornerB, 0, o)
}

func newNode(cornerA, cornerB r3.Vector, depth int, o *options) (*Node, error) {
	if err := o.allocator.AllocNode(); err != nil {
		return nil, allocationError(err, "creating node at depth %d", depth)
	}
	boundsMin := r3.Vector{
		X: math.Min(cornerA.X, cornerB.X),
		Y: math.Min(cornerA.Y, cornerB.Y),
		Z: math.Min(cornerA.Z, cornerB.Z),
	}
	boundsMax := r3.Vector{
		X: math.Max(cornerA.X, cornerB.X),
		Y: math.Max(cornerA.Y, cornerB.Y),
		Z: math.Max(cornerA.Z, cornerB.Z),
	}
	return &Node{
		boundsMin: boundsMin,
		boundsMax: boundsMax,
		boundsMid: boundsMin.Add(boundsMax).Mul(0.5),
		depth:     depth,
		opts:      o,
	}, nil
}

// allocationError makes sure err reports as ErrAllocation regardless of what the allocator returned.
func allocationError(err error, format string, args ...interface{}) error {
	if errors.Is(err, ErrAllocation) {
		return errors.Wrapf(err, format, args...)
	}
	return errors.Wrapf(multierr.Combine(ErrAllocation, err), format, args...)
}

// BoundsMin returns the component-wise minimum corner of the node.
func (n *Node) BoundsMin() r3.Vector {
	return n.boundsMin
}

// BoundsMax returns the component-wise maximum corner of the node.
func (n *Node) BoundsMax() r3.Vector {
	return n.boundsMax
}

// BoundsMid returns the center of the node, which is the split plane on all three axes.
func (n *Node) BoundsMid() r3.Vector {
	return n.boundsMid
}

// Depth returns how many levels below the root this node sits.
func (n *Node) Depth() int {
	return n.depth
}

// Count returns the number of points stored in the subtree rooted at this node.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	return n.count
}

// IsLeaf reports whether the node holds exactly one point.
func (n *Node) IsLeaf() bool {
	return n != nil && n.count == 1
}

// Point returns the point stored in a leaf. The boolean is false for branches.
func (n *Node) Point() (Point, bool) {
	if n == nil || n.point == nil {
		return Point{}, false
	}
	return *n.point, true
}

// Child returns the child in octant idx, or nil if it was never created.
func (n *Node) Child(idx int) *Node {
	if n == nil || idx < 0 || idx >= NumOctants {
		return nil
	}
	return n.children[idx]
}

// Free releases the node's point, then every child in octant order, then the node itself. Calling it
// on the root releases the whole tree. A nil node or one already freed is left alone.
func (n *Node) Free() {
	if n == nil || n.released {
		return
	}
	if n.point != nil {
		n.point = nil
		n.opts.allocator.ReleasePoint()
	}
	for i, child := range n.children {
		child.Free()
		n.children[i] = nil
	}
	n.count = 0
	n.released = true
	n.opts.allocator.ReleaseNode()
}

// String returns a human readable description of the node.
func (n *Node) String() string {
	kind := "branch"
	if n.IsLeaf() {
		kind = "leaf"
	}
	return fmt.Sprintf("%s at depth %d spanning %v to %v with %d point(s)", kind, n.depth, n.boundsMin, n.boundsMax, n.count)
}
