package octree

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Insert stores p and its value in the subtree rooted at n and returns the resulting number of points
// in the subtree. If the node already holds a single point, it is subdivided: that point moves down
// into its octant child and the new point follows into its own. On error the tree holds exactly the
// points it held before the call, although empty children created along the way are kept.
// Inserting into a nil node does nothing.
func (n *Node) Insert(p r3.Vector, value interface{}) (int, error) {
	if n == nil {
		return 0, nil
	}

	switch n.count {
	case 0:
		if err := n.opts.allocator.AllocPoint(); err != nil {
			return n.count, allocationError(err, "storing point %v", p)
		}
		n.point = &Point{P: p, Value: value}

	case 1:
		if err := n.checkDepth(); err != nil {
			return n.count, err
		}
		existing := n.point
		if err := n.route(existing.P, existing.Value); err != nil {
			return n.count, errors.Wrap(err, "error relocating point during subdivision")
		}
		if err := n.route(p, value); err != nil {
			n.undoRelocation(Octant(n.boundsMid, existing.P))
			return n.count, err
		}
		n.point = nil
		n.opts.allocator.ReleasePoint()
		n.opts.logger.Debugw("subdivided octree node", "depth", n.depth, "mid", n.boundsMid)

	default:
		if err := n.checkDepth(); err != nil {
			return n.count, err
		}
		if err := n.route(p, value); err != nil {
			return n.count, err
		}
	}

	n.count++
	return n.count, nil
}

// route inserts p into the child of n owning its octant, creating that child first if needed.
func (n *Node) route(p r3.Vector, value interface{}) error {
	idx := Octant(n.boundsMid, p)
	child := n.children[idx]
	if child == nil {
		lo, hi := octantBounds(idx, n.boundsMin, n.boundsMid, n.boundsMax)
		var err error
		child, err = newNode(lo, hi, n.depth+1, n.opts)
		if err != nil {
			return err
		}
		n.children[idx] = child
	}
	_, err := child.Insert(p, value)
	return err
}

// undoRelocation takes back the point moved into child idx by a subdivision that could not complete.
// Before the subdivision every child of n was empty, so that child now holds just the relocated point.
func (n *Node) undoRelocation(idx int) {
	child := n.children[idx]
	if child == nil || child.point == nil {
		return
	}
	child.point = nil
	child.count = 0
	n.opts.allocator.ReleasePoint()
}

func (n *Node) checkDepth() error {
	if n.opts.maxDepth <= 0 || n.depth < n.opts.maxDepth {
		return nil
	}
	n.opts.logger.Debugw("refusing to subdivide octree node", "depth", n.depth, "max_depth", n.opts.maxDepth)
	return errors.Wrapf(ErrMaxDepthExceeded, "node at depth %d cannot route into a child", n.depth)
}
