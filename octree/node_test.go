package octree_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/tinjuiho/tcnj-coctree/octree"
	"github.com/tinjuiho/tcnj-coctree/testutils"
	"github.com/tinjuiho/tcnj-coctree/testutils/inject"
)

func TestNewNode(t *testing.T) {
	t.Run("bounds are normalized", func(t *testing.T) {
		a := r3.Vector{X: 10, Y: 0, Z: 5}
		b := r3.Vector{X: 0, Y: 10, Z: -5}

		n, err := octree.NewNode(a, b)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, n.BoundsMin(), test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: -5})
		test.That(t, n.BoundsMax(), test.ShouldResemble, r3.Vector{X: 10, Y: 10, Z: 5})
		test.That(t, n.BoundsMid(), test.ShouldResemble, r3.Vector{X: 5, Y: 5, Z: 0})

		swapped, err := octree.NewNode(b, a)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, swapped.BoundsMin(), test.ShouldResemble, n.BoundsMin())
		test.That(t, swapped.BoundsMax(), test.ShouldResemble, n.BoundsMax())
		test.That(t, swapped.BoundsMid(), test.ShouldResemble, n.BoundsMid())
	})

	t.Run("new node is an empty branch", func(t *testing.T) {
		n, err := octree.NewNode(r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: 1})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, n.Count(), test.ShouldEqual, 0)
		test.That(t, n.Depth(), test.ShouldEqual, 0)
		test.That(t, n.IsLeaf(), test.ShouldBeFalse)
		_, ok := n.Point()
		test.That(t, ok, test.ShouldBeFalse)
		for i := 0; i < octree.NumOctants; i++ {
			test.That(t, n.Child(i), test.ShouldBeNil)
		}
		test.That(t, n.Child(-1), test.ShouldBeNil)
		test.That(t, n.Child(octree.NumOctants), test.ShouldBeNil)
	})

	t.Run("allocation failure", func(t *testing.T) {
		alloc := &inject.Allocator{
			AllocNodeFunc: func() error {
				return errors.New("out of nodes")
			},
		}
		n, err := octree.NewNode(r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: 1}, octree.WithAllocator(alloc))
		test.That(t, n, test.ShouldBeNil)
		test.That(t, errors.Is(err, octree.ErrAllocation), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "out of nodes")
	})
}

func TestOctant(t *testing.T) {
	mid := r3.Vector{X: 5, Y: 5, Z: 5}

	test.That(t, octree.Octant(mid, mid), test.ShouldEqual, 0)
	test.That(t, octree.Octant(mid, r3.Vector{X: 1, Y: 1, Z: 1}), test.ShouldEqual, 0)
	test.That(t, octree.Octant(mid, r3.Vector{X: 6, Y: 5, Z: 5}), test.ShouldEqual, 1)
	test.That(t, octree.Octant(mid, r3.Vector{X: 5, Y: 6, Z: 5}), test.ShouldEqual, 2)
	test.That(t, octree.Octant(mid, r3.Vector{X: 6, Y: 6, Z: 5}), test.ShouldEqual, 3)
	test.That(t, octree.Octant(mid, r3.Vector{X: 5, Y: 5, Z: 6}), test.ShouldEqual, 4)
	test.That(t, octree.Octant(mid, r3.Vector{X: 6, Y: 5, Z: 6}), test.ShouldEqual, 5)
	test.That(t, octree.Octant(mid, r3.Vector{X: 5, Y: 6, Z: 6}), test.ShouldEqual, 6)
	test.That(t, octree.Octant(mid, r3.Vector{X: 5.0001, Y: 5.0001, Z: 5.0001}), test.ShouldEqual, 7)
}

func TestFree(t *testing.T) {
	t.Run("releases every node and point", func(t *testing.T) {
		alloc := &testutils.TrackingAllocator{}
		root := newGridTree(t, 4, octree.WithAllocator(alloc))
		test.That(t, root.Count(), test.ShouldEqual, 64)
		test.That(t, alloc.LivePoints(), test.ShouldEqual, 64)
		test.That(t, alloc.LiveNodes(), test.ShouldBeGreaterThan, 64)

		root.Free()
		test.That(t, alloc.LivePoints(), test.ShouldEqual, 0)
		test.That(t, alloc.LiveNodes(), test.ShouldEqual, 0)
		test.That(t, root.Count(), test.ShouldEqual, 0)
		for i := 0; i < octree.NumOctants; i++ {
			test.That(t, root.Child(i), test.ShouldBeNil)
		}

		root.Free()
		test.That(t, alloc.LiveNodes(), test.ShouldEqual, 0)
	})

	t.Run("single leaf", func(t *testing.T) {
		alloc := &testutils.TrackingAllocator{}
		root, err := octree.NewNode(r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: 1}, octree.WithAllocator(alloc))
		test.That(t, err, test.ShouldBeNil)
		_, err = root.Insert(r3.Vector{X: .5, Y: .5, Z: .5}, "only")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, alloc.LivePoints(), test.ShouldEqual, 1)
		test.That(t, alloc.LiveNodes(), test.ShouldEqual, 1)

		root.Free()
		test.That(t, alloc.LivePoints(), test.ShouldEqual, 0)
		test.That(t, alloc.LiveNodes(), test.ShouldEqual, 0)
		_, ok := root.Point()
		test.That(t, ok, test.ShouldBeFalse)
	})

	t.Run("nil node", func(t *testing.T) {
		var n *octree.Node
		n.Free()
		test.That(t, n.Count(), test.ShouldEqual, 0)
	})
}

// newGridTree builds a tree over [0, side]^3 holding one point at the center of every unit cell.
func newGridTree(t *testing.T, side int, opts ...octree.Option) *octree.Node {
	t.Helper()
	s := float64(side)
	root, err := octree.NewNode(r3.Vector{}, r3.Vector{X: s, Y: s, Z: s}, opts...)
	test.That(t, err, test.ShouldBeNil)
	inserted := 0
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			for k := 0; k < side; k++ {
				p := r3.Vector{X: float64(i) + .5, Y: float64(j) + .5, Z: float64(k) + .5}
				count, err := root.Insert(p, inserted)
				test.That(t, err, test.ShouldBeNil)
				inserted++
				test.That(t, count, test.ShouldEqual, inserted)
			}
		}
	}
	return root
}
