package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/tinjuiho/tcnj-coctree/octree"
)

// Bounds returns the component-wise minimum and maximum of the given points. Both are the zero vector
// when there are no points.
func Bounds(points []octree.Point) (r3.Vector, r3.Vector) {
	if len(points) == 0 {
		return r3.Vector{}, r3.Vector{}
	}
	minPt := points[0].P
	maxPt := points[0].P
	for _, pt := range points[1:] {
		minPt = r3.Vector{X: math.Min(minPt.X, pt.P.X), Y: math.Min(minPt.Y, pt.P.Y), Z: math.Min(minPt.Z, pt.P.Z)}
		maxPt = r3.Vector{X: math.Max(maxPt.X, pt.P.X), Y: math.Max(maxPt.Y, pt.P.Y), Z: math.Max(maxPt.Z, pt.P.Z)}
	}
	return minPt, maxPt
}

// Load builds an octree spanning the bounds of the given points and inserts all of them in order.
// The partially built tree is freed if any insertion fails.
func Load(points []octree.Point, opts ...octree.Option) (*octree.Node, error) {
	minPt, maxPt := Bounds(points)
	root, err := octree.NewNode(minPt, maxPt, opts...)
	if err != nil {
		return nil, err
	}
	for i, pt := range points {
		if _, err := root.Insert(pt.P, pt.Value); err != nil {
			root.Free()
			return nil, errors.Wrapf(err, "error inserting point %d at %v", i, pt.P)
		}
	}
	return root, nil
}
