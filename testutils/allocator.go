// Package testutils provides helpers for testing octrees.
package testutils

import (
	"github.com/pkg/errors"

	"github.com/tinjuiho/tcnj-coctree/octree"
)

// TrackingAllocator is an octree.Allocator that counts live nodes and points. When FailAfter is
// positive, every allocation after the first FailAfter succeeds fails with octree.ErrAllocation.
type TrackingAllocator struct {
	FailAfter int

	allocs     int
	liveNodes  int
	livePoints int
}

func (a *TrackingAllocator) alloc(kind string) error {
	if a.FailAfter > 0 && a.allocs >= a.FailAfter {
		return errors.Wrapf(octree.ErrAllocation, "injected failure allocating %s", kind)
	}
	a.allocs++
	return nil
}

// AllocNode records a node allocation.
func (a *TrackingAllocator) AllocNode() error {
	if err := a.alloc("node"); err != nil {
		return err
	}
	a.liveNodes++
	return nil
}

// AllocPoint records a point allocation.
func (a *TrackingAllocator) AllocPoint() error {
	if err := a.alloc("point"); err != nil {
		return err
	}
	a.livePoints++
	return nil
}

// ReleaseNode records a node release.
func (a *TrackingAllocator) ReleaseNode() {
	a.liveNodes--
}

// ReleasePoint records a point release.
func (a *TrackingAllocator) ReleasePoint() {
	a.livePoints--
}

// LiveNodes returns the number of nodes allocated and not yet released.
func (a *TrackingAllocator) LiveNodes() int {
	return a.liveNodes
}

// LivePoints returns the number of points allocated and not yet released.
func (a *TrackingAllocator) LivePoints() int {
	return a.livePoints
}

// Allocs returns the number of successful allocations so far.
func (a *TrackingAllocator) Allocs() int {
	return a.allocs
}
