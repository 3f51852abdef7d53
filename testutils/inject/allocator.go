// Package inject provides test doubles whose behavior is supplied per test.
package inject

import "github.com/tinjuiho/tcnj-coctree/octree"

// Allocator is an injected octree.Allocator. Unset funcs succeed and do nothing.
type Allocator struct {
	octree.Allocator
	AllocNodeFunc    func() error
	AllocPointFunc   func() error
	ReleaseNodeFunc  func()
	ReleasePointFunc func()
}

// AllocNode calls the injected AllocNode or succeeds.
func (a *Allocator) AllocNode() error {
	if a.AllocNodeFunc == nil {
		if a.Allocator != nil {
			return a.Allocator.AllocNode()
		}
		return nil
	}
	return a.AllocNodeFunc()
}

// AllocPoint calls the injected AllocPoint or succeeds.
func (a *Allocator) AllocPoint() error {
	if a.AllocPointFunc == nil {
		if a.Allocator != nil {
			return a.Allocator.AllocPoint()
		}
		return nil
	}
	return a.AllocPointFunc()
}

// ReleaseNode calls the injected ReleaseNode.
func (a *Allocator) ReleaseNode() {
	if a.ReleaseNodeFunc == nil {
		if a.Allocator != nil {
			a.Allocator.ReleaseNode()
		}
		return
	}
	a.ReleaseNodeFunc()
}

// ReleasePoint calls the injected ReleasePoint.
func (a *Allocator) ReleasePoint() {
	if a.ReleasePointFunc == nil {
		if a.Allocator != nil {
			a.Allocator.ReleasePoint()
		}
		return
	}
	a.ReleasePointFunc()
}
