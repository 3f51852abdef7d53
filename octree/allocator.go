package octree

// Allocator accounts for the storage backing nodes and points. Every successful AllocNode or
// AllocPoint is paired with exactly one ReleaseNode or ReleasePoint once the storage is given up,
// which lets callers detect leaks and inject allocation failures.
type Allocator interface {
	// AllocNode reserves storage for a new node.
	AllocNode() error
	// AllocPoint reserves storage for a stored point.
	AllocPoint() error
	// ReleaseNode gives back storage reserved by AllocNode.
	ReleaseNode()
	// ReleasePoint gives back storage reserved by AllocPoint.
	ReleasePoint()
}

// heapAllocator leaves storage to the Go runtime and never fails.
type heapAllocator struct{}

func (heapAllocator) AllocNode() error  { return nil }
func (heapAllocator) AllocPoint() error { return nil }
func (heapAllocator) ReleaseNode()      {}
func (heapAllocator) ReleasePoint()     {}
