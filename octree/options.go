package octree

import (
	"github.com/edaniels/golog"
	"go.uber.org/zap"
)

// options configures a tree. A single instance is shared by the root and every node created below it.
type options struct {
	logger    golog.Logger
	maxDepth  int
	allocator Allocator
}

func defaultOptions() *options {
	return &options{
		logger:    zap.NewNop().Sugar(),
		allocator: heapAllocator{},
	}
}

// Option configures how a tree is built.
// Cribbed from https://github.com/grpc/grpc-go/blob/aff571cc86e6e7e740130dbbb32a9741558db805/dialoptions.go#L41
type Option interface {
	apply(*options)
}

// funcOption wraps a function that modifies options into an
// implementation of the Option interface.
type funcOption struct {
	f func(*options)
}

func (fdo *funcOption) apply(do *options) {
	fdo.f(do)
}

func newFuncOption(f func(*options)) *funcOption {
	return &funcOption{
		f: f,
	}
}

// WithLogger returns an Option which sets the logger used for debug output on subdivision and when
// the depth guard trips.
func WithLogger(logger golog.Logger) Option {
	return newFuncOption(func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	})
}

// WithMaxDepth returns an Option which refuses to route points into children deeper than depth
// levels below the root. Zero or a negative depth leaves the tree unguarded.
func WithMaxDepth(depth int) Option {
	return newFuncOption(func(o *options) {
		o.maxDepth = depth
	})
}

// WithAllocator returns an Option which sets the Allocator consulted whenever a node or a point
// is stored or released.
func WithAllocator(allocator Allocator) Option {
	return newFuncOption(func(o *options) {
		if allocator != nil {
			o.allocator = allocator
		}
	})
}
