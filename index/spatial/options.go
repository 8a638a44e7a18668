package spatial

// Option configures an Index.
type Option func(*options)

type options struct {
	backend     Backend
	minChildren int
	maxChildren int
}

// WithBackend sets the backend. It must be empty and owned by the Index.
// When set, WithNodeCapacity is ignored.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithNodeCapacity sets the R-tree node fan-out of the default backend.
func WithNodeCapacity(minChildren, maxChildren int) Option {
	return func(o *options) {
		o.minChildren = minChildren
		o.maxChildren = maxChildren
	}
}

func applyOptions(opts []Option) options {
	o := options{
		minChildren: DefaultMinChildren,
		maxChildren: DefaultMaxChildren,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = NewRTree(o.minChildren, o.maxChildren)
	}
	return o
}
