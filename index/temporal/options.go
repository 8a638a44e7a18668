package temporal

// Option configures an Index.
type Option func(*options)

type options struct {
	backend Backend
	degree  int
}

// WithBackend sets the backend. It must be empty and owned by the Index.
// When set, WithDegree is ignored.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithDegree sets the degree of the default B-tree backend.
func WithDegree(degree int) Option {
	return func(o *options) {
		o.degree = degree
	}
}

func applyOptions(opts []Option) options {
	o := options{
		degree: DefaultDegree,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = NewBTree(o.degree)
	}
	return o
}
