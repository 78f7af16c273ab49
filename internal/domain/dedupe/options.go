package dedupe

// Option applies a configuration option to the in-memory deduper.
type Option func(*memory)

// WithMaxSize sets the maximum number of ids kept. Zero or negative
// disables eviction.
func WithMaxSize(maxSize int) Option {
	return func(d *memory) {
		d.maxSize = maxSize
	}
}
