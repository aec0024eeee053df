package dedupe

// Option configures a memoryDeduper.
type Option func(*memoryDeduper)

// WithMaxSize bounds how many keys the deduper holds before evicting
// the oldest. Zero or a negative value keeps every key.
func WithMaxSize(size int) Option {
	return func(d *memoryDeduper) {
		d.maxSize = size
	}
}
