package standards

// Option applies a configuration option to a Table under construction.
type Option func(*Table)

// AllowPartial skips the completeness check. Lookups of absent entries
// then report no standard and the evaluator excludes the metric.
func AllowPartial() Option {
	return func(t *Table) {
		t.partial = true
	}
}
