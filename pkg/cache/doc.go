// Package cache provides a bounded, thread-safe LRU memo.
//
// It backs the compile-once caches of the validation engine: compiled regular
// expressions, CEL programs and resolved validator lookups are kept per key
// and evicted least recently used first.
//
//	patterns := cache.NewLRU[string, *regexp.Regexp](128)
//
//	re, err := patterns.GetOrCreate(expr, func() (*regexp.Regexp, error) {
//		return regexp.Compile(expr)
//	})
//
// GetOrCreate never caches a failed creation.
package cache
