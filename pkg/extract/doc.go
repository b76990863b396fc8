// Package extract unwraps container values so the validation engine can
// reach the values inside them.
//
// An Extractor declares a Shape and which values it supports. Synchronous
// shapes hand out their inner values directly: Optional unwraps zero or one
// value, Indexed yields slice and array elements, Keyed yields map entries in
// sorted key order. Asynchronous shapes (Deferred and Stream) cannot be read
// without blocking, so their extractors wrap the container instead and check
// each value as it arrives.
//
// Built-in extractors in precedence order:
//
//	DeferredExtractor  values implementing DeferredValue, e.g. *async.Future
//	StreamExtractor    values implementing StreamValue, e.g. *broadcast.Stream
//	MapExtractor       maps
//	SliceExtractor     slices and arrays except []byte
//	OptionalExtractor  Getter implementations and database/sql null types
//
// Custom extractors passed to NewRegistry are consulted first.
package extract
