// Package resolve turns parsed playlist queries into a concrete ordered
// track list.
//
// Each query is matched against the tag index (intersection of its
// predicates), validated against its expected count, and the per-query
// results are sequenced back into playlist order with group annotations.
// Queries are independent, so the [Engine] evaluates them on parallel
// workers and reassembles results by source position.
//
// Key Implementations:
//   - [Match] : AND-composition of a query's predicates over the index
//   - [Resolve] : count validation producing a [ResolvedEntry] or a typed failure
//   - [Sequence] : flattening with contiguous-group annotation
//   - [Engine.ResolveAll] : parallel resolution of a whole playlist
//   - [Shuffle] : group-preserving permutation of a sequenced playlist
package resolve
