// Package records parses the delimited rows consumed by placing into typed
// values.
//
// Every input row kind (reference, metadata, ground truth, candidate,
// hash-to-identifier mapping) is parsed once at the boundary. Short or
// malformed rows surface as *RowError values wrapping one of the sentinel
// errors, so callers can decide between aborting and skipping without
// indexing into unchecked slices.
package records
