// Package join implements the streaming join at the core of the build
// pipelines.
//
// A Joiner makes exactly one forward pass over a sequence of metadata streams.
// For every line it extracts the identifier without splitting the rest of the
// row and tests it against each target index in order. The row is parsed at
// most once, on the first hit, and the parsed fields are shared by every
// target that matches. Nothing read from a data stream outlives its line.
package join
