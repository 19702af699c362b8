// Package streamio opens the large append-only inputs placing reads and the
// flat-text destinations it writes.
//
// Inputs are read strictly forward through a decompressor chosen from the
// stream's magic bytes (bzip2, gzip, zstd, lz4 frame, or plain text), so the
// same command accepts compressed and uncompressed files alike. Outputs are
// buffered and, when requested, guarded by an advisory lock so two runs never
// write the same destination.
package streamio
