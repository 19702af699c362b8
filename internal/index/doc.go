// Package index builds the in-memory identifier indices the streaming join
// tests every data record against.
//
// An Index is built once from a small tab-delimited reference stream and is
// read-only afterwards. It answers membership queries and maps each identifier
// to its Payload (hash identifier plus optional label columns). Identifiers in
// canonical unsigned decimal form are additionally tracked in a compressed
// bitmap, which keeps the miss path of the join (the overwhelmingly common
// case) free of string hashing.
package index
