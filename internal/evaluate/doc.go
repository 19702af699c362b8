// Package evaluate scores predicted coordinates against withheld ground truth.
//
// Ground truth is loaded fully before any candidate is read. Each candidate
// row contributes one geodesic error, folded into an Accumulator that holds
// per-threshold counts and the list of errors. Summarize turns the final
// accumulator into the report statistics without touching any stream.
package evaluate
