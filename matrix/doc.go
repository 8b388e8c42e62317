// Package matrix offers dense float64 matrix primitives for batch numerics.
//
// The matrix package provides:
//
//   - Dense, a row-major flat-slice matrix with O(1) element access, plus the
//     minimal Matrix interface consumed by every kernel in this module.
//   - Deterministic linear-algebra kernels (Add, Sub, Mul, Transpose, Scale,
//     Hadamard, MatVec) with strict validation and sentinel errors.
//   - Broadcast helpers for column statistics (CenterColumns, RowSums,
//     ColSums) and numeric comparison (AllClose).
//
// Dense is best for small-to-medium activation batches where O(r·c) memory
// and cache-friendly flat loops are the right trade-off.
//
// All kernels use fixed i→j traversal orders, never mutate their inputs and
// return package-level sentinels matched via errors.Is.
//
// See the examples in this package and batchstats for usage patterns.
package matrix
