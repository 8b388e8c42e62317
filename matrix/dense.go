// Package matrix: Dense is a concrete, row-major implementation of the
// Matrix interface, storing elements in a flat slice for performance and
// cache friendliness.
package matrix

import (
	"fmt"
	"math"
	"strings"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
// validate carries the finite-value policy chosen at construction.
type Dense struct {
	r, c     int       // number of rows and columns
	data     []float64 // flat backing storage, length == r*c
	validate bool      // reject NaN/±Inf on Set when true
}

// NewDense creates an r×c Dense matrix initialized to zeros under the
// default numeric policy (finite-value validation enabled).
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Stage 3 (Finalize): return new Dense or ErrBadShape.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	return NewDenseWith(rows, cols)
}

// NewDenseWith creates an r×c zero Dense with an explicit numeric policy.
// Options are resolved once at construction; the policy never changes for
// the lifetime of the matrix (Clone preserves it).
// Complexity: O(r*c) time and memory.
func NewDenseWith(rows, cols int, opts ...Option) (*Dense, error) {
	// Validate dimensions.
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	o := gatherOptions(opts...)
	// Allocate flat slice.
	data := make([]float64, rows*cols)

	// Return initialized Dense.
	return &Dense{r: rows, c: cols, data: data, validate: o.validateNaNInf}, nil
}

// NewDenseFromRows builds a Dense from a non-empty slice of equal-length rows.
// Stage 1 (Validate): non-empty, rectangular, finite under the policy.
// Stage 2 (Execute): copy row by row into the flat buffer (input not aliased).
// Errors: ErrBadShape (empty), ErrRaggedRows, ErrNaNInf (policy violation).
// Complexity: O(r*c) time and memory.
func NewDenseFromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadShape
	}
	r, c := len(rows), len(rows[0])
	o := gatherOptions(opts...)

	d := &Dense{r: r, c: c, data: make([]float64, r*c), validate: o.validateNaNInf}
	var i, j int
	for i = 0; i < r; i++ { // deterministic row order
		if len(rows[i]) != c {
			return nil, ErrRaggedRows
		}
		base := i * c
		for j = 0; j < c; j++ {
			v := rows[i][j]
			if o.validateNaNInf && isNonFinite(v) {
				return nil, denseErrorf("NewDenseFromRows", i, j, ErrNaNInf)
			}
			d.data[base+j] = v
		}
	}

	return d, nil
}

// Rows returns the number of rows in the matrix.
// Complexity: O(1).
func (m *Dense) Rows() int {
	return m.r // return stored row count
}

// Cols returns the number of columns in the matrix.
// Complexity: O(1).
func (m *Dense) Cols() int {
	return m.c // return stored column count
}

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// Stage 1 (Validate): check 0 ≤ row < r and 0 ≤ col < c.
// Stage 2 (Execute): compute and return linear index.
// Complexity: O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	// Validate row index.
	if row < 0 || row >= m.r {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}
	// Validate column index.
	if col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	// Compute flat offset.
	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Stage 1 (Validate): bounds check via indexOf.
// Stage 2 (Execute): read from data slice.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	// Return stored value.
	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Stage 1 (Validate): bounds check via indexOf; finite-value policy.
// Stage 2 (Execute): write into data slice.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	if m.validate && isNonFinite(v) {
		return denseErrorf("Set", row, col, ErrNaNInf)
	}
	// Assign value.
	m.data[idx] = v

	return nil
}

// RowView returns the i-th row as a slice sharing the backing storage.
// Mutating the returned slice mutates the matrix; callers that need an
// independent copy should copy() it themselves.
// Complexity: O(1).
func (m *Dense) RowView(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf("RowView", i, 0, ErrOutOfRange)
	}

	return m.data[i*m.c : (i+1)*m.c], nil
}

// Clone returns a deep copy of the Dense matrix (same numeric policy).
// Complexity: O(r*c) time and memory for copy.
func (m *Dense) Clone() Matrix {
	// Allocate new slice for data copy.
	copyData := make([]float64, len(m.data))
	// Copy all elements into new slice.
	copy(copyData, m.data)

	return &Dense{r: m.r, c: m.c, data: copyData, validate: m.validate}
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c) for string construction.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ { // iterate over rows
		b.WriteByte('[')
		for j = 0; j < m.c; j++ { // iterate over columns
			// compute flat index directly for performance
			fmt.Fprintf(&b, "%g", m.data[i*m.c+j])
			if j < m.c-1 {
				b.WriteString(", ") // separate values with comma
			}
		}
		b.WriteString("]\n") // close row
	}

	return b.String()
}

// isNonFinite reports whether v is NaN or ±Inf.
// Complexity: O(1).
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
