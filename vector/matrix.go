package vector

import "fmt"

// Matrix is a dense row-major float32 matrix. The corpus embedding matrix
// is loaded into one of these at startup and never mutated afterwards.
type Matrix struct {
	rows int
	cols int
	data []float32
}

// NewMatrix wraps data as a rows x cols matrix. The slice is not copied.
func NewMatrix(rows, cols int, data []float32) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("vector: invalid matrix shape (%d, %d)", rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("vector: shape (%d, %d) needs %d values, got %d", rows, cols, rows*cols, len(data))
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns (the embedding dimension).
func (m *Matrix) Cols() int { return m.cols }

// Row returns row i without copying.
func (m *Matrix) Row(i int) []float32 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// NormalizeRows L2-normalizes every row in place. Zero rows are left as is.
func (m *Matrix) NormalizeRows() {
	for i := 0; i < m.rows; i++ {
		Normalize(m.Row(i))
	}
}
