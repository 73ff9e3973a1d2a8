package vector

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildNpy assembles an npy byte stream by hand so the reader is tested
// against the format, not against WriteMatrixTo.
func buildNpy(t *testing.T, version byte, dict string, payload []byte) []byte {
	t.Helper()
	preambleLen := 10
	if version >= 2 {
		preambleLen = 12
	}
	header := dict
	for (preambleLen+len(header)+1)%16 != 0 {
		header += " "
	}
	header += "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.WriteByte(version)
	buf.WriteByte(0)
	if version == 1 {
		var n [2]byte
		binary.LittleEndian.PutUint16(n[:], uint16(len(header)))
		buf.Write(n[:])
	} else {
		var n [4]byte
		binary.LittleEndian.PutUint32(n[:], uint32(len(header)))
		buf.Write(n[:])
	}
	buf.WriteString(header)
	buf.Write(payload)
	return buf.Bytes()
}

func f4Payload(values ...float32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func f8Payload(values ...float64) []byte {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

func TestReadMatrixFrom(t *testing.T) {
	t.Run("v1 float32 2-D", func(t *testing.T) {
		raw := buildNpy(t, 1, "{'descr': '<f4', 'fortran_order': False, 'shape': (2, 3), }",
			f4Payload(1, 2, 3, 4, 5, 6))

		m, err := ReadMatrixFrom(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, 2, m.Rows())
		assert.Equal(t, 3, m.Cols())
		assert.Equal(t, []float32{1, 2, 3}, m.Row(0))
		assert.Equal(t, []float32{4, 5, 6}, m.Row(1))
	})

	t.Run("v2 header length field is 4 bytes", func(t *testing.T) {
		raw := buildNpy(t, 2, "{'descr': '<f4', 'fortran_order': False, 'shape': (1, 2), }",
			f4Payload(7, 8))

		m, err := ReadMatrixFrom(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, []float32{7, 8}, m.Row(0))
	})

	t.Run("float64 converts to float32", func(t *testing.T) {
		raw := buildNpy(t, 1, "{'descr': '<f8', 'fortran_order': False, 'shape': (1, 3), }",
			f8Payload(0.5, -1.25, 2))

		m, err := ReadMatrixFrom(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5, -1.25, 2}, m.Row(0))
	})

	t.Run("1-D shape becomes single row", func(t *testing.T) {
		raw := buildNpy(t, 1, "{'descr': '<f4', 'fortran_order': False, 'shape': (4,), }",
			f4Payload(1, 2, 3, 4))

		m, err := ReadMatrixFrom(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, 1, m.Rows())
		assert.Equal(t, 4, m.Cols())
	})

	t.Run("bad magic", func(t *testing.T) {
		raw := buildNpy(t, 1, "{'descr': '<f4', 'fortran_order': False, 'shape': (1, 1), }",
			f4Payload(1))
		raw[0] = 'X'

		_, err := ReadMatrixFrom(bytes.NewReader(raw))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "magic")
	})

	t.Run("fortran order rejected", func(t *testing.T) {
		raw := buildNpy(t, 1, "{'descr': '<f4', 'fortran_order': True, 'shape': (1, 1), }",
			f4Payload(1))

		_, err := ReadMatrixFrom(bytes.NewReader(raw))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fortran_order")
	})

	t.Run("unsupported dtype rejected", func(t *testing.T) {
		raw := buildNpy(t, 1, "{'descr': '<i8', 'fortran_order': False, 'shape': (1, 1), }",
			f8Payload(1))

		_, err := ReadMatrixFrom(bytes.NewReader(raw))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dtype")
	})

	t.Run("truncated payload", func(t *testing.T) {
		raw := buildNpy(t, 1, "{'descr': '<f4', 'fortran_order': False, 'shape': (2, 2), }",
			f4Payload(1, 2, 3))

		_, err := ReadMatrixFrom(bytes.NewReader(raw))
		require.Error(t, err)
	})
}

func TestWriteMatrixRoundTrip(t *testing.T) {
	data := []float32{0.1, 0.2, 0.3, -0.4, 0.5, -0.6}
	m, err := NewMatrix(2, 3, data)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "corpus.npy")
	require.NoError(t, WriteMatrix(path, m))

	got, err := ReadMatrix(path)
	require.NoError(t, err)
	assert.Equal(t, m.Rows(), got.Rows())
	assert.Equal(t, m.Cols(), got.Cols())
	for i := 0; i < m.Rows(); i++ {
		assert.Equal(t, m.Row(i), got.Row(i))
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// numpy expects the data section to start on a 64-byte boundary.
	headerLen := int(binary.LittleEndian.Uint16(raw[8:10]))
	assert.Equal(t, 0, (10+headerLen)%64)
	assert.Equal(t, byte('\n'), raw[10+headerLen-1])
}

func TestNewMatrixShapeValidation(t *testing.T) {
	_, err := NewMatrix(2, 3, make([]float32, 5))
	require.Error(t, err)

	_, err = NewMatrix(-1, 3, nil)
	require.Error(t, err)
}
