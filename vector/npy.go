package vector

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// The corpus matrix ships in NumPy .npy format so the same file works for
// both the bot and the data-science tooling that curates the corpus.
// Supported subset: format versions 1.x-3.x, little-endian '<f4'/'<f8',
// C-order, 1-D or 2-D shapes. A 1-D array is read as a single row.

var npyMagic = []byte("\x93NUMPY")

const maxHeaderLen = 1 << 20

// ReadMatrix loads a matrix from a .npy file.
func ReadMatrix(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vector: open matrix file: %w", err)
	}
	defer f.Close()

	m, err := ReadMatrixFrom(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("vector: read %s: %w", path, err)
	}
	return m, nil
}

// ReadMatrixFrom parses a .npy stream.
func ReadMatrixFrom(r io.Reader) (*Matrix, error) {
	var preamble [8]byte
	if _, err := io.ReadFull(r, preamble[:]); err != nil {
		return nil, fmt.Errorf("read preamble: %w", err)
	}
	if !bytes.Equal(preamble[:6], npyMagic) {
		return nil, fmt.Errorf("bad magic %q, not an npy file", preamble[:6])
	}

	var headerLen int
	switch major := preamble[6]; major {
	case 1:
		var n [2]byte
		if _, err := io.ReadFull(r, n[:]); err != nil {
			return nil, fmt.Errorf("read header length: %w", err)
		}
		headerLen = int(binary.LittleEndian.Uint16(n[:]))
	case 2, 3:
		var n [4]byte
		if _, err := io.ReadFull(r, n[:]); err != nil {
			return nil, fmt.Errorf("read header length: %w", err)
		}
		headerLen = int(binary.LittleEndian.Uint32(n[:]))
	default:
		return nil, fmt.Errorf("unsupported npy format version %d.%d", major, preamble[7])
	}
	if headerLen <= 0 || headerLen > maxHeaderLen {
		return nil, fmt.Errorf("implausible header length %d", headerLen)
	}

	header := make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	descr, fortran, shape, err := parseNpyHeader(string(header))
	if err != nil {
		return nil, err
	}
	if fortran {
		return nil, fmt.Errorf("fortran_order arrays are not supported")
	}

	var rows, cols int
	switch len(shape) {
	case 1:
		rows, cols = 1, shape[0]
	case 2:
		rows, cols = shape[0], shape[1]
	default:
		return nil, fmt.Errorf("unsupported shape with %d dimensions", len(shape))
	}

	var itemSize int
	switch descr {
	case "<f4":
		itemSize = 4
	case "<f8":
		itemSize = 8
	default:
		return nil, fmt.Errorf("unsupported dtype %q, want '<f4' or '<f8'", descr)
	}

	count := rows * cols
	raw := make([]byte, count*itemSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("read %d values: %w", count, err)
	}

	data := make([]float32, count)
	if itemSize == 4 {
		for i := range data {
			data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}
	} else {
		for i := range data {
			data[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:])))
		}
	}

	return NewMatrix(rows, cols, data)
}

// parseNpyHeader pulls descr, fortran_order and shape out of the Python
// dict literal that makes up an npy header.
func parseNpyHeader(header string) (descr string, fortran bool, shape []int, err error) {
	descr, err = headerQuoted(header, "descr")
	if err != nil {
		return "", false, nil, err
	}

	switch {
	case strings.Contains(header, "'fortran_order': False"):
		fortran = false
	case strings.Contains(header, "'fortran_order': True"):
		fortran = true
	default:
		return "", false, nil, fmt.Errorf("header missing fortran_order: %q", header)
	}

	idx := strings.Index(header, "'shape':")
	if idx < 0 {
		return "", false, nil, fmt.Errorf("header missing shape: %q", header)
	}
	open := strings.Index(header[idx:], "(")
	close_ := strings.Index(header[idx:], ")")
	if open < 0 || close_ < 0 || close_ < open {
		return "", false, nil, fmt.Errorf("malformed shape in header: %q", header)
	}
	for _, part := range strings.Split(header[idx+open+1:idx+close_], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dim, convErr := strconv.Atoi(part)
		if convErr != nil || dim < 0 {
			return "", false, nil, fmt.Errorf("malformed shape dimension %q", part)
		}
		shape = append(shape, dim)
	}
	if len(shape) == 0 {
		return "", false, nil, fmt.Errorf("empty shape in header: %q", header)
	}
	return descr, fortran, shape, nil
}

func headerQuoted(header, key string) (string, error) {
	idx := strings.Index(header, "'"+key+"':")
	if idx < 0 {
		return "", fmt.Errorf("header missing %s: %q", key, header)
	}
	rest := header[idx+len(key)+3:]
	open := strings.IndexByte(rest, '\'')
	if open < 0 {
		return "", fmt.Errorf("malformed %s in header: %q", key, header)
	}
	end := strings.IndexByte(rest[open+1:], '\'')
	if end < 0 {
		return "", fmt.Errorf("malformed %s in header: %q", key, header)
	}
	return rest[open+1 : open+1+end], nil
}

// WriteMatrix writes m to path as a version 1.0 '<f4' .npy file.
func WriteMatrix(path string, m *Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("vector: create matrix file: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := WriteMatrixTo(w, m); err != nil {
		f.Close()
		return fmt.Errorf("vector: write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("vector: write %s: %w", path, err)
	}
	return f.Close()
}

// WriteMatrixTo serializes m in .npy version 1.0 format.
func WriteMatrixTo(w io.Writer, m *Matrix) error {
	dict := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d, %d), }", m.rows, m.cols)
	// Preamble (magic + version + length field) is 10 bytes; numpy pads the
	// header with spaces so the data section starts on a 64-byte boundary.
	headerLen := len(dict) + 1
	if pad := (10 + headerLen) % 64; pad != 0 {
		headerLen += 64 - pad
	}
	header := make([]byte, headerLen)
	copy(header, dict)
	for i := len(dict); i < headerLen-1; i++ {
		header[i] = ' '
	}
	header[headerLen-1] = '\n'

	if _, err := w.Write(npyMagic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	var n [2]byte
	binary.LittleEndian.PutUint16(n[:], uint16(headerLen))
	if _, err := w.Write(n[:]); err != nil {
		return err
	}
	if _, err := w.Write(header); err != nil {
		return err
	}

	buf := make([]byte, 4*m.cols)
	for i := 0; i < m.rows; i++ {
		row := m.Row(i)
		for j, v := range row {
			binary.LittleEndian.PutUint32(buf[j*4:], math.Float32bits(v))
		}
		if _, err := w.Write(buf[:4*len(row)]); err != nil {
			return err
		}
	}
	return nil
}
