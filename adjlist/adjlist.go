// SPDX-License-Identifier: MIT

// Package adjlist reads and writes graphs as text.
//
// Two formats are supported:
//
//   - Adjacency list (Read/Write): line i describes node i as
//     "count idx1 idx2 ... idxcount". Every listed neighbor becomes an
//     undirected unit-weight edge (mirrored into both rows). Trailing blank
//     lines are ignored.
//   - Dense text (ReadDense/WriteDense): one matrix row per line, values
//     separated by whitespace and/or commas.
//
// Malformed input yields a *LineError that matches ErrMalformed and
// fault.ErrInvalidArgument under errors.Is.
package adjlist

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/matrix"
)

// ErrMalformed reports a syntactically or semantically invalid line.
var ErrMalformed = errors.New("adjlist: malformed input")

// LineError locates a malformed line (1-based).
type LineError struct {
	Line int
	Err  error
}

// Error implements the error interface.
func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

// Unwrap exposes the underlying cause.
func (e *LineError) Unwrap() error { return e.Err }

func malformed(line int, format string, args ...interface{}) error {
	return &LineError{
		Line: line,
		Err:  fault.Mark(ErrMalformed, fault.ErrInvalidArgument, format, args...),
	}
}

// readLines returns the lines of r with trailing blank lines removed.
func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "adjlist: read")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	return lines, nil
}

// Read parses an adjacency list into an N×N unweighted symmetric adjacency
// matrix, where N is the number of non-trailing-blank lines.
//
// Errors: fault.ErrEmptyInput for no lines; *LineError for bad counts,
// non-integer tokens, out-of-range indices or blank lines inside the body.
func Read(r io.Reader) (*matrix.Dense, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	n := len(lines)
	if n == 0 {
		return nil, fault.Emptyf("adjlist: no nodes")
	}
	g, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, errors.Wrap(err, "adjlist: allocate")
	}

	var (
		i, idx, count int
		fields        []string
	)
	for i = 0; i < n; i++ {
		fields = strings.Fields(lines[i])
		if len(fields) == 0 {
			return nil, malformed(i+1, "empty line for node %d", i)
		}
		if count, err = strconv.Atoi(fields[0]); err != nil || count < 0 {
			return nil, malformed(i+1, "bad neighbor count %q", fields[0])
		}
		if len(fields)-1 != count {
			return nil, malformed(i+1, "count %d but %d neighbors listed", count, len(fields)-1)
		}
		for _, f := range fields[1:] {
			if idx, err = strconv.Atoi(f); err != nil {
				return nil, malformed(i+1, "bad neighbor index %q", f)
			}
			if idx < 0 || idx >= n {
				return nil, malformed(i+1, "neighbor %d outside [0,%d)", idx, n)
			}
			_ = g.Set(i, idx, 1) // in range by the check above
			_ = g.Set(idx, i, 1)
		}
	}

	return g, nil
}

// Write emits the adjacency list of g: for each row, the count and the
// ascending indices of its non-zero columns. Weights are not preserved.
//
// Errors: fault.ErrInvalidArgument for a nil or non-square g; write errors.
func Write(w io.Writer, g matrix.Matrix) error {
	if err := matrix.ValidateSquareNonNil(g); err != nil {
		return fault.Mark(err, fault.ErrInvalidArgument, "adjlist: write")
	}
	d, err := matrix.AsDense(g)
	if err != nil {
		return fault.Mark(err, fault.ErrInvalidArgument, "adjlist: write")
	}
	bw := bufio.NewWriter(w)
	var (
		row  []float64
		nbrs []string
	)
	for i := 0; i < d.Rows(); i++ {
		row, _ = d.Row(i)
		nbrs = nbrs[:0]
		for j, v := range row {
			if v != 0 {
				nbrs = append(nbrs, strconv.Itoa(j))
			}
		}
		if len(nbrs) == 0 {
			_, err = fmt.Fprintln(bw, 0)
		} else {
			_, err = fmt.Fprintf(bw, "%d %s\n", len(nbrs), strings.Join(nbrs, " "))
		}
		if err != nil {
			return errors.Wrap(err, "adjlist: write")
		}
	}

	return errors.Wrap(bw.Flush(), "adjlist: flush")
}

// ReadDense parses one matrix row per line; values are separated by
// whitespace and/or commas. All rows must have the same length.
//
// Errors: fault.ErrEmptyInput for no rows; *LineError for bad numbers,
// non-finite values or ragged rows.
func ReadDense(r io.Reader) (*matrix.Dense, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fault.Emptyf("adjlist: no rows")
	}

	rows := make([][]float64, len(lines))
	var v float64
	for i, line := range lines {
		fields := strings.FieldsFunc(line, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t' || c == '\r'
		})
		if len(fields) == 0 {
			return nil, malformed(i+1, "empty row")
		}
		if i > 0 && len(fields) != len(rows[0]) {
			return nil, malformed(i+1, "row has %d values, want %d", len(fields), len(rows[0]))
		}
		rows[i] = make([]float64, len(fields))
		for j, f := range fields {
			if v, err = strconv.ParseFloat(f, 64); err != nil {
				return nil, malformed(i+1, "bad value %q", f)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, malformed(i+1, "non-finite value %q", f)
			}
			rows[i][j] = v
		}
	}

	m, err := matrix.NewDenseFrom(rows)
	if err != nil {
		return nil, fault.Mark(err, fault.ErrInvalidArgument, "adjlist: dense")
	}

	return m, nil
}

// WriteDense emits one space-separated row per line using the shortest
// representation that round-trips each float64.
func WriteDense(w io.Writer, m matrix.Matrix) error {
	d, err := matrix.AsDense(m)
	if err != nil {
		return fault.Mark(err, fault.ErrInvalidArgument, "adjlist: write dense")
	}
	bw := bufio.NewWriter(w)
	var sb strings.Builder
	for i := 0; i < d.Rows(); i++ {
		row, _ := d.Row(i)
		sb.Reset()
		for j, v := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		sb.WriteByte('\n')
		if _, err = bw.WriteString(sb.String()); err != nil {
			return errors.Wrap(err, "adjlist: write dense")
		}
	}

	return errors.Wrap(bw.Flush(), "adjlist: flush")
}

// ReadFile opens path and parses it with Read, or ReadDense when dense is true.
func ReadFile(path string, dense bool) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "adjlist: open %s", path)
	}
	defer f.Close()

	if dense {
		return ReadDense(f)
	}

	return Read(f)
}

// WriteFile creates path and writes g with Write, or WriteDense when dense is true.
func WriteFile(path string, g matrix.Matrix, dense bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "adjlist: create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "adjlist: close %s", path)
		}
	}()

	if dense {
		return WriteDense(f, g)
	}

	return Write(f, g)
}
