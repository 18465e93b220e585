// Package trace reads memory reference traces.
//
// A trace has one reference per line: the operation (R or W, in any case)
// followed by the virtual address in decimal or 0x-prefixed hexadecimal.
// Blank lines and text after '#' are ignored.
//
//	# page 0, then page 1 written
//	R 0
//	W 0x1000
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/pagingsim/mem/vm"
)

// ErrMalformedLine is wrapped by the errors of lines that cannot be parsed.
var ErrMalformedLine = errors.New("malformed trace line")

// Access is one memory reference of a trace.
type Access struct {
	Op    vm.AccessOp
	VAddr uint64
}

func (a Access) String() string {
	return fmt.Sprintf("%s %d", a.Op, a.VAddr)
}

// A Reader reads accesses from a trace.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next access. It returns io.EOF after the last one.
func (r *Reader) Next() (Access, error) {
	for r.scanner.Scan() {
		r.line++

		text := r.scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		return r.parse(fields)
	}

	if err := r.scanner.Err(); err != nil {
		return Access{}, fmt.Errorf("reading trace: %w", err)
	}

	return Access{}, io.EOF
}

// Line returns the number of the last line read.
func (r *Reader) Line() int {
	return r.line
}

func (r *Reader) parse(fields []string) (Access, error) {
	if len(fields) != 2 {
		return Access{}, fmt.Errorf("%w: line %d: want 2 fields, got %d",
			ErrMalformedLine, r.line, len(fields))
	}

	op, err := vm.ParseAccessOp(fields[0])
	if err != nil {
		return Access{}, fmt.Errorf("%w: line %d: %w",
			ErrMalformedLine, r.line, err)
	}

	addr, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		return Access{}, fmt.Errorf("%w: line %d: bad address %q",
			ErrMalformedLine, r.line, fields[1])
	}

	return Access{Op: op, VAddr: addr}, nil
}

// ReadAll reads every access of a trace.
func ReadAll(r io.Reader) ([]Access, error) {
	reader := NewReader(r)

	var accesses []Access

	for {
		a, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return accesses, nil
		}

		if err != nil {
			return accesses, err
		}

		accesses = append(accesses, a)
	}
}
