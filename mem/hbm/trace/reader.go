// Package trace reads memory traces.
//
// Each line of a trace is one access:
//
//	<addr> <R|W> [core]
//
// The address is written in C notation, usually hexadecimal with a 0x
// prefix. The optional core field is decimal and defaults to 0. Blank lines
// and lines starting with # are skipped.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/hbmsim/mem/hbm/signal"
)

// Reader reads requests from a trace.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	nextID  uint64
}

// NewReader creates a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Line returns the number of the line last read.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next request. It returns false when the trace ends.
func (r *Reader) Next() (signal.Request, bool, error) {
	for r.scanner.Scan() {
		r.line++

		text := strings.TrimSpace(r.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		req, err := r.parse(text)
		if err != nil {
			return signal.Request{}, false,
				fmt.Errorf("trace line %d: %w", r.line, err)
		}

		return req, true, nil
	}

	if err := r.scanner.Err(); err != nil {
		return signal.Request{}, false, fmt.Errorf("reading trace: %w", err)
	}

	return signal.Request{}, false, nil
}

func (r *Reader) parse(text string) (signal.Request, error) {
	tokens := strings.Fields(text)
	if len(tokens) < 2 || len(tokens) > 3 {
		return signal.Request{}, fmt.Errorf("malformed access %q", text)
	}

	addr, err := strconv.ParseUint(tokens[0], 0, 64)
	if err != nil {
		return signal.Request{}, fmt.Errorf("bad address %q: %w", tokens[0], err)
	}

	kind, err := parseKind(tokens[1])
	if err != nil {
		return signal.Request{}, err
	}

	coreID := 0
	if len(tokens) == 3 {
		coreID, err = strconv.Atoi(tokens[2])
		if err != nil || coreID < 0 {
			return signal.Request{}, fmt.Errorf("bad core %q", tokens[2])
		}
	}

	req := signal.Request{
		ID:     r.nextID,
		Addr:   addr,
		Kind:   kind,
		CoreID: coreID,
	}
	r.nextID++

	return req, nil
}

func parseKind(s string) (signal.RequestKind, error) {
	switch strings.ToUpper(s) {
	case "R", "READ":
		return signal.RequestKindRead, nil
	case "W", "WRITE":
		return signal.RequestKindWrite, nil
	default:
		return 0, fmt.Errorf("unknown access type %q", s)
	}
}
