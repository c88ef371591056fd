package transformer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Transformer maps a single line to its replacement. Returning false
// suppresses the line entirely.
type Transformer func(line string) (string, bool)

// IOFault is returned by Handle when reading from the input or writing to
// the output fails. The loop never continues past a fault.
type IOFault struct {
	Op  string // "read" or "write"
	Err error
}

func (f *IOFault) Error() string {
	return fmt.Sprintf("%s: %s", f.Op, f.Err)
}

func (f *IOFault) Unwrap() error {
	return f.Err
}

// Handle reads in line by line until it is exhausted, passing each line
// (without its trailing newline) through t and writing every produced
// value to out followed by a single newline.
func Handle(in io.Reader, out io.Writer, t Transformer) error {
	r := bufio.NewReader(in)
	for {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return &IOFault{Op: "read", Err: err}
		}
		if len(line) == 0 {
			return nil
		}

		if text, ok := t(strings.TrimSuffix(line, "\n")); ok {
			if err := writeLine(out, text); err != nil {
				return &IOFault{Op: "write", Err: err}
			}
		}

		if err != nil {
			// EOF after an unterminated final line
			return nil
		}
	}
}

func writeLine(out io.Writer, text string) error {
	b := make([]byte, 0, len(text)+1)
	b = append(b, text...)
	b = append(b, '\n')

	n, err := out.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return io.ErrShortWrite
	}
	return nil
}
