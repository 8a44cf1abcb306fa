package vm

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineReader supplies input lines to String read. ok is false at end of
// input.
type LineReader interface {
	ReadLine() (line string, ok bool, err error)
}

// NewLineReader reads lines from r. Line terminators (\n or \r\n) are
// stripped; a final line without a terminator is still returned.
func NewLineReader(r io.Reader) LineReader {
	return &bufioLineReader{r: bufio.NewReader(r)}
}

type bufioLineReader struct {
	r *bufio.Reader
}

func (l *bufioLineReader) ReadLine() (string, bool, error) {
	line, err := l.r.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			return "", false, nil
		}
		err = nil
	}
	if err != nil {
		return "", false, err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true, nil
}
