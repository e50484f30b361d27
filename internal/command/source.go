package command

import (
	"bufio"
	"io"
	"strings"
)

// Source yields raw command lines. Next returns io.EOF when exhausted.
type Source interface {
	Next() (string, error)
}

// ReaderSource reads one command per line. Blank lines and lines starting
// with '#' are skipped.
type ReaderSource struct {
	scanner *bufio.Scanner
	line    int
}

// NewReaderSource reads commands from r, typically a commands file.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{scanner: bufio.NewScanner(r)}
}

func (s *ReaderSource) Next() (string, error) {
	for s.scanner.Scan() {
		s.line++
		text := strings.TrimSpace(s.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return text, nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Line is the number of the last line read.
func (s *ReaderSource) Line() int { return s.line }
