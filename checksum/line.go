package checksum

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/xaled/okhash/okhash"
)

// maxLineSize bounds a single checksum line. Long K values produce long
// digests, so this is well above bufio's default.
const maxLineSize = 1024 * 1024

// Entry is one parsed checksum line.
type Entry struct {
	Sum      okhash.Sum
	Filename string
}

// ParseLine parses a single checksum line. A line is well formed when it has
// exactly two whitespace-separated fields and the first one is the hex of at
// least one whole O(K)Hash level.
func ParseLine(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Entry{}, fmt.Errorf("%w: want 2 fields, got %d", ErrMalformedLine, len(fields))
	}
	sum, err := okhash.ParseHex(fields[0])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	return Entry{Sum: sum, Filename: fields[1]}, nil
}

// FormatLine renders sum and name as a checksum line. With zero set the line
// is NUL terminated instead of newline terminated.
func FormatLine(sum okhash.Sum, name string, zero bool) string {
	term := "\n"
	if zero {
		term = "\x00"
	}
	return sum.Hex() + "  " + name + term
}

// ReadEntries calls fn for every line of r with its 1-based line number. err
// is non-nil, and wraps ErrMalformedLine, when the line could not be parsed.
// Returning a non-nil error from fn stops the scan and is returned as-is.
func ReadEntries(r io.Reader, fn func(lineNo int, e Entry, err error) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		e, err := ParseLine(scanner.Text())
		if ferr := fn(lineNo, e, err); ferr != nil {
			return ferr
		}
	}
	return scanner.Err()
}
