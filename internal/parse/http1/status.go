package http1

import (
	"bytes"

	"github.com/fakefloordiv/httpres/internal/parse"
)

var (
	crlf      = []byte("\r\n")
	blankLine = []byte("\r\n\r\n")
)

// StatusLine returns the span of the status line, e.g. "HTTP/1.1 200 OK", excluding
// its CRLF. The status line always starts at the beginning of the buffer.
func StatusLine(buf []byte) (parse.Span, error) {
	pos := bytes.Index(buf, crlf)
	if pos == -1 {
		return parse.Span{}, ErrNoStatusLine
	}

	return parse.Span{Length: pos}, nil
}
