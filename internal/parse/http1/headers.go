package http1

import (
	"bytes"

	"github.com/fakefloordiv/httpres/internal/parse"
	"golang.org/x/net/http/httpguts"
)

const (
	contentLengthKey    = "content-length"
	transferEncodingKey = "transfer-encoding"
)

// MatchMode selects how a requested field name is looked up in the header block.
type MatchMode int

const (
	// MatchField matches only a whole field name: the name must start a field line
	// and be followed by a colon right away. "Length" does not match "Content-Length".
	MatchField MatchMode = iota
	// MatchSubstring matches the name at any position of the header block, as long
	// as a colon follows it. "Length" matches inside "Content-Length".
	MatchSubstring
)

// Headers returns the span of the header fields between the status line and the
// blank line. The span excludes both the CRLF of the status line and the blank line.
// A response without fields produces an empty, but found, span.
func Headers(buf []byte) (parse.Span, error) {
	status, err := StatusLine(buf)
	if err != nil {
		return parse.Span{}, err
	}

	headers, _, err := locateHeaders(buf, status)

	return headers, err
}

// HeaderValue returns the value of the first field with a case-insensitively equal name.
// Leading and trailing whitespaces are not included.
func HeaderValue(buf []byte, name string) (parse.Span, error) {
	return HeaderValueMatch(buf, name, MatchField)
}

func HeaderValueMatch(buf []byte, name string, mode MatchMode) (parse.Span, error) {
	resp, err := Parse(buf)
	if err != nil {
		return parse.Span{}, err
	}

	return resp.HeaderMatch(name, mode)
}

// locateHeaders looks up the blank line starting from the status line terminator, so
// a response without fields (status CRLF immediately followed by another CRLF) is found
// as well.
func locateHeaders(buf []byte, status parse.Span) (headers parse.Span, bodyStart int, err error) {
	pos := bytes.Index(buf[status.End():], blankLine)
	if pos == -1 {
		return parse.Span{}, 0, ErrNoHeaders
	}

	pos += status.End()
	headers.Offset = status.End() + len(crlf)
	if pos > headers.Offset {
		headers.Length = pos - headers.Offset
	}

	return headers, pos + len(blankLine), nil
}

func headerValue(buf []byte, headers parse.Span, name string, mode MatchMode) (parse.Span, error) {
	if !httpguts.ValidHeaderFieldName(name) {
		return parse.Span{}, ErrInvalidFieldName
	}

	block := headers.Bytes(buf)

	var pos int

	switch mode {
	case MatchField:
		pos = findField(block, name)
	case MatchSubstring:
		pos = findSubstring(block, name)
	default:
		panic("BUG: unknown header match mode")
	}

	if pos == -1 {
		return parse.Span{}, ErrNoHeader
	}

	// the last field line ends together with the block, so has no CRLF
	end := len(block)
	if lf := bytes.Index(block[pos:], crlf); lf != -1 {
		end = pos + lf
	}

	for pos < end && isSpace(block[pos]) {
		pos++
	}

	for end > pos && isSpace(block[end-1]) {
		end--
	}

	return parse.Span{Offset: headers.Offset + pos, Length: end - pos}, nil
}

// findField returns the offset right after the colon of the first field line whose
// name equals to the key, or -1.
func findField(block []byte, key string) int {
	for offset := 0; offset < len(block); {
		line := block[offset:]
		if lf := bytes.Index(line, crlf); lf != -1 {
			line = line[:lf]
		}

		if len(line) > len(key) && line[len(key)] == ':' && equalfold(line[:len(key)], key) {
			return offset + len(key) + 1
		}

		offset += len(line) + len(crlf)
	}

	return -1
}

// findSubstring returns the offset right after the colon of the first occurrence of
// the key followed by a colon, or -1. Word boundaries before the key are not checked.
func findSubstring(block []byte, key string) int {
	for i := 0; i+len(key) < len(block); i++ {
		if block[i+len(key)] == ':' && equalfold(block[i:i+len(key)], key) {
			return i + len(key) + 1
		}
	}

	return -1
}

func equalfold(a []byte, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}

	return true
}

// containsFold reports whether sub is within b, ignoring ASCII case
func containsFold(b []byte, sub string) bool {
	for i := 0; i+len(sub) <= len(b); i++ {
		if equalfold(b[i:i+len(sub)], sub) {
			return true
		}
	}

	return false
}

func lower(char byte) byte {
	if 'A' <= char && char <= 'Z' {
		return char | 0x20
	}

	return char
}

func isSpace(char byte) bool {
	return char == ' ' || char == '\t'
}
