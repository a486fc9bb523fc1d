package http1

import (
	"errors"

	"github.com/fakefloordiv/httpres/internal/parse"
)

// FullBody returns everything after the blank line up to the end of the buffer. It
// doesn't respect content-length, and for chunked bodies includes the chunks framing
// and the trailer as is.
func FullBody(buf []byte) (parse.Span, error) {
	resp, err := Parse(buf)
	if err != nil {
		return parse.Span{}, err
	}

	return resp.FullBody(), nil
}

// Body returns the full body narrowed to the content-length value. When there is no
// content-length, the buffer boundary is considered to frame the body.
func Body(buf []byte) (parse.Span, error) {
	resp, err := Parse(buf)
	if err != nil {
		return parse.Span{}, err
	}

	return resp.Body()
}

// ContentLength returns the parsed content-length value. ErrNoHeader is returned if
// the header is absent.
func ContentLength(buf []byte) (int, error) {
	resp, err := Parse(buf)
	if err != nil {
		return 0, err
	}

	return resp.ContentLength()
}

func (r Response) FullBody() parse.Span {
	return parse.Span{Offset: r.bodyStart, Length: len(r.buf) - r.bodyStart}
}

func (r Response) Body() (parse.Span, error) {
	body := r.FullBody()

	length, err := r.ContentLength()
	switch {
	case errors.Is(err, ErrNoHeader):
		return body, nil
	case err != nil:
		return parse.Span{}, err
	case length > body.Length:
		return parse.Span{}, ErrContentLengthExceeds
	}

	body.Length = length

	return body, nil
}

func (r Response) ContentLength() (int, error) {
	value, err := r.Header(contentLengthKey)
	if err != nil {
		return 0, err
	}

	length, consumed, err := parseDecimal(value.Bytes(r.buf))
	if err != nil || consumed != value.Length {
		return 0, ErrBadContentLength
	}

	return length, nil
}
