package http1

import "errors"

var (
	ErrNoStatusLine         = errors.New("no CRLF terminating the status line")
	ErrNoHeaders            = errors.New("no blank line terminating the headers")
	ErrNoHeader             = errors.New("header field is not presented")
	ErrInvalidFieldName     = errors.New("invalid header field name")
	ErrBadContentLength     = errors.New("bad content-length value")
	ErrContentLengthExceeds = errors.New("content-length exceeds available body bytes")

	ErrBadChunkLength      = errors.New("bad chunk length")
	ErrBadChunkDelimiter   = errors.New("chunk is not terminated by CRLF")
	ErrChunkOverflow       = errors.New("chunk length exceeds available body bytes")
	ErrUnterminatedChunked = errors.New("chunked body ends before the last chunk")
	ErrShortBuffer         = errors.New("destination buffer is too small for the decoded body")
	ErrBodyTooLarge        = errors.New("decoded body exceeds the arena limit")
)
