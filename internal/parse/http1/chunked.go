package http1

import (
	"bytes"
	"fmt"

	"github.com/fakefloordiv/httpres/internal/parse"
	"github.com/indigo-web/utils/arena"
)

const chunkedToken = "chunked"

// IsChunked reports whether the transfer-encoding header mentions chunked anywhere in
// its value.
func IsChunked(buf []byte) (bool, error) {
	resp, err := Parse(buf)
	if err != nil {
		return false, err
	}

	return resp.IsChunked(), nil
}

// Chunks calls fn for every piece of the decoded body, in order. For chunked bodies
// these are the chunks payloads, otherwise the whole body. Spans are relative to buf.
// Returning false from fn stops the iteration.
func Chunks(buf []byte, fn func(chunk parse.Span) bool) error {
	resp, err := Parse(buf)
	if err != nil {
		return err
	}

	return resp.Chunks(fn)
}

// DecodedSize returns the number of bytes DecodeBody is going to write.
func DecodedSize(buf []byte) (int, error) {
	resp, err := Parse(buf)
	if err != nil {
		return 0, err
	}

	return resp.DecodedSize()
}

// DecodeBody copies the body into dst, dropping the chunked framing if any, and returns
// the number of bytes written. If dst is too small, ErrShortBuffer is returned and dst
// is left untouched.
func DecodeBody(dst, buf []byte) (int, error) {
	resp, err := Parse(buf)
	if err != nil {
		return 0, err
	}

	return resp.Decode(dst)
}

// AppendBody appends the decoded body to dst.
func AppendBody(dst, buf []byte) ([]byte, error) {
	resp, err := Parse(buf)
	if err != nil {
		return dst, err
	}

	return resp.Append(dst)
}

// DecodeInto writes the decoded body into a new segment of the arena.
func DecodeInto(a *arena.Arena[byte], buf []byte) ([]byte, error) {
	resp, err := Parse(buf)
	if err != nil {
		return nil, err
	}

	return resp.DecodeInto(a)
}

func (r Response) IsChunked() bool {
	value, err := r.Header(transferEncodingKey)
	if err != nil {
		return false
	}

	return containsFold(value.Bytes(r.buf), chunkedToken)
}

func (r Response) Chunks(fn func(chunk parse.Span) bool) error {
	body, err := r.Body()
	if err != nil || body.Length == 0 {
		return err
	}

	if !r.IsChunked() {
		fn(body)
		return nil
	}

	walker := chunkedWalker{}
	data := body.Bytes(r.buf)

	for {
		chunk, done, err := walker.next(data)
		if err != nil || done {
			return err
		}

		chunk.Offset += body.Offset
		if !fn(chunk) {
			return nil
		}
	}
}

func (r Response) DecodedSize() (size int, err error) {
	err = r.Chunks(func(chunk parse.Span) bool {
		size += chunk.Length
		return true
	})

	return size, err
}

func (r Response) Decode(dst []byte) (int, error) {
	size, err := r.DecodedSize()
	if err != nil {
		return 0, err
	}

	if size > len(dst) {
		return 0, ErrShortBuffer
	}

	var n int
	err = r.Chunks(func(chunk parse.Span) bool {
		n += copy(dst[n:], chunk.Bytes(r.buf))
		return true
	})

	return n, err
}

func (r Response) Append(dst []byte) ([]byte, error) {
	size, err := r.DecodedSize()
	if err != nil {
		return dst, err
	}

	if cap(dst)-len(dst) < size {
		grown := make([]byte, len(dst), len(dst)+size)
		copy(grown, dst)
		dst = grown
	}

	err = r.Chunks(func(chunk parse.Span) bool {
		dst = append(dst, chunk.Bytes(r.buf)...)
		return true
	})

	return dst, err
}

// DecodeInto appends the decoded body to the arena and returns the finished segment.
// The body is validated before anything is written, but on ErrBodyTooLarge the arena
// keeps the chunks appended so far in its unfinished segment.
func (r Response) DecodeInto(a *arena.Arena[byte]) ([]byte, error) {
	if _, err := r.DecodedSize(); err != nil {
		return nil, err
	}

	ok := true
	err := r.Chunks(func(chunk parse.Span) bool {
		ok = a.Append(chunk.Bytes(r.buf)...)
		return ok
	})
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrBodyTooLarge
	}

	return a.Finish(), nil
}

// chunkedWalker iterates over chunks of a complete chunked body. Positions are
// relative to the body passed to next.
type chunkedWalker struct {
	state  chunkedState
	pos    int
	length int
}

// next returns the next chunk payload. done is reported as soon as the last
// (zero-length) chunk is met; whatever follows it, including the trailer, is ignored.
func (w *chunkedWalker) next(body []byte) (chunk parse.Span, done bool, err error) {
	for {
		switch w.state {
		case eChunkLength:
			if w.pos == len(body) {
				return chunk, false, ErrUnterminatedChunked
			}

			length, consumed, err := parseHex(body[w.pos:])
			if err != nil {
				return chunk, false, err
			}

			w.length = length
			w.pos += consumed
			if w.length == 0 {
				w.state = eLastChunk
				continue
			}

			w.state = eChunkExtension
		case eChunkExtension:
			lf := bytes.Index(body[w.pos:], crlf)
			if lf == -1 {
				return chunk, false, ErrUnterminatedChunked
			}

			// chunk extensions are skipped, but anything else after the length is junk
			if lf > 0 && body[w.pos] != ';' && !isSpace(body[w.pos]) {
				return chunk, false, ErrBadChunkLength
			}

			w.pos += lf + len(crlf)
			w.state = eChunkBody
		case eChunkBody:
			if w.length > len(body)-w.pos {
				return chunk, false, ErrChunkOverflow
			}

			chunk = parse.Span{Offset: w.pos, Length: w.length}
			w.pos += w.length
			w.state = eChunkBodyCRLF

			return chunk, false, nil
		case eChunkBodyCRLF:
			rest := body[w.pos:]
			if len(rest) < len(crlf) {
				return chunk, false, ErrUnterminatedChunked
			}

			if !bytes.HasPrefix(rest, crlf) {
				return chunk, false, ErrBadChunkDelimiter
			}

			w.pos += len(crlf)
			w.state = eChunkLength
		case eLastChunk:
			return chunk, true, nil
		default:
			panic(fmt.Errorf("BUG: unknown state for chunked body: %d", w.state))
		}
	}
}
