package parse

import "github.com/indigo-web/utils/uf"

// Span references Length bytes of a caller-owned buffer, starting at Offset.
// It never owns the bytes, so it is only meaningful together with the buffer
// it was produced from.
type Span struct {
	Offset int
	Length int
}

func (s Span) End() int {
	return s.Offset + s.Length
}

// Bytes returns the referenced bytes. The result aliases buf and must not be modified.
func (s Span) Bytes(buf []byte) []byte {
	return buf[s.Offset:s.End()]
}

// String returns the referenced bytes as a string without copying. The string is
// valid only as long as buf is not modified.
func (s Span) String(buf []byte) string {
	return uf.B2S(s.Bytes(buf))
}

type Report struct {
	Status  Span
	Headers Span
	Body    Span
	// ContentLength is -1 when the response carries no content-length header
	ContentLength int
	IsChunked     bool
}
