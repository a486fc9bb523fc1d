package http1

import (
	"testing"

	"github.com/fakefloordiv/httpres/internal/parse"
	"github.com/indigo-web/utils/arena"
	"github.com/stretchr/testify/require"
)

func chunkedResponse(body string) []byte {
	return []byte("HTTP/1.1 200 OK\r\n" +
		"Server: nginx/1.10.3 (Ubuntu)\r\n" +
		"Transfer-Encoding: chunked\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" + body)
}

func decode(t *testing.T, buf []byte) (string, error) {
	size, sizeErr := DecodedSize(buf)
	dst := make([]byte, 128)
	n, err := DecodeBody(dst, buf)
	require.Equal(t, sizeErr, err)
	if err != nil {
		require.Zero(t, n)
		return "", err
	}

	require.Equal(t, size, n)

	return string(dst[:n]), nil
}

func TestDecodeBody(t *testing.T) {
	t.Run("wikipedia", func(t *testing.T) {
		buf := []byte("HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n")
		body, err := decode(t, buf)
		require.NoError(t, err)
		require.Equal(t, "Wikipedia", body)
	})

	t.Run("hex lengths", func(t *testing.T) {
		buf := chunkedResponse("1A\r\n<hello><hello><hello></hel\r\n13\r\nlo></hello></hello>\r\n0\r\n\r\n")
		body, err := decode(t, buf)
		require.NoError(t, err)
		require.Equal(t, "<hello><hello><hello></hello></hello></hello>", body)
		require.Len(t, body, 45)
	})

	t.Run("lowercase hex", func(t *testing.T) {
		buf := chunkedResponse("a\r\n0123456789\r\n0\r\n\r\n")
		body, err := decode(t, buf)
		require.NoError(t, err)
		require.Equal(t, "0123456789", body)
	})

	t.Run("chunk extensions", func(t *testing.T) {
		buf := chunkedResponse("4;name=value\r\nWiki\r\n5 ; ext\r\npedia\r\n0;last\r\n\r\n")
		body, err := decode(t, buf)
		require.NoError(t, err)
		require.Equal(t, "Wikipedia", body)
	})

	t.Run("trailer is ignored", func(t *testing.T) {
		buf := chunkedResponse("4\r\nWiki\r\n0\r\nExpires: never\r\nX-Checksum: 1234\r\n\r\n")
		body, err := decode(t, buf)
		require.NoError(t, err)
		require.Equal(t, "Wiki", body)
	})

	t.Run("data after the last chunk is ignored", func(t *testing.T) {
		buf := chunkedResponse("4\r\nWiki\r\n0\r\n\r\nHTTP/1.1 200 OK\r\n\r\n")
		body, err := decode(t, buf)
		require.NoError(t, err)
		require.Equal(t, "Wiki", body)
	})

	t.Run("CRLF inside a chunk", func(t *testing.T) {
		buf := chunkedResponse("6\r\nab\r\ncd\r\n0\r\n\r\n")
		body, err := decode(t, buf)
		require.NoError(t, err)
		require.Equal(t, "ab\r\ncd", body)
	})

	t.Run("empty chunked body", func(t *testing.T) {
		body, err := decode(t, chunkedResponse(""))
		require.NoError(t, err)
		require.Empty(t, body)
	})

	t.Run("only the last chunk", func(t *testing.T) {
		body, err := decode(t, chunkedResponse("0\r\n\r\n"))
		require.NoError(t, err)
		require.Empty(t, body)
	})

	t.Run("token case", func(t *testing.T) {
		buf := []byte("HTTP/1.1 200 OK\r\ntransfer-encoding: gzip, CHUNKED\r\n\r\n4\r\nWiki\r\n0\r\n\r\n")
		chunked, err := IsChunked(buf)
		require.NoError(t, err)
		require.True(t, chunked)

		body, err := decode(t, buf)
		require.NoError(t, err)
		require.Equal(t, "Wiki", body)
	})

	t.Run("not chunked", func(t *testing.T) {
		buf := []byte("HTTP/1.1 200 OK\r\nTransfer-Encoding: identity\r\n\r\n4\r\nWiki\r\n0\r\n\r\n")
		chunked, err := IsChunked(buf)
		require.NoError(t, err)
		require.False(t, chunked)

		body, err := decode(t, buf)
		require.NoError(t, err)
		require.Equal(t, "4\r\nWiki\r\n0\r\n\r\n", body)
	})

	t.Run("plain body", func(t *testing.T) {
		buf := []byte(simpleResponse)
		chunked, err := IsChunked(buf)
		require.NoError(t, err)
		require.False(t, chunked)

		body, err := decode(t, buf)
		require.NoError(t, err)
		require.Equal(t, "hello", body)
	})

	t.Run("plain body respects content-length", func(t *testing.T) {
		buf := []byte("HTTP/1.1 200 OK\r\nContent-Length: 4\r\n\r\nhello")
		body, err := decode(t, buf)
		require.NoError(t, err)
		require.Equal(t, "hell", body)
	})

	t.Run("empty plain body", func(t *testing.T) {
		body, err := decode(t, []byte("HTTP/1.1 204 No Content\r\n\r\n"))
		require.NoError(t, err)
		require.Empty(t, body)
	})

	t.Run("content-length exceeds", func(t *testing.T) {
		_, err := decode(t, []byte("HTTP/1.1 200 OK\r\nContent-Length: 100\r\n\r\nhello"))
		require.ErrorIs(t, err, ErrContentLengthExceeds)
	})
}

func TestDecodeBodyMalformed(t *testing.T) {
	tcs := []struct {
		Name string
		Body string
		Err  error
	}{
		{"non-hex length", "G\r\nWiki\r\n0\r\n\r\n", ErrBadChunkLength},
		{"junk after length", "1G\r\nWiki\r\n0\r\n\r\n", ErrBadChunkLength},
		{"length overflow", "FFFFFFFFFFFFFFFFFFFF\r\nWiki\r\n0\r\n\r\n", ErrBadChunkLength},
		{"chunk exceeds body", "FF\r\nshort\r\n0\r\n\r\n", ErrChunkOverflow},
		{"no CRLF after chunk", "4\r\nWikiX\r\n0\r\n\r\n", ErrBadChunkDelimiter},
		{"no last chunk", "4\r\nWiki\r\n", ErrUnterminatedChunked},
		{"ends after chunk data", "4\r\nWiki", ErrUnterminatedChunked},
		{"ends in the length line", "4", ErrUnterminatedChunked},
	}

	for _, tc := range tcs {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := decode(t, chunkedResponse(tc.Body))
			require.ErrorIs(t, err, tc.Err)
		})
	}
}

func TestDecodeBodyShortBuffer(t *testing.T) {
	buf := []byte("HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n")

	t.Run("too small", func(t *testing.T) {
		dst := []byte("........")
		n, err := DecodeBody(dst, buf)
		require.ErrorIs(t, err, ErrShortBuffer)
		require.Zero(t, n)
		require.Equal(t, "........", string(dst))
	})

	t.Run("exact", func(t *testing.T) {
		dst := make([]byte, 9)
		n, err := DecodeBody(dst, buf)
		require.NoError(t, err)
		require.Equal(t, 9, n)
		require.Equal(t, "Wikipedia", string(dst))
	})
}

func TestAppendBody(t *testing.T) {
	buf := []byte("HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n")

	t.Run("to nil", func(t *testing.T) {
		body, err := AppendBody(nil, buf)
		require.NoError(t, err)
		require.Equal(t, "Wikipedia", string(body))
	})

	t.Run("to prefix", func(t *testing.T) {
		body, err := AppendBody([]byte("about: "), buf)
		require.NoError(t, err)
		require.Equal(t, "about: Wikipedia", string(body))
	})

	t.Run("malformed", func(t *testing.T) {
		prefix := []byte("prefix")
		body, err := AppendBody(prefix, chunkedResponse("4\r\nWiki"))
		require.ErrorIs(t, err, ErrUnterminatedChunked)
		require.Equal(t, "prefix", string(body))
	})
}

func TestDecodeInto(t *testing.T) {
	buf := []byte("HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n")

	t.Run("fits", func(t *testing.T) {
		a := arena.NewArena[byte](4, 64)
		body, err := DecodeInto(a, buf)
		require.NoError(t, err)
		require.Equal(t, "Wikipedia", string(body))

		other, err := DecodeInto(a, []byte(simpleResponse))
		require.NoError(t, err)
		require.Equal(t, "hello", string(other))
	})

	t.Run("too large", func(t *testing.T) {
		a := arena.NewArena[byte](2, 4)
		_, err := DecodeInto(a, buf)
		require.ErrorIs(t, err, ErrBodyTooLarge)
	})

	t.Run("malformed", func(t *testing.T) {
		a := arena.NewArena[byte](4, 64)
		_, err := DecodeInto(a, chunkedResponse("FF\r\nshort\r\n0\r\n\r\n"))
		require.ErrorIs(t, err, ErrChunkOverflow)
	})
}

func TestChunks(t *testing.T) {
	buf := []byte("HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n")

	t.Run("all", func(t *testing.T) {
		var chunks []string
		err := Chunks(buf, func(chunk parse.Span) bool {
			chunks = append(chunks, chunk.String(buf))
			return true
		})
		require.NoError(t, err)
		require.Equal(t, []string{"Wiki", "pedia"}, chunks)
	})

	t.Run("stop", func(t *testing.T) {
		var chunks []string
		err := Chunks(buf, func(chunk parse.Span) bool {
			chunks = append(chunks, chunk.String(buf))
			return false
		})
		require.NoError(t, err)
		require.Equal(t, []string{"Wiki"}, chunks)
	})

	t.Run("plain body is a single chunk", func(t *testing.T) {
		buf := []byte(simpleResponse)
		var chunks []parse.Span
		err := Chunks(buf, func(chunk parse.Span) bool {
			chunks = append(chunks, chunk)
			return true
		})
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		require.Equal(t, "hello", chunks[0].String(buf))
	})
}
