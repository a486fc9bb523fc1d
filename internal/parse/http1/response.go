package http1

import (
	"errors"

	"github.com/fakefloordiv/httpres/internal/parse"
)

// Response holds the boundaries of a response located once, so the rest of the
// lookups don't re-scan the status line and the headers. It never copies the buffer,
// so the buffer must not be modified while the Response is in use. A Response is
// immutable and safe for concurrent use.
type Response struct {
	buf       []byte
	status    parse.Span
	headers   parse.Span
	bodyStart int
}

// Parse locates the status line and the header block of the response in buf.
func Parse(buf []byte) (Response, error) {
	status, err := StatusLine(buf)
	if err != nil {
		return Response{}, err
	}

	headers, bodyStart, err := locateHeaders(buf, status)
	if err != nil {
		return Response{}, err
	}

	return Response{
		buf:       buf,
		status:    status,
		headers:   headers,
		bodyStart: bodyStart,
	}, nil
}

func (r Response) StatusLine() parse.Span {
	return r.status
}

func (r Response) Headers() parse.Span {
	return r.headers
}

func (r Response) Header(name string) (parse.Span, error) {
	return r.HeaderMatch(name, MatchField)
}

func (r Response) HeaderMatch(name string, mode MatchMode) (parse.Span, error) {
	return headerValue(r.buf, r.headers, name, mode)
}

// Report summarizes the response framing. The body is the one returned by Body.
func (r Response) Report() (report parse.Report, err error) {
	report.Status = r.status
	report.Headers = r.headers

	if report.Body, err = r.Body(); err != nil {
		return report, err
	}

	report.ContentLength, err = r.ContentLength()
	switch {
	case errors.Is(err, ErrNoHeader):
		report.ContentLength = -1
	case err != nil:
		return report, err
	}

	report.IsChunked = r.IsChunked()

	return report, nil
}
