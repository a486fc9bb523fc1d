package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fakefloordiv/httpres/internal/parse/http1"
	"github.com/indigo-web/utils/arena"
	"go.uber.org/zap"
)

const (
	initialBodySpace = 4 * 1024
	defaultMaxBody   = 64 * 1024
)

type headerNames []string

func (h *headerNames) String() string {
	return strings.Join(*h, ",")
}

func (h *headerNames) Set(name string) error {
	*h = append(*h, name)
	return nil
}

func main() {
	var headers headerNames

	fileArg := flag.String("file", "", "Path to a file containing a raw HTTP response. Reads stdin if empty.")
	matchArg := flag.String("match", "field", "Header name matching: field or substring.")
	maxBodyArg := flag.Int("max-body", defaultMaxBody, "Maximal size of the decoded body in bytes.")
	debugArg := flag.Bool("debug", false, "Enable development logging.")
	flag.Var(&headers, "header", "Header field to print. May be repeated.")
	flag.Parse()

	logger, err := newLogger(*debugArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err = run(logger.Named("respdump"), *fileArg, *matchArg, *maxBodyArg, headers); err != nil {
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func run(logger *zap.Logger, file, match string, maxBody int, headers []string) error {
	mode, err := parseMatchMode(match)
	if err != nil {
		logger.Error("bad -match value", zap.String("match", match), zap.Error(err))
		return err
	}

	buf, err := readInput(file)
	if err != nil {
		logger.Error("failed to read the response", zap.String("file", file), zap.Error(err))
		return err
	}

	resp, err := http1.Parse(buf)
	if err != nil {
		logger.Error("failed to parse the response", zap.Int("size", len(buf)), zap.Error(err))
		return err
	}

	report, err := resp.Report()
	if err != nil {
		logger.Error("failed to locate the body", zap.Error(err))
		return err
	}

	logger.Debug("parsed response",
		zap.Int("headers_offset", report.Headers.Offset),
		zap.Int("headers_length", report.Headers.Length),
		zap.Int("body_offset", report.Body.Offset),
		zap.Int("body_length", report.Body.Length),
		zap.Int("content_length", report.ContentLength),
		zap.Bool("chunked", report.IsChunked),
	)

	fmt.Println(report.Status.String(buf))

	for _, name := range headers {
		value, err := resp.HeaderMatch(name, mode)
		if err != nil {
			logger.Warn("header is not found", zap.String("header", name), zap.Error(err))
			continue
		}

		fmt.Printf("%s: %s\n", name, value.String(buf))
	}

	initialSpace := initialBodySpace
	if maxBody < initialSpace {
		initialSpace = maxBody
	}

	body, err := resp.DecodeInto(arena.NewArena[byte](initialSpace, maxBody))
	if err != nil {
		logger.Error("failed to decode the body", zap.Int("max_body", maxBody), zap.Error(err))
		return err
	}

	fmt.Println()
	_, err = os.Stdout.Write(body)

	return err
}

func parseMatchMode(match string) (http1.MatchMode, error) {
	switch match {
	case "field":
		return http1.MatchField, nil
	case "substring":
		return http1.MatchSubstring, nil
	default:
		return 0, fmt.Errorf("unknown match mode: %q", match)
	}
}

func readInput(file string) ([]byte, error) {
	if len(file) == 0 {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(file)
}
