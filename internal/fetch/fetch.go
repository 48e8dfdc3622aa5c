// Package fetch acquires transcription sources: local files, standard input
// ("-"), or http(s) URLs, with size limits and decoding suited to the
// transcriptions' mixed encodings.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Size limits to prevent memory overload; the largest supported
// transcription is under 4MB.
const (
	MaxFileSizeBytes = 50 * 1024 * 1024  // 50MB limit for files
	MaxHTTPSizeBytes = 100 * 1024 * 1024 // 100MB limit for HTTP content
)

// HTTPRequestTimeout bounds a whole transcription download.
const HTTPRequestTimeout = 30 * time.Second

var (
	httpDialTimeout           = HTTPRequestTimeout / 6
	httpTLSTimeout            = HTTPRequestTimeout / 6
	httpResponseHeaderTimeout = HTTPRequestTimeout / 2
)

// limitedReadCloser wraps an io.ReadCloser to enforce size limits.
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// httpClient is shared across fetches, with timeouts to prevent indefinite
// hangs. Safe for concurrent use.
var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		Dial: (&net.Dialer{
			Timeout: httpDialTimeout,
		}).Dial,
		TLSHandshakeTimeout:   httpTLSTimeout,
		ResponseHeaderTimeout: httpResponseHeaderTimeout,
		DisableKeepAlives:     true,
	},
}

// IsURL reports whether the source is an http(s) URL rather than a file path.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// GetContent retrieves raw bytes from a source:
//   - "-" reads from standard input
//   - http(s) URLs are fetched over the network
//   - everything else is treated as a local file path
//
// ctx allows cancellation of network fetches.
func GetContent(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case source == "-":
		return &limitedReadCloser{
			ReadCloser: os.Stdin,
			N:          MaxFileSizeBytes,
			source:     "stdin",
		}, nil
	case IsURL(source):
		return fetchURL(ctx, source)
	default:
		return fetchFile(source)
	}
}

// ReadText reads the whole source and decodes it as UTF-8, falling back to
// latin-1 when the bytes are not valid UTF-8. No other encodings are tried.
func ReadText(ctx context.Context, source string) (string, error) {
	r, err := GetContent(ctx, source)
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", source, err)
	}

	return Decode(data), nil
}

// Decode interprets raw bytes as UTF-8 when valid, otherwise as latin-1.
// Latin-1 decoding cannot fail: every byte maps to a code point.
func Decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	slog.Info("UTF-8 decode failed, falling back to latin-1")
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// unreachable for latin-1, but keep the raw bytes just in case
		return string(data)
	}
	return string(decoded)
}

// SplitLines splits decoded text into lines on any of the common line-ending
// conventions, mirroring how the transcriptions were captured.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// fetchURL retrieves content from an HTTP or HTTPS URL.
func fetchURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "stoa/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP request failed for URL %q: status %d %s", url, resp.StatusCode, resp.Status)
	}

	// check Content-Length if present, before reading the body
	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil && size > MaxHTTPSizeBytes {
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)", size, MaxHTTPSizeBytes)
		}
	}

	return &limitedReadCloser{
		ReadCloser: resp.Body,
		N:          MaxHTTPSizeBytes,
		source:     url,
	}, nil
}

// fetchFile opens a local file, checking existence and size up front for
// better error messages.
func fetchFile(path string) (io.ReadCloser, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}

	if fileInfo.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			path, fileInfo.Size(), MaxFileSizeBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	return file, nil
}
