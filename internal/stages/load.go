package stages

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrFetchStatus is returned when the stage document URL answers with a
// non-2xx status.
var ErrFetchStatus = errors.New("unexpected HTTP status fetching stage document")

// DefaultFetchTimeout bounds a remote fetch when the caller sets none.
const DefaultFetchTimeout = 10 * time.Second

//go:embed data/rpd_asamalar.json
var defaultDocument []byte

// Default returns the bundled stage document.
func Default() (*Document, error) {
	return Decode(bytes.NewReader(defaultDocument))
}

// LoadFile reads a stage document from disk.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Fetch downloads a stage document. A nil client uses http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, url string) (*Document, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrFetchStatus, resp.Status)
	}
	return Decode(resp.Body)
}

// Open resolves a source string: empty means the bundled document, an
// http(s) URL is fetched with the given timeout, anything else is a path.
func Open(ctx context.Context, source string, timeout time.Duration) (*Document, error) {
	switch {
	case source == "":
		return Default()
	case IsRemote(source):
		if timeout <= 0 {
			timeout = DefaultFetchTimeout
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return Fetch(ctx, nil, source)
	default:
		return LoadFile(source)
	}
}

// IsRemote reports whether source is an http or https URL.
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
