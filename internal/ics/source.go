// Package ics reads busy intervals from iCalendar data. It backs the
// offline mode of the slots command, where availability is computed from an
// exported .ics file or feed URL instead of the live calendar API.
package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source identifies where the iCalendar payload comes from: a local file
// path or an HTTP(S) feed URL.
type Source struct {
	Path string
	URL  string
}

var httpClient = &http.Client{
	Timeout: 15 * time.Second,
}

// Read returns the raw iCalendar payload for the source.
func (s Source) Read(ctx context.Context) ([]byte, error) {
	switch {
	case s.Path != "":
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read ics file: %w", err)
		}
		return data, nil
	case s.URL != "":
		return fetch(ctx, s.URL)
	}
	return nil, errors.New("ics source needs a path or a url")
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ics feed %s: %w", redactURL(url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ics feed %s returned %s", redactURL(url), resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// redactURL hides the path and query of a feed URL. Private ICS URLs embed
// access tokens, so only the host may appear in errors and logs.
func redactURL(u string) string {
	rest, ok := strings.CutPrefix(u, "https://")
	scheme := "https://"
	if !ok {
		rest, ok = strings.CutPrefix(u, "http://")
		scheme = "http://"
		if !ok {
			return "ics://...(redacted)"
		}
	}
	host, _, _ := strings.Cut(rest, "/")
	return scheme + host + "/...(redacted)"
}
