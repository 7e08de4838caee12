// Package fetcher downloads carrier enrichment feeds over HTTP and FTP.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/renewal-cli/internal/config"
)

// Fetcher defines the interface for downloading a remote feed.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// ForURL returns a fetcher appropriate for the URL scheme.
func ForURL(rawURL string, cfg config.FetchConfig) (Fetcher, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: parse url")
	}

	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	switch u.Scheme {
	case "http", "https":
		return NewHTTPFetcher(HTTPOptions{
			UserAgent:      cfg.UserAgent,
			Timeout:        timeout,
			MaxRetries:     cfg.MaxRetries,
			RequestsPerSec: cfg.RequestsPerSec,
		}), nil
	case "ftp":
		return NewFTPFetcher(FTPOptions{Timeout: timeout}), nil
	default:
		return nil, eris.Errorf("fetcher: unsupported scheme %q", u.Scheme)
	}
}
