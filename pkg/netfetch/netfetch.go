// Package netfetch downloads remote artifacts (trust keys, repository
// descriptors) over HTTP(S).
package netfetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"
)

// Timeouts configures the HTTP transport. Zero values fall back to the
// transport defaults.
type Timeouts struct {
	DialSeconds           int
	TLSHandshakeSeconds   int
	ResponseHeaderSeconds int
	IdleSeconds           int
}

// Client fetches files by URL.
type Client struct {
	client *http.Client
}

// NewClient creates a new download client.
func NewClient(timeouts Timeouts) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: time.Duration(timeouts.DialSeconds) * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   time.Duration(timeouts.TLSHandshakeSeconds) * time.Second,
		ResponseHeaderTimeout: time.Duration(timeouts.ResponseHeaderSeconds) * time.Second,
		IdleConnTimeout:       time.Duration(timeouts.IdleSeconds) * time.Second,
	}

	client := &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}

	return &Client{client: client}
}

// Fetch downloads the content at urlStr into memory.
func (c *Client) Fetch(ctx context.Context, urlStr string) ([]byte, error) {
	resp, err := c.get(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", urlStr, err)
	}

	return data, nil
}

// FetchFile downloads the content at urlStr into destDir, named after the
// last element of the URL path, and returns the path of the written file.
func (c *Client) FetchFile(ctx context.Context, urlStr, destDir string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("invalid URL %s: %w", urlStr, err)
	}

	fileName := path.Base(parsed.Path)
	if fileName == "." || fileName == "/" || fileName == "" {
		return "", fmt.Errorf("cannot derive a file name from URL %s", urlStr)
	}
	destPath := filepath.Join(destDir, fileName)

	resp, err := c.get(ctx, urlStr)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", destPath, err)
	}

	return destPath, nil
}

func (c *Client) get(ctx context.Context, urlStr string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", urlStr, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlStr, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s returned status %d", urlStr, resp.StatusCode)
	}

	return resp, nil
}
