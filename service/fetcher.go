package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrOffline is returned by fetchers when network access is disabled
var ErrOffline = errors.New("network fetch disabled")

// Fetcher loads the raw bytes behind an image reference
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// HTTPFetcher downloads http(s) references
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher creates a fetcher with a per-request timeout and a body limit
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}, maxBytes: maxBytes}
}

// Ensure HTTPFetcher implements Fetcher
var _ Fetcher = (*HTTPFetcher)(nil)

// Fetch implements Fetcher
func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", ref, resp.StatusCode)
	}

	body := io.Reader(resp.Body)
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ref, err)
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("image %s exceeds %d bytes", ref, f.maxBytes)
	}
	return data, nil
}

// FileFetcher reads references from a local asset directory. Only relative
// paths that stay inside root are served.
type FileFetcher struct {
	root string
}

// NewFileFetcher creates a file fetcher rooted at root
func NewFileFetcher(root string) *FileFetcher {
	return &FileFetcher{root: root}
}

// Ensure FileFetcher implements Fetcher
var _ Fetcher = (*FileFetcher)(nil)

// Fetch implements Fetcher
func (f *FileFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.root == "" {
		return nil, fmt.Errorf("no asset directory configured for %q", ref)
	}
	if strings.Contains(ref, "://") || !filepath.IsLocal(ref) {
		return nil, fmt.Errorf("reference %q escapes the asset root", ref)
	}
	data, err := os.ReadFile(filepath.Join(f.root, ref))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("asset %q not found", ref)
		}
		return nil, fmt.Errorf("failed to read asset %q: %w", ref, err)
	}
	return data, nil
}

// RoutingFetcher dispatches a reference to the fetcher of its scheme:
// http(s):// to HTTP, drive:// to Drive, anything else to the filesystem.
type RoutingFetcher struct {
	HTTP    Fetcher
	Drive   Fetcher
	Files   Fetcher
	Offline bool
}

// Ensure RoutingFetcher implements Fetcher
var _ Fetcher = (*RoutingFetcher)(nil)

// Fetch implements Fetcher
func (r *RoutingFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case IsDataURI(ref):
		data, _, err := DecodeDataURI(ref)
		return data, err
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		if r.Offline {
			return nil, ErrOffline
		}
		if r.HTTP == nil {
			return nil, fmt.Errorf("no http fetcher configured for %s", ref)
		}
		return r.HTTP.Fetch(ctx, ref)
	case strings.HasPrefix(ref, DriveScheme):
		if r.Offline {
			return nil, ErrOffline
		}
		if r.Drive == nil {
			return nil, fmt.Errorf("no drive fetcher configured for %s", ref)
		}
		return r.Drive.Fetch(ctx, ref)
	default:
		if r.Files == nil {
			return nil, fmt.Errorf("no file fetcher configured for %s", ref)
		}
		return r.Files.Fetch(ctx, ref)
	}
}

// IsDeckReference reports whether ref may appear as a slide image in a
// deck: inline data URIs and network references only, never local paths.
func IsDeckReference(ref string) bool {
	return IsDataURI(ref) || IsRemote(ref)
}

// IsRemote reports whether a reference needs the network
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, DriveScheme)
}

// JoinRef joins a base location (directory, URL or drive folder) and a name
func JoinRef(base, name string) string {
	if base == "" {
		return name
	}
	if IsRemote(base) {
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(name, "/")
	}
	return filepath.Join(base, name)
}
