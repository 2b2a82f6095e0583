// Package fetch downloads remote audio files into temporary storage so
// they can be ingested like local uploads.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/franz/soundbot/internal/util"
)

const (
	// DefaultTimeout bounds a single download attempt
	DefaultTimeout = 30 * time.Second

	// MaxDownloadSize caps how much we will pull from a remote host
	MaxDownloadSize = 64 << 20 // 64 MiB
)

// acceptedTypes are the content types we treat as MPEG audio. Some hosts
// serve mp3 as application/octet-stream; the store's format sniffing is
// the real gate, this just rejects obvious non-audio early.
var acceptedTypes = map[string]bool{
	"audio/mpeg":               true,
	"audio/mp3":                true,
	"audio/mpeg3":              true,
	"application/octet-stream": true,
}

// Fetcher downloads remote files into a temp directory
type Fetcher struct {
	client  *http.Client
	tempDir string
	retry   *util.RetryConfig
}

// New returns a fetcher writing temp files into tempDir
func New(tempDir string) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: DefaultTimeout},
		tempDir: tempDir,
		retry:   util.DefaultRetryConfig(),
	}
}

// NewWithClient returns a fetcher using the given client, for tests
func NewWithClient(client *http.Client, tempDir string) *Fetcher {
	return &Fetcher{client: client, tempDir: tempDir, retry: &util.RetryConfig{MaxAttempts: 1}}
}

// Download fetches url into a fresh temp file and returns its path.
// The caller owns the file and should remove it after ingesting.
func (f *Fetcher) Download(ctx context.Context, url string) (string, error) {
	var path string
	err := util.Retry(ctx, f.retry, func() error {
		var err error
		path, err = f.downloadOnce(ctx, url)
		return err
	})
	return path, err
}

func (f *Fetcher) downloadOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status %s", url, resp.Status)
	}

	if err := checkContentType(resp.Header.Get("Content-Type")); err != nil {
		return "", fmt.Errorf("%s: %w", url, err)
	}
	if resp.ContentLength > MaxDownloadSize {
		return "", fmt.Errorf("%s: %d bytes exceeds download limit: %w",
			url, resp.ContentLength, util.ErrUnsupported)
	}

	if err := os.MkdirAll(f.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp dir %s: %w", f.tempDir, err)
	}

	path := filepath.Join(f.tempDir, "soundbot-"+uuid.NewString())
	dest, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	written, err := io.Copy(dest, io.LimitReader(resp.Body, MaxDownloadSize+1))
	closeErr := dest.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > MaxDownloadSize {
		err = fmt.Errorf("body exceeds download limit: %w", util.ErrUnsupported)
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}

	util.DebugLog("downloaded %s (%d bytes) to %s", url, written, path)
	return path, nil
}

func checkContentType(header string) error {
	if header == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(header))
	}
	if !acceptedTypes[mediaType] {
		return fmt.Errorf("content type %q is not MPEG audio: %w", mediaType, util.ErrUnsupported)
	}
	return nil
}
