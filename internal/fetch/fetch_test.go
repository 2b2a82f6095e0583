package fetch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/franz/soundbot/internal/util"
)

func fakeMP3() []byte {
	data := make([]byte, 512)
	data[0] = 0xFF
	data[1] = 0xFB
	return data
}

func newTestFetcher(t *testing.T) *Fetcher {
	t.Helper()
	return NewWithClient(http.DefaultClient, t.TempDir())
}

func TestDownloadStoresBody(t *testing.T) {
	body := fakeMP3()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(body)
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	path, err := f.Download(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read temp file: %v", err)
	}
	if !bytes.Equal(data, body) {
		t.Errorf("temp file does not match served body")
	}
}

func TestDownloadAcceptsOctetStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(fakeMP3())
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	path, err := f.Download(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	os.Remove(path)
}

func TestDownloadRejectsWrongContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html>not audio</html>"))
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	if _, err := f.Download(context.Background(), srv.URL); !errors.Is(err, util.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestDownloadRejectsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	if _, err := f.Download(context.Background(), srv.URL); err == nil {
		t.Errorf("expected error for 404 response")
	}
}

func TestDownloadRejectsOversizedContentLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("Content-Length", "99999999999")
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	if _, err := f.Download(context.Background(), srv.URL); !errors.Is(err, util.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestDownloadHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := newTestFetcher(t)
	if _, err := f.Download(ctx, srv.URL); err == nil {
		t.Errorf("expected error for cancelled context")
	}
}

func TestCheckContentType(t *testing.T) {
	cases := []struct {
		header string
		ok     bool
	}{
		{"audio/mpeg", true},
		{"audio/mp3; charset=binary", true},
		{"application/octet-stream", true},
		{"", true},
		{"text/plain", false},
		{"video/mp4", false},
	}
	for _, c := range cases {
		err := checkContentType(c.header)
		if c.ok && err != nil {
			t.Errorf("checkContentType(%q): unexpected error %v", c.header, err)
		}
		if !c.ok && !errors.Is(err, util.ErrUnsupported) {
			t.Errorf("checkContentType(%q): expected ErrUnsupported, got %v", c.header, err)
		}
	}
}
