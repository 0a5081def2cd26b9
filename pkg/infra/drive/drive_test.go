package drive_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"google.golang.org/api/option"

	"github.com/m-mizutani/ferry/pkg/infra/drive"
)

func newTestClient(t *testing.T, srv *httptest.Server, opts ...drive.Option) *drive.Client {
	t.Helper()

	opts = append(opts,
		drive.WithEndpoint(srv.URL+"/uc"),
		drive.WithAPIOptions(option.WithEndpoint(srv.URL+"/")),
	)
	client, err := drive.New(context.Background(), opts...)
	gt.NoError(t, err)
	return client
}

func TestDownloadDirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Query().Get("export")).Equal("download")
		gt.Value(t, r.URL.Query().Get("id")).Equal("FILE1")
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("plain video bytes"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	dest := filepath.Join(t.TempDir(), "out.mp4")

	gt.NoError(t, client.Download(context.Background(), "FILE1", dest))

	content, err := os.ReadFile(dest)
	gt.NoError(t, err)
	gt.Value(t, string(content)).Equal("plain video bytes")
}

func TestDownloadWithCookieConfirm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("confirm") == "tok42" {
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write([]byte("large file bytes"))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "download_warning_13058876", Value: "tok42"})
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("interstitial"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	dest := filepath.Join(t.TempDir(), "out.mp4")

	gt.NoError(t, client.Download(context.Background(), "FILE2", dest))

	content, err := os.ReadFile(dest)
	gt.NoError(t, err)
	gt.Value(t, string(content)).Equal("large file bytes")
}

func TestDownloadWithHTMLConfirm(t *testing.T) {
	page := `<html><body>
<a href="/uc?export=download&confirm=xyz9&id=FILE3">Download anyway</a>
</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("confirm") == "xyz9" {
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write([]byte("confirmed bytes"))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	dest := filepath.Join(t.TempDir(), "out.mp4")

	gt.NoError(t, client.Download(context.Background(), "FILE3", dest))

	content, err := os.ReadFile(dest)
	gt.NoError(t, err)
	gt.Value(t, string(content)).Equal("confirmed bytes")
}

func TestDownloadInterstitialWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>quota exceeded</body></html>"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	dest := filepath.Join(t.TempDir(), "out.mp4")

	err := client.Download(context.Background(), "FILE4", dest)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("confirm token not found")
}

func TestDownloadErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	dest := filepath.Join(t.TempDir(), "out.mp4")

	err := client.Download(context.Background(), "FILE5", dest)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("unexpected status")
}

func TestDownloadReportsProgress(t *testing.T) {
	body := make([]byte, 100*1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(body)))
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	var lastDownloaded, lastTotal int64
	var calls int
	client := newTestClient(t, srv, drive.WithProgress(func(downloaded, total int64) {
		lastDownloaded = downloaded
		lastTotal = total
		calls++
	}))

	dest := filepath.Join(t.TempDir(), "out.mp4")
	gt.NoError(t, client.Download(context.Background(), "FILE6", dest))

	gt.Number(t, calls).Greater(0)
	gt.Number(t, lastDownloaded).Equal(int64(len(body)))
	gt.Number(t, lastTotal).Equal(int64(len(body)))
}

func TestGetFileInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.String(t, r.URL.Path).Contains("/files/FILE7")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"lecture 01.mp4","size":"2048"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	info := client.GetFileInfo(context.Background(), "FILE7")
	gt.Value(t, info.Name).Equal("lecture 01.mp4")
	gt.Number(t, info.Size).Equal(int64(2048))
	gt.Value(t, info.ID).Equal("FILE7")
}

func TestGetFileInfoFallsBackToSyntheticName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	info := client.GetFileInfo(context.Background(), "ABCDEFGHIJK")
	gt.Value(t, info.Name).Equal("video_ABCDEFGH.mp4")
	gt.Value(t, info.ID).Equal("ABCDEFGHIJK")
}

func TestGetFileInfoFallsBackOnEmptyName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"size":"10"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	info := client.GetFileInfo(context.Background(), "SHORTID")
	gt.Value(t, info.Name).Equal("video_SHORTID.mp4")
}
