package service

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			_, _ = w.Write([]byte("pixels"))
		case "/big.png":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, 32)

	data, err := f.Fetch(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.png")
	require.ErrorContains(t, err, "status 404")

	_, err = f.Fetch(context.Background(), srv.URL+"/big.png")
	require.ErrorContains(t, err, "exceeds 32 bytes")
}

func TestFileFetcher(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "stock"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stock", "a.jpg"), []byte("jpg"), 0o644))

	f := NewFileFetcher(root)
	data, err := f.Fetch(context.Background(), "stock/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpg", string(data))

	outside := []string{
		filepath.Join(root, "stock", "a.jpg"),
		"file://" + filepath.Join(root, "stock", "a.jpg"),
		"/etc/passwd",
		"../etc/passwd",
		"stock/../../a.jpg",
		"",
	}
	for _, ref := range outside {
		_, err := f.Fetch(context.Background(), ref)
		require.ErrorContains(t, err, "escapes the asset root", ref)
	}

	_, err = f.Fetch(context.Background(), "stock/none.jpg")
	require.ErrorContains(t, err, "not found")

	_, err = NewFileFetcher("").Fetch(context.Background(), "stock/a.jpg")
	require.ErrorContains(t, err, "no asset directory")
}

func TestRoutingFetcher(t *testing.T) {
	t.Parallel()

	web := newMapFetcher(map[string][]byte{"https://cdn.test/a.png": []byte("web")})
	drive := newMapFetcher(map[string][]byte{"drive://f1": []byte("drive")})
	files := newMapFetcher(map[string][]byte{"static/b.png": []byte("file")})
	r := &RoutingFetcher{HTTP: web, Drive: drive, Files: files}

	tests := []struct {
		ref  string
		want string
	}{
		{"https://cdn.test/a.png", "web"},
		{"drive://f1", "drive"},
		{"static/b.png", "file"},
		{"data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("inline")), "inline"},
	}
	for _, tc := range tests {
		data, err := r.Fetch(context.Background(), tc.ref)
		require.NoError(t, err, tc.ref)
		assert.Equal(t, tc.want, string(data), tc.ref)
	}

	offline := &RoutingFetcher{HTTP: web, Drive: drive, Files: files, Offline: true}
	_, err := offline.Fetch(context.Background(), "https://cdn.test/a.png")
	require.ErrorIs(t, err, ErrOffline)
	_, err = offline.Fetch(context.Background(), "drive://f1")
	require.ErrorIs(t, err, ErrOffline)
	data, err := offline.Fetch(context.Background(), "static/b.png")
	require.NoError(t, err)
	assert.Equal(t, "file", string(data))

	_, err = (&RoutingFetcher{}).Fetch(context.Background(), "https://cdn.test/a.png")
	require.ErrorContains(t, err, "no http fetcher")
}

func TestJoinRef(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "stock/a.jpg", JoinRef("", "stock/a.jpg"))
	assert.Equal(t, filepath.Join("static", "stock", "a.jpg"), JoinRef("static", "stock/a.jpg"))
	assert.Equal(t, "https://cdn.test/bg/stock/a.jpg", JoinRef("https://cdn.test/bg/", "/stock/a.jpg"))
	assert.Equal(t, "drive://folder/F1/themes/a.jpg", JoinRef("drive://folder/F1", "themes/a.jpg"))
	assert.True(t, IsRemote("drive://x"))
	assert.False(t, IsRemote("/tmp/x"))
}

func TestIsDeckReference(t *testing.T) {
	t.Parallel()

	for _, ref := range []string{"https://cdn.test/a.png", "http://cdn.test/a.png", "drive://id", "data:image/png;base64,AAAA"} {
		assert.True(t, IsDeckReference(ref), ref)
	}
	for _, ref := range []string{"/etc/passwd", "../x.png", "file:///etc/passwd", "static/a.png", ""} {
		assert.False(t, IsDeckReference(ref), ref)
	}
}

func TestDriveFetcher(t *testing.T) {
	t.Parallel()

	d := &fakeDrive{
		folders: map[string][]DriveFile{"F1": {{ID: "id-1", Name: "Premium_1.jpg"}, {ID: "id-2", Name: "cyber_1.jpg"}}},
		files:   map[string][]byte{"id-1": []byte("one"), "id-2": []byte("two")},
	}
	f := NewDriveFetcher(d)

	data, err := f.Fetch(context.Background(), "drive://id-2")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	data, err = f.Fetch(context.Background(), "drive://folder/F1/stock/premium_1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	_, err = f.Fetch(context.Background(), "drive://folder/F1/stock/none.jpg")
	require.ErrorContains(t, err, "not found in drive folder")

	_, err = f.Fetch(context.Background(), "drive://folder/F1")
	require.ErrorContains(t, err, "malformed")

	_, err = f.Fetch(context.Background(), "drive://")
	require.Error(t, err)
}

func TestImageCache(t *testing.T) {
	t.Parallel()

	c := NewImageCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, c.EnsureDir())

	_, ok := c.Read("https://x/a.png")
	assert.False(t, ok)
	require.NoError(t, c.Save("https://x/a.png", []byte("a")))
	data, ok := c.Read("https://x/a.png")
	require.True(t, ok)
	assert.Equal(t, "a", string(data))
	assert.NotEqual(t, c.Path("https://x/a.png"), c.Path("https://x/b.png"))

	var disabled *ImageCache
	require.NoError(t, disabled.Save("k", []byte("v")))
	_, ok = disabled.Read("k")
	assert.False(t, ok)
}
