package imaging

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestFetch_FileScaledToFit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	writePNG(t, path, 200, 100)

	svc := NewService(2, 8)
	img, err := svc.Fetch(context.Background(), path, Size{Width: 50, Height: 50})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 25 {
		t.Errorf("Expected 50x25, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestFetch_FileURIAndCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	writePNG(t, path, 10, 10)

	svc := NewService(1, 8)
	size := Size{Width: 32, Height: 32}
	if _, err := svc.Fetch(context.Background(), "file://"+path, size); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// A second request for the same locator and size must come from memory
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	img, err := svc.Fetch(context.Background(), "file://"+path, size)
	if err != nil {
		t.Fatalf("Expected cached result, got %v", err)
	}
	if img.Bounds().Dx() != 10 {
		t.Errorf("Small images should not be upscaled, got width %d", img.Bounds().Dx())
	}
}

func TestFetch_HTTP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remote.png")
	writePNG(t, path, 20, 20)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	svc := NewService(2, 8)
	svc.SetHTTPClient(server.Client())

	for i := 0; i < 3; i++ {
		if _, err := svc.Fetch(context.Background(), server.URL+"/logo.png", Size{Width: 16, Height: 16}); err != nil {
			t.Fatalf("Fetch #%d failed: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("Expected 1 server hit, got %d", got)
	}

	if _, err := svc.Fetch(context.Background(), server.URL+"/missing.png", Size{}); err == nil {
		t.Error("Expected error for 404 response, got nil")
	}
}

func TestFetch_Errors(t *testing.T) {
	svc := NewService(1, 0)

	if _, err := svc.Fetch(context.Background(), "  ", Size{}); !errors.Is(err, ErrEmptyLocator) {
		t.Errorf("Expected ErrEmptyLocator, got %v", err)
	}
	if _, err := svc.Fetch(context.Background(), "phasset:1234", Size{}); !errors.Is(err, ErrUnsupportedLocator) {
		t.Errorf("Expected ErrUnsupportedLocator, got %v", err)
	}
	if _, err := svc.Fetch(context.Background(), filepath.Join(t.TempDir(), "none.png"), Size{}); err == nil {
		t.Error("Expected error for missing file, got nil")
	}

	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Fetch(context.Background(), bad, Size{}); err == nil {
		t.Error("Expected decode error, got nil")
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	svc := NewService(1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "logo.png")
	writePNG(t, path, 4, 4)

	// Either the shared fetch wins the race or the cancelled caller returns
	// ctx.Err(); it must never hang or return a nil image without error.
	img, err := svc.Fetch(ctx, path, Size{})
	if err == nil && img == nil {
		t.Error("Expected an image or an error")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestFetch_AbandonedFetchFreesSlot(t *testing.T) {
	started := make(chan struct{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-r.Context().Done()
	}))
	defer server.Close()

	svc := NewService(1, 0)
	svc.SetHTTPClient(server.Client())

	ctx, cancel := context.WithCancel(context.Background())
	stalled := make(chan error, 1)
	go func() {
		_, err := svc.Fetch(ctx, server.URL+"/hang.png", Size{Width: 8, Height: 8})
		stalled <- err
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("Stalled request never reached the server")
	}
	cancel()
	if err := <-stalled; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled for the abandoned fetch, got %v", err)
	}

	// The only parallel slot must be free again for an unrelated image
	path := filepath.Join(t.TempDir(), "local.png")
	writePNG(t, path, 4, 4)
	healthy, stop := context.WithTimeout(context.Background(), 2*time.Second)
	defer stop()
	if _, err := svc.Fetch(healthy, "file://"+path, Size{Width: 8, Height: 8}); err != nil {
		t.Errorf("Expected local fetch to succeed after the stalled one was abandoned, got %v", err)
	}
}

func TestNewService_ClientHasTimeout(t *testing.T) {
	svc := NewService(1, 0)
	if svc.client.Timeout != DefaultFetchTimeout {
		t.Errorf("Expected client timeout %v, got %v", DefaultFetchTimeout, svc.client.Timeout)
	}
}

func TestCacheEviction(t *testing.T) {
	svc := NewService(1, 2)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))

	svc.store("a", img)
	svc.store("b", img)
	svc.store("c", img)

	if _, ok := svc.cached("a"); ok {
		t.Error("Expected oldest entry to be evicted")
	}
	for _, key := range []string{"b", "c"} {
		if _, ok := svc.cached(key); !ok {
			t.Errorf("Expected %s to stay cached", key)
		}
	}
}

func TestSetLimits(t *testing.T) {
	svc := NewService(1, 3)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	for _, key := range []string{"a", "b", "c"} {
		svc.store(key, img)
	}

	svc.SetLimits(2, 1)

	if _, ok := svc.cached("c"); !ok {
		t.Error("Expected newest entry to survive shrinking the cache")
	}
	for _, key := range []string{"a", "b"} {
		if _, ok := svc.cached(key); ok {
			t.Errorf("Expected %s to be evicted after shrinking the cache", key)
		}
	}

	// Two slots: both acquisitions succeed without blocking
	sem := svc.limiter()
	if !sem.TryAcquire(1) || !sem.TryAcquire(1) {
		t.Error("Expected two parallel slots after SetLimits(2, ...)")
	}

	svc.SetLimits(0, 0)
	svc.store("d", img)
	if _, ok := svc.cached("d"); ok {
		t.Error("Expected no caching with zero cache entries")
	}
}

func TestScaleToFit(t *testing.T) {
	tests := []struct {
		srcW, srcH int
		size       Size
		w, h       int
	}{
		{100, 100, Size{Width: 50, Height: 50}, 50, 50},
		{100, 50, Size{Width: 50, Height: 50}, 50, 25},
		{50, 100, Size{Width: 50, Height: 50}, 25, 50},
		{10, 10, Size{Width: 50, Height: 50}, 10, 10},
		{100, 100, Size{}, 100, 100},
	}

	for _, test := range tests {
		src := image.NewRGBA(image.Rect(0, 0, test.srcW, test.srcH))
		b := scaleToFit(src, test.size).Bounds()
		if b.Dx() != test.w || b.Dy() != test.h {
			t.Errorf("scaleToFit(%dx%d, %+v) = %dx%d, expected %dx%d",
				test.srcW, test.srcH, test.size, b.Dx(), b.Dy(), test.w, test.h)
		}
	}
}
