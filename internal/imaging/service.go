package imaging

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Defaults for NewService
const (
	DefaultMaxParallel  = 4
	DefaultCacheEntries = 128

	// DefaultFetchTimeout bounds a single http(s) image request
	DefaultFetchTimeout = 15 * time.Second
)

var (
	// ErrEmptyLocator is returned when a token has no image
	ErrEmptyLocator = errors.New("empty image locator")

	// ErrUnsupportedLocator is returned for schemes the service cannot read
	ErrUnsupportedLocator = errors.New("unsupported image locator")
)

// Service fetches, decodes and scales images
type Service struct {
	client *http.Client
	group  singleflight.Group

	semMutex sync.Mutex
	sem      *semaphore.Weighted

	flightMutex sync.Mutex
	flights     map[string]*flight

	cacheMutex   sync.Mutex
	cache        map[string]image.Image
	cacheOrder   []string
	cacheEntries int
}

// NewService creates a new image service
func NewService(maxParallel, cacheEntries int) *Service {
	if maxParallel < 1 {
		maxParallel = DefaultMaxParallel
	}
	if cacheEntries < 0 {
		cacheEntries = 0
	}
	return &Service{
		client:       &http.Client{Timeout: DefaultFetchTimeout},
		sem:          semaphore.NewWeighted(int64(maxParallel)),
		flights:      make(map[string]*flight),
		cache:        make(map[string]image.Image),
		cacheEntries: cacheEntries,
	}
}

// SetLimits changes the parallel fetch limit and the cache size. Fetches
// already running keep the slot they hold.
func (s *Service) SetLimits(maxParallel, cacheEntries int) {
	if maxParallel < 1 {
		maxParallel = DefaultMaxParallel
	}
	if cacheEntries < 0 {
		cacheEntries = 0
	}

	s.semMutex.Lock()
	s.sem = semaphore.NewWeighted(int64(maxParallel))
	s.semMutex.Unlock()

	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	s.cacheEntries = cacheEntries
	s.evictLocked()
}

func (s *Service) limiter() *semaphore.Weighted {
	s.semMutex.Lock()
	defer s.semMutex.Unlock()
	return s.sem
}

// SetHTTPClient replaces the client used for http(s) locators
func (s *Service) SetHTTPClient(client *http.Client) {
	if client != nil {
		s.client = client
	}
}

// Fetch resolves locator into a bitmap that fits inside size. Concurrent
// calls for the same locator and size share one underlying fetch. The shared
// work is aborted once every caller waiting on it has gone, so it releases
// its parallel slot.
func (s *Service) Fetch(ctx context.Context, locator string, size Size) (image.Image, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, ErrEmptyLocator
	}

	key := cacheKey(locator, size)
	if img, ok := s.cached(key); ok {
		return img, nil
	}

	f := s.join(ctx, key)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		defer s.finish(key, f)

		sem := s.limiter()
		if err := sem.Acquire(f.ctx, 1); err != nil {
			return nil, err
		}
		defer sem.Release(1)

		img, err := s.load(f.ctx, locator)
		if err != nil {
			return nil, err
		}
		img = scaleToFit(img, size)
		s.store(key, img)
		return img, nil
	})

	select {
	case <-ctx.Done():
		s.leave(key, f)
		return nil, ctx.Err()
	case res := <-ch:
		s.leave(key, f)
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(image.Image), nil
	}
}

// flight is the cancellable context shared by the callers of one fetch
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

func (s *Service) join(ctx context.Context, key string) *flight {
	s.flightMutex.Lock()
	defer s.flightMutex.Unlock()

	f, ok := s.flights[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		s.flights[key] = f
	}
	f.waiters++
	return f
}

// leave drops one waiter. The last one out cancels the shared work and lets
// the next caller start a fresh fetch.
func (s *Service) leave(key string, f *flight) {
	s.flightMutex.Lock()
	defer s.flightMutex.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if s.flights[key] == f {
		delete(s.flights, key)
		s.group.Forget(key)
	}
}

func (s *Service) finish(key string, f *flight) {
	s.flightMutex.Lock()
	defer s.flightMutex.Unlock()

	if s.flights[key] == f {
		delete(s.flights, key)
	}
}

func (s *Service) load(ctx context.Context, locator string) (image.Image, error) {
	rc, err := s.open(ctx, locator)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", locator, err)
	}
	return img, nil
}

func (s *Service) open(ctx context.Context, locator string) (io.ReadCloser, error) {
	if filepath.IsAbs(locator) {
		return os.Open(locator)
	}

	u, err := url.Parse(locator)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLocator, err)
	}

	switch u.Scheme {
	case "file":
		return os.Open(u.Path)
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: unexpected status %s", locator, resp.Status)
		}
		return resp.Body, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLocator, locator)
	}
}

func (s *Service) cached(key string) (image.Image, bool) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	img, ok := s.cache[key]
	return img, ok
}

// store inserts into the cache, evicting the oldest entries over the limit
func (s *Service) store(key string, img image.Image) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	if s.cacheEntries == 0 {
		return
	}
	if _, exists := s.cache[key]; !exists {
		s.cacheOrder = append(s.cacheOrder, key)
	}
	s.cache[key] = img
	s.evictLocked()
}

func (s *Service) evictLocked() {
	for len(s.cacheOrder) > s.cacheEntries {
		oldest := s.cacheOrder[0]
		s.cacheOrder = s.cacheOrder[1:]
		delete(s.cache, oldest)
	}
}

func cacheKey(locator string, size Size) string {
	return fmt.Sprintf("%s@%dx%d", locator, size.Width, size.Height)
}

// scaleToFit shrinks img to fit inside size, keeping its aspect ratio.
// Images already inside the bounds are returned unchanged.
func scaleToFit(img image.Image, size Size) image.Image {
	if size.IsZero() {
		return img
	}

	src := img.Bounds()
	srcW, srcH := src.Dx(), src.Dy()
	if srcW == 0 || srcH == 0 {
		return img
	}
	if srcW <= size.Width && srcH <= size.Height {
		return img
	}

	ratio := float64(srcW) / float64(srcH)
	w, h := size.Width, int(float64(size.Width)/ratio)
	if h > size.Height {
		h = size.Height
		w = int(float64(size.Height) * ratio)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}
