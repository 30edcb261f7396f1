package imaging

// Package imaging resolves token image locators into bitmaps scaled to a
// requested size. It owns caching, request deduplication and the parallel
// fetch limit, so callers never need to coordinate identical requests.
