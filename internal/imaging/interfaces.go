package imaging

import (
	"context"
	"image"
)

// Size is a target bitmap size in pixels
type Size struct {
	Width  int
	Height int
}

// IsZero reports whether either dimension is unset
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Fetcher defines the interface for the image resolution service.
type Fetcher interface {
	Fetch(ctx context.Context, locator string, size Size) (image.Image, error)
}
