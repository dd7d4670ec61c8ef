package service

import (
	"context"

	"course-promo/form"
)

// CaptureServiceInterface defines the contract for rasterizing the poster
type CaptureServiceInterface interface {
	// CapturePoster renders the poster for state and returns PNG bytes at the given pixel ratio
	CapturePoster(ctx context.Context, state form.State, pixelRatio float64) ([]byte, error)
}
