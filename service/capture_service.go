package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"course-promo/form"
)

const (
	posterSelector = "#poster"
	// Layout width the poster is designed for; height grows with content
	captureViewportWidth  = 1280
	captureViewportHeight = 1600
)

var (
	// ErrPosterNotFound is returned when the render page has no poster element
	ErrPosterNotFound = errors.New("poster element not found")
	// ErrEmptyCapture is returned when the browser produced no image data
	ErrEmptyCapture = errors.New("capture produced no image data")
)

// waitForAssetsJS resolves once fonts and every <img> have loaded or errored
const waitForAssetsJS = `
	(function() {
		return Promise.all([
			document.fonts.ready,
			Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
				return new Promise((resolve) => {
					if (img.complete) {
						resolve();
						return;
					}
					const timeout = setTimeout(() => resolve(), 5000);
					img.onload = () => { clearTimeout(timeout); resolve(); };
					img.onerror = () => { clearTimeout(timeout); resolve(); };
				});
			}))
		]).then(() => true);
	})();
`

// CaptureService rasterizes the poster with headless Chrome.
// Chrome loads the poster from this service's own /poster/render endpoint.
type CaptureService struct {
	baseURL    string
	chromePath string
	timeout    time.Duration
}

// Ensure CaptureService implements CaptureServiceInterface
var _ CaptureServiceInterface = (*CaptureService)(nil)

// NewCaptureService creates a CaptureService. chromePath may be empty to auto-detect.
func NewCaptureService(baseURL, chromePath string, timeout time.Duration) *CaptureService {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CaptureService{
		baseURL:    baseURL,
		chromePath: chromePath,
		timeout:    timeout,
	}
}

// detectChromePath looks for a Chrome/Chromium binary in common locations
func detectChromePath() string {
	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// RenderURL returns the poster-only page for state
func (s *CaptureService) RenderURL(state form.State) string {
	return fmt.Sprintf("%s/poster/render?%s", s.baseURL, state.Values().Encode())
}

// CapturePoster screenshots the #poster element at pixelRatio
func (s *CaptureService) CapturePoster(ctx context.Context, state form.State, pixelRatio float64) ([]byte, error) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if s.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.RenderURL(state)
	log.Printf("📸 CapturePoster: rev=%d courses=%v pixelRatio=%.2f", state.Revision, state.Selection, pixelRatio)

	var nodes []*cdp.Node
	err := chromedp.Run(chromedpCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetDeviceMetricsOverride(captureViewportWidth, captureViewportHeight, pixelRatio, false).Do(ctx)
		}),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Nodes(posterSelector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load poster page: %w", err)
	}
	if len(nodes) == 0 {
		return nil, ErrPosterNotFound
	}

	var loaded bool
	var buf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Evaluate(waitForAssetsJS, &loaded, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.Sleep(300), // Let layout settle after late images
		chromedp.Screenshot(posterSelector, &buf, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture poster: %w", err)
	}
	if len(buf) == 0 {
		return nil, ErrEmptyCapture
	}

	log.Printf("✓ CapturePoster: captured %d bytes", len(buf))
	return buf, nil
}
