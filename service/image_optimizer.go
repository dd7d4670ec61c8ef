package service

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"

	"github.com/disintegration/imaging"
)

// PosterContentType is the media type of every captured poster
const PosterContentType = "image/png"

// OptimizePoster bounds a captured poster to maxDim on its longest side and
// re-encodes it as compressed PNG. maxDim <= 0 disables resizing.
func OptimizePoster(imageData []byte, maxDim int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Poster decoded: format=%s, bounds=%v", format, img.Bounds())

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var resizedImg image.Image = img
	if maxDim > 0 && (width > maxDim || height > maxDim) {
		// Zero on one side keeps the aspect ratio
		if width >= height {
			resizedImg = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
		} else {
			resizedImg = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
		}
		log.Printf("🔄 Resizing poster: %dx%d -> %dx%d", width, height, resizedImg.Bounds().Dx(), resizedImg.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resizedImg, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("failed to encode to PNG: %w", err)
	}
	optimizedData := buf.Bytes()

	log.Printf("✓ Poster optimized: output_size=%d bytes", len(optimizedData))
	return optimizedData, nil
}
