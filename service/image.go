package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

const (
	maxImageSide = 1024
	jpegQuality  = 85
)

// PrepareImage normalizes a creative image for the generation request:
// decodes JPEG or PNG, downscales so the longer side fits maxImageSide
// (small images are never upscaled) and re-encodes as JPEG. The same
// bytes go to the model and to the archive.
func PrepareImage(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxImageSide || height > maxImageSide {
		scale := float64(maxImageSide) / float64(width)
		if height > width {
			scale = float64(maxImageSide) / float64(height)
		}
		dstWidth, dstHeight := int(float64(width)*scale), int(float64(height)*scale)
		if dstWidth < 1 {
			dstWidth = 1
		}
		if dstHeight < 1 {
			dstHeight = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
