package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/jo-hoe/thumbnorm/internal/media"
	"github.com/jo-hoe/thumbnorm/internal/thumbnail"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const MimePNG = "image/png"

// Render produces a PNG of the source data sized to the physical dimensions
// of p. SVG sources are rasterized directly at the target size.
func Render(data []byte, mimeType string, p thumbnail.NormalizedThumbParams) ([]byte, error) {
	targetWidth, targetHeight := p.PhysicalWidth, p.PhysicalHeight
	if targetWidth <= 0 || targetHeight <= 0 {
		return nil, fmt.Errorf("invalid target dimensions for rendering: %dx%d", targetWidth, targetHeight)
	}

	slog.Debug("Render: start",
		"mime_type", mimeType,
		"input_size_bytes", len(data),
		"target_width", targetWidth,
		"target_height", targetHeight)

	if mimeType == media.MimeSVG || media.IsSVGData(data) {
		return renderSVG(data, targetWidth, targetHeight)
	}
	return renderRaster(data, targetWidth, targetHeight)
}

func renderRaster(data []byte, targetWidth, targetHeight int) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		slog.Error("Render: failed to decode image", "error", err)
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	slog.Debug("Render: decoded raster image",
		"format", format,
		"orig_width", bounds.Dx(),
		"orig_height", bounds.Dy())

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)

	return encodePNG(dst)
}

func renderSVG(data []byte, targetWidth, targetHeight int) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		slog.Error("Render: failed to parse SVG", "error", err)
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	icon.SetTarget(0, 0, float64(targetWidth), float64(targetHeight))

	dst := createTargetCanvas(targetWidth, targetHeight, color.RGBA{255, 255, 255, 255})
	scanner := rasterx.NewScannerGV(targetWidth, targetHeight, dst, dst.Bounds())
	dasher := rasterx.NewDasher(targetWidth, targetHeight, scanner)
	icon.Draw(dasher, 1.0)

	return encodePNG(dst)
}

func createTargetCanvas(w, h int, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	return dst
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	bb := img.Bounds()
	// Pre-grow buffer to reduce re-allocations; rough heuristic: 1 byte per pixel
	buf.Grow(bb.Dx() * bb.Dy())
	if err := png.Encode(&buf, img); err != nil {
		slog.Error("Render: failed to encode PNG", "error", err)
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	slog.Debug("Render: complete", "output_size_bytes", buf.Len())
	return buf.Bytes(), nil
}
