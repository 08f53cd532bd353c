package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/jo-hoe/thumbnorm/internal/media"
	"github.com/jo-hoe/thumbnorm/internal/thumbnail"
)

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{200, 20, 20, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to build test PNG: %v", err)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestRender_Raster(t *testing.T) {
	p := thumbnail.NormalizedThumbParams{Width: 20, Height: 10, Page: 1, PhysicalWidth: 20, PhysicalHeight: 10}

	out, err := Render(makePNG(t, 100, 50), "image/png", p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if w, h := decodeSize(t, out); w != 20 || h != 10 {
		t.Errorf("Expected 20x10, got %dx%d", w, h)
	}
}

func TestRender_SVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect x="0" y="0" width="10" height="10" fill="#000"/></svg>`)
	p := thumbnail.NormalizedThumbParams{Width: 32, Height: 32, Page: 1, PhysicalWidth: 32, PhysicalHeight: 32}

	out, err := Render(svg, media.MimeSVG, p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if w, h := decodeSize(t, out); w != 32 || h != 32 {
		t.Errorf("Expected 32x32, got %dx%d", w, h)
	}
}

func TestRender_InvalidTarget(t *testing.T) {
	if _, err := Render(makePNG(t, 4, 4), "image/png", thumbnail.NormalizedThumbParams{}); err == nil {
		t.Error("Expected error for zero target size")
	}
}

func TestRender_UndecodableData(t *testing.T) {
	p := thumbnail.NormalizedThumbParams{PhysicalWidth: 4, PhysicalHeight: 4}
	if _, err := Render([]byte("nope"), "application/pdf", p); err == nil {
		t.Error("Expected error for undecodable data")
	}
}
