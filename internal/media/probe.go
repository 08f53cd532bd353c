package media

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"log/slog"
	"math"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const MimeSVG = "image/svg+xml"

// ProbeResult holds the intrinsic properties detected from raw media bytes.
type ProbeResult struct {
	Kind       Kind
	MimeType   string
	Width      int
	Height     int
	PageCount  int
	FrameCount int
	MustRender bool
}

// Probe detects the format and intrinsic size of data without decoding pixels,
// except for GIFs where the frame count is needed.
func Probe(data []byte) (*ProbeResult, error) {
	slog.Debug("Probe: start", "input_size_bytes", len(data))

	if IsSVGData(data) {
		return probeSVG(data)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}

	result := &ProbeResult{
		Kind:       KindRaster,
		MimeType:   "image/" + format,
		Width:      cfg.Width,
		Height:     cfg.Height,
		PageCount:  1,
		FrameCount: 1,
	}

	if format == "gif" {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode gif frames: %w", err)
		}
		if len(g.Image) > 1 {
			result.Kind = KindAnimated
			result.FrameCount = len(g.Image)
		}
	}

	slog.Debug("Probe: detected raster image",
		"format", format,
		"width", result.Width,
		"height", result.Height,
		"frames", result.FrameCount)
	return result, nil
}

func probeSVG(data []byte) (*ProbeResult, error) {
	w, h, ok := parseSvgExplicitSize(data)
	if !ok {
		icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SVG: %w", err)
		}
		w = int(math.Round(icon.ViewBox.W))
		h = int(math.Round(icon.ViewBox.H))
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("SVG has neither explicit size nor viewBox")
		}
		slog.Debug("Probe: SVG size taken from viewBox", "width", w, "height", h)
	}

	return &ProbeResult{
		Kind:       KindRaster,
		MimeType:   MimeSVG,
		Width:      w,
		Height:     h,
		PageCount:  1,
		FrameCount: 1,
		MustRender: true,
	}, nil
}

// IsSVGData performs a lightweight detection of SVG content from raw bytes.
func IsSVGData(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	n := len(data)
	if n > 4096 {
		n = 4096
	}
	header := bytes.ToLower(bytes.TrimSpace(data[:n]))
	return bytes.Contains(header, []byte("<svg")) ||
		bytes.Contains(header, []byte("xmlns=\"http://www.w3.org/2000/svg\"")) ||
		bytes.Contains(header, []byte("xmlns='http://www.w3.org/2000/svg'"))
}

// parseSvgExplicitSize extracts integer width and height attributes from the
// root <svg> tag.
func parseSvgExplicitSize(data []byte) (int, int, bool) {
	n := len(data)
	if n > 8192 {
		n = 8192
	}
	s := strings.ToLower(string(data[:n]))
	i := strings.Index(s, "<svg")
	if i < 0 {
		return 0, 0, false
	}
	j := strings.Index(s[i:], ">")
	if j < 0 {
		j = len(s)
	} else {
		j = i + j
	}
	tag := s[i:j]

	w, wOk := parseNumericAttr(tag, "width")
	h, hOk := parseNumericAttr(tag, "height")
	if wOk && hOk {
		return w, h, true
	}
	return 0, 0, false
}

// parseNumericAttr reads the leading integer of a quoted attribute value
// (e.g. width="123px").
func parseNumericAttr(tag, attr string) (int, bool) {
	pos := strings.Index(tag, " "+attr+"=")
	if pos < 0 {
		return 0, false
	}
	rest := tag[pos+len(attr)+2:]
	if rest == "" || (rest[0] != '"' && rest[0] != '\'') {
		return 0, false
	}
	quote := rest[0]
	val := rest[1:]
	if end := strings.IndexByte(val, quote); end >= 0 {
		val = val[:end]
	}

	num := 0
	k := 0
	for ; k < len(val) && val[k] >= '0' && val[k] <= '9'; k++ {
		num = num*10 + int(val[k]-'0')
	}
	// relative sizes are resolved from the viewBox instead
	if k == 0 || num <= 0 || strings.HasPrefix(val[k:], "%") {
		return 0, false
	}
	return num, true
}
