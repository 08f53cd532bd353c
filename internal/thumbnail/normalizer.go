package thumbnail

import (
	"log/slog"

	"github.com/jo-hoe/thumbnorm/internal/media"
)

// Normalizer turns raw thumbnail requests into resolved rendering dimensions.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a Normalizer writing diagnostics to logger. A nil
// logger falls back to slog.Default().
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// NormalizeParams normalizes a loose parameter set against m.
func (n *Normalizer) NormalizeParams(params Params, m media.ThumbnailableMedia) (NormalizedThumbParams, error) {
	return n.Normalize(RequestFromParams(params), m)
}

// Normalize resolves req against the source m. On failure no partial result
// is returned and the error satisfies IsRecoverable.
func (n *Normalizer) Normalize(req ThumbRequest, m media.ThumbnailableMedia) (NormalizedThumbParams, error) {
	if req.Width == nil {
		return NormalizedThumbParams{}, &ParamError{Op: "Normalize", Err: ErrMissingWidth}
	}
	width := *req.Width

	page := ResolvePage(req.Page, m.PageCount())
	srcWidth, srcHeight := m.IntrinsicDimensions(page)

	var (
		height           int
		hasHeight        bool
		physicalWidth    int
		hasPhysicalWidth bool
	)

	if req.Height != nil && *req.Height != HeightUnset {
		// Cross products decide the binding dimension without division.
		if HeightIsBinding(width, *req.Height, srcWidth, srcHeight) {
			width = FitBoxWidth(srcWidth, srcHeight, *req.Height)
			if width == 0 {
				// sub-pixel source, the client finishes the scaling
				width = 1
			}
			physicalWidth, hasPhysicalWidth = width, true
			height, hasHeight = *req.Height, true
		}
		// otherwise the height does not match the width's aspect ratio and is recomputed below
	}

	if !hasPhysicalWidth {
		physicalWidth = width
	}

	// Thumbnails are identified by width only, so the physical height is
	// always derived from the physical width.
	dims, err := n.ValidateThumbParams(physicalWidth, srcWidth, srcHeight)
	if err != nil {
		return NormalizedThumbParams{}, err
	}

	if !hasHeight {
		height = dims.Height
	}

	return NormalizedThumbParams{
		Width:          width,
		Height:         height,
		Page:           page,
		PhysicalWidth:  dims.Width,
		PhysicalHeight: dims.Height,
	}, nil
}

// ValidateThumbParams checks the destination width against the source and
// returns the width together with its authoritative height.
func (n *Normalizer) ValidateThumbParams(width, srcWidth, srcHeight int) (Dimensions, error) {
	if width <= 0 {
		n.logger.Debug("ValidateThumbParams: invalid destination width", "width", width)
		return Dimensions{}, &ParamError{Op: "ValidateThumbParams", Value: width, Err: ErrNonPositiveWidth}
	}
	if srcWidth <= 0 {
		n.logger.Debug("ValidateThumbParams: invalid source width", "src_width", srcWidth)
		return Dimensions{}, &ParamError{Op: "ValidateThumbParams", Value: srcWidth, Err: ErrNonPositiveSourceWidth}
	}

	height := ScaleHeight(srcWidth, srcHeight, width)
	if height == 0 {
		height = 1
	}
	return Dimensions{Width: width, Height: height}, nil
}
