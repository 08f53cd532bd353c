package thumbnail

import (
	"math"
	"math/big"
)

// FitBoxWidth returns the width that, paired with boxHeight, keeps the
// aspect ratio of a srcWidth x srcHeight source.
func FitBoxWidth(srcWidth, srcHeight, boxHeight int) int {
	if srcHeight == 0 {
		return 0
	}
	return int(math.Round(float64(srcWidth) * float64(boxHeight) / float64(srcHeight)))
}

// HeightIsBinding reports whether a width x boxHeight box is wider, relative to
// its height, than the source, i.e. width*srcHeight > boxHeight*srcWidth.
// The products are exact for any int operands.
func HeightIsBinding(width, boxHeight, srcWidth, srcHeight int) bool {
	lhs := new(big.Int).Mul(big.NewInt(int64(width)), big.NewInt(int64(srcHeight)))
	rhs := new(big.Int).Mul(big.NewInt(int64(boxHeight)), big.NewInt(int64(srcWidth)))
	return lhs.Cmp(rhs) > 0
}

// ScaleHeight returns the height matching width for a srcWidth x srcHeight
// source. A degenerate source yields 0; callers force that to 1.
func ScaleHeight(srcWidth, srcHeight, width int) int {
	if srcWidth <= 0 {
		return 0
	}
	return int(math.Round(float64(srcHeight) * float64(width) / float64(srcWidth)))
}

// ResolvePage clamps a requested page into [1, pageCount]. A nil page
// selects the first page.
func ResolvePage(page *int, pageCount int) int {
	if page == nil {
		return 1
	}
	resolved := *page
	if resolved > pageCount {
		resolved = pageCount
	}
	// evaluated after the upper clamp so a pageCount of 0 still yields page 1
	if resolved < 1 {
		resolved = 1
	}
	return resolved
}
