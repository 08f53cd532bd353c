package thumbnail

import (
	"math"
	"testing"
)

func intPtr(v int) *int {
	return &v
}

func TestScaleHeight(t *testing.T) {
	tests := []struct {
		name                       string
		srcWidth, srcHeight, width int
		expected                   int
	}{
		{name: "Half size landscape", srcWidth: 1000, srcHeight: 500, width: 200, expected: 100},
		{name: "Portrait", srcWidth: 300, srcHeight: 900, width: 100, expected: 300},
		{name: "Rounds half up", srcWidth: 4, srcHeight: 3, width: 2, expected: 2},
		{name: "Rounds down", srcWidth: 3, srcHeight: 1, width: 1, expected: 0},
		{name: "Zero source width", srcWidth: 0, srcHeight: 100, width: 10, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleHeight(tt.srcWidth, tt.srcHeight, tt.width)
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestScaleHeight_MatchesRoundedRatio(t *testing.T) {
	for srcWidth := 1; srcWidth <= 40; srcWidth += 3 {
		for srcHeight := 1; srcHeight <= 40; srcHeight += 7 {
			for width := 1; width <= 120; width += 11 {
				expected := int(math.Round(float64(srcHeight) * float64(width) / float64(srcWidth)))
				if got := ScaleHeight(srcWidth, srcHeight, width); got != expected {
					t.Fatalf("ScaleHeight(%d, %d, %d) = %d, expected %d", srcWidth, srcHeight, width, got, expected)
				}
			}
		}
	}
}

func TestFitBoxWidth(t *testing.T) {
	if got := FitBoxWidth(1000, 500, 50); got != 100 {
		t.Errorf("Expected 100, got %d", got)
	}
	if got := FitBoxWidth(1, 1000, 10); got != 0 {
		t.Errorf("Expected sub-pixel width to round to 0, got %d", got)
	}
	if got := FitBoxWidth(100, 0, 10); got != 0 {
		t.Errorf("Expected 0 for zero source height, got %d", got)
	}
}

func TestResolvePage(t *testing.T) {
	tests := []struct {
		name      string
		page      *int
		pageCount int
		expected  int
	}{
		{name: "Absent page", page: nil, pageCount: 10, expected: 1},
		{name: "In range", page: intPtr(4), pageCount: 10, expected: 4},
		{name: "Above page count", page: intPtr(50), pageCount: 10, expected: 10},
		{name: "Negative page", page: intPtr(-3), pageCount: 10, expected: 1},
		{name: "Zero page", page: intPtr(0), pageCount: 10, expected: 1},
		{name: "No pages reported", page: intPtr(3), pageCount: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePage(tt.page, tt.pageCount); got != tt.expected {
				t.Errorf("Expected page %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestHeightIsBinding(t *testing.T) {
	tests := []struct {
		name                                  string
		width, boxHeight, srcWidth, srcHeight int
		expected                              bool
	}{
		{name: "Box wider than source", width: 200, boxHeight: 50, srcWidth: 1000, srcHeight: 500, expected: true},
		{name: "Box taller than source", width: 200, boxHeight: 500, srcWidth: 1000, srcHeight: 500, expected: false},
		{name: "Same ratio", width: 200, boxHeight: 100, srcWidth: 1000, srcHeight: 500, expected: false},
		{name: "Huge width does not wrap", width: 1 << 62, boxHeight: 10, srcWidth: 1000, srcHeight: 500, expected: true},
		{name: "Huge height does not wrap", width: 10, boxHeight: math.MaxInt, srcWidth: 1000, srcHeight: 500, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeightIsBinding(tt.width, tt.boxHeight, tt.srcWidth, tt.srcHeight)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
