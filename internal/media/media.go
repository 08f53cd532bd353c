package media

// Kind identifies the media variant a record is materialized as.
type Kind string

const (
	KindRaster   Kind = "raster"
	KindPaged    Kind = "paged"
	KindAnimated Kind = "animated"
)

// ThumbnailableMedia is the capability a source must expose to have its
// thumbnail parameters normalized.
type ThumbnailableMedia interface {
	// IntrinsicDimensions returns the source size of the given 1-based page.
	IntrinsicDimensions(page int) (width, height int)
	PageCount() int
	// MustRender reports whether a rendering is required regardless of the
	// requested size (vector sources, for example).
	MustRender() bool
	MimeType() string
	Size() int64
}

// SourceDimensions is a read-only snapshot of a source at one page.
type SourceDimensions struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	PageCount int `json:"pageCount"`
}

// DimensionsAt snapshots m at page.
func DimensionsAt(m ThumbnailableMedia, page int) SourceDimensions {
	w, h := m.IntrinsicDimensions(page)
	return SourceDimensions{Width: w, Height: h, PageCount: m.PageCount()}
}

// CanRender reports whether m has both intrinsic dimensions set.
func CanRender(m ThumbnailableMedia) bool {
	w, h := m.IntrinsicDimensions(1)
	return w != 0 && h != 0
}

// ImageArea returns the number of pixels a thumbnail of m has to process.
// Animated sequences count every frame.
func ImageArea(m ThumbnailableMedia) int {
	w, h := m.IntrinsicDimensions(1)
	area := w * h
	if a, ok := m.(*AnimatedSequence); ok && a.Frames > 1 {
		area *= a.Frames
	}
	return area
}

// RasterImage is a single-page bitmap or vector image.
type RasterImage struct {
	Mime        string
	Width       int
	Height      int
	Bytes       int64
	ForceRender bool
}

func (r *RasterImage) IntrinsicDimensions(int) (int, int) { return r.Width, r.Height }
func (r *RasterImage) PageCount() int                     { return 1 }
func (r *RasterImage) MustRender() bool                   { return r.ForceRender }
func (r *RasterImage) MimeType() string                   { return r.Mime }
func (r *RasterImage) Size() int64                        { return r.Bytes }

// PageSize is the intrinsic size of one page of a paged document.
type PageSize struct {
	Width  int
	Height int
}

// PagedDocument is a multi-page source whose pages may differ in size.
type PagedDocument struct {
	Mime  string
	Pages []PageSize
	Bytes int64
}

// NewUniformPagedDocument builds a document of pageCount pages sharing one size.
func NewUniformPagedDocument(mime string, width, height, pageCount int, size int64) *PagedDocument {
	pages := make([]PageSize, pageCount)
	for i := range pages {
		pages[i] = PageSize{Width: width, Height: height}
	}
	return &PagedDocument{Mime: mime, Pages: pages, Bytes: size}
}

// IntrinsicDimensions falls back to the first page for out of range pages.
func (d *PagedDocument) IntrinsicDimensions(page int) (int, int) {
	if len(d.Pages) == 0 {
		return 0, 0
	}
	if page < 1 || page > len(d.Pages) {
		page = 1
	}
	p := d.Pages[page-1]
	return p.Width, p.Height
}

func (d *PagedDocument) PageCount() int   { return len(d.Pages) }
// MustRender is always true: pages are rasterized, never served as stored.
func (d *PagedDocument) MustRender() bool { return true }
func (d *PagedDocument) MimeType() string { return d.Mime }
func (d *PagedDocument) Size() int64      { return d.Bytes }

// AnimatedSequence is a single-page source made of several frames.
type AnimatedSequence struct {
	Mime        string
	Width       int
	Height      int
	Frames      int
	Bytes       int64
	ForceRender bool
}

func (a *AnimatedSequence) IntrinsicDimensions(int) (int, int) { return a.Width, a.Height }
func (a *AnimatedSequence) PageCount() int                     { return 1 }
func (a *AnimatedSequence) MustRender() bool                   { return a.ForceRender }
func (a *AnimatedSequence) MimeType() string                   { return a.Mime }
func (a *AnimatedSequence) Size() int64                        { return a.Bytes }
