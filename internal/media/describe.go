package media

import (
	"fmt"
	"html"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders numbers and byte sizes for human-readable descriptions.
type Formatter interface {
	Number(n int) string
	Size(bytes int64) string
}

type printerFormatter struct {
	printer *message.Printer
}

// NewFormatter returns a Formatter grouping digits the way tag does.
func NewFormatter(tag language.Tag) Formatter {
	return &printerFormatter{printer: message.NewPrinter(tag)}
}

func (f *printerFormatter) Number(n int) string {
	return f.printer.Sprintf("%d", n)
}

func (f *printerFormatter) Size(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// Describer produces the dimension and size summaries shown next to media.
type Describer struct {
	formatter Formatter
}

// NewDescriber creates a Describer. A nil formatter falls back to English.
func NewDescriber(formatter Formatter) *Describer {
	if formatter == nil {
		formatter = NewFormatter(language.English)
	}
	return &Describer{formatter: formatter}
}

// ShortDesc returns "W × H (size)" with the size HTML-escaped.
func (d *Describer) ShortDesc(m ThumbnailableMedia) string {
	w, h := m.IntrinsicDimensions(1)
	size := html.EscapeString(d.formatter.Size(m.Size()))
	return fmt.Sprintf("%s (%s)", d.widthHeight(w, h), size)
}

// LongDesc returns the HTML description including mime type and, for
// multi-page sources, the page count.
func (d *Describer) LongDesc(m ThumbnailableMedia) string {
	w, h := m.IntrinsicDimensions(1)
	size := html.EscapeString(d.formatter.Size(m.Size()))
	mime := `<span class="mime-type">` + html.EscapeString(m.MimeType()) + `</span>`

	desc := fmt.Sprintf("%s pixels, file size: %s, MIME type: %s", d.widthHeight(w, h), size, mime)
	if pages := m.PageCount(); pages > 1 {
		desc += ", " + d.pages(pages)
	}
	return desc
}

// DimensionsString returns "W × H", or "W × H × N pages" for multi-page sources.
func (d *Describer) DimensionsString(m ThumbnailableMedia) string {
	w, h := m.IntrinsicDimensions(1)
	if pages := m.PageCount(); pages > 1 {
		return fmt.Sprintf("%s × %s", d.widthHeight(w, h), d.pages(pages))
	}
	return d.widthHeight(w, h)
}

func (d *Describer) widthHeight(w, h int) string {
	return fmt.Sprintf("%s × %s", d.formatter.Number(w), d.formatter.Number(h))
}

func (d *Describer) pages(n int) string {
	if n == 1 {
		return d.formatter.Number(n) + " page"
	}
	return d.formatter.Number(n) + " pages"
}
