package thumbnail

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jo-hoe/thumbnorm/internal/media"
)

// ThumbnailDescriptor points at a thumbnail produced by an external
// rendering script.
type ThumbnailDescriptor struct {
	URL    string                `json:"url"`
	Params NormalizedThumbParams `json:"params"`
}

// scriptParams selects the parameters passed on to a rendering script.
func scriptParams(p NormalizedThumbParams) url.Values {
	return url.Values{ParamWidth: []string{strconv.Itoa(p.Width)}}
}

// ScriptedTransform builds the descriptor of a script-rendered thumbnail of m.
// It returns nil without error when the source already satisfies the request.
func (n *Normalizer) ScriptedTransform(m media.ThumbnailableMedia, script string, params Params) (*ThumbnailDescriptor, error) {
	normalized, err := n.NormalizeParams(params, m)
	if err != nil {
		return nil, err
	}

	srcWidth, _ := m.IntrinsicDimensions(1)
	if !m.MustRender() && normalized.Width >= srcWidth {
		n.logger.Debug("ScriptedTransform: source satisfies request; no thumbnail needed",
			"width", normalized.Width,
			"src_width", srcWidth)
		return nil, nil
	}

	return &ThumbnailDescriptor{
		URL:    appendQuery(script, scriptParams(normalized)),
		Params: normalized,
	}, nil
}

func appendQuery(base string, query url.Values) string {
	encoded := query.Encode()
	if encoded == "" {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s%s", base, sep, encoded)
}
