package thumbnail

import (
	"strconv"
	"strings"
)

const (
	ParamWidth          = "width"
	ParamHeight         = "height"
	ParamPage           = "page"
	ParamPhysicalWidth  = "physicalWidth"
	ParamPhysicalHeight = "physicalHeight"

	// HeightUnset marks a height that was passed but carries no constraint.
	HeightUnset = -1
)

// Params is the loose parameter set exchanged with the token codec and the
// bucketing sanitizer. Values are ints or, when decoded from a token, digit strings.
type Params map[string]any

// Has reports whether key is present with a non-nil value.
func (p Params) Has(key string) bool {
	val, ok := p[key]
	return ok && val != nil
}

// Clone returns a shallow copy of the parameter set.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// GetIntParam extracts an int parameter, coercing digit strings by their
// leading integer prefix. Non-numeric strings coerce to 0.
func GetIntParam(params Params, key string, defaultValue int) int {
	if val, ok := params[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		case string:
			return leadingInt(v)
		}
	}
	return defaultValue
}

// GetStringParam extracts a string parameter from the params map
func GetStringParam(params Params, key string, defaultValue string) string {
	if val, ok := params[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// ThumbRequest is a raw rendering request. Nil fields are absent; a Height
// of HeightUnset is present but unset.
type ThumbRequest struct {
	Width  *int
	Height *int
	Page   *int
}

// RequestFromParams builds a ThumbRequest from a loose parameter set.
func RequestFromParams(params Params) ThumbRequest {
	var req ThumbRequest
	if params.Has(ParamWidth) {
		w := GetIntParam(params, ParamWidth, 0)
		req.Width = &w
	}
	if params.Has(ParamHeight) {
		h := GetIntParam(params, ParamHeight, HeightUnset)
		req.Height = &h
	}
	if params.Has(ParamPage) {
		pg := GetIntParam(params, ParamPage, 1)
		req.Page = &pg
	}
	return req
}

// NormalizedThumbParams is a fully resolved set of rendering dimensions.
type NormalizedThumbParams struct {
	Width          int `json:"width"`
	Height         int `json:"height"`
	Page           int `json:"page"`
	PhysicalWidth  int `json:"physicalWidth"`
	PhysicalHeight int `json:"physicalHeight"`
}

// Params exports the normalized values as a loose parameter set.
func (n NormalizedThumbParams) Params() Params {
	return Params{
		ParamWidth:          n.Width,
		ParamHeight:         n.Height,
		ParamPage:           n.Page,
		ParamPhysicalWidth:  n.PhysicalWidth,
		ParamPhysicalHeight: n.PhysicalHeight,
	}
}

// Dimensions is a width/height pair.
type Dimensions struct {
	Width  int
	Height int
}
