package thumbnail

import (
	"fmt"
	"regexp"
)

var paramStringPattern = regexp.MustCompile(`^(\d+)px$`)

// paramMap maps external (query string) names to logical parameter names.
// Only the width is ever externalized.
var paramMap = map[string]string{
	"img_width": ParamWidth,
}

// ParamMap returns the external-to-logical parameter name map.
func ParamMap() map[string]string {
	out := make(map[string]string, len(paramMap))
	for k, v := range paramMap {
		out[k] = v
	}
	return out
}

// ExternalNameOf returns the external name for a logical parameter name.
func ExternalNameOf(logical string) (string, bool) {
	for external, name := range paramMap {
		if name == logical {
			return external, true
		}
	}
	return "", false
}

// ValidateParam reports whether value is acceptable for the named parameter.
func ValidateParam(name string, value int) bool {
	switch name {
	case ParamWidth, ParamHeight:
		return value > 0
	default:
		return false
	}
}

// MakeParamString encodes params as a "<width>px" token, preferring the
// physical width. The value is written as given, without integer coercion.
func MakeParamString(params Params) (string, error) {
	var width any
	switch {
	case params.Has(ParamPhysicalWidth):
		width = params[ParamPhysicalWidth]
	case params.Has(ParamWidth):
		width = params[ParamWidth]
	default:
		return "", &ParamError{Op: "MakeParamString", Err: ErrInvalidParameters}
	}
	return fmt.Sprintf("%vpx", width), nil
}

// ParseParamString decodes a "<digits>px" token. The width is returned as
// the captured digit string. ok is false when str is not a dimension token.
func ParseParamString(str string) (params Params, ok bool) {
	m := paramStringPattern.FindStringSubmatch(str)
	if m == nil {
		return nil, false
	}
	return Params{ParamWidth: m[1]}, true
}
