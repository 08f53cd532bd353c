package thumbnail

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// sanitizeBaseParams applies the generic bucketing policy shared by all
// media kinds. It keeps every parameter and never aliases the input.
func sanitizeBaseParams(params Params) Params {
	return params.Clone()
}

// SanitizeForBucketing strips the derived height parameters so that cache
// keys vary only by width and the remaining request parameters.
func SanitizeForBucketing(params Params) Params {
	out := sanitizeBaseParams(params)
	delete(out, ParamHeight)
	delete(out, ParamPhysicalHeight)
	return out
}

// BucketKey builds the cache key for a thumbnail of mediaID rendered with
// params. Equivalent requests that only differ in derived heights share a key.
func BucketKey(mediaID string, params Params) (string, error) {
	sanitized := SanitizeForBucketing(params)
	token, err := MakeParamString(sanitized)
	if err != nil {
		return "", fmt.Errorf("failed to build bucket key for %s: %w", mediaID, err)
	}

	keys := make([]string, 0, len(sanitized))
	for k := range sanitized {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		fmt.Fprintf(&b, "%s=%v", k, sanitized[k])
	}
	sum := sha256.Sum256([]byte(b.String()))

	return fmt.Sprintf("thumb:%s:%s:%s", mediaID, token, hex.EncodeToString(sum[:8])), nil
}
