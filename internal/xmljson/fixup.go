package xmljson

import "strings"

// Key markers produced by the Decoder.
const (
	AttrPrefix = "@"
	TextKey    = "$"
)

// SiteValueKey replaces TextKey in site data files.
const SiteValueKey = "value"

// SiteFixup rewrites a decoded tree for static-site data files: attribute keys
// lose their "@" prefix, "$" becomes "value", and string values equal to "no"
// become "false". Doxygen's DoxBool attributes only ever hold "yes" or "no".
// The tree is rewritten in place and returned.
func SiteFixup(v any) any {
	switch val := v.(type) {
	case *Object:
		if val == nil {
			return val
		}
		fixed := NewObject()
		for pair := val.pairs.Oldest(); pair != nil; pair = pair.Next() {
			fixed.Set(siteKey(pair.Key), SiteFixup(pair.Value))
		}
		*val = *fixed
		return val
	case []any:
		for i, item := range val {
			val[i] = SiteFixup(item)
		}
		return val
	case string:
		if val == "no" {
			return "false"
		}
		return val
	default:
		return val
	}
}

func siteKey(key string) string {
	if key == TextKey {
		return SiteValueKey
	}
	return strings.TrimPrefix(key, AttrPrefix)
}
