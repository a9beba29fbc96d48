package toolsync

import (
	"fmt"
	"sort"
	"strings"
)

// Fingerprint derives a stable dedup key from a payload so the same tool
// result pushed from two devices is stored once even when neither copy
// carries a server ID yet.
//
// The key is the payload date joined with the values of the first four
// non-bookkeeping keys in sorted order. Values are truncated to 50 runes;
// list values contribute their first three elements comma-joined. The
// algorithm is shared with existing clients and must not change shape.
func Fingerprint(payload map[string]any) string {
	date, _ := payload["date"].(string)

	keys := make([]string, 0, len(payload))
	for k := range payload {
		if strings.HasPrefix(k, "_") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) > 4 {
		keys = keys[:4]
	}

	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, date)
	for _, k := range keys {
		parts = append(parts, fingerprintValue(payload[k]))
	}

	return strings.Join(parts, "|")
}

func fingerprintValue(v any) string {
	if list, ok := v.([]any); ok {
		if len(list) > 3 {
			list = list[:3]
		}
		elems := make([]string, 0, len(list))
		for _, e := range list {
			elems = append(elems, stringify(e))
		}
		return truncate(strings.Join(elems, ","), 50)
	}
	return truncate(stringify(v), 50)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; render integers without a fraction
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
