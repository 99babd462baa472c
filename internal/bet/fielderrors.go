package bet

import (
	"sort"
	"strings"
)

// FieldErrors collects validation messages keyed by form field ("game",
// "number", "amount", "timing", ...). Validation failures never reach the
// network; every collected message is surfaced at once.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

func (f FieldErrors) IsEmpty() bool {
	return len(f) == 0
}
