package dictionary

import (
	"fmt"
	"maps"
	"slices"
)

// Bundle is the immutable key to value translation map of one language.
// The zero value is an empty bundle.
type Bundle struct {
	entries map[string]string
}

// NewBundle copies entries into a new Bundle.
func NewBundle(entries map[string]string) Bundle {
	return Bundle{entries: maps.Clone(entries)}
}

// Flatten builds a Bundle from a nested document, joining nested keys with dots.
// Non-string leaves are rendered with fmt.Sprint; nil leaves are dropped.
// For example {"menu": {"open": "Open"}} becomes {"menu.open": "Open"}.
func Flatten(doc map[string]any) Bundle {
	entries := make(map[string]string)
	flatten("", doc, entries)
	return Bundle{entries: entries}
}

func flatten(prefix string, doc map[string]any, out map[string]string) {
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case nil:
		case string:
			out[key] = val
		case map[string]any:
			flatten(key, val, out)
		case map[any]any:
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				converted[fmt.Sprint(mk)] = mv
			}
			flatten(key, converted, out)
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Get returns the value stored for key.
func (b Bundle) Get(key string) (string, bool) {
	v, ok := b.entries[key]
	return v, ok
}

// Has reports whether key is present.
func (b Bundle) Has(key string) bool {
	_, ok := b.entries[key]
	return ok
}

// Len returns the number of keys.
func (b Bundle) Len() int {
	return len(b.entries)
}

// Keys returns the keys in sorted order.
func (b Bundle) Keys() []string {
	return slices.Sorted(maps.Keys(b.entries))
}

// With returns a copy of b with key set to value. b itself is not modified.
func (b Bundle) With(key, value string) Bundle {
	entries := make(map[string]string, len(b.entries)+1)
	maps.Copy(entries, b.entries)
	entries[key] = value
	return Bundle{entries: entries}
}

// Map returns a copy of the entries.
func (b Bundle) Map() map[string]string {
	if b.entries == nil {
		return map[string]string{}
	}
	return maps.Clone(b.entries)
}
