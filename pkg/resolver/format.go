package resolver

import (
	"container/list"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// DefaultTemplateCacheSize is the number of parsed templates kept in memory.
const DefaultTemplateCacheSize = 1024

// Params holds interpolation arguments by placeholder name.
// Positional arguments use the names "0", "1", and so on; see Args.
type Params map[string]any

// Args builds positional Params: Args("a", 2) fills {0} and {1}.
func Args(values ...any) Params {
	p := make(Params, len(values))
	for i, v := range values {
		p[strconv.Itoa(i)] = v
	}
	return p
}

// Placeholders look like {name}, {0} or {count, number}; only the name before
// the first comma is used for lookup.
var placeholderRegex = regexp.MustCompile(`\{\s*([A-Za-z0-9_.\-]+)\s*(?:,[^{}]*)?\}`)

type segment struct {
	literal string
	name    string
}

type template struct {
	segments []segment
	hasVars  bool
}

func parseTemplate(s string) *template {
	matches := placeholderRegex.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return &template{segments: []segment{{literal: s}}}
	}

	t := &template{hasVars: true}
	last := 0
	for _, m := range matches {
		if m[0] > last {
			t.segments = append(t.segments, segment{literal: s[last:m[0]]})
		}
		t.segments = append(t.segments, segment{literal: s[m[0]:m[1]], name: s[m[2]:m[3]]})
		last = m[1]
	}
	if last < len(s) {
		t.segments = append(t.segments, segment{literal: s[last:]})
	}
	return t
}

// render substitutes known params and leaves unknown placeholders as written.
func (t *template) render(params Params) string {
	if !t.hasVars {
		return t.segments[0].literal
	}

	var b strings.Builder
	for _, seg := range t.segments {
		if seg.name == "" {
			b.WriteString(seg.literal)
			continue
		}
		if v, ok := params[seg.name]; ok {
			b.WriteString(fmt.Sprint(v))
			continue
		}
		b.WriteString(seg.literal)
	}
	return b.String()
}

type templateEntry struct {
	source string
	tmpl   *template
}

// templateCache is a bounded LRU of parsed templates.
type templateCache struct {
	capacity int
	items    map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex
}

func newTemplateCache(capacity int) *templateCache {
	return &templateCache{
		capacity: max(capacity, 1),
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
}

// get returns the parsed template for s, parsing and storing it on a miss.
func (c *templateCache) get(s string) *template {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[s]; ok {
		c.eviction.MoveToFront(elem)
		return elem.Value.(*templateEntry).tmpl
	}

	t := parseTemplate(s)
	c.items[s] = c.eviction.PushFront(&templateEntry{source: s, tmpl: t})

	if c.eviction.Len() > c.capacity {
		oldest := c.eviction.Back()
		c.eviction.Remove(oldest)
		delete(c.items, oldest.Value.(*templateEntry).source)
	}
	return t
}

func (c *templateCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}
