package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/jcunliffe1/tolgee-go/pkg/dictionary"
	"github.com/jcunliffe1/tolgee-go/pkg/loader"
)

var (
	_ loader.Fetcher = (*FSSource)(nil)
	_ loader.Fetcher = Map(nil)
)

// extensions are tried in order for each language.
var extensions = []string{"json", "yaml", "yml"}

// FSSource reads <dir>/<lang>.<ext> files from a file system.
type FSSource struct {
	fsys fs.FS
	dir  string
}

// NewFSSource creates a source rooted at dir inside fsys.
// An empty dir means the root of fsys.
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{fsys: fsys, dir: dir}
}

// Fetch reads and flattens the file for lang.
func (s *FSSource) Fetch(ctx context.Context, lang string) (dictionary.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return dictionary.Bundle{}, err
	}
	if !fs.ValidPath(lang) || path.Base(lang) != lang {
		return dictionary.Bundle{}, fmt.Errorf("%w: invalid language %q", ErrBundleNotFound, lang)
	}

	for _, ext := range extensions {
		name := path.Join(s.dir, lang+"."+ext)
		content, err := fs.ReadFile(s.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return dictionary.Bundle{}, fmt.Errorf("read %s: %w", name, err)
		}

		parser := NewParserForFile(name)
		if parser == nil {
			return dictionary.Bundle{}, fmt.Errorf("%w: %s", ErrUnsupportedType, name)
		}
		doc, err := parser.Parse(ctx, content)
		if err != nil {
			return dictionary.Bundle{}, fmt.Errorf("parse %s: %w", name, err)
		}
		return BundleFor(doc, lang), nil
	}

	return dictionary.Bundle{}, fmt.Errorf("%w: %s in %s", ErrBundleNotFound, lang, s.dir)
}

// Map is an in-memory source keyed by language.
type Map map[string]dictionary.Bundle

func (m Map) Fetch(ctx context.Context, lang string) (dictionary.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return dictionary.Bundle{}, err
	}
	b, ok := m[lang]
	if !ok {
		return dictionary.Bundle{}, fmt.Errorf("%w: %s", ErrBundleNotFound, lang)
	}
	return b, nil
}
