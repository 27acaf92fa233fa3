package source

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jcunliffe1/tolgee-go/pkg/dictionary"
)

// Parser decodes a translation document into a generic tree.
type Parser interface {
	// Parse decodes content. The root of the result is usually keyed by language.
	Parse(ctx context.Context, content []byte) (map[string]any, error)

	// SupportsFileExtension reports whether the parser handles ext,
	// with or without a leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser for filename based on its extension,
// or nil when the extension is not supported.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(fileExtension(filename)) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

func fileExtension(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx != -1 {
		return filename[idx+1:]
	}
	return ""
}

// JSONParser parses JSON documents.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, content []byte) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

// YAMLParser parses YAML documents.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content []byte) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

// languageRoot returns the subtree stored under lang, if the document has one.
func languageRoot(doc map[string]any, lang string) (map[string]any, bool) {
	switch v := doc[lang].(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			if s, ok := k.(string); ok {
				out[s] = val
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// BundleFor flattens the part of doc that belongs to lang.
// A document without a lang root is treated as the bundle itself.
func BundleFor(doc map[string]any, lang string) dictionary.Bundle {
	if root, ok := languageRoot(doc, lang); ok {
		return dictionary.Flatten(root)
	}
	return dictionary.Flatten(doc)
}
