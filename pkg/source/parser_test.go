package source_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcunliffe1/tolgee-go/pkg/source"
)

func TestNewParserForFile(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &source.JSONParser{}, source.NewParserForFile("cs.json"))
	assert.IsType(t, &source.YAMLParser{}, source.NewParserForFile("cs.YAML"))
	assert.IsType(t, &source.YAMLParser{}, source.NewParserForFile("dir/cs.yml"))
	assert.Nil(t, source.NewParserForFile("cs.po"))
	assert.Nil(t, source.NewParserForFile("cs"))
}

func TestParsers_SupportsFileExtension(t *testing.T) {
	t.Parallel()

	assert.True(t, source.NewJSONParser().SupportsFileExtension(".json"))
	assert.True(t, source.NewJSONParser().SupportsFileExtension("JSON"))
	assert.False(t, source.NewJSONParser().SupportsFileExtension("yaml"))
	assert.True(t, source.NewYAMLParser().SupportsFileExtension("yml"))
	assert.True(t, source.NewYAMLParser().SupportsFileExtension(".yaml"))
	assert.False(t, source.NewYAMLParser().SupportsFileExtension("json"))
}

func TestParsers_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.NewJSONParser().Parse(ctx, []byte(`{}`))
	assert.ErrorIs(t, err, source.ErrParsingCancelled)

	_, err = source.NewYAMLParser().Parse(ctx, []byte(`a: b`))
	assert.ErrorIs(t, err, source.ErrParsingCancelled)
}

func TestParsers_Invalid(t *testing.T) {
	t.Parallel()

	_, err := source.NewYAMLParser().Parse(context.Background(), []byte("a: [unclosed"))
	assert.ErrorIs(t, err, source.ErrFailedToParseYAML)

	doc, err := source.NewJSONParser().Parse(context.Background(), []byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestBundleFor(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"cs": map[string]any{"a": map[string]any{"b": "c"}},
	}
	assert.Equal(t, map[string]string{"a.b": "c"}, source.BundleFor(doc, "cs").Map())

	flat := map[string]any{"x": "y"}
	assert.Equal(t, map[string]string{"x": "y"}, source.BundleFor(flat, "cs").Map())
}
