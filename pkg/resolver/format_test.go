package resolver_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcunliffe1/tolgee-go/pkg/resolver"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	r := resolver.New()

	tests := []struct {
		name   string
		tmpl   string
		params resolver.Params
		want   string
	}{
		{"plain", "Hello", nil, "Hello"},
		{"named", "Hello, {name}!", resolver.Params{"name": "Jana"}, "Hello, Jana!"},
		{"positional", "{0} of {1}", resolver.Args(3, 10), "3 of 10"},
		{"spaces and format hint", "{ count, number } items", resolver.Params{"count": 5}, "5 items"},
		{"missing param kept", "Hello, {name}!", resolver.Params{}, "Hello, {name}!"},
		{"nil params", "Hello, {name}!", nil, "Hello, {name}!"},
		{"partially missing", "{a} and {b}", resolver.Params{"a": "x"}, "x and {b}"},
		{"repeated", "{a}{a}", resolver.Params{"a": "z"}, "zz"},
		{"unbalanced braces", "{ not closed", resolver.Params{"not": "x"}, "{ not closed"},
		{"empty", "", resolver.Params{"a": 1}, ""},
		{"unicode", "Ahoj {jméno}", resolver.Params{"jméno": "x"}, "Ahoj {jméno}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Format(tt.tmpl, tt.params))
		})
	}
}

func TestFormat_SmallCache(t *testing.T) {
	t.Parallel()

	r := resolver.New(resolver.WithTemplateCacheSize(2))
	for i := range 10 {
		tmpl := fmt.Sprintf("value %d is {v}", i)
		assert.Equal(t, fmt.Sprintf("value %d is ok", i), r.Format(tmpl, resolver.Params{"v": "ok"}))
	}
	// Evicted templates are parsed again.
	assert.Equal(t, "value 0 is again", r.Format("value 0 is {v}", resolver.Params{"v": "again"}))
}
