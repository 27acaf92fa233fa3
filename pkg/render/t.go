package render

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/jcunliffe1/tolgee-go/pkg/resolver"
)

// KeyAttribute marks elements rendered with ElementWrap so in-context tools
// can find the key behind the text.
const KeyAttribute = "data-tolgee-key-only"

// Strategy controls the markup around a translated value.
type Strategy int

const (
	// ElementWrap wraps the value in a span carrying KeyAttribute.
	ElementWrap Strategy = iota
	// TextWrap writes plain text and lets the value carry invisible key markers.
	TextWrap
	// NoWrap writes plain text without any key information.
	NoWrap
)

// Translator is the part of the client T needs.
type Translator interface {
	Translate(ctx context.Context, req resolver.Request) (string, error)
	Instant(req resolver.Request) string
}

// Props describe one translated text.
// With KeyName empty, Key is the translation key. With KeyName set, KeyName
// is the key and Key serves as the default value unless Default is given.
type Props struct {
	Key      string
	KeyName  string
	Default  string
	Params   resolver.Params
	Strategy Strategy
	OrEmpty  bool
}

// Request builds the lookup for p.
func (p Props) Request() resolver.Request {
	req := resolver.Request{
		Key:          p.Key,
		Params:       p.Params,
		DefaultValue: p.Default,
		NoWrap:       p.Strategy != TextWrap,
		OrEmpty:      p.OrEmpty,
	}
	if p.KeyName != "" {
		req.Key = p.KeyName
		if req.DefaultValue == "" {
			req.DefaultValue = p.Key
		}
	}
	return req
}

// T renders a translation. It waits for the needed bundles within the render
// context and falls back to whatever is loaded if that fails.
//
// A server render happens once, so T differs from a client-side component
// that first renders empty and fills in later: there is no empty first pass,
// and after a failed fetch the fallback Instant lookup uses the same request,
// so Default (or Key with KeyName) is shown rather than nothing.
func T(tr Translator, p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		req := p.Request()

		value, err := tr.Translate(ctx, req)
		if err != nil {
			value = tr.Instant(req)
		}

		if p.Strategy == ElementWrap {
			_, err = io.WriteString(w, `<span `+KeyAttribute+`="`+templ.EscapeString(req.Key)+`">`+
				templ.EscapeString(value)+`</span>`)
			return err
		}
		_, err = io.WriteString(w, templ.EscapeString(value))
		return err
	})
}
