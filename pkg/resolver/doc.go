// Package resolver resolves translation requests against a fallback chain of languages.
//
// Resolution walks the chain in order and uses the first loaded bundle that contains the
// key. A language that has not finished loading ends the walk, so a fallback never
// answers for a primary language that is merely late. Failed languages are skipped.
// When nothing matches, the default value is used, then the empty string for OrEmpty
// requests, then the key itself.
//
// Values are templates with {name} or positional {0} placeholders. Missing params leave
// the placeholder text in place rather than failing. Parsed templates are kept in a
// bounded LRU.
//
//	r := resolver.New()
//	res := r.Resolve(store, resolver.Request{
//		Key:    "welcome",
//		Params: resolver.Params{"name": "Jana"},
//	}, resolver.Chain("cs", "en"))
//
// NoWrap is not interpreted here; it is carried through to Result for the renderer.
package resolver
