// Package langdetect chooses an initial language from an Accept-Language
// value, using golang.org/x/text/language matching.
//
//	lang := langdetect.Detect(r.Header.Get("Accept-Language"), []string{"en", "cs"}, "en")
package langdetect
