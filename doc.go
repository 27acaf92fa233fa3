// Package tolgee is a Go client core for the Tolgee localization platform.
//
// A Client keeps one bundle of translations per language, loads bundles on
// demand through a loader.Fetcher, resolves keys along a fallback chain, and
// notifies subscribers when the active language or a resolved translation
// changes. Rendering integrations build on top of it (see pkg/render).
//
// Basic Usage:
//
//	src, err := source.NewHTTPSource("https://app.tolgee.io", apiKey)
//	if err != nil {
//		return err
//	}
//	c := tolgee.New(src,
//		tolgee.WithLanguage("cs"),
//		tolgee.WithFallbackLanguage("en"),
//	)
//
//	// Never blocks. Before the bundle arrives this yields the default value.
//	title := c.Instant(resolver.Request{Key: "title", DefaultValue: "Welcome"})
//
//	// Waits for the bundles the key depends on.
//	title, err = c.Translate(ctx, resolver.Request{Key: "title"})
//
// Lookups:
//
// A key is looked up in the active language first, then in the fallback.
// A language that is still loading is never skipped, so a fallback value is
// not shown while the primary bundle is on its way. Without a translation the
// request's DefaultValue is used, then the empty string if OrEmpty is set, and
// finally the key itself. Placeholders like {name} or {0} are filled from
// Params; unknown placeholders are left as written.
//
// Events:
//
//	sub := c.OnLangChange(func() { rerender() })
//	defer sub.Unsubscribe()
//
//	c.OnTranslationChange(func(ch tolgee.TranslationChange) {
//		rerenderKey(ch.Key)
//	})
//
// Callbacks never run concurrently with each other. Events are queued in the
// order they happen and delivered by the goroutine that caused the first of
// them: the SetLanguage caller, or the fetch goroutine when a bundle arrives.
// When no delivery is in progress, SetLanguage returns after its subscribers
// ran. Callbacks may call back into the Client; events they cause are
// delivered right after them on the same goroutine.
//
// Configuration:
//
// NewFromConfig builds a client from Config, which LoadConfig fills from
// TOLGEE_* environment variables and an optional .env file.
package tolgee
