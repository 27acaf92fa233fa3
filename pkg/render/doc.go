// Package render connects a tolgee client to templ and Datastar.
//
// T renders one translation as a templ component:
//
//	@render.T(client, render.Props{Key: "hello_world"})
//	@render.T(client, render.Props{KeyName: "welcome", Key: "Welcome!", Strategy: render.NoWrap})
//
// Live serves a Datastar stream that re-renders a component whenever the
// language or a translation changes:
//
//	mux.Handle("/live/greeting", render.Live(client, "#greeting", views.Greeting(client)))
package render
