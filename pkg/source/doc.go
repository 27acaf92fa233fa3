// Package source provides bundle fetchers for the loader package.
//
// HTTPSource downloads translations from the Tolgee REST API; FSSource reads
// <dir>/<lang>.json, .yaml or .yml files from any fs.FS, including embed.FS and
// os.DirFS; Map serves bundles held in memory.
//
// Documents are keyed by language at the top level and may nest keys freely:
//
//	{"cs": {"menu": {"open": "Otevřít"}}}
//
// Nested keys are flattened with "." so the example above yields the key
// "menu.open". Files read by FSSource may also omit the language root.
//
// Basic usage:
//
//	src, err := source.NewHTTPSource("https://app.tolgee.io", apiKey)
//	if err != nil {
//		return err
//	}
//	bundle, err := src.Fetch(ctx, "cs")
package source
