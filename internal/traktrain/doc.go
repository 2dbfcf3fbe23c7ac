// Package traktrain extracts track metadata from traktrain.com pages.
//
// The site embeds track data inconsistently across page revisions, so the
// package recovers it with ordered cascades of fallback strategies:
//
//   - FindBaseContentURL locates the site-wide delivery prefix that every
//     relative track path is joined onto. Without it no track URL can be
//     constructed, so its absence fails an extraction immediately.
//   - Single-track pages run a four-step cascade: inline attribute JSON,
//     inline script patterns, DOM inference, and URL-structure inference.
//   - Profile pages run a three-step cascade: per-element attribute scan,
//     hydration-state payload probing, and a raw-HTML regex sweep.
//
// Strategies run strictly in priority order and the first structurally
// valid result wins; a later strategy is only consulted when every earlier
// one produced nothing. Malformed descriptors inside a strategy are logged
// and skipped, never fatal.
//
// The Extractor ties the cascades together with URL/artist resolution and
// produces a model.ExtractionResult:
//
//	extractor := traktrain.NewExtractor(client, logger)
//	result, err := extractor.Extract(ctx, traktrain.PageProfile, pageURL, html)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, track := range result.Tracks {
//	    fmt.Println(track.Name, track.URL)
//	}
//
// Each call is independent and stateless aside from reading the supplied
// page snapshot; nothing persists between extractions.
package traktrain
