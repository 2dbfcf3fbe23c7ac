// Package download coordinates fetching extracted tracks to disk.
//
// The Manager takes one ExtractionResult and downloads every track in it:
//
//   - Track starts are staggered by a fixed delay so the delivery host is
//     never hit with a burst, with a bounded number of concurrent
//     transfers on top.
//   - Each transfer runs an ordered cascade of strategies (browser-like
//     headers, minimal headers, chunked ranged requests); the first one
//     that completes wins. The cascade is retried with exponential
//     cooldown on failure.
//   - Finished files are optionally ID3-tagged and cover art embedded;
//     a playlist file can be written next to the tracks.
//
// Progress is reported through a caller-supplied callback as
// ProgressEvent values; the aggregate Summary counts succeeded and
// failed tracks. A failed track never aborts the other tracks.
package download
