// Package mirror downloads beatmapset archives from the beatconnect mirror.
//
// # Download Contract
//
// [Downloader.Fetch] handles one beatmapset at a time and never panics or
// aborts a batch: every call returns a [Result] whose [Outcome] is one of
//
//   - [Saved] : 200 response with a non-empty body, written to disk
//   - [Skipped] : target file already exists, no network call issued
//   - [HTTPFailure] : non-200 status or empty body, nothing written
//   - [TransportError] : request-level failure, error message preserved
//
// The existence check makes re-runs after partial failure safe and
// resumable. Redirects are followed and requests time out after 60s.
//
// # Filenames
//
// Target paths take the form "<dir>/<id> - <title>.osz" where the title is
// passed through [SanitizeFilename]: characters illegal on common
// filesystems are stripped, whitespace runs collapse to a single space, and
// the result is trimmed and truncated to 180 characters. Sanitization is
// idempotent.
package mirror
