// Package osu implements a client for the osu! v2 API.
//
// # Authentication
//
// [Client] authenticates with the OAuth2 client-credentials grant
// (scope "public") via [clientcredentials.Config], sending the client id
// and secret as form parameters. The token lives for the duration of the
// process and is attached as a bearer header on every request.
//
// # Score Fetching
//
// [Client.TopScores] pages through a user's best scores with limit/offset,
// 100 scores per page, pacing requests at one per 200ms via [rate.Limiter].
// The upstream API caps the total near 200 regardless of the requested
// ceiling, so fetching stops on the first empty page.
//
// # Extraction
//
// [ExtractBeatmapsets] reduces a score list to the ordered, deduplicated
// set of [BeatmapsetRef] values it references, preferring the embedded
// beatmapset object and falling back to the beatmap's beatmapset_id.
//
// # Error Handling
//
// Typed errors from the shared package:
//   - [shared.ErrAuthFailed] : token exchange failed or returned no token
//   - [shared.ErrNotAuthenticated] : TopScores called before Authenticate
//   - [shared.ErrAPIRequest] : non-2xx page response or a response body
//     that is not a JSON array (API contract violation)
package osu
