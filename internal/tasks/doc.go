// Package tasks orchestrates the download pipeline with real-time progress reporting.
//
// # Pipeline
//
// [DownloadEngine.Run] drives the four stages in sequence:
//
//  1. Authenticate against the osu! API (client-credentials grant)
//  2. Fetch the user's best scores, paginated
//  3. Extract the deduplicated beatmapset batch
//  4. Download each archive from the mirror, paced at one per 200ms
//
// Authentication and fetch failures are fatal and returned; per-download
// failures are recorded in the [SyncResult] and, when any exist, written
// one id per line to failed_downloads.txt inside the output directory for
// a later re-run. The downloader's existence check makes re-runs safe.
//
// # Progress Reporting
//
// Operations emit [ProgressUpdate] values over a channel using select with
// default, so reporting never blocks execution.
//
// # Implementation
//
// [DownloadEngine] depends on two small interfaces, [ScoreSource]
// (implemented by osu.Client) and [Fetcher] (implemented by
// mirror.Downloader), which keeps the pipeline testable without a network.
package tasks
