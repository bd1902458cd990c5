package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/oszget/internal/mirror"
	"github.com/desertthunder/oszget/internal/osu"
	"github.com/desertthunder/oszget/internal/shared"
	"golang.org/x/time/rate"
)

// FailureFile is the fixed name of the failure log, written into the
// output directory when any download fails.
const FailureFile = "failed_downloads.txt"

// pause between successive mirror downloads
const downloadInterval = 200 * time.Millisecond

// ScoreSource fetches a user's best scores. Implemented by [osu.Client].
type ScoreSource interface {
	Authenticate(ctx context.Context) error
	TopScores(ctx context.Context, userID int, mode osu.Mode, total int) ([]osu.Score, error)
}

// Fetcher downloads a single beatmapset archive. Implemented by
// [mirror.Downloader].
type Fetcher interface {
	Fetch(ctx context.Context, ref osu.BeatmapsetRef, outDir string) mirror.Result
}

// SyncOpts contains configuration for a pipeline run.
type SyncOpts struct {
	UserID int      // osu! numeric user id
	Mode   osu.Mode // game mode
	Limit  int      // total-count ceiling for the score fetch
	OutDir string   // destination directory (default ".")
}

// SyncResult contains all data from a completed pipeline run.
type SyncResult struct {
	Scores      int             // scores fetched from the API
	Beatmapsets int             // unique beatmapsets in the batch
	Downloaded  int             // archives freshly saved
	Skipped     int             // archives already on disk
	Failed      []int           // failed beatmapset ids, in batch order
	Results     []mirror.Result // per-item outcomes, in batch order
	FailurePath string          // path of the failure log, empty when clean
}

// Engine defines the download pipeline operation.
type Engine interface {
	// Run performs a full fetch → extract → download pass.
	Run(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOpts) (*SyncResult, error)
}

// DownloadEngine implements Engine against the osu! API and the
// beatconnect mirror.
type DownloadEngine struct {
	source  ScoreSource
	fetcher Fetcher
	limiter *rate.Limiter
}

// NewDownloadEngine creates a DownloadEngine with the provided dependencies.
func NewDownloadEngine(source ScoreSource, fetcher Fetcher) *DownloadEngine {
	return &DownloadEngine{
		source:  source,
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Every(downloadInterval), 1),
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *DownloadEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run executes the pipeline. Authentication and score-fetch errors abort
// the run; download failures are accumulated and the batch continues.
func (e *DownloadEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOpts) (*SyncResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: score source not initialized", shared.ErrServiceUnavailable)
	}
	if e.fetcher == nil {
		return nil, fmt.Errorf("%w: downloader not initialized", shared.ErrServiceUnavailable)
	}
	if opts.UserID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", shared.ErrInvalidArgument)
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	e.sendProgress(progress, authenticatingUpdate())
	if err := e.source.Authenticate(ctx); err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchingScoresUpdate(opts.Mode, opts.Limit))
	scores, err := e.source.TopScores(ctx, opts.UserID, opts.Mode, opts.Limit)
	if err != nil {
		return nil, err
	}

	batch := osu.ExtractBeatmapsets(scores)
	result := &SyncResult{
		Scores:      len(scores),
		Beatmapsets: len(batch),
		Results:     make([]mirror.Result, 0, len(batch)),
	}
	e.sendProgress(progress, extractedUpdate(len(scores), len(batch)))

	for i, ref := range batch {
		if err := e.limiter.Wait(ctx); err != nil {
			return result, err
		}

		res := e.fetcher.Fetch(ctx, ref, opts.OutDir)
		result.Results = append(result.Results, res)

		switch res.Outcome {
		case mirror.Saved:
			result.Downloaded++
		case mirror.Skipped:
			result.Skipped++
		default:
			result.Failed = append(result.Failed, ref.ID)
		}

		e.sendProgress(progress, downloadUpdate(i+1, len(batch), res))
	}

	if len(result.Failed) > 0 {
		path := filepath.Join(opts.OutDir, FailureFile)
		if err := writeFailureFile(path, result.Failed); err != nil {
			return result, fmt.Errorf("run finished but failed to write failure log: %w", err)
		}
		result.FailurePath = path
	}

	return result, nil
}

// writeFailureFile writes failed beatmapset ids one per line.
func writeFailureFile(path string, ids []int) error {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(strconv.Itoa(id))
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}
