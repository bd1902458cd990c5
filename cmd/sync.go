package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/oszget/internal/osu"
	"github.com/desertthunder/oszget/internal/shared"
	"github.com/desertthunder/oszget/internal/tasks"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// Sync runs the full fetch → extract → download pipeline from flags and
// environment configuration.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	clientID, clientSecret, err := r.credentials(cmd)
	if err != nil {
		return err
	}

	userID := cmd.Int("user")
	if userID <= 0 {
		return fmt.Errorf("%w: user id is required (--user or %s)", shared.ErrInvalidArgument, shared.EnvUserID)
	}

	opts := tasks.SyncOpts{
		UserID: userID,
		Mode:   osu.ParseMode(cmd.String("mode")),
		Limit:  cmd.Int("limit"),
		OutDir: cmd.String("out"),
	}

	source, err := r.resolveSource(clientID, clientSecret)
	if err != nil {
		return err
	}

	return r.runSync(ctx, source, opts)
}

// runSync executes the engine and renders progress, per-item status lines,
// and the final summary. Shared by the flag-driven and interactive
// entry points.
func (r *Runner) runSync(ctx context.Context, source tasks.ScoreSource, opts tasks.SyncOpts) error {
	logger := shared.WithLogger(r.logger, "run", shared.GenerateID())
	logger.Info("starting sync", "user", opts.UserID, "mode", opts.Mode, "limit", opts.Limit, "out", opts.OutDir)

	engine := tasks.NewDownloadEngine(source, r.resolveFetcher())

	progressCh := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		var bar *progressbar.ProgressBar
		for update := range progressCh {
			switch update.Phase {
			case tasks.Download:
				if bar == nil {
					bar = progressbar.NewOptions(update.Total,
						progressbar.OptionSetWriter(os.Stderr),
						progressbar.OptionSetDescription("downloading"),
						progressbar.OptionShowCount(),
					)
				}
				r.writePlain("%s\n", update.Message)
				bar.Add(1)
			default:
				r.writePlain("%s\n", update.Message)
			}
		}
		if bar != nil {
			bar.Finish()
			fmt.Fprintln(os.Stderr)
		}
	}()

	result, err := engine.Run(ctx, progressCh, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Sync Complete")
	r.writePlain("Scores fetched: %d\n", result.Scores)
	r.writePlain("Unique beatmapsets: %d\n", result.Beatmapsets)
	r.writePlain("Downloaded: %d\n", result.Downloaded)
	r.writePlain("Already present: %d\n", result.Skipped)

	if len(result.Failed) > 0 {
		r.writePlain("\nFinished with %d failures (see %s)\n", len(result.Failed), result.FailurePath)
	} else {
		r.writePlain("\nFinished with no failures 🎉\n")
	}

	logger.Info("sync finished",
		"scores", result.Scores,
		"beatmapsets", result.Beatmapsets,
		"downloaded", result.Downloaded,
		"skipped", result.Skipped,
		"failed", len(result.Failed),
	)

	return nil
}
