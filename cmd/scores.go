package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/oszget/internal/osu"
	"github.com/desertthunder/oszget/internal/shared"
	"github.com/urfave/cli/v3"
)

// Scores fetches and prints a user's top plays without downloading.
func (r *Runner) Scores(ctx context.Context, cmd *cli.Command) error {
	clientID, clientSecret, err := r.credentials(cmd)
	if err != nil {
		return err
	}

	userID := cmd.Int("user")
	if userID <= 0 {
		return fmt.Errorf("%w: user id is required (--user or %s)", shared.ErrInvalidArgument, shared.EnvUserID)
	}

	mode := osu.ParseMode(cmd.String("mode"))
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	source, err := r.resolveSource(clientID, clientSecret)
	if err != nil {
		return err
	}

	r.logger.Info("listing top plays", "user", userID, "mode", mode, "limit", limit)

	if err := source.Authenticate(ctx); err != nil {
		return err
	}

	scores, err := source.TopScores(ctx, userID, mode, limit)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(scores, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Top %s plays for user %d", mode, userID))
	for i, s := range scores {
		title := fmt.Sprintf("beatmapset %d", beatmapsetID(s))
		if s.Beatmapset != nil {
			title = fmt.Sprintf("%s - %s", s.Beatmapset.Artist, s.Beatmapset.Title)
		}
		r.writePlain("%3d. %7.1fpp  %-2s %s\n", i+1, s.PP, s.Rank, title)
	}
	r.writePlain("\n%d scores\n", len(scores))

	return nil
}

func beatmapsetID(s osu.Score) int {
	if s.Beatmapset != nil {
		return s.Beatmapset.ID
	}
	if s.Beatmap != nil {
		return s.Beatmap.BeatmapsetID
	}
	return 0
}
