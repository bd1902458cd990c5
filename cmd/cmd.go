// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// credentialFlags are shared by every command that talks to the osu! API.
func credentialFlags(r *Runner) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "client-id",
			Usage: "osu! OAuth client id (or OSU_CLIENT_ID)",
			Value: r.config.ClientID,
		},
		&cli.StringFlag{
			Name:  "client-secret",
			Usage: "osu! OAuth client secret (or OSU_CLIENT_SECRET)",
			Value: r.config.ClientSecret,
		},
	}
}

// fetchFlags configure the score fetch shared by sync and scores.
func fetchFlags(r *Runner) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "user",
			Aliases: []string{"u"},
			Usage:   "osu! numeric user id (or OSU_USER_ID)",
			Value:   r.config.UserID,
		},
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage:   "Game mode: osu, taiko, fruits, mania",
			Value:   r.config.Mode,
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Number of top plays to fetch (upstream caps near 200)",
			Value:   r.config.Limit,
		},
	}
}

// syncCommand runs the full fetch → extract → download pipeline.
func syncCommand(r *Runner) *cli.Command {
	flags := append(credentialFlags(r), fetchFlags(r)...)
	flags = append(flags,
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Output directory for .osz archives (or OSU_OUT_DIR)",
			Value:   r.config.OutDir,
		},
	)

	return &cli.Command{
		Name:   "sync",
		Usage:  "Fetch top plays and download their beatmapsets",
		Flags:  flags,
		Action: r.Sync,
	}
}

// scoresCommand fetches and prints top plays without downloading anything.
func scoresCommand(r *Runner) *cli.Command {
	flags := append(credentialFlags(r), fetchFlags(r)...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	)

	return &cli.Command{
		Name:   "scores",
		Usage:  "List a user's top plays",
		Flags:  flags,
		Action: r.Scores,
	}
}

// tuiCommand prompts for the run configuration interactively.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Configure and run a sync through interactive prompts",
		Action:  r.TUI,
	}
}
