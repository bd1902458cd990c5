package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/oszget/internal/tasks"
	"github.com/desertthunder/oszget/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI gathers the run configuration through interactive prompts, then runs
// the same pipeline as the sync command.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	model := ui.NewFormModel(r.config)
	p := tea.NewProgram(model)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running prompt: %w", err)
	}

	form, ok := final.(ui.FormModel)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}

	if form.Aborted() {
		r.writePlain("Aborted.\n")
		return nil
	}

	values, err := form.Result()
	if err != nil {
		return err
	}

	source, err := r.resolveSource(values.ClientID, values.ClientSecret)
	if err != nil {
		return err
	}

	return r.runSync(ctx, source, tasks.SyncOpts{
		UserID: values.UserID,
		Mode:   values.Mode,
		Limit:  values.Limit,
		OutDir: values.OutDir,
	})
}
