package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/shared"
	"github.com/dokusho-app/dokusho/internal/ui"
)

// Browse launches the interactive terminal UI for reading saved articles.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	identity, err := models.ParseIdentity(cmd.String("user"))
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/dokusho-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.newManager(db), identity)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
