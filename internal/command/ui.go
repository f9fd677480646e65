// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	tea "github.com/charmbracelet/bubbletea"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cachedash/internal/history"
	"github.com/staranto/cachedash/internal/meta"
	"github.com/staranto/cachedash/internal/tui"
)

const uiUsage = "cachedash ui [sessionId] [options]"

var uiExamples = [][2]string{
	{"cachedash ui", "Open the interactive dashboard"},
	{"cachedash ui abc-123", "Open the dashboard and look up a session straight away"},
}

// runProgram runs the Bubble Tea program. Tests replace it.
var runProgram = func(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// UICommandAction opens the interactive dashboard.
func UICommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		return fmt.Errorf("expected at most 1 argument. usage: %s", uiUsage)
	}
	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return errors.New("ui requires a terminal")
	}

	f, err := NewFormatter(cmd)
	if err != nil {
		return err
	}

	m := tui.New(tui.Config{
		Context:     ctx,
		Fetcher:     NewClient(cmd),
		Cards:       f,
		Color:       cmd.Bool("color"),
		ExportDir:   cmd.String("dir"),
		Suggestions: history.SessionIDs(int(cmd.Int("suggestions"))),
		SessionID:   cmd.Args().First(),
		OnSuccess: func(sid string) {
			if err := history.Add(sid); err != nil {
				log.WithError(err).Warn("failed to record history")
			}
		},
	})

	if err := runProgram(ctx, m); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

// UICommandBuilder constructs the cli.Command for "ui".
func UICommandBuilder(meta meta.Meta) *cli.Command {
	b := &CommandBuilder{
		Name:      "ui",
		Usage:     "interactive cache dashboard",
		UsageText: uiUsage,
		Examples:  uiExamples,
		Meta:      meta,
		Action:    UICommandAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "directory downloads are written to",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("export.dir", altsrc.StringSourcer(cfg.Source)),
				),
				Value: ".",
			},
			&cli.IntFlag{
				Name:  "suggestions",
				Usage: "number of recent session IDs offered as suggestions",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("history.suggestions", altsrc.StringSourcer(cfg.Source)),
				),
				Value: 20,
			},
		},
	}
	return b.Build()
}
