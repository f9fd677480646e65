// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cachedash/internal/config"
	"github.com/staranto/cachedash/internal/history"
	"github.com/staranto/cachedash/internal/meta"
)

// HistoryCommandAction lists recently looked up session identifiers.
func HistoryCommandAction(ctx context.Context, cmd *cli.Command) error {
	if !history.Enabled() {
		return fmt.Errorf("history is disabled. Set CACHEDASH_HISTORY=1 or history.enabled in %s", config.FileName)
	}

	w := stdout(cmd)
	for _, e := range history.Recent(int(cmd.Int("limit"))) {
		if cmd.Bool("plain") {
			fmt.Fprintln(w, e.SessionID)
			continue
		}
		fmt.Fprintf(w, "%-40s %s\n", e.SessionID, humanize.Time(e.Used))
	}
	return nil
}

// HistoryCommandBuilder constructs the cli.Command for "history".
func HistoryCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "history",
		Usage:     "list recently looked up session IDs",
		UsageText: "cachedash history [--limit N] [--plain]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "maximum entries to list",
				Value:   20,
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "only print the IDs",
			},
		},
		Action: HistoryCommandAction,
	}
}
