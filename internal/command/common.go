// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cachedash/internal/cards"
	"github.com/staranto/cachedash/internal/client"
	"github.com/staranto/cachedash/internal/fetch"
	"github.com/staranto/cachedash/internal/history"
	"github.com/staranto/cachedash/internal/meta"
	"github.com/staranto/cachedash/internal/output"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// CommandBuilder constructs a cli.Command for the subcommands that talk to
// the backend using a consistent pattern. It wires metadata, adds the
// examples and global flags, and sets up validators.
type CommandBuilder struct {
	Name      string
	Aliases   []string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Examples  [][2]string
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (b *CommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      b.Name,
		Aliases:   b.Aliases,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		Metadata: map[string]any{
			"meta":     b.Meta,
			"examples": b.Examples,
		},
		Flags: append(b.Flags, append([]cli.Flag{
			newExamplesFlag(),
		}, NewGlobalFlags(b.Name)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if c.Bool("examples") {
				return ctx, nil
			}
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			m := GetMeta(c)
			if len(m.Args) > 1 {
				log.Debugf("Executing action for %v", m.Args[1:])
			}
			if ShortCircuitExamples(c, b.Examples) {
				return nil
			}
			return b.Action(ctx, c)
		},
	}
}

// GetExamples returns the usage examples a builder attached to cmd.
func GetExamples(cmd *cli.Command) [][2]string {
	if cmd == nil || cmd.Metadata == nil {
		return nil
	}
	ex, _ := cmd.Metadata["examples"].([][2]string)
	return ex
}

// ShortCircuitExamples prints the examples table when --examples is set and
// returns true so the caller can exit early.
func ShortCircuitExamples(cmd *cli.Command, examples [][2]string) bool {
	if cmd.Bool("examples") {
		output.DumpExamples(stdout(cmd), examples)
		return true
	}
	return false
}

// NewClient builds the backend client from --base-url.
func NewClient(cmd *cli.Command) *client.Client {
	return client.New(cmd.String("base-url"))
}

// NewFormatter builds the card formatter from --locale, --timezone and
// --color.
func NewFormatter(cmd *cli.Command) (*cards.Formatter, error) {
	return cards.NewFormatter(cmd.String("locale"), cmd.String("timezone"), cmd.Bool("color"))
}

// Lookup runs one lookup through a fetch controller and records the session
// identifier in the history on success.
func Lookup(ctx context.Context, f fetch.Fetcher, input string) (*fetch.Controller, error) {
	ctl := fetch.NewController(f)
	if err := ctl.Trigger(ctx, input); err != nil {
		return ctl, err
	}

	if err := history.Add(ctl.SessionID); err != nil {
		log.WithError(err).Warn("failed to record history")
	}
	return ctl, nil
}

// stdout is where command output goes. Tests point the root Writer at a
// buffer.
func stdout(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if root := cmd.Root(); root != nil && root.Writer != nil {
			return root.Writer
		}
	}
	return os.Stdout
}
