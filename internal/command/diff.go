// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/staranto/cachedash/internal/differ"
	"github.com/staranto/cachedash/internal/meta"
)

const diffUsage = "cachedash diff <sessionIdA> <sessionIdB> [options]"

var diffExamples = [][2]string{
	{"cachedash diff abc-123 def-456", "Show how two cached sessions differ"},
	{"cachedash diff abc-123 def-456 --array-index", "Number array elements in the listing"},
}

// DiffCommandAction fetches both sessions concurrently and prints how the
// second payload differs from the first.
func DiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := ArgCountValidator(cmd, 2, diffUsage); err != nil {
		return err
	}

	c := NewClient(cmd)
	ids := cmd.Args().Slice()
	bodies := make([][]byte, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			res, err := c.Lookup(gctx, id)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			bodies[i] = res.Body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Debugf("fetched %d and %d bytes", len(bodies[0]), len(bodies[1]))

	out, err := differ.Diff(bodies[0], bodies[1], differ.Options{
		Color:          cmd.Bool("color"),
		ShowArrayIndex: cmd.Bool("array-index"),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout(cmd), out)
	return nil
}

// DiffCommandBuilder constructs the cli.Command for "diff".
func DiffCommandBuilder(meta meta.Meta) *cli.Command {
	b := &CommandBuilder{
		Name:      "diff",
		Usage:     "compare the cached payloads of two sessions",
		UsageText: diffUsage,
		Examples:  diffExamples,
		Meta:      meta,
		Action:    DiffCommandAction,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "array-index",
				Usage: "prefix array elements with their index",
			},
		},
	}
	return b.Build()
}
