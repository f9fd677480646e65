// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cachedash/internal/dashboard"
	"github.com/staranto/cachedash/internal/filters"
	"github.com/staranto/cachedash/internal/meta"
	"github.com/staranto/cachedash/internal/output"
)

const lookupUsage = "cachedash lookup <sessionId> [options]"

var lookupExamples = [][2]string{
	{"cachedash lookup abc-123", "Show the dashboard cards for a session"},
	{"cachedash lookup abc-123 -o tree --collapse-all", "Show the payload as a collapsed tree"},
	{"cachedash lookup abc-123 -o json --path cache_data.budgetpay", "Print one cache entry as JSON"},
	{"cachedash lookup abc-123 --filter 'OrderStatus~delivered'", "Only show delivered orders"},
	{"cachedash lookup abc-123 @billing", "Expand the lookup.billing argument set from the config file"},
}

// LookupCommandAction is the action handler for the "lookup" subcommand. It
// fetches the payload once and emits it per --output.
func LookupCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := ArgCountValidator(cmd, 1, lookupUsage); err != nil {
		return err
	}

	ctl, err := Lookup(ctx, NewClient(cmd), cmd.Args().First())
	if err != nil {
		return err
	}

	f, err := NewFormatter(cmd)
	if err != nil {
		return err
	}

	resp := ctl.Result
	if spec := cmd.String("filter"); spec != "" {
		resp = FilterOrders(resp, ctl.Raw, spec)
	}

	return output.Spit(stdout(cmd), ctl.Raw, resp, output.Options{
		Format:      cmd.String("output"),
		Path:        cmd.String("path"),
		Collapse:    cmd.StringSlice("collapse"),
		CollapseAll: cmd.Bool("collapse-all"),
		Color:       cmd.Bool("color"),
		Cards:       f,
	})
}

// FilterOrders returns a copy of resp holding only the orders that pass the
// filter spec. Candidates are read from the raw body so filter keys are the
// payload's own JSON keys.
func FilterOrders(resp *dashboard.Response, raw []byte, spec string) *dashboard.Response {
	if resp == nil || resp.CacheData.OrderDetails == nil {
		return resp
	}

	candidates := gjson.GetBytes(raw, "cache_data.orderdetails.value")
	kept := filters.Select(candidates, spec)
	log.Debugf("filter %q kept orders %v", spec, kept)

	all := resp.CacheData.OrderDetails.Value
	orders := make([]dashboard.Order, 0, len(kept))
	for _, i := range kept {
		if i < len(all) {
			orders = append(orders, all[i])
		}
	}

	env := *resp.CacheData.OrderDetails
	env.Value = orders
	out := *resp
	out.CacheData.OrderDetails = &env
	return &out
}

// LookupCommandBuilder constructs the cli.Command for "lookup", wiring
// metadata, flags, and action/validator handlers.
func LookupCommandBuilder(meta meta.Meta) *cli.Command {
	b := &CommandBuilder{
		Name:      "lookup",
		Aliases:   []string{"get"},
		Usage:     "fetch a cached session and print it",
		UsageText: lookupUsage,
		Examples:  lookupExamples,
		Meta:      meta,
		Action:    LookupCommandAction,
		Flags: []cli.Flag{
			NewOutputFlag("lookup"),
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "only emit the subtree at this path, e.g. cache_data.orderdetails.value[0]",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.StringSliceFlag{
				Name:  "collapse",
				Usage: "comma-separated tree paths to show collapsed",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("lookup.collapse", altsrc.StringSourcer(cfg.Source)),
				),
			},
			&cli.BoolFlag{
				Name:  "collapse-all",
				Usage: "show every tree container collapsed",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("lookup.collapse_all", altsrc.StringSourcer(cfg.Source)),
				),
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "comma-separated list of filters to apply to orders",
			},
		},
	}
	return b.Build()
}
