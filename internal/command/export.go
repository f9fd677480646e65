// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cachedash/internal/aws"
	"github.com/staranto/cachedash/internal/export"
	"github.com/staranto/cachedash/internal/jsontree"
	"github.com/staranto/cachedash/internal/meta"
)

const exportUsage = "cachedash export <sessionId> [--dir DIR | --to s3://bucket/prefix | --clipboard]"

var exportExamples = [][2]string{
	{"cachedash export abc-123", "Write cache-data-abc-123.json to the current directory"},
	{"cachedash export abc-123 --dir ~/exports", "Write the payload to another directory"},
	{"cachedash export abc-123 --to s3://bucket/cache", "Upload the payload to S3"},
	{"cachedash export abc-123 --clipboard", "Copy the pretty-printed payload"},
}

// newPutter builds the S3 uploader for --to. Tests replace it.
var newPutter = func(ctx context.Context, cmd *cli.Command) (export.Putter, error) {
	awsCfg, err := aws.LoadConfig(ctx,
		aws.WithProfile(cmd.String("profile")),
		aws.WithRegion(cmd.String("region")),
		aws.WithMaxAttempts(int(cmd.Int("max-retries"))),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var opts []func(*s3v2.Options)
	if ep := cmd.String("endpoint"); ep != "" {
		opts = append(opts, aws.WithEndpoint(ep))
	}
	return aws.NewS3(awsCfg, opts...), nil
}

// ExportCommandAction is the action handler for the "export" subcommand. It
// fetches the payload and copies, downloads or uploads it.
func ExportCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := ArgCountValidator(cmd, 1, exportUsage); err != nil {
		return err
	}
	if cmd.Bool("clipboard") && cmd.String("to") != "" {
		return errors.New("--clipboard and --to are mutually exclusive")
	}

	ctl, err := Lookup(ctx, NewClient(cmd), cmd.Args().First())
	if err != nil {
		return err
	}

	v, err := jsontree.Parse(ctl.Raw)
	if err != nil {
		return err
	}

	w := stdout(cmd)

	switch {
	case cmd.Bool("clipboard"):
		if err := export.Copy(v); err != nil {
			return err
		}
		fmt.Fprintln(w, "Copied to clipboard")

	case cmd.String("to") != "":
		loc, err := aws.ParseLocation(cmd.String("to"))
		if err != nil {
			return err
		}
		p, err := newPutter(ctx, cmd)
		if err != nil {
			return err
		}
		url, err := export.Upload(ctx, p, loc, v)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, url)

	default:
		path, err := export.Download(cmd.String("dir"), v)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, path)
	}

	return nil
}

// ExportCommandBuilder constructs the cli.Command for "export".
func ExportCommandBuilder(meta meta.Meta) *cli.Command {
	b := &CommandBuilder{
		Name:      "export",
		Usage:     "save a cached session payload as pretty JSON",
		UsageText: exportUsage,
		Examples:  exportExamples,
		Meta:      meta,
		Action:    ExportCommandAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "directory to write the export to",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("export.dir", altsrc.StringSourcer(cfg.Source)),
				),
				Value: ".",
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "upload to s3://bucket/prefix instead of writing a file",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("export.to", altsrc.StringSourcer(cfg.Source)),
				),
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator, S3Validator)
				},
			},
			&cli.BoolFlag{
				Name:  "clipboard",
				Usage: "copy to the clipboard instead of writing a file",
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "AWS shared config profile for --to",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("export.s3.profile", altsrc.StringSourcer(cfg.Source)),
				),
			},
			&cli.StringFlag{
				Name:  "region",
				Usage: "AWS region for --to",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("export.s3.region", altsrc.StringSourcer(cfg.Source)),
				),
			},
			&cli.StringFlag{
				Name:   "endpoint",
				Usage:  "S3 compatible endpoint for --to",
				Hidden: true,
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("CACHEDASH_S3_ENDPOINT"),
					yaml.YAML("export.s3.endpoint", altsrc.StringSourcer(cfg.Source)),
				),
			},
			&cli.IntFlag{
				Name:   "max-retries",
				Usage:  "maximum S3 upload attempts",
				Hidden: true,
				Sources: cli.NewValueSourceChain(
					yaml.YAML("export.s3.max_retries", altsrc.StringSourcer(cfg.Source)),
				),
				Value: 3,
			},
		},
	}
	return b.Build()
}
