// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cachedash/internal/output"
)

// GlobalFlagsValidator checks flag combinations that no single flag
// validator can see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.String("path") != "" && c.String("output") == "text" {
		return errors.New("--path requires --output tree, json, yaml, raw or leaves")
	}
	if c.String("filter") != "" && c.String("output") != "text" {
		return errors.New("--filter only applies to --output text")
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	if !slices.Contains(output.Formats, value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

// URLValidator requires an absolute http or https URL.
func URLValidator(value any) error {
	u, err := url.Parse(value.(string))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
}

// S3Validator requires an s3://bucket[/prefix] destination.
func S3Validator(value any) error {
	s := value.(string)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "s3://") || len(strings.Trim(strings.TrimPrefix(s, "s3://"), "/")) == 0 {
		return errors.New("must look like s3://bucket/prefix")
	}
	return nil
}

// ArgCountValidator returns an error unless cmd has exactly n positional args.
func ArgCountValidator(cmd *cli.Command, n int, usage string) error {
	if got := cmd.Args().Len(); got != n {
		return fmt.Errorf("expected %d argument(s), got %d. usage: %s", n, got, usage)
	}
	return nil
}
