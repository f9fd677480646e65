// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/cachedash/internal/client"
	"github.com/staranto/cachedash/internal/config"
)

func init() {
	cfg, _ = config.Load("")
}

var cfg config.Type

// newExamplesFlag constructs the --examples flag. Each command gets its own
// instance since flags carry parse state.
func newExamplesFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "examples",
		Usage:       "show usage examples",
		HideDefault: true,
	}
}

// NewGlobalFlags returns the flags shared by every command that talks to the
// backend. params[0] is the command name, used as the config namespace.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	ns := params[0]

	flags = []cli.Flag{
		NewBaseURLFlag(ns),
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored output",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CACHEDASH_COLOR"),
				yaml.YAML(ns+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: isTerminal(os.Stdout),
		},
		&cli.StringFlag{
			Name:  "locale",
			Usage: "locale used to format dates, e.g. en-US or de",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CACHEDASH_LOCALE"),
				yaml.YAML(ns+"."+"locale", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("locale", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "en-US",
		},
		&cli.StringFlag{
			Name:  "timezone",
			Usage: "IANA time zone used to format dates. Defaults to local",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CACHEDASH_TZ"),
				yaml.YAML(ns+"."+"timezone", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("timezone", altsrc.StringSourcer(cfg.Source)),
			),
		},
	}

	return
}

// NewBaseURLFlag constructs the --base-url flag. The environment wins over
// the namespaced and global config file keys.
func NewBaseURLFlag(ns string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "base-url",
		Aliases: []string{"u"},
		Usage:   "base URL of the cache lookup service",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CACHEDASH_BASE_URL"),
		),
		Value: client.DefaultBaseURL,
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator, URLValidator)
		},
	}

	return NameSpacedValueChainFlagFromConfigFile(ns, "base_url", cfg.Source, flag)
}

// NewOutputFlag constructs the --output flag for commands that emit a payload.
func NewOutputFlag(ns string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (text, tree, json, yaml, raw, leaves)",
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"output", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
		),
		Value: "text",
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources for key to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, key string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec
}
