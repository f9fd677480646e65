// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cachedash/internal/command"
)

// Doc generator driven by the command tree itself:
// - docs/man/share/man1/cachedash-<cmd>.1 via md2man
// - docs/tldr/cachedash-<cmd>.md from the usage and examples

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	if err := os.MkdirAll(manOutDir, 0o755); err != nil {
		fatalf("creating man output dir: %v", err)
	}
	if err := os.MkdirAll(tldrOutDir, 0o755); err != nil {
		fatalf("creating tldr output dir: %v", err)
	}

	app, err := command.InitApp(context.Background(), []string{"cachedash"})
	if err != nil {
		fatalf("building commands: %v", err)
	}

	var processed int
	for _, cmd := range app.Commands {
		if cmd.Hidden {
			continue
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("cachedash-%s.1", cmd.Name))
		if err := writeFileIfChanged(manPath, md2man.Render([]byte(buildMarkdown(cmd))), writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", cmd.Name, err)
		}

		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("cachedash-%s.md", cmd.Name))
		if err := writeFileIfChanged(tldrPath, []byte(buildTLDR(cmd)), writeOnlyIfChanged); err != nil {
			fatalf("writing TLDR for %s: %v", cmd.Name, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no commands found")
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

type usager interface {
	GetUsage() string
}

type visibler interface {
	IsVisible() bool
}

// buildMarkdown renders the man page source for cmd in the section layout
// md2man expects.
func buildMarkdown(cmd *cli.Command) string {
	var b strings.Builder

	b.WriteString("# cachedash-" + cmd.Name + " 1\n\n")
	b.WriteString("## NAME\n\n")
	b.WriteString("cachedash-" + cmd.Name + " - " + cmd.Usage + "\n\n")

	b.WriteString("## SYNOPSIS\n\n")
	usage := cmd.UsageText
	if usage == "" {
		usage = "cachedash " + cmd.Name
	}
	b.WriteString("`" + usage + "`\n\n")

	if len(cmd.Aliases) > 0 {
		b.WriteString("## ALIASES\n\n")
		b.WriteString(strings.Join(cmd.Aliases, ", ") + "\n\n")
	}

	if len(cmd.Flags) > 0 {
		b.WriteString("## OPTIONS\n\n")
		for _, f := range cmd.Flags {
			if v, ok := f.(visibler); ok && !v.IsVisible() {
				continue
			}
			var names []string
			for _, n := range f.Names() {
				if len(n) == 1 {
					names = append(names, "-"+n)
				} else {
					names = append(names, "--"+n)
				}
			}
			b.WriteString("**" + strings.Join(names, ", ") + "**\n")
			if u, ok := f.(usager); ok && u.GetUsage() != "" {
				b.WriteString(": " + u.GetUsage() + "\n")
			}
			b.WriteString("\n")
		}
	}

	if exs := command.GetExamples(cmd); len(exs) > 0 {
		b.WriteString("## EXAMPLES\n\n")
		for _, ex := range exs {
			b.WriteString(ex[1] + ":\n\n")
			b.WriteString("    " + ex[0] + "\n\n")
		}
	}

	return b.String()
}

func buildTLDR(cmd *cli.Command) string {
	var b strings.Builder
	// Header
	b.WriteString("# cachedash-" + cmd.Name + "\n\n")
	if cmd.Usage != "" {
		b.WriteString("> " + strings.ToUpper(cmd.Usage[:1]) + cmd.Usage[1:] + ".\n")
	} else {
		b.WriteString("> cachedash " + cmd.Name + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/cachedash.\n\n")

	exs := command.GetExamples(cmd)
	if len(exs) == 0 {
		// Fallback examples
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`cachedash " + cmd.Name + " --help`\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + strings.TrimSpace(ex[1]) + ":\n\n")
		b.WriteString("`" + sanitizeCommand(ex[0]) + "`\n")
	}
	return b.String()
}

// sanitizeCommand compresses runs of whitespace.
func sanitizeCommand(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
