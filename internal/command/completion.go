// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cachedash/internal/meta"
)

const bashCompletionScript = `# bash completion for cachedash
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_cachedash()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "lookup get export diff ui history completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--base-url -u --color -c --no-color --locale --timezone --examples"

    case "$cmd" in
        lookup|get)
            local opts="$common --output -o --path -p --collapse --collapse-all --filter -f"
            ;;
        export)
            local opts="$common --dir -d --to --clipboard --profile --region"
            ;;
        diff)
            local opts="$common --array-index"
            ;;
        ui)
            local opts="$common --dir -d --suggestions"
            ;;
        history)
            local opts="--limit -l --plain"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text tree json yaml raw leaves" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Session IDs come from the history when it is enabled.
    COMPREPLY=( $(compgen -W "$(cachedash history --plain 2>/dev/null)" -- "$cur") )
    return 0
}

complete -F _cachedash cachedash
`

const zshCompletionScript = `#compdef cachedash

_cachedash_sessions() {
  local -a ids
  ids=(${(f)"$(cachedash history --plain 2>/dev/null)"})
  _describe -t sessions 'session IDs' ids
}

_cachedash() {
  local -a cmds
  cmds=(
    'lookup:fetch a cached session and print it'
    'get:fetch a cached session and print it'
    'export:save a cached session payload as pretty JSON'
    'diff:compare the cached payloads of two sessions'
    'ui:interactive cache dashboard'
    'history:list recently looked up session IDs'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-u --base-url)'{-u,--base-url}'[base URL of the cache lookup service]:url'
  '(-c --color --no-color)'{-c,--color}'[enable colored output]'
  '--no-color[disable colored output]'
  '--locale[locale used to format dates]:locale'
  '--timezone[time zone used to format dates]:zone'
  '--examples[show usage examples]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'cachedash commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    lookup|get)
      _arguments -C \
        $common \
        '(-o --output)'{-o,--output}'[output format]:format:(text tree json yaml raw leaves)' \
        '(-p --path)'{-p,--path}'[subtree path]:path' \
        '--collapse[tree paths to collapse]:paths' \
        '--collapse-all[collapse every container]' \
        '(-f --filter)'{-f,--filter}'[order filters]:filters' \
        '1:session ID:_cachedash_sessions'
      ;;
    export)
      _arguments -C \
        $common \
        '(-d --dir)'{-d,--dir}'[export directory]:directory:_directories' \
        '--to[s3 destination]:url' \
        '--clipboard[copy to clipboard]' \
        '--profile[AWS profile]:profile' \
        '--region[AWS region]:region' \
        '1:session ID:_cachedash_sessions'
      ;;
    diff)
      _arguments -C \
        $common \
        '--array-index[number array elements]' \
        '1:session ID:_cachedash_sessions' \
        '2:session ID:_cachedash_sessions'
      ;;
    ui)
      _arguments -C \
        $common \
        '(-d --dir)'{-d,--dir}'[download directory]:directory:_directories' \
        '--suggestions[number of suggestions]:count' \
        '1:session ID:_cachedash_sessions'
      ;;
    history)
      _arguments '(-l --limit)'{-l,--limit}'[maximum entries]:count' '--plain[only IDs]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _cachedash cachedash
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := stdout(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(os.Stderr, "usage: cachedash completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "cachedash completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
