// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// cachedash is the main package for the cachedash command line tool. It looks
// up the cached dashboard payload of a session and shows it as cards, a
// collapsible tree or plain data. It wires the CLI, delegates to internal
// packages, and serves as the entry point.
package main
