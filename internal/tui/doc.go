// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package tui is the interactive cache dashboard: a session input, a loading
// indicator, an inline error line and a result area that shows the payload
// as cards or as a collapsible tree.
package tui
