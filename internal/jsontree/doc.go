// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package jsontree decodes arbitrary JSON documents into an ordered value tree
// and renders it as indented, collapsible lines keyed by collapse paths.
package jsontree
