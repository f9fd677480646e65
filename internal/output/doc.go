// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package output emits a lookup result as cards, a tree or one of the
// machine readable formats.
package output
