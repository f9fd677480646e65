// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package history remembers recently looked up session identifiers so the
// interactive dashboard can offer them as suggestions. It is off unless
// CACHEDASH_HISTORY or the history.enabled config key turns it on.
package history
