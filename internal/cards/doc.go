// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cards renders the typed slices of a dashboard payload as text
// cards: the session block, budget pay summary, refund message and order
// details. Renderers are pure; they only read the payload and the Formatter's
// locale, time zone and colour settings.
package cards
