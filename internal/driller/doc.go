// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package driller resolves dotted and bracketed paths inside a JSON document.
// It is forgiving about single element arrays, which it steps through as if
// they were the element itself, so that filter keys stay short.
package driller
