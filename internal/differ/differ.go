// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// NoDifferences is printed when both payloads are equal.
const NoDifferences = "no differences"

// Options controls the diff listing.
type Options struct {
	Color bool
	// ShowArrayIndex prefixes array elements with their index.
	ShowArrayIndex bool
}

// Diff compares left against right. Both must be JSON objects. It returns the
// listing, or NoDifferences when they are equal.
func Diff(left, right []byte, opts Options) (string, error) {
	d, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return "", fmt.Errorf("failed to compare payloads: %w", err)
	}

	if !d.Modified() {
		return NoDifferences, nil
	}
	log.Debugf("payloads differ in %d top level deltas", len(d.Deltas()))

	var leftObj map[string]interface{}
	if err := json.Unmarshal(left, &leftObj); err != nil {
		return "", fmt.Errorf("failed to decode left payload: %w", err)
	}

	f := formatter.NewAsciiFormatter(leftObj, formatter.AsciiFormatterConfig{
		ShowArrayIndex: opts.ShowArrayIndex,
		Coloring:       opts.Color,
	})
	out, err := f.Format(d)
	if err != nil {
		return "", fmt.Errorf("failed to format diff: %w", err)
	}
	return out, nil
}
