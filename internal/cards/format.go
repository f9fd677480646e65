// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cards

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
)

// InvalidDate is shown in place of a timestamp that cannot be parsed.
const InvalidDate = "Invalid Date"

// Layouts are the Go time layouts used for one locale.
type Layouts struct {
	DateTime string
	Date     string
}

var (
	supportedLocales = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.German,
		language.French,
		language.Japanese,
	}

	localeLayouts = []Layouts{
		{DateTime: "1/2/2006, 3:04:05 PM", Date: "1/2/2006"},
		{DateTime: "02/01/2006, 15:04:05", Date: "02/01/2006"},
		{DateTime: "2.1.2006, 15:04:05", Date: "2.1.2006"},
		{DateTime: "02/01/2006 15:04:05", Date: "02/01/2006"},
		{DateTime: "2006/1/2 15:04:05", Date: "2006/1/2"},
	}

	localeMatcher = language.NewMatcher(supportedLocales)
)

// LayoutsFor returns the layouts of the supported locale closest to the BCP
// 47 tag. Unknown or malformed tags get en-US.
func LayoutsFor(locale string) Layouts {
	if strings.TrimSpace(locale) == "" {
		return localeLayouts[0]
	}
	tag, err := language.Parse(locale)
	if err != nil {
		log.Debugf("unparseable locale %q: %v", locale, err)
		return localeLayouts[0]
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(localeLayouts) {
		return localeLayouts[0]
	}
	return localeLayouts[idx]
}

// Timestamps arrive in whatever shape the backend stored them. Zoned forms
// are tried first; the rest are read in the formatter's location except for
// a bare date, which is UTC midnight.
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999Z0700",
		time.RFC1123Z,
		time.RFC1123,
	}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05.999999999",
		"01/02/2006 15:04:05",
		"1/2/2006 3:04:05 PM",
		"1/2/2006",
	}
)

// Formatter turns raw payload values into display text.
type Formatter struct {
	Layouts  Layouts
	Location *time.Location
	Color    bool
	Now      func() time.Time
}

// NewFormatter builds a Formatter for a locale tag and an IANA zone name. An
// empty zone selects the local zone.
func NewFormatter(locale, timezone string, color bool) (*Formatter, error) {
	loc := time.Local
	if tz := strings.TrimSpace(timezone); tz != "" {
		var err error
		if loc, err = time.LoadLocation(tz); err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
		}
	}
	return &Formatter{
		Layouts:  LayoutsFor(locale),
		Location: loc,
		Color:    color,
		Now:      time.Now,
	}, nil
}

func (f *Formatter) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

// ParseTime reads a timestamp in any of the accepted shapes.
func (f *Formatter) ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, f.location()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateTime formats s as a full date and time.
func (f *Formatter) DateTime(s string) string {
	t, ok := f.ParseTime(s)
	if !ok {
		return InvalidDate
	}
	return t.In(f.location()).Format(f.Layouts.DateTime)
}

// Date formats s as a date only.
func (f *Formatter) Date(s string) string {
	t, ok := f.ParseTime(s)
	if !ok {
		return InvalidDate
	}
	return t.In(f.location()).Format(f.Layouts.Date)
}

// Expiry describes an expiry time relative to now, e.g. "expires 6 days from
// now". It is empty when s cannot be parsed.
func (f *Formatter) Expiry(s string) string {
	t, ok := f.ParseTime(s)
	if !ok {
		return ""
	}
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	n := now()
	if t.After(n) {
		return "expires " + humanize.RelTime(t, n, "ago", "from now")
	}
	return "expired " + humanize.RelTime(t, n, "ago", "from now")
}

// Currency formats an amount with two decimals and a dollar sign.
func Currency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Quantity formats a count without a trailing fraction when it is whole.
func Quantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
