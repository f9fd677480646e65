// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"context"
	"errors"

	"github.com/apex/log"

	"github.com/staranto/cachedash/internal/client"
	"github.com/staranto/cachedash/internal/dashboard"
)

// errNoResult is the cause recorded when a Fetcher reports success without a
// result.
var errNoResult = errors.New("lookup returned no result")

// Fetcher performs one lookup. *client.Client satisfies it.
type Fetcher interface {
	Lookup(ctx context.Context, sid string) (*client.Result, error)
}

// Ticket identifies one triggered request.
type Ticket struct {
	Generation uint64
	SessionID  string
}

// Outcome is what came back for a ticket.
type Outcome struct {
	Ticket Ticket
	Result *client.Result
	Err    error
}

// State is what the result area shows.
type State struct {
	Loading   bool
	Err       error
	Result    *dashboard.Response
	Raw       []byte
	SessionID string
}

// Controller owns the loading, error and result state of the lookup flow.
// It is not safe for concurrent use; Begin and Complete are meant to be
// called from the goroutine that owns the display state. Run touches no
// state and may be called from anywhere.
type Controller struct {
	State

	fetcher    Fetcher
	generation uint64
}

func NewController(f Fetcher) *Controller {
	return &Controller{fetcher: f}
}

// Begin validates input and, if it is usable, moves the controller into the
// loading state. A blank input sets the validation error, leaves any shown
// result in place and returns ok=false; no request must be made.
func (c *Controller) Begin(input string) (Ticket, bool) {
	sid, err := client.NormalizeSessionID(input)
	if err != nil {
		c.Err = err
		return Ticket{}, false
	}

	c.generation++
	c.Loading = true
	c.Err = nil
	c.Result = nil
	c.Raw = nil
	c.SessionID = sid

	log.WithField("generation", c.generation).Debugf("begin lookup for %q", sid)

	return Ticket{Generation: c.generation, SessionID: sid}, true
}

// Run issues the request for t.
func (c *Controller) Run(ctx context.Context, t Ticket) Outcome {
	res, err := c.fetcher.Lookup(ctx, t.SessionID)
	return Outcome{Ticket: t, Result: res, Err: err}
}

// Complete applies o unless a newer request has been started since o's
// ticket was issued. It reports whether o was applied.
func (c *Controller) Complete(o Outcome) bool {
	if o.Ticket.Generation != c.generation {
		log.WithField("generation", o.Ticket.Generation).Debug("discarding stale lookup")
		return false
	}

	c.Loading = false
	if o.Err == nil && (o.Result == nil || o.Result.Response == nil) {
		o.Err = &client.FetchError{Err: errNoResult}
	}
	if o.Err != nil {
		c.Err = o.Err
		c.Result = nil
		c.Raw = nil
		return true
	}

	c.Err = nil
	c.Result = o.Result.Response
	c.Raw = o.Result.Body
	return true
}

// Trigger runs a whole lookup on the calling goroutine and returns the error
// that was set, if any.
func (c *Controller) Trigger(ctx context.Context, input string) error {
	t, ok := c.Begin(input)
	if !ok {
		return c.Err
	}
	c.Complete(c.Run(ctx, t))
	return c.Err
}
