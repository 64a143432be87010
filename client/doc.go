// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is the Go client for the pollroom API, including the
polling sync loop.

# Client

Client wraps the HTTP surface with typed methods and a typed error set:

	c := &client.Client{BaseURL: "http://localhost:3322", GuestNickname: "zoe"}
	view, err := c.FetchSnapshot(ctx, "team-retro")
	if errors.Is(err, client.ErrBanned) {
		// stop polling; a ban is not transient
	}

# The Sync Loop

There is no push channel; clients converge on server state by re-fetching
the room snapshot. Poller runs that loop: an immediate fetch, then one
per tick, plus on-demand fetches via Kick after local mutations.

	p := client.NewPoller(c, "team-retro", 2*time.Second)
	go func() {
		for u := range p.Updates() {
			if u.Err != nil {
				continue // transient; next tick retries
			}
			render(u.Snapshot)
		}
	}()
	err := p.Run(ctx)

Responses are delivered in fetch order; a late response from an older
fetch is discarded so the rendered state never moves backwards. Run
returns when the context is cancelled or the loop is terminal (room
deleted, identity banned).
*/
package client
