// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/pollroom/models"
)

// Update is one poll result: a fresh snapshot or the error that fetch
// produced. Exactly one of the fields is set.
type Update struct {
	Snapshot *models.RoomView
	Err      error
}

// Poller drives the sync loop for one room: fetch the snapshot
// immediately, then on every tick, then whenever Kick is called after a
// local mutation. Fetches run concurrently so a slow response never
// stalls the ticker; each fetch carries a sequence number and a
// response that arrives after a newer one has been delivered is
// discarded rather than rolling the viewer's state backwards.
type Poller struct {
	client   *Client
	slug     string
	interval time.Duration

	kick    chan struct{}
	updates chan Update

	seq       atomic.Uint64
	mu        sync.Mutex
	delivered uint64
}

// NewPoller creates a poller for the given room slug
func NewPoller(c *Client, slug string, interval time.Duration) *Poller {
	return &Poller{
		client:   c,
		slug:     slug,
		interval: interval,
		kick:     make(chan struct{}, 1),
		updates:  make(chan Update),
	}
}

// Updates delivers poll results in sequence order. Stop reading when
// Run returns; the channel is never closed.
func (p *Poller) Updates() <-chan Update {
	return p.updates
}

// Kick requests an immediate fetch, typically right after a mutation so
// the viewer sees its own write without waiting out the interval.
// Coalesces: kicking a poller that already has a pending kick is a no-op.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Run polls until the context is cancelled or the loop hits a terminal
// condition - the room is gone or this identity is banned. The terminal
// error is delivered on Updates and then returned.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	terminal := make(chan error, 1)

	p.launch(ctx, terminal)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-terminal:
			return err
		case <-ticker.C:
			p.launch(ctx, terminal)
		case <-p.kick:
			p.launch(ctx, terminal)
		}
	}
}

func (p *Poller) launch(ctx context.Context, terminal chan<- error) {
	seq := p.seq.Add(1)
	go func() {
		view, err := p.client.FetchSnapshot(ctx, p.slug)
		if err != nil && ctx.Err() != nil {
			return
		}

		p.mu.Lock()
		stale := seq <= p.delivered
		if !stale {
			p.delivered = seq
		}
		p.mu.Unlock()
		if stale {
			return
		}

		select {
		case p.updates <- Update{Snapshot: view, Err: err}:
		case <-ctx.Done():
			return
		}

		if isTerminal(err) {
			select {
			case terminal <- err:
			default:
			}
		}
	}()
}

// isTerminal reports whether an error ends the sync loop: re-polling
// cannot recover a deleted room or lift a ban.
func isTerminal(err error) bool {
	return errors.Is(err, ErrBanned) || errors.Is(err, ErrNotFound)
}
