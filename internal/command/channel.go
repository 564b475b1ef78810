// Package command provides the rendezvous hand-off between callers and the
// playback worker.
package command

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Send and Receive once the channel is closed.
var ErrClosed = errors.New("command channel closed")

// Command is a unit of work for the worker: the raw track URI.
type Command string

// Channel is a zero-capacity channel carrying commands from any number of
// senders to a single receiver. Send returns only once the receiver has taken
// the command.
//
// Unlike a bare Go channel, closing never panics a blocked sender: the
// underlying channel is never closed, only the done signal is.
type Channel struct {
	ch        chan Command
	done      chan struct{}
	closeOnce sync.Once
}

// New creates an open channel.
func New() *Channel {
	return &Channel{
		ch:   make(chan Command),
		done: make(chan struct{}),
	}
}

// Send blocks until the receiver accepts cmd, the channel is closed, or ctx
// is done.
func (c *Channel) Send(ctx context.Context, cmd Command) error {
	// Check closure first so a closed channel never races a ready receiver.
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.ch <- cmd:
		return nil
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive blocks until a command arrives, the channel is closed, or ctx is
// done.
func (c *Channel) Receive(ctx context.Context) (Command, error) {
	select {
	case cmd := <-c.ch:
		return cmd, nil
	case <-c.done:
		return "", ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close closes the channel. Pending and future calls return ErrClosed.
// Safe to call more than once.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// Done is closed when the channel is closed.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Sender is the send side handed to callers.
type Sender interface {
	Send(ctx context.Context, cmd Command) error
}

// Receiver is the receive side owned by the worker.
type Receiver interface {
	Receive(ctx context.Context) (Command, error)
}

// Verify Channel implements both sides at compile time.
var (
	_ Sender   = (*Channel)(nil)
	_ Receiver = (*Channel)(nil)
)
