package tui

import (
	"context"
	"fmt"
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/lumina/engine"
	"github.com/nathoo/lumina/types"
)

// Messages from the engine goroutine into the Update loop. Requests carry
// a buffered reply channel the model answers exactly once.
type (
	lineMsg struct {
		line types.Line
	}

	statusMsg struct {
		player types.Player
	}

	choiceRequestMsg struct {
		options []string
		reply   chan<- int
	}

	promptRequestMsg struct {
		question string
		reply    chan<- string
	}

	pauseRequestMsg struct {
		reply chan<- struct{}
	}

	// sessionEndMsg is sent once the engine's Run returns.
	sessionEndMsg struct {
		ending types.Ending
		err    error
	}
)

// Bridge implements engine.UI for an engine running on its own goroutine.
// Every call becomes a message to the Bubble Tea program; blocking calls
// wait for the model's reply.
type Bridge struct {
	send func(tea.Msg)
	done chan struct{}
	once sync.Once
}

var _ engine.UI = (*Bridge)(nil)

// NewBridge creates a bridge that delivers messages through send,
// usually (*tea.Program).Send.
func NewBridge(send func(tea.Msg)) *Bridge {
	return &Bridge{send: send, done: make(chan struct{})}
}

// Close unblocks any pending request with ErrInputAborted. Safe to call
// more than once.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.done) })
}

// Show sends one story line.
func (b *Bridge) Show(line types.Line) {
	b.send(lineMsg{line: line})
}

// Status sends a player snapshot. The engine already passes a copy; the
// inventory is cloned again so the model never shares a backing array.
func (b *Bridge) Status(p types.Player) {
	p.Inventory = slices.Clone(p.Inventory)
	b.send(statusMsg{player: p})
}

// Choose asks the model for a 0-based option index.
func (b *Bridge) Choose(ctx context.Context, options []string) (int, error) {
	reply := make(chan int, 1)
	b.send(choiceRequestMsg{options: slices.Clone(options), reply: reply})
	return wait(ctx, b.done, reply)
}

// Prompt asks the model for free text.
func (b *Bridge) Prompt(ctx context.Context, question string) (string, error) {
	reply := make(chan string, 1)
	b.send(promptRequestMsg{question: question, reply: reply})
	return wait(ctx, b.done, reply)
}

// Pause waits for the player to press ENTER.
func (b *Bridge) Pause(ctx context.Context) error {
	reply := make(chan struct{}, 1)
	b.send(pauseRequestMsg{reply: reply})
	_, err := wait(ctx, b.done, reply)
	return err
}

func wait[T any](ctx context.Context, done <-chan struct{}, reply <-chan T) (T, error) {
	var zero T
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: %w", engine.ErrInputAborted, ctx.Err())
	case <-done:
		return zero, engine.ErrInputAborted
	}
}
