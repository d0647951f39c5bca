package ledger

import (
	"context"
	"sync"

	"github.com/sheikh-saqib/transactions-engine/internal/models"
)

// DefaultBufferSize is the inbound queue capacity used when none is configured
const DefaultBufferSize = 10

type command interface {
	isCommand()
}

type processCommand struct {
	tx    models.Transaction
	reply chan error
}

type snapshotCommand struct {
	reply chan []models.AccountSnapshot
}

func (processCommand) isCommand()  {}
func (snapshotCommand) isCommand() {}

// Actor serializes all access to a Ledger through one worker goroutine.
// Commands are handled strictly in submission order.
type Actor struct {
	commands chan command
	done     chan struct{}

	mu     sync.RWMutex // guards closed and sends on commands
	closed bool
}

// StartActor launches the worker with a bounded queue of bufferSize commands
func StartActor(bufferSize int) *Actor {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	a := &Actor{
		commands: make(chan command, bufferSize),
		done:     make(chan struct{}),
	}
	go a.run(NewLedger())
	return a
}

func (a *Actor) run(l *Ledger) {
	defer close(a.done)

	for cmd := range a.commands {
		switch c := cmd.(type) {
		case processCommand:
			c.reply <- l.Process(c.tx)
		case snapshotCommand:
			c.reply <- l.Snapshot()
		}
	}
}

func (a *Actor) send(ctx context.Context, cmd command) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return ErrActorClosed
	}

	select {
	case a.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit enqueues tx and returns a channel that receives the apply result.
// It blocks while the queue is full.
func (a *Actor) Submit(ctx context.Context, tx models.Transaction) (<-chan error, error) {
	reply := make(chan error, 1)
	if err := a.send(ctx, processCommand{tx: tx, reply: reply}); err != nil {
		return nil, err
	}
	return reply, nil
}

// Process submits tx and waits for its result
func (a *Actor) Process(ctx context.Context, tx models.Transaction) error {
	reply, err := a.Submit(ctx, tx)
	if err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the account table once every earlier submission has been applied
func (a *Actor) Snapshot(ctx context.Context) ([]models.AccountSnapshot, error) {
	reply := make(chan []models.AccountSnapshot, 1)
	if err := a.send(ctx, snapshotCommand{reply: reply}); err != nil {
		return nil, err
	}
	select {
	case rows := <-reply:
		return rows, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting commands and waits for queued ones to finish
func (a *Actor) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.commands)
	}
	a.mu.Unlock()

	<-a.done
}
