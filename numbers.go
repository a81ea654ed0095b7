// Package numbers produces lazy integer sequences that announce each value
// before handing it over, and drives them to completion.
package numbers

import (
	"fmt"
	"iter"
	"log/slog"
	"math"
)

// DefaultBound is the bound the numbers command counts to.
const DefaultBound = 20

type State int

const (
	Ready State = iota
	Exhausted
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Counter produces 1..n inclusive, one value per call to Next. Each value
// is announced on the publisher before it is returned. A Counter cannot be
// restarted.
type Counter struct {
	current   int
	n         int
	publisher *Publisher
	logger    *slog.Logger
	err       error
	// done is set when the cursor cannot advance past math.MaxInt
	done bool
}

type CounterOption func(*Counter)

func WithPublisher(p *Publisher) CounterOption {
	return func(c *Counter) {
		c.publisher = p
	}
}

func WithLogger(logger *slog.Logger) CounterOption {
	return func(c *Counter) {
		c.logger = logger
	}
}

// NewCounter returns a Counter bounded by n. A bound below 1 gives an empty
// sequence.
func NewCounter(n int, options ...CounterOption) *Counter {
	c := &Counter{
		current: 1,
		n:       n,
		logger:  discardLogger,
	}
	for _, option := range options {
		option(c)
	}
	if c.publisher == nil {
		c.publisher = NewPublisher("numbers")
	}
	return c
}

// Next announces and returns the next value. ok is false once the counter
// is exhausted, including after a failed announcement.
func (c *Counter) Next() (v int, ok bool) {
	if c.State() == Exhausted {
		return 0, false
	}
	v = c.current
	if err := c.publisher.Publish(fmt.Sprintf("yielding number: %d", v)); err != nil {
		c.err = fmt.Errorf("announce %d: %w", v, err)
		c.logger.Debug("counter stopped", "current", v, "err", err)
		return 0, false
	}
	if c.current == math.MaxInt {
		c.done = true
	} else {
		c.current++
	}
	if c.State() == Exhausted {
		c.logger.Debug("counter exhausted", "bound", c.n)
	}
	return v, true
}

// All ranges over the remaining values. Ranging again continues where the
// previous loop stopped.
func (c *Counter) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for {
			v, ok := c.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

func (c *Counter) State() State {
	if c.done || c.err != nil || c.current > c.n {
		return Exhausted
	}
	return Ready
}

// Current is the value the next call to Next will produce.
func (c *Counter) Current() int {
	return c.current
}

func (c *Counter) Err() error {
	return c.err
}

// Count is shorthand for NewCounter(n, options...).All().
func Count(n int, options ...CounterOption) iter.Seq[int] {
	return NewCounter(n, options...).All()
}
