package numbers

import (
	"fmt"
	"iter"
)

// Drive consumes seq, reporting each value on p followed by a blank line.
func Drive(seq iter.Seq[int], p *Publisher) error {
	for v := range seq {
		if err := p.Publish(fmt.Sprintf("number received: %d", v), ""); err != nil {
			return fmt.Errorf("report %d: %w", v, err)
		}
	}
	return nil
}

// Run counts to n on p and drives the count to the end.
func Run(n int, p *Publisher, options ...CounterOption) error {
	c := NewCounter(n, append([]CounterOption{WithPublisher(p)}, options...)...)
	if err := Drive(c.All(), p); err != nil {
		return err
	}
	return c.Err()
}
