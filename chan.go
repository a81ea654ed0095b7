package numbers

import (
	"context"
	"iter"
)

// Chan runs seq on its own goroutine and delivers its values on the
// returned channel, which is closed once seq ends or ctx is done. The
// sequence must not be used elsewhere while the goroutine runs.
func Chan(ctx context.Context, seq iter.Seq[int]) <-chan int {
	ch := make(chan int)
	go func() {
		defer close(ch)
		for v := range seq {
			select {
			case ch <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
