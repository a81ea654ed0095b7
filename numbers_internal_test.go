package numbers

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCounter_ExhaustsAtMaxInt(t *testing.T) {
	t.Parallel()
	var messages []Message
	c := NewCounter(math.MaxInt, WithPublisher(NewPublisher("p", WithInMemoryTransport(&messages))))
	c.current = math.MaxInt - 1

	var got []int
	for v := range c.All() {
		got = append(got, v)
	}
	want := []int{math.MaxInt - 1, math.MaxInt}
	if !cmp.Equal(got, want) {
		t.Error(cmp.Diff(want, got))
	}
	if c.State() != Exhausted {
		t.Errorf("got %v, want exhausted", c.State())
	}
	if v, ok := c.Next(); ok {
		t.Errorf("exhausted counter produced %d", v)
	}
	if len(messages) != 2 {
		t.Errorf("want 2 announcements, got %d", len(messages))
	}
}
