package numbers_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mr-joshcrane/numbers"
	"github.com/mr-joshcrane/numbers/store"
)

func TestReader_ReturnsOnlyNewMessages(t *testing.T) {
	t.Parallel()
	s := store.NewMemoryStore()
	p := numbers.NewPublisher("p1", numbers.WithStoreTransport(s), numbers.WithRun("r1"))
	r := numbers.NewReader("p1", s)

	if err := p.Publish("a", "b"); err != nil {
		t.Fatal(err)
	}
	got, err := r.NewMessages()
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(got, []string{"a", "b"}) {
		t.Error(cmp.Diff([]string{"a", "b"}, got))
	}

	if err := p.Publish("c"); err != nil {
		t.Fatal(err)
	}
	got, err = r.NewMessages()
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(got, []string{"c"}) {
		t.Error(cmp.Diff([]string{"c"}, got))
	}

	got, err = r.NewMessages()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("want nothing new, got %v", got)
	}
}

func TestReader_FiltersByRun(t *testing.T) {
	t.Parallel()
	s := store.NewMemoryStore()
	first := numbers.NewPublisher("p1", numbers.WithStoreTransport(s), numbers.WithRun("r1"))
	second := numbers.NewPublisher("p1", numbers.WithStoreTransport(s), numbers.WithRun("r2"))
	if err := numbers.Run(1, first); err != nil {
		t.Fatal(err)
	}
	if err := numbers.Run(2, second); err != nil {
		t.Fatal(err)
	}

	r := numbers.NewReader("p1", s)
	r.Run = "r2"
	got, err := r.NewMessages()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"yielding number: 1", "number received: 1", "",
		"yielding number: 2", "number received: 2", "",
	}
	if !cmp.Equal(got, want) {
		t.Error(cmp.Diff(want, got))
	}
}

func TestReader_KeepsRunsApart(t *testing.T) {
	t.Parallel()
	s := store.NewMemoryStore()
	first := numbers.NewPublisher("numbers", numbers.WithStoreTransport(s), numbers.WithRun("r1"))
	second := numbers.NewPublisher("numbers", numbers.WithStoreTransport(s), numbers.WithRun("r2"))
	if err := first.Publish("run1-a", "run1-b"); err != nil {
		t.Fatal(err)
	}
	if err := second.Publish("run2-a", "run2-b", "run2-c"); err != nil {
		t.Fatal(err)
	}

	r := numbers.NewReader("numbers", s)
	got, err := r.NewMessages()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"run1-a", "run1-b", "run2-a", "run2-b", "run2-c"}
	if !cmp.Equal(got, want) {
		t.Error(cmp.Diff(want, got))
	}

	if err := first.Publish("run1-c"); err != nil {
		t.Fatal(err)
	}
	got, err = r.NewMessages()
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(got, []string{"run1-c"}) {
		t.Error(cmp.Diff([]string{"run1-c"}, got))
	}
}
