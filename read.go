package numbers

import (
	"fmt"

	"github.com/mr-joshcrane/numbers/store"
)

// Reader follows a publisher's transcript in a store, returning only what
// it has not seen yet. A non-empty Run limits it to one run; otherwise
// every run is returned whole, in the order runs were first recorded.
type Reader struct {
	PublisherName string
	Run           string
	Store         store.Store

	// last Order seen, per run
	cursors map[string]int
}

func NewReader(publisherName string, s store.Store) *Reader {
	return &Reader{
		PublisherName: publisherName,
		Store:         s,
		cursors:       make(map[string]int),
	}
}

func (r *Reader) NewMessages() ([]string, error) {
	messages, err := r.Store.Messages(r.PublisherName)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.PublisherName, err)
	}
	if r.cursors == nil {
		r.cursors = make(map[string]int)
	}

	var runs []string
	byRun := make(map[string][]store.Message)
	for _, msg := range messages {
		if r.Run != "" && msg.Run != r.Run {
			continue
		}
		if _, ok := byRun[msg.Run]; !ok {
			runs = append(runs, msg.Run)
		}
		byRun[msg.Run] = append(byRun[msg.Run], msg)
	}

	var newMessages []string
	for _, run := range runs {
		for _, msg := range byRun[run] {
			if msg.Order <= r.cursors[run] {
				continue
			}
			newMessages = append(newMessages, msg.Content)
			r.cursors[run] = msg.Order
		}
	}
	return newMessages, nil
}
