package numbers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/mr-joshcrane/numbers/store"
)

type Transport interface {
	Publish(Message) error
}

func WithTransport(t Transport) PublisherOptions {
	return func(p *Publisher) {
		p.transport = t
	}
}

// WriterTransport prints message content, one line per message.

type WriterTransport struct {
	w io.Writer
}

func NewWriterTransport(w io.Writer) *WriterTransport {
	return &WriterTransport{w: w}
}

func WithWriterTransport(w io.Writer) PublisherOptions {
	return WithTransport(NewWriterTransport(w))
}

func (t *WriterTransport) Publish(m Message) error {
	_, err := io.WriteString(t.w, m.Content+"\n")
	return err
}

// InMemoryTransport is a Transport that deals with messages within process

type InMemoryTransport struct {
	messages *[]Message
}

func WithInMemoryTransport(messages *[]Message) PublisherOptions {
	return WithTransport(&InMemoryTransport{messages: messages})
}

func (t *InMemoryTransport) Publish(m Message) error {
	*t.messages = append(*t.messages, m)
	return nil
}

// StoreTransport records every message in a store.Store.

type StoreTransport struct {
	Store store.Store
}

func WithStoreTransport(s store.Store) PublisherOptions {
	return WithTransport(&StoreTransport{Store: s})
}

func (t *StoreTransport) Publish(m Message) error {
	return t.Store.Save([]Message{m})
}

// MultiTransport publishes to each transport in turn and stops at the
// first failure.
type MultiTransport []Transport

func (t MultiTransport) Publish(m Message) error {
	for _, transport := range t {
		if err := transport.Publish(m); err != nil {
			return err
		}
	}
	return nil
}

// EventBridgeTransport is a Transport that ships messages via AWS EventBridge

const EventSource = "numbers"

type EventBridgeClient interface {
	PutEvents(ctx context.Context, events *eventbridge.PutEventsInput, opts ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

var _ EventBridgeClient = (*eventbridge.Client)(nil)

type EventBridgeTransport struct {
	EventBridge EventBridgeClient
}

func WithEventBridgeTransport(eventBridge EventBridgeClient) PublisherOptions {
	return WithTransport(&EventBridgeTransport{EventBridge: eventBridge})
}

func (t *EventBridgeTransport) Publish(message Message) error {
	detail, err := json.Marshal(message)
	if err != nil {
		return err
	}
	putEventsInput := &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				Detail:     aws.String(string(detail)),
				DetailType: aws.String(EventSource),
				Source:     aws.String(EventSource),
			},
		},
	}
	resp, err := t.EventBridge.PutEvents(context.Background(), putEventsInput)
	if err != nil {
		return fmt.Errorf("put events: %w", err)
	}
	if resp.FailedEntryCount > 0 {
		return fmt.Errorf("failed to publish message %d: %s", message.Order, failureReason(resp))
	}
	return nil
}

func failureReason(resp *eventbridge.PutEventsOutput) string {
	for _, entry := range resp.Entries {
		if entry.ErrorMessage != nil {
			return aws.ToString(entry.ErrorMessage)
		}
	}
	return "unknown error"
}
