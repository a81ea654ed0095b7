package numbers

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/mr-joshcrane/numbers/store"
)

// Message is a single published notification.
type Message = store.Message

type Publisher struct {
	name      string
	run       string
	transport Transport
	logger    *slog.Logger
	counter   atomic.Int64

	mu  sync.Mutex
	err error
}

type PublisherOptions func(*Publisher)

func WithRun(run string) PublisherOptions {
	return func(p *Publisher) {
		p.run = run
	}
}

func WithPublisherLogger(logger *slog.Logger) PublisherOptions {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher returns a publisher writing to os.Stdout unless a transport
// option says otherwise.
func NewPublisher(name string, options ...PublisherOptions) *Publisher {
	p := &Publisher{
		name:      name,
		run:       uuid.NewString(),
		transport: &WriterTransport{w: os.Stdout},
		logger:    discardLogger,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *Publisher) Name() string {
	return p.name
}

// Published reports how many messages have been stamped with an Order.
func (p *Publisher) Published() int64 {
	return p.counter.Load()
}

// Err returns the transport failure that broke the publisher, if any.
func (p *Publisher) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Publish sends each string as its own message. Once a transport fails,
// every later call returns that same error without publishing.
func (p *Publisher) Publish(str string, more ...string) error {
	if err := p.Err(); err != nil {
		return err
	}
	s := append([]string{str}, more...)
	for _, data := range s {
		m := Message{
			Publisher: p.name,
			Run:       p.run,
			Order:     int(p.counter.Add(1)),
			Content:   data,
		}
		if err := p.transport.Publish(m); err != nil {
			p.logger.Debug("transport failed", "publisher", p.name, "order", m.Order, "err", err)
			p.mu.Lock()
			if p.err == nil {
				p.err = err
			}
			p.mu.Unlock()
			return err
		}
	}
	return nil
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
