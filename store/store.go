package store

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type Message struct {
	Publisher string
	Run       string `json:",omitempty"`
	Order     int
	Content   string
}

type Store interface {
	// Save appends messages to the store.
	Save([]Message) error
	// Messages returns every message of a publisher, ordered by Order.
	Messages(publisher string) ([]Message, error)
}

// Open picks a Store implementation from dsn:
//
//	memory:          in-process MemoryStore
//	dynamodb:<table> DynamoDBStore using the default AWS config
//	*.db, *.sqlite   SQLiteStore
//	anything else    FileStore (JSON lines)
func Open(dsn string) (Store, error) {
	switch {
	case dsn == "":
		return nil, errors.New("empty store dsn")
	case dsn == "memory:":
		return NewMemoryStore(), nil
	case strings.HasPrefix(dsn, "dynamodb:"):
		return NewDynamoDBStore(strings.TrimPrefix(dsn, "dynamodb:"))
	case strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"):
		return NewSQLiteStore(dsn)
	default:
		return NewFileStore(dsn)
	}
}

// Close closes s if it holds resources.
func Close(s Store) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func sortByOrder(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Order < messages[j].Order
	})
}
