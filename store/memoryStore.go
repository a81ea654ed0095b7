package store

import "sync"

type MemoryStore struct {
	mu       sync.RWMutex
	messages []Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(m []Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m...)
	return nil
}

func (s *MemoryStore) Messages(publisher string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var messages []Message
	for _, msg := range s.messages {
		if msg.Publisher == publisher {
			messages = append(messages, msg)
		}
	}
	sortByOrder(messages)
	return messages, nil
}
