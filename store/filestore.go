package store

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// FileStore keeps messages as JSON lines in a single file.
type FileStore struct {
	mu   sync.Mutex
	file *os.File
}

func NewFileStore(filename string) (*FileStore, error) {
	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open store file")
	}
	return &FileStore{file: file}, nil
}

func (s *FileStore) Save(m []Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	enc := json.NewEncoder(s.file)
	for _, msg := range m {
		if err := enc.Encode(msg); err != nil {
			return errors.Wrap(err, "failed to write message")
		}
	}
	return nil
}

func (s *FileStore) Messages(publisher string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "failed to rewind store file")
	}
	var messages []Message
	scanner := bufio.NewScanner(s.file)
	for scanner.Scan() {
		var msg Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			return nil, errors.Wrap(err, "malformed message line")
		}
		if msg.Publisher == publisher {
			messages = append(messages, msg)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read store file")
	}
	sortByOrder(messages)
	return messages, nil
}

func (s *FileStore) Close() error {
	return s.file.Close()
}
