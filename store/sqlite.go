package store

import (
	"database/sql"
	"iter"

	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS messages (
		publisher TEXT NOT NULL,
		run       TEXT NOT NULL DEFAULT '',
		"order"   INTEGER NOT NULL,
		content   TEXT NOT NULL
	);`
	insertSQL = `INSERT INTO messages (publisher, run, "order", content) VALUES (?, ?, ?, ?)`
	selectSQL = `SELECT publisher, run, "order", content FROM messages WHERE publisher = ? ORDER BY "order", rowid`
)

// SQLiteStore keeps messages in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create messages table")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(m []Message) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to start transaction")
	}
	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "failed to prepare insert")
	}
	defer stmt.Close()
	for _, msg := range m {
		if _, err := stmt.Exec(msg.Publisher, msg.Run, msg.Order, msg.Content); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "failed to insert message")
		}
	}
	return errors.Wrap(tx.Commit(), "failed to commit messages")
}

// Scan streams the messages of a publisher in order. A query or scan
// failure is yielded once and ends the sequence.
func (s *SQLiteStore) Scan(publisher string) iter.Seq2[Message, error] {
	return func(yield func(Message, error) bool) {
		rows, err := s.db.Query(selectSQL, publisher)
		if err != nil {
			yield(Message{}, errors.Wrap(err, "failed to query messages"))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var msg Message
			if err := rows.Scan(&msg.Publisher, &msg.Run, &msg.Order, &msg.Content); err != nil {
				yield(Message{}, errors.Wrap(err, "failed to scan message"))
				return
			}
			if !yield(msg, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Message{}, errors.Wrap(err, "failed to read messages"))
		}
	}
}

func (s *SQLiteStore) Messages(publisher string) ([]Message, error) {
	var messages []Message
	for msg, err := range s.Scan(publisher) {
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
