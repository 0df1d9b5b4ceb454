package forms

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Init initializes the database and ensures the forms table is created.
func Init(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	formsSchema := `CREATE TABLE IF NOT EXISTS forms (
	          id INTEGER PRIMARY KEY AUTOINCREMENT,
	          chat_id TEXT NOT NULL,
	          sender_id TEXT NOT NULL,
	          type TEXT NOT NULL,
	          context TEXT NOT NULL,
	          status TEXT NOT NULL DEFAULT 'pending',
	          result TEXT DEFAULT '',
	          reviewer_id TEXT DEFAULT '',
	          message_id TEXT DEFAULT '',
	          created_at INTEGER NOT NULL,
	          decided_at INTEGER DEFAULT 0
	      );`
	if _, err := db.Exec(formsSchema); err != nil {
		return nil, fmt.Errorf("failed to create forms table: %w", err)
	}

	return db, nil
}
