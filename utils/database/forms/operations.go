package forms

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"moderation-bot/model"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a form does not exist or belongs to a
// different chat than the caller supplied.
var ErrNotFound = errors.New("form not found")

// Store gives the workflow its view of the forms table. Forms are an
// append-only audit trail: rows are never deleted.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// CreateForm inserts a new pending form and returns its ID. Failures
// propagate to the caller; a blind retry could create a duplicate form.
func (s *Store) CreateForm(chatID, senderID, raw string, formType model.FormType) (int64, error) {
	form := model.Form{
		ChatID:    chatID,
		SenderID:  senderID,
		Type:      formType,
		Context:   raw,
		Status:    model.FormStatusPending,
		CreatedAt: time.Now().Unix(),
	}

	query := `INSERT INTO forms (chat_id, sender_id, type, context, status, result, reviewer_id, message_id, created_at, decided_at)
			  VALUES (:chat_id, :sender_id, :type, :context, :status, :result, :reviewer_id, :message_id, :created_at, :decided_at)`
	result, err := s.db.NamedExec(query, form)
	if err != nil {
		return 0, fmt.Errorf("failed to insert form: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// GetForm retrieves a form by ID. A non-empty chatID scopes the lookup to
// that chat; a form created elsewhere reports ErrNotFound so forms cannot
// be actioned from a different chat.
func (s *Store) GetForm(id int64, chatID string) (*model.Form, error) {
	var form model.Form
	var err error
	if chatID != "" {
		err = s.db.Get(&form, "SELECT * FROM forms WHERE id = ? AND chat_id = ?", id, chatID)
	} else {
		err = s.db.Get(&form, "SELECT * FROM forms WHERE id = ?", id)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get form %d: %w", id, err)
	}
	return &form, nil
}

// UpdateFormStatus applies a terminal status to a still-pending form and
// returns the number of rows affected. Zero rows means the form was
// already decided (or belongs to another chat) and the caller lost the
// race; the condition on status substitutes for a lock.
func (s *Store) UpdateFormStatus(id int64, chatID string, status model.FormStatus, result, reviewerID string) (int64, error) {
	query := `UPDATE forms SET status = ?, result = ?, reviewer_id = ?, decided_at = ?
			  WHERE id = ? AND status = ?`
	args := []interface{}{status, result, reviewerID, time.Now().Unix(), id, model.FormStatusPending}
	if chatID != "" {
		query += " AND chat_id = ?"
		args = append(args, chatID)
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update status for form %d: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected for form %d: %w", id, err)
	}
	return rowsAffected, nil
}

// SetFormMessageID records the announcement message posted for a form so
// a later decision can edit it.
func (s *Store) SetFormMessageID(id int64, messageID string) error {
	_, err := s.db.Exec("UPDATE forms SET message_id = ? WHERE id = ?", messageID, id)
	if err != nil {
		return fmt.Errorf("failed to set message ID for form %d: %w", id, err)
	}
	return nil
}

// PendingForms retrieves forms awaiting review, oldest first. An empty
// chatID returns pending forms across all chats.
func (s *Store) PendingForms(chatID string) ([]model.Form, error) {
	var records []model.Form
	var err error
	if chatID != "" {
		err = s.db.Select(&records, "SELECT * FROM forms WHERE status = ? AND chat_id = ? ORDER BY id", model.FormStatusPending, chatID)
	} else {
		err = s.db.Select(&records, "SELECT * FROM forms WHERE status = ? ORDER BY id", model.FormStatusPending)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending forms: %w", err)
	}
	return records, nil
}
