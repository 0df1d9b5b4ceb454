package model

// FormStatus is the review state of a punishment form.
type FormStatus string

const (
	FormStatusPending  FormStatus = "pending"
	FormStatusAccepted FormStatus = "accepted"
	FormStatusRejected FormStatus = "rejected"
	FormStatusReissued FormStatus = "reissued"
)

// FormType is the kind of punishment a form requests.
type FormType string

const (
	FormTypeMute FormType = "mute"
	FormTypeWarn FormType = "warn"
	FormTypeBan  FormType = "ban"
)

// Form represents a single punishment request in the database.
// The database table will be named 'forms'.
type Form struct {
	ID         int64      `db:"id"` // Primary Key, Auto-increment
	ChatID     string     `db:"chat_id"`
	SenderID   string     `db:"sender_id"`
	Type       FormType   `db:"type"`
	Context    string     `db:"context"` // Original command text
	Status     FormStatus `db:"status"`
	Result     string     `db:"result"` // Rejection reason, empty otherwise
	ReviewerID string     `db:"reviewer_id"`
	MessageID  string     `db:"message_id"` // Announcement message, for later edits
	CreatedAt  int64      `db:"created_at"`
	DecidedAt  int64      `db:"decided_at"`
}

// Decided reports whether the form has left the pending state.
func (f *Form) Decided() bool {
	return f.Status != FormStatusPending
}
