package workflow

import (
	"errors"
	"fmt"
	"log"
	"time"

	"moderation-bot/commands"
	"moderation-bot/model"
	"moderation-bot/utils"
	"moderation-bot/utils/database/forms"
)

var (
	// ErrForbidden is returned when the acting user is not in the admin set.
	ErrForbidden = errors.New("user is not allowed to review forms")
	// ErrAlreadyDecided is returned when a form is absent, decided, or lost
	// a concurrent review race. All three read as "already handled".
	ErrAlreadyDecided = errors.New("form already decided")
)

// Store is the persistence the workflow needs. Implemented by
// utils/database/forms.Store.
type Store interface {
	CreateForm(chatID, senderID, raw string, formType model.FormType) (int64, error)
	GetForm(id int64, chatID string) (*model.Form, error)
	UpdateFormStatus(id int64, chatID string, status model.FormStatus, result, reviewerID string) (int64, error)
	SetFormMessageID(id int64, messageID string) error
	PendingForms(chatID string) ([]model.Form, error)
}

// Notifier delivers the workflow's side effects back to the platform.
type Notifier interface {
	// PostForm announces a new form with its review controls and returns
	// the announcement message ID.
	PostForm(form *model.Form) (string, error)
	// AnnounceDecision updates the announcement after a terminal transition.
	AnnounceDecision(form *model.Form) error
	// NotifySender sends a direct message to the form's submitter.
	NotifySender(senderID, text string) error
}

// Workflow drives a form through pending -> accepted/rejected/reissued.
// Every state-changing call checks authorization first and relies on the
// store's conditional update for idempotency.
type Workflow struct {
	store    Store
	notifier Notifier
	cfg      *model.Config
}

func New(store Store, notifier Notifier, cfg *model.Config) *Workflow {
	return &Workflow{store: store, notifier: notifier, cfg: cfg}
}

// Create validates a punishment command and persists it as a pending form.
// Any chat member may submit; authorization is enforced at review time.
// Parse failures are returned as the commands package sentinels.
func (w *Workflow) Create(chatID, senderID, text string) (*model.Form, error) {
	req, err := commands.ParsePunishment(text)
	if err != nil {
		return nil, err
	}

	id, err := w.store.CreateForm(chatID, senderID, text, req.Type)
	if err != nil {
		return nil, err
	}

	form := &model.Form{
		ID:        id,
		ChatID:    chatID,
		SenderID:  senderID,
		Type:      req.Type,
		Context:   text,
		Status:    model.FormStatusPending,
		CreatedAt: time.Now().Unix(),
	}

	messageID, err := w.notifier.PostForm(form)
	if err != nil {
		log.Printf("Failed to announce form %d: %v", id, err)
		return form, nil
	}
	form.MessageID = messageID
	if err := w.store.SetFormMessageID(id, messageID); err != nil {
		log.Printf("Failed to record announcement for form %d: %v", id, err)
	}

	log.Printf("Created form #%d of type %s in chat %s", id, req.Type, chatID)
	return form, nil
}

// Accept marks a pending form accepted and records the reviewer.
func (w *Workflow) Accept(chatID, adminID string, formID int64) (*model.Form, error) {
	return w.decide(chatID, adminID, formID, model.FormStatusAccepted, "")
}

// Reject marks a pending form rejected with the given reason.
func (w *Workflow) Reject(chatID, adminID string, formID int64, reason string) (*model.Form, error) {
	return w.decide(chatID, adminID, formID, model.FormStatusRejected, reason)
}

// Reissue closes a pending form with a request to resubmit a corrected
// one. The row keeps its terminal state; a resubmission creates a new form.
func (w *Workflow) Reissue(chatID, adminID string, formID int64) (*model.Form, error) {
	form, err := w.decide(chatID, adminID, formID, model.FormStatusReissued, "перевыдать")
	if err != nil {
		return nil, err
	}
	notice := fmt.Sprintf("Ваша форма #%d отклонена с требованием перевыдать. Исправьте форму и отправьте её заново.", form.ID)
	if err := w.notifier.NotifySender(form.SenderID, notice); err != nil {
		log.Printf("Failed to notify sender of form %d: %v", form.ID, err)
	}
	return form, nil
}

// Lookup fetches a form; a non-empty chatID restricts visibility to that chat.
func (w *Workflow) Lookup(chatID string, formID int64) (*model.Form, error) {
	return w.store.GetForm(formID, chatID)
}

// Pending lists forms awaiting review; empty chatID spans all chats.
func (w *Workflow) Pending(chatID string) ([]model.Form, error) {
	return w.store.PendingForms(chatID)
}

func (w *Workflow) decide(chatID, adminID string, formID int64, status model.FormStatus, result string) (*model.Form, error) {
	if !utils.IsAdmin(w.cfg.AdminIDs, adminID) {
		log.Printf("Forbidden: user %s tried to set form %d to %s", adminID, formID, status)
		return nil, ErrForbidden
	}

	form, err := w.store.GetForm(formID, chatID)
	if errors.Is(err, forms.ErrNotFound) {
		return nil, ErrAlreadyDecided
	}
	if err != nil {
		return nil, err
	}
	if form.Decided() {
		return nil, ErrAlreadyDecided
	}

	// The status condition in the update is the only lock: whoever gets
	// zero rows affected lost the race and must not re-apply effects.
	rowsAffected, err := w.store.UpdateFormStatus(formID, chatID, status, result, adminID)
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrAlreadyDecided
	}

	form.Status = status
	form.Result = result
	form.ReviewerID = adminID
	form.DecidedAt = time.Now().Unix()

	if err := w.notifier.AnnounceDecision(form); err != nil {
		log.Printf("Failed to announce decision for form %d: %v", form.ID, err)
	}

	log.Printf("Form #%d set to %s by %s", formID, status, adminID)
	return form, nil
}
