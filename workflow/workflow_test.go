package workflow

import (
	"errors"
	"sync"
	"testing"
	"time"

	"moderation-bot/commands"
	"moderation-bot/model"
	"moderation-bot/utils/database/forms"
)

type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	forms  map[int64]*model.Form

	createErr error
	updateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{forms: make(map[int64]*model.Form)}
}

func (f *fakeStore) CreateForm(chatID, senderID, raw string, formType model.FormType) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.forms[f.nextID] = &model.Form{
		ID:        f.nextID,
		ChatID:    chatID,
		SenderID:  senderID,
		Type:      formType,
		Context:   raw,
		Status:    model.FormStatusPending,
		CreatedAt: time.Now().Unix(),
	}
	return f.nextID, nil
}

func (f *fakeStore) GetForm(id int64, chatID string) (*model.Form, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	form, ok := f.forms[id]
	if !ok || (chatID != "" && form.ChatID != chatID) {
		return nil, forms.ErrNotFound
	}
	cp := *form
	return &cp, nil
}

// UpdateFormStatus mirrors the SQL conditional update: the status check
// and the write happen atomically, and losers see zero rows affected.
func (f *fakeStore) UpdateFormStatus(id int64, chatID string, status model.FormStatus, result, reviewerID string) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	form, ok := f.forms[id]
	if !ok || form.Status != model.FormStatusPending || (chatID != "" && form.ChatID != chatID) {
		return 0, nil
	}
	form.Status = status
	form.Result = result
	form.ReviewerID = reviewerID
	form.DecidedAt = time.Now().Unix()
	return 1, nil
}

func (f *fakeStore) SetFormMessageID(id int64, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if form, ok := f.forms[id]; ok {
		form.MessageID = messageID
	}
	return nil
}

func (f *fakeStore) PendingForms(chatID string) ([]model.Form, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Form
	for _, form := range f.forms {
		if form.Status == model.FormStatusPending && (chatID == "" || form.ChatID == chatID) {
			out = append(out, *form)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu          sync.Mutex
	posted      []int64
	announced   []model.FormStatus
	senderNotes []string
}

func (n *fakeNotifier) PostForm(f *model.Form) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.posted = append(n.posted, f.ID)
	return "msg-1", nil
}

func (n *fakeNotifier) AnnounceDecision(f *model.Form) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.announced = append(n.announced, f.Status)
	return nil
}

func (n *fakeNotifier) NotifySender(senderID, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.senderNotes = append(n.senderNotes, text)
	return nil
}

func testConfig() *model.Config {
	return &model.Config{
		AdminIDs:      []string{"258671626", "42514462"},
		CancelReasons: []string{"игрок не найден в базе данных сервера.", "игрок уже был наказан.", "перевыдать"},
	}
}

func newTestWorkflow() (*Workflow, *fakeStore, *fakeNotifier) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	return New(store, notifier, testConfig()), store, notifier
}

func TestCreatePersistsPendingForm(t *testing.T) {
	wf, store, notifier := newTestWorkflow()

	form, err := wf.Create("100", "5", "/ban Grif 7 Cheating | Overseer")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if form.Status != model.FormStatusPending {
		t.Errorf("expected pending status, got %s", form.Status)
	}
	if form.Type != model.FormTypeBan {
		t.Errorf("expected ban type, got %s", form.Type)
	}

	stored, err := store.GetForm(form.ID, "100")
	if err != nil {
		t.Fatalf("expected stored form, got %v", err)
	}
	if stored.MessageID != "msg-1" {
		t.Errorf("expected announcement message recorded, got %q", stored.MessageID)
	}
	if len(notifier.posted) != 1 {
		t.Fatalf("expected one announcement, got %d", len(notifier.posted))
	}
}

func TestCreateRejectsInvalidCommand(t *testing.T) {
	wf, store, _ := newTestWorkflow()

	_, err := wf.Create("100", "5", "/mute Nick7 30 reason text | Signer")
	if !errors.Is(err, commands.ErrInvalidNickname) {
		t.Fatalf("expected ErrInvalidNickname, got %v", err)
	}
	if len(store.forms) != 0 {
		t.Errorf("expected no form persisted on parse failure")
	}
}

func TestAcceptByNonAdmin(t *testing.T) {
	wf, store, notifier := newTestWorkflow()
	form, _ := wf.Create("100", "5", "/ban Grif 7 Cheating | Overseer")

	_, err := wf.Accept("100", "999", form.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	stored, _ := store.GetForm(form.ID, "100")
	if stored.Status != model.FormStatusPending {
		t.Errorf("expected form to stay pending, got %s", stored.Status)
	}
	if len(notifier.announced) != 0 {
		t.Errorf("expected no decision announcement, got %d", len(notifier.announced))
	}
}

func TestAcceptRecordsReviewer(t *testing.T) {
	wf, store, _ := newTestWorkflow()
	form, _ := wf.Create("100", "5", "/ban Grif 7 Cheating | Overseer")

	decided, err := wf.Accept("100", "258671626", form.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if decided.Status != model.FormStatusAccepted {
		t.Errorf("expected accepted status, got %s", decided.Status)
	}

	stored, _ := store.GetForm(form.ID, "100")
	if stored.ReviewerID != "258671626" {
		t.Errorf("expected reviewer 258671626, got %q", stored.ReviewerID)
	}
	if stored.DecidedAt == 0 {
		t.Error("expected decided_at to be set")
	}
}

func TestAcceptIsIdempotent(t *testing.T) {
	wf, _, notifier := newTestWorkflow()
	form, _ := wf.Create("100", "5", "/ban Grif 7 Cheating | Overseer")

	if _, err := wf.Accept("100", "258671626", form.ID); err != nil {
		t.Fatalf("first accept: expected nil error, got %v", err)
	}
	_, err := wf.Accept("100", "42514462", form.ID)
	if !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("second accept: expected ErrAlreadyDecided, got %v", err)
	}
	if len(notifier.announced) != 1 {
		t.Errorf("expected exactly one decision announcement, got %d", len(notifier.announced))
	}
}

func TestConcurrentAcceptsDecideOnce(t *testing.T) {
	wf, store, _ := newTestWorkflow()
	form, _ := wf.Create("100", "5", "/ban Grif 7 Cheating | Overseer")

	admins := []string{"258671626", "42514462"}
	errs := make([]error, len(admins))
	var wg sync.WaitGroup
	for idx, admin := range admins {
		wg.Add(1)
		go func(idx int, admin string) {
			defer wg.Done()
			_, errs[idx] = wf.Accept("100", admin, form.ID)
		}(idx, admin)
	}
	wg.Wait()

	var succeeded, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrAlreadyDecided):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || lost != 1 {
		t.Fatalf("expected exactly one winner and one loser, got %d/%d", succeeded, lost)
	}

	stored, _ := store.GetForm(form.ID, "100")
	if stored.Status != model.FormStatusAccepted {
		t.Errorf("expected accepted status, got %s", stored.Status)
	}
}

func TestAcceptUnknownForm(t *testing.T) {
	wf, _, _ := newTestWorkflow()

	_, err := wf.Accept("100", "258671626", 404)
	if !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided for unknown form, got %v", err)
	}
}

func TestAcceptFromWrongChat(t *testing.T) {
	wf, store, _ := newTestWorkflow()
	form, _ := wf.Create("100", "5", "/ban Grif 7 Cheating | Overseer")

	_, err := wf.Accept("200", "258671626", form.ID)
	if !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided for cross-chat accept, got %v", err)
	}

	stored, _ := store.GetForm(form.ID, "100")
	if stored.Status != model.FormStatusPending {
		t.Errorf("expected form to stay pending, got %s", stored.Status)
	}
}

func TestRejectStoresReason(t *testing.T) {
	wf, store, _ := newTestWorkflow()
	form, _ := wf.Create("100", "5", "/mute May_Lens 30 Оск. | D. Fererra")

	reason := "игрок уже был наказан."
	if _, err := wf.Reject("100", "258671626", form.ID, reason); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	stored, _ := store.GetForm(form.ID, "100")
	if stored.Status != model.FormStatusRejected {
		t.Errorf("expected rejected status, got %s", stored.Status)
	}
	if stored.Result != reason {
		t.Errorf("expected result %q, got %q", reason, stored.Result)
	}
}

func TestReissueNotifiesSender(t *testing.T) {
	wf, store, notifier := newTestWorkflow()
	form, _ := wf.Create("100", "5", "/mute May_Lens 30 Оск. | D. Fererra")

	if _, err := wf.Reissue("100", "258671626", form.ID); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	stored, _ := store.GetForm(form.ID, "100")
	if stored.Status != model.FormStatusReissued {
		t.Errorf("expected reissued status, got %s", stored.Status)
	}
	if len(notifier.senderNotes) != 1 {
		t.Fatalf("expected a resubmission notice to the sender, got %d", len(notifier.senderNotes))
	}
}

func TestLookupIsChatScoped(t *testing.T) {
	wf, _, _ := newTestWorkflow()
	form, _ := wf.Create("100", "5", "/ban Grif 7 Cheating | Overseer")

	if _, err := wf.Lookup("200", form.ID); !errors.Is(err, forms.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrong chat, got %v", err)
	}
	if _, err := wf.Lookup("", form.ID); err != nil {
		t.Fatalf("expected unscoped lookup to succeed, got %v", err)
	}
}

func TestCreatePropagatesStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("datastore unavailable")
	notifier := &fakeNotifier{}
	wf := New(store, notifier, testConfig())

	_, err := wf.Create("100", "5", "/ban Grif 7 Cheating | Overseer")
	if err == nil {
		t.Fatal("expected persistence error to propagate")
	}
	if len(notifier.posted) != 0 {
		t.Errorf("expected no announcement after persistence failure")
	}
}
