package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// mockMessageRepository — in-memory stub for testing
// ---------------------------------------------------------------------------

type mockMessageRepository struct {
	saveFunc     func(ctx context.Context, msg *model.Message) error
	listFunc     func(ctx context.Context) ([]*model.Message, error)
	markReadFunc func(ctx context.Context, id int64) (*model.Message, error)
}

func (m *mockMessageRepository) Save(ctx context.Context, msg *model.Message) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) List(ctx context.Context) ([]*model.Message, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockMessageRepository) MarkRead(ctx context.Context, id int64) (*model.Message, error) {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, id)
	}
	return nil, nil
}

// recordingNotifier captures every notified message.
type recordingNotifier struct {
	notified []model.Message
}

func (n *recordingNotifier) Notify(msg model.Message) {
	n.notified = append(n.notified, msg)
}

func validInput() CreateMessageInput {
	return CreateMessageInput{
		Name:    "Alice",
		Email:   "alice@example.com",
		Subject: "Hello",
		Body:    "Just saying hi.",
	}
}

// ---------------------------------------------------------------------------
// Create — validation
// ---------------------------------------------------------------------------

func TestMessageService_Create_Valid(t *testing.T) {
	var saved *model.Message
	mock := &mockMessageRepository{
		saveFunc: func(ctx context.Context, msg *model.Message) error {
			msg.ID = 1
			msg.CreatedAt = time.Now()
			saved = msg
			return nil
		},
	}
	svc := NewMessageService(mock, nil)

	msg, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatal("expected Save to be called")
	}
	if msg.ID != 1 {
		t.Errorf("expected store-assigned id, got %d", msg.ID)
	}
	if msg.IsRead {
		t.Error("new message must be unread")
	}
}

func TestMessageService_Create_MissingFields(t *testing.T) {
	cases := map[string]CreateMessageInput{
		"name":    {Email: "a@b.com", Subject: "s", Body: "b"},
		"email":   {Name: "n", Subject: "s", Body: "b"},
		"subject": {Name: "n", Email: "a@b.com", Body: "b"},
		"message": {Name: "n", Email: "a@b.com", Subject: "s"},
	}

	for field, in := range cases {
		saveCalled := false
		mock := &mockMessageRepository{
			saveFunc: func(ctx context.Context, msg *model.Message) error {
				saveCalled = true
				return nil
			},
		}
		svc := NewMessageService(mock, nil)

		_, err := svc.Create(context.Background(), in)

		var invalid *InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("missing %s: expected InvalidInputError, got %v", field, err)
			continue
		}
		if saveCalled {
			t.Errorf("missing %s: nothing should be persisted", field)
		}
	}
}

// TestMessageService_Create_WhitespaceOnly verifies fields are required
// after trimming.
func TestMessageService_Create_WhitespaceOnly(t *testing.T) {
	mock := &mockMessageRepository{}
	svc := NewMessageService(mock, nil)

	in := validInput()
	in.Body = "   \t\n  "
	_, err := svc.Create(context.Background(), in)

	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidInputError for whitespace-only body, got %v", err)
	}
}

func TestMessageService_Create_TrimsFields(t *testing.T) {
	var saved *model.Message
	mock := &mockMessageRepository{
		saveFunc: func(ctx context.Context, msg *model.Message) error {
			saved = msg
			return nil
		},
	}
	svc := NewMessageService(mock, nil)

	_, err := svc.Create(context.Background(), CreateMessageInput{
		Name:    "  Alice  ",
		Email:   " alice@example.com ",
		Subject: " Hello ",
		Body:    " Hi there. ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Name != "Alice" || saved.Email != "alice@example.com" {
		t.Errorf("expected trimmed fields, got name=%q email=%q", saved.Name, saved.Email)
	}
}

func TestMessageService_Create_EmailValidation(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"bob@example.com", true},
		{"first.last@sub.domain.org", true},
		{"bob@example", false},         // no dot after @
		{"bobexample.com", false},      // no @
		{"bob bob@example.com", false}, // whitespace
		{"@example.com", false},
		{"bob@", false},
		{"", false},
	}

	for _, c := range cases {
		mock := &mockMessageRepository{}
		svc := NewMessageService(mock, nil)

		in := validInput()
		in.Email = c.email
		_, err := svc.Create(context.Background(), in)

		var invalid *InvalidInputError
		if c.valid && err != nil {
			t.Errorf("%q: expected success, got %v", c.email, err)
		}
		if !c.valid && !errors.As(err, &invalid) {
			t.Errorf("%q: expected InvalidInputError, got %v", c.email, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Create — id monotonicity against an in-memory store
// ---------------------------------------------------------------------------

func TestMessageService_Create_MonotonicIDs(t *testing.T) {
	var nextID int64
	mock := &mockMessageRepository{
		saveFunc: func(ctx context.Context, msg *model.Message) error {
			nextID++
			msg.ID = nextID
			msg.CreatedAt = time.Now()
			return nil
		},
	}
	svc := NewMessageService(mock, nil)

	var lastID int64
	for i := 0; i < 3; i++ {
		msg, err := svc.Create(context.Background(), validInput())
		if err != nil {
			t.Fatalf("create %d: unexpected error: %v", i, err)
		}
		if msg.ID <= lastID {
			t.Fatalf("create %d: id %d not greater than previous %d", i, msg.ID, lastID)
		}
		lastID = msg.ID
	}
}

// ---------------------------------------------------------------------------
// Create — notification hook
// ---------------------------------------------------------------------------

func TestMessageService_Create_NotifiesStoredRecord(t *testing.T) {
	mock := &mockMessageRepository{
		saveFunc: func(ctx context.Context, msg *model.Message) error {
			msg.ID = 9
			msg.CreatedAt = time.Now()
			return nil
		},
	}
	notifier := &recordingNotifier{}
	svc := NewMessageService(mock, notifier)

	if _, err := svc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.notified) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.notified))
	}
	if notifier.notified[0].ID != 9 {
		t.Errorf("notification must carry the stored record, got id=%d", notifier.notified[0].ID)
	}
}

func TestMessageService_Create_NoNotifyOnSaveError(t *testing.T) {
	mock := &mockMessageRepository{
		saveFunc: func(ctx context.Context, msg *model.Message) error {
			return errors.New("insert failed")
		},
	}
	notifier := &recordingNotifier{}
	svc := NewMessageService(mock, notifier)

	if _, err := svc.Create(context.Background(), validInput()); err == nil {
		t.Fatal("expected an error")
	}
	if len(notifier.notified) != 0 {
		t.Error("a failed create must not notify")
	}
}

func TestMessageService_Create_NoNotifyOnInvalidInput(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewMessageService(&mockMessageRepository{}, notifier)

	in := validInput()
	in.Email = "not-an-email"
	if _, err := svc.Create(context.Background(), in); err == nil {
		t.Fatal("expected an error")
	}
	if len(notifier.notified) != 0 {
		t.Error("a rejected create must not notify")
	}
}

// ---------------------------------------------------------------------------
// List / MarkRead passthrough
// ---------------------------------------------------------------------------

func TestMessageService_List(t *testing.T) {
	want := []*model.Message{{ID: 2}, {ID: 1}}
	mock := &mockMessageRepository{
		listFunc: func(ctx context.Context) ([]*model.Message, error) {
			return want, nil
		},
	}
	svc := NewMessageService(mock, nil)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 {
		t.Errorf("expected repository order preserved, got %v", got)
	}
}

func TestMessageService_MarkRead_NotFound(t *testing.T) {
	mock := &mockMessageRepository{
		markReadFunc: func(ctx context.Context, id int64) (*model.Message, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewMessageService(mock, nil)

	_, err := svc.MarkRead(context.Background(), 999999)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMessageService_MarkRead_Idempotent(t *testing.T) {
	read := &model.Message{ID: 1, IsRead: true}
	calls := 0
	mock := &mockMessageRepository{
		markReadFunc: func(ctx context.Context, id int64) (*model.Message, error) {
			calls++
			return read, nil
		},
	}
	svc := NewMessageService(mock, nil)

	for i := 0; i < 2; i++ {
		msg, err := svc.MarkRead(context.Background(), 1)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i+1, err)
		}
		if !msg.IsRead {
			t.Errorf("call %d: expected is_read=true", i+1)
		}
	}
	if calls != 2 {
		t.Errorf("expected 2 repository calls, got %d", calls)
	}
}

// sanity check against accidental changes to the validation messages
func TestInvalidInputError_Message(t *testing.T) {
	in := validInput()
	in.Email = "bob@example"
	err := in.Validate()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "email") {
		t.Errorf("expected the email field in the message, got %q", err.Error())
	}
}
