package queue

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"boothq/internal/models"
	"boothq/internal/store"
)

type fakeStore struct {
	applyFn         func(ctx context.Context, input store.ApplyInput) (models.QueueEntry, error)
	listBoothFn     func(ctx context.Context, boothID int64) ([]models.QueueEntryView, error)
	listStudentFn   func(ctx context.Context, studentID int64) ([]models.StudentQueueView, error)
	getDetailFn     func(ctx context.Context, entryID int64) (store.QueueEntryDetail, error)
	markCalledFn    func(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error)
	markCompletedFn func(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error)
	markWaitingFn   func(ctx context.Context, entryID int64) (models.QueueEntry, string, error)
	deleteFn        func(ctx context.Context, entryID int64) error
	notifyFn        func(ctx context.Context, notification models.Notification) error
}

func (f fakeStore) Apply(ctx context.Context, input store.ApplyInput) (models.QueueEntry, error) {
	if f.applyFn == nil {
		return models.QueueEntry{}, nil
	}
	return f.applyFn(ctx, input)
}

func (f fakeStore) ListBoothQueue(ctx context.Context, boothID int64) ([]models.QueueEntryView, error) {
	if f.listBoothFn == nil {
		return nil, nil
	}
	return f.listBoothFn(ctx, boothID)
}

func (f fakeStore) ListStudentQueue(ctx context.Context, studentID int64) ([]models.StudentQueueView, error) {
	if f.listStudentFn == nil {
		return nil, nil
	}
	return f.listStudentFn(ctx, studentID)
}

func (f fakeStore) GetEntryDetail(ctx context.Context, entryID int64) (store.QueueEntryDetail, error) {
	if f.getDetailFn == nil {
		return store.QueueEntryDetail{}, nil
	}
	return f.getDetailFn(ctx, entryID)
}

func (f fakeStore) MarkCalled(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error) {
	if f.markCalledFn == nil {
		return models.QueueEntry{}, models.StatusWaiting, nil
	}
	return f.markCalledFn(ctx, entryID, at)
}

func (f fakeStore) MarkCompleted(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error) {
	if f.markCompletedFn == nil {
		return models.QueueEntry{}, models.StatusCalled, nil
	}
	return f.markCompletedFn(ctx, entryID, at)
}

func (f fakeStore) MarkWaiting(ctx context.Context, entryID int64) (models.QueueEntry, string, error) {
	if f.markWaitingFn == nil {
		return models.QueueEntry{}, models.StatusCalled, nil
	}
	return f.markWaitingFn(ctx, entryID)
}

func (f fakeStore) DeleteEntry(ctx context.Context, entryID int64) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, entryID)
}

func (f fakeStore) InsertNotification(ctx context.Context, notification models.Notification) error {
	if f.notifyFn == nil {
		return nil
	}
	return f.notifyFn(ctx, notification)
}

type fakeSender struct {
	err      error
	messages []string
	to       []string
}

func (f *fakeSender) Send(ctx context.Context, recipient, message string) error {
	f.to = append(f.to, recipient)
	f.messages = append(f.messages, message)
	return f.err
}

func newTestEngine(st fakeStore, sender *fakeSender) *Engine {
	e := NewEngine(st, sender)
	e.now = func() time.Time { return time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC) }
	return e
}

func callDetail() store.QueueEntryDetail {
	return store.QueueEntryDetail{
		Entry:         models.QueueEntry{ID: 7, StudentID: 3, BoothID: 5, Position: 2, Status: models.StatusWaiting},
		StudentName:   "Kim",
		StudentPhone:  "010-1234-5678",
		BoothName:     "Robotics",
		BoothLocation: "Gym B",
	}
}

func TestCallSendsComposedMessage(t *testing.T) {
	sender := &fakeSender{}
	st := fakeStore{
		getDetailFn: func(ctx context.Context, entryID int64) (store.QueueEntryDetail, error) {
			return callDetail(), nil
		},
		markCalledFn: func(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error) {
			return models.QueueEntry{ID: entryID, Status: models.StatusCalled, CalledAt: &at}, models.StatusWaiting, nil
		},
	}
	engine := newTestEngine(st, sender)

	result, err := engine.Call(context.Background(), 7)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !result.SMSSent {
		t.Fatal("expected SMSSent")
	}
	if result.Warning != "" {
		t.Fatalf("unexpected warning %q", result.Warning)
	}
	if len(sender.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.messages))
	}
	want := "[Robotics] it is your turn; please arrive at Gym B within 3 minutes."
	if sender.messages[0] != want {
		t.Fatalf("message = %q, want %q", sender.messages[0], want)
	}
	if sender.to[0] != "+821012345678" {
		t.Fatalf("recipient = %q, want normalized form", sender.to[0])
	}
}

func TestCallSucceedsWhenSendFails(t *testing.T) {
	sender := &fakeSender{err: errors.New("gateway down")}
	var logged models.Notification
	st := fakeStore{
		getDetailFn: func(ctx context.Context, entryID int64) (store.QueueEntryDetail, error) {
			return callDetail(), nil
		},
		markCalledFn: func(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error) {
			return models.QueueEntry{ID: entryID, Status: models.StatusCalled}, models.StatusWaiting, nil
		},
		notifyFn: func(ctx context.Context, n models.Notification) error {
			logged = n
			return nil
		},
	}
	engine := newTestEngine(st, sender)

	result, err := engine.Call(context.Background(), 7)
	if err != nil {
		t.Fatalf("Call should not fail on sms error: %v", err)
	}
	if result.SMSSent {
		t.Fatal("expected SMSSent false")
	}
	if result.Entry.Status != models.StatusCalled {
		t.Fatalf("status = %q, want called", result.Entry.Status)
	}
	if logged.Status != models.NotificationFailed {
		t.Fatalf("logged status = %q, want failed", logged.Status)
	}
}

func TestCallFromNonCanonicalStatusWarns(t *testing.T) {
	sender := &fakeSender{}
	st := fakeStore{
		getDetailFn: func(ctx context.Context, entryID int64) (store.QueueEntryDetail, error) {
			return callDetail(), nil
		},
		markCalledFn: func(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error) {
			return models.QueueEntry{ID: entryID, Status: models.StatusCalled}, models.StatusCompleted, nil
		},
	}
	engine := newTestEngine(st, sender)

	result, err := engine.Call(context.Background(), 7)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.Warning == "" {
		t.Fatal("expected warning for completed→called transition")
	}
	if !strings.Contains(result.Warning, models.StatusCompleted) {
		t.Fatalf("warning %q should name previous status", result.Warning)
	}
}

func TestRecallUsesRecallMessage(t *testing.T) {
	sender := &fakeSender{}
	st := fakeStore{
		getDetailFn: func(ctx context.Context, entryID int64) (store.QueueEntryDetail, error) {
			return callDetail(), nil
		},
		markCalledFn: func(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error) {
			return models.QueueEntry{ID: entryID, Status: models.StatusCalled}, models.StatusCalled, nil
		},
	}
	engine := newTestEngine(st, sender)

	result, err := engine.Recall(context.Background(), 7)
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if result.Warning != "" {
		t.Fatalf("recall from called is canonical, got warning %q", result.Warning)
	}
	if !strings.Contains(sender.messages[0], "re-call") {
		t.Fatalf("message %q missing re-call marker", sender.messages[0])
	}
}

func TestCallWithoutPhoneLogsFailure(t *testing.T) {
	sender := &fakeSender{}
	var logged models.Notification
	st := fakeStore{
		getDetailFn: func(ctx context.Context, entryID int64) (store.QueueEntryDetail, error) {
			detail := callDetail()
			detail.StudentPhone = ""
			return detail, nil
		},
		notifyFn: func(ctx context.Context, n models.Notification) error {
			logged = n
			return nil
		},
	}
	engine := newTestEngine(st, sender)

	result, err := engine.Call(context.Background(), 7)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.SMSSent {
		t.Fatal("expected no sms without a phone number")
	}
	if len(sender.messages) != 0 {
		t.Fatal("sender should not be used without a recipient")
	}
	if logged.Status != models.NotificationFailed {
		t.Fatalf("logged status = %q, want failed", logged.Status)
	}
}

func TestCompleteNoNotification(t *testing.T) {
	sender := &fakeSender{}
	st := fakeStore{
		markCompletedFn: func(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error) {
			return models.QueueEntry{ID: entryID, Status: models.StatusCompleted, CompletedAt: &at}, models.StatusCalled, nil
		},
	}
	engine := newTestEngine(st, sender)

	result, err := engine.Complete(context.Background(), 7)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if result.Warning != "" {
		t.Fatalf("unexpected warning %q", result.Warning)
	}
	if len(sender.messages) != 0 {
		t.Fatal("complete must not send sms")
	}
}

func TestCompleteFromWaitingWarns(t *testing.T) {
	st := fakeStore{
		markCompletedFn: func(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error) {
			return models.QueueEntry{ID: entryID, Status: models.StatusCompleted}, models.StatusWaiting, nil
		},
	}
	engine := newTestEngine(st, &fakeSender{})

	result, err := engine.Complete(context.Background(), 7)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if result.Warning == "" {
		t.Fatal("expected warning for waiting→completed transition")
	}
}

func TestRevertKeepsPosition(t *testing.T) {
	st := fakeStore{
		markWaitingFn: func(ctx context.Context, entryID int64) (models.QueueEntry, string, error) {
			return models.QueueEntry{ID: entryID, Position: 4, Status: models.StatusWaiting}, models.StatusCalled, nil
		},
	}
	engine := newTestEngine(st, &fakeSender{})

	result, err := engine.Revert(context.Background(), 7)
	if err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if result.Entry.Position != 4 {
		t.Fatalf("position = %d, want 4", result.Entry.Position)
	}
	if result.Entry.CalledAt != nil || result.Entry.CompletedAt != nil {
		t.Fatal("revert must clear timestamps")
	}
}

func TestCancelRejectsOtherStudents(t *testing.T) {
	deleted := false
	st := fakeStore{
		getDetailFn: func(ctx context.Context, entryID int64) (store.QueueEntryDetail, error) {
			return callDetail(), nil
		},
		deleteFn: func(ctx context.Context, entryID int64) error {
			deleted = true
			return nil
		},
	}
	engine := newTestEngine(st, &fakeSender{})

	err := engine.Cancel(context.Background(), 7, 99)
	if !errors.Is(err, store.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if deleted {
		t.Fatal("entry must not be deleted for a different student")
	}

	if err := engine.Cancel(context.Background(), 7, 3); err != nil {
		t.Fatalf("Cancel by owner: %v", err)
	}
	if !deleted {
		t.Fatal("owner cancel should delete")
	}
}

func TestApplyPassesTimestamp(t *testing.T) {
	var got store.ApplyInput
	st := fakeStore{
		applyFn: func(ctx context.Context, input store.ApplyInput) (models.QueueEntry, error) {
			got = input
			return models.QueueEntry{ID: 1, StudentID: input.StudentID, BoothID: input.BoothID, Position: 1, Status: models.StatusWaiting}, nil
		},
	}
	engine := newTestEngine(st, &fakeSender{})

	entry, err := engine.Apply(context.Background(), 3, 5)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.StudentID != 3 || got.BoothID != 5 {
		t.Fatalf("input = %+v", got)
	}
	if got.AppliedAt.IsZero() {
		t.Fatal("AppliedAt must be stamped")
	}
	if entry.Status != models.StatusWaiting {
		t.Fatalf("status = %q", entry.Status)
	}
}
