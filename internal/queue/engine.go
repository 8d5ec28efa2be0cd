package queue

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"boothq/internal/models"
	"boothq/internal/notify"
	"boothq/internal/store"
)

// Store is the slice of the datastore the engine needs.
type Store interface {
	store.QueueStore
	InsertNotification(ctx context.Context, notification models.Notification) error
}

// Engine implements the queue lifecycle: apply, call, recall, complete,
// revert, cancel. Status transitions are authoritative; SMS delivery is
// best effort and never rolls a transition back.
type Engine struct {
	store  Store
	sender notify.Sender
	now    func() time.Time
}

func NewEngine(st Store, sender notify.Sender) *Engine {
	return &Engine{store: st, sender: sender, now: time.Now}
}

// TransitionResult is the outcome of a status transition. Warning is set
// when the transition was applied from a non-canonical previous status.
type TransitionResult struct {
	Entry   models.QueueEntry
	Warning string
}

// CallResult extends TransitionResult with the notification outcome.
type CallResult struct {
	Entry   models.QueueEntry
	SMSSent bool
	Warning string
}

func (e *Engine) Apply(ctx context.Context, studentID, boothID int64) (models.QueueEntry, error) {
	return e.store.Apply(ctx, store.ApplyInput{
		StudentID: studentID,
		BoothID:   boothID,
		AppliedAt: e.now(),
	})
}

func (e *Engine) ListBoothQueue(ctx context.Context, boothID int64) ([]models.QueueEntryView, error) {
	return e.store.ListBoothQueue(ctx, boothID)
}

func (e *Engine) ListStudentQueue(ctx context.Context, studentID int64) ([]models.StudentQueueView, error) {
	return e.store.ListStudentQueue(ctx, studentID)
}

// Call marks the entry called and notifies the student. The message is
// composed from the booth the entry belongs to, not caller input.
func (e *Engine) Call(ctx context.Context, entryID int64) (CallResult, error) {
	return e.callWith(ctx, entryID, "call",
		"[%s] it is your turn; please arrive at %s within 3 minutes.")
}

// Recall re-notifies an already-called student without changing their
// position. The entry is re-stamped as called.
func (e *Engine) Recall(ctx context.Context, entryID int64) (CallResult, error) {
	return e.callWith(ctx, entryID, "recall",
		"[%s] this is a re-call; please arrive at %s within 3 minutes.")
}

func (e *Engine) callWith(ctx context.Context, entryID int64, action, template string) (CallResult, error) {
	detail, err := e.store.GetEntryDetail(ctx, entryID)
	if err != nil {
		return CallResult{}, err
	}
	entry, prev, err := e.store.MarkCalled(ctx, entryID, e.now())
	if err != nil {
		return CallResult{}, err
	}

	result := CallResult{Entry: entry}
	if !store.Canonical(action, prev) {
		result.Warning = fmt.Sprintf("entry was %s, not a canonical %s target", prev, action)
	}

	message := fmt.Sprintf(template, detail.BoothName, detail.BoothLocation)
	result.SMSSent = e.dispatch(ctx, detail, message)
	return result, nil
}

// dispatch sends the SMS and records the attempt. Both the send and the
// log insert are best effort.
func (e *Engine) dispatch(ctx context.Context, detail store.QueueEntryDetail, message string) bool {
	recipient := notify.NormalizePhone(detail.StudentPhone)
	status := models.NotificationSent
	sent := true
	if recipient == "" {
		status = models.NotificationFailed
		sent = false
	} else if err := e.sender.Send(ctx, recipient, message); err != nil {
		log.Printf("queue: sms send to %s failed: %v", recipient, err)
		status = models.NotificationFailed
		sent = false
	}

	record := models.Notification{
		ID:        uuid.NewString(),
		StudentID: detail.Entry.StudentID,
		BoothID:   detail.Entry.BoothID,
		Recipient: recipient,
		Message:   message,
		Status:    status,
		CreatedAt: e.now(),
	}
	if err := e.store.InsertNotification(ctx, record); err != nil {
		log.Printf("queue: notification log insert failed: %v", err)
	}
	return sent
}

// Complete marks the entry completed. No notification is sent.
func (e *Engine) Complete(ctx context.Context, entryID int64) (TransitionResult, error) {
	entry, prev, err := e.store.MarkCompleted(ctx, entryID, e.now())
	if err != nil {
		return TransitionResult{}, err
	}
	result := TransitionResult{Entry: entry}
	if !store.Canonical("complete", prev) {
		result.Warning = fmt.Sprintf("entry was %s, not a canonical complete target", prev)
	}
	return result, nil
}

// Revert returns the entry to waiting and clears both timestamps. The
// original position is kept, so the student resumes their old spot.
func (e *Engine) Revert(ctx context.Context, entryID int64) (TransitionResult, error) {
	entry, prev, err := e.store.MarkWaiting(ctx, entryID)
	if err != nil {
		return TransitionResult{}, err
	}
	result := TransitionResult{Entry: entry}
	if !store.Canonical("revert", prev) {
		result.Warning = fmt.Sprintf("entry was %s, not a canonical revert target", prev)
	}
	return result, nil
}

// Cancel deletes the student's own entry. Positions of other entries are
// untouched; the vacated position is simply never reused.
func (e *Engine) Cancel(ctx context.Context, entryID, studentID int64) error {
	detail, err := e.store.GetEntryDetail(ctx, entryID)
	if err != nil {
		return err
	}
	if detail.Entry.StudentID != studentID {
		return store.ErrEntryNotFound
	}
	return e.store.DeleteEntry(ctx, entryID)
}
