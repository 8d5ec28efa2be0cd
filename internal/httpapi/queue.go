package httpapi

import (
	"context"
	"net/http"

	"boothq/internal/models"
	"boothq/internal/queue"
)

type queueApplyRequest struct {
	BoothID int64 `json:"booth_id"`
}

func (h *Handler) handleQueueApply(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	session, ok := h.requireStudent(w, r)
	if !ok {
		return
	}
	var req queueApplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.BoothID <= 0 {
		writeFail(w, http.StatusBadRequest, "booth_id is required")
		return
	}

	entry, err := h.queue.Apply(r.Context(), session.SubjectID, req.BoothID)
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Entry models.QueueEntry `json:"entry"`
	}{response{OK: true, Message: "queue spot reserved"}, entry})
}

func (h *Handler) handleQueueMine(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	session, ok := h.requireStudent(w, r)
	if !ok {
		return
	}
	entries, err := h.queue.ListStudentQueue(r.Context(), session.SubjectID)
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Entries []models.StudentQueueView `json:"entries"`
	}{response{OK: true}, entries})
}

type entryRequest struct {
	EntryID int64 `json:"entry_id"`
}

func (h *Handler) handleQueueCancel(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	session, ok := h.requireStudent(w, r)
	if !ok {
		return
	}
	var req entryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EntryID <= 0 {
		writeFail(w, http.StatusBadRequest, "entry_id is required")
		return
	}
	if err := h.queue.Cancel(r.Context(), req.EntryID, session.SubjectID); err != nil {
		failFor(w, err)
		return
	}
	writeOK(w, "reservation cancelled")
}

type queueListRequest struct {
	BoothID int64 `json:"booth_id"`
}

func (h *Handler) handleQueueList(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if _, ok := h.requireOperator(w, r); !ok {
		return
	}
	var req queueListRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.BoothID <= 0 {
		writeFail(w, http.StatusBadRequest, "booth_id is required")
		return
	}
	entries, err := h.queue.ListBoothQueue(r.Context(), req.BoothID)
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Entries []models.QueueEntryView `json:"entries"`
	}{response{OK: true}, entries})
}

func (h *Handler) handleQueueCall(w http.ResponseWriter, r *http.Request) {
	h.handleCallAction(w, r, h.queue.Call, "student called")
}

func (h *Handler) handleQueueRecall(w http.ResponseWriter, r *http.Request) {
	h.handleCallAction(w, r, h.queue.Recall, "student re-called")
}

type callResponse struct {
	response
	Entry   models.QueueEntry `json:"entry"`
	SMSSent bool              `json:"sms_sent"`
	Warning string            `json:"warning,omitempty"`
}

func (h *Handler) handleCallAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, entryID int64) (queue.CallResult, error), message string) {
	if !requirePost(w, r) {
		return
	}
	if _, ok := h.requireOperator(w, r); !ok {
		return
	}
	var req entryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EntryID <= 0 {
		writeFail(w, http.StatusBadRequest, "entry_id is required")
		return
	}

	result, err := action(r.Context(), req.EntryID)
	if err != nil {
		failFor(w, err)
		return
	}
	if !result.SMSSent {
		message += ", but the SMS could not be sent"
	}
	writeJSON(w, http.StatusOK, callResponse{
		response: response{OK: true, Message: message},
		Entry:    result.Entry,
		SMSSent:  result.SMSSent,
		Warning:  result.Warning,
	})
}

func (h *Handler) handleQueueComplete(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, h.queue.Complete, "entry completed")
}

func (h *Handler) handleQueueRevert(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, h.queue.Revert, "entry returned to waiting")
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, entryID int64) (queue.TransitionResult, error), message string) {
	if !requirePost(w, r) {
		return
	}
	if _, ok := h.requireOperator(w, r); !ok {
		return
	}
	var req entryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EntryID <= 0 {
		writeFail(w, http.StatusBadRequest, "entry_id is required")
		return
	}

	result, err := action(r.Context(), req.EntryID)
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Entry   models.QueueEntry `json:"entry"`
		Warning string            `json:"warning,omitempty"`
	}{response{OK: true, Message: message}, result.Entry, result.Warning})
}
