package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"boothq/internal/certificate"
	"boothq/internal/queue"
	"boothq/internal/store"
)

type Handler struct {
	store store.Store
	queue *queue.Engine
	certs *certificate.Engine
	opts  Options
}

type Options struct {
	AdminPassword string
	BaseURL       string
	EventName     string
	SealPaths     []string
	UploadDir     string
	SessionTTL    time.Duration
}

func NewHandler(st store.Store, queueEngine *queue.Engine, certEngine *certificate.Engine, opts Options) *Handler {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 8 * time.Hour
	}
	return &Handler{store: st, queue: queueEngine, certs: certEngine, opts: opts}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)

	mux.HandleFunc("/api/students", h.handleStudentRegister)
	mux.HandleFunc("/api/students/login", h.handleStudentLogin)
	mux.HandleFunc("/api/students/check-id", h.handleStudentCheckID)
	mux.HandleFunc("/api/operators", h.handleOperatorRegister)
	mux.HandleFunc("/api/operators/login", h.handleOperatorLogin)
	mux.HandleFunc("/api/operators/check-id", h.handleOperatorCheckID)
	mux.HandleFunc("/api/logout", h.handleLogout)

	mux.HandleFunc("/api/booths", h.handleBoothList)
	mux.HandleFunc("/api/booths/create", h.handleBoothCreate)
	mux.HandleFunc("/api/booths/update", h.handleBoothUpdate)
	mux.HandleFunc("/api/booths/mine", h.handleBoothMine)

	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.opts.UploadDir))))

	mux.HandleFunc("/api/checkins", h.handleCheckIn)
	mux.HandleFunc("/api/records", h.handleRecords)
	mux.HandleFunc("/api/certificates/issue", h.handleCertificateIssue)
	mux.HandleFunc("/api/certificates/pdf", h.handleCertificatePDF)

	mux.HandleFunc("/api/queue/apply", h.handleQueueApply)
	mux.HandleFunc("/api/queue/mine", h.handleQueueMine)
	mux.HandleFunc("/api/queue/cancel", h.handleQueueCancel)
	mux.HandleFunc("/api/queue/list", h.handleQueueList)
	mux.HandleFunc("/api/queue/call", h.handleQueueCall)
	mux.HandleFunc("/api/queue/recall", h.handleQueueRecall)
	mux.HandleFunc("/api/queue/complete", h.handleQueueComplete)
	mux.HandleFunc("/api/queue/revert", h.handleQueueRevert)

	mux.HandleFunc("/admin/login", h.handleAdminLogin)
	mux.HandleFunc("/admin/api/students", h.handleAdminStudents)
	mux.HandleFunc("/admin/api/students/clear", h.handleAdminStudentsClear)
	mux.HandleFunc("/admin/api/operators", h.handleAdminOperators)
	mux.HandleFunc("/admin/api/operators/active", h.handleAdminOperatorActive)
	mux.HandleFunc("/admin/api/operators/clear", h.handleAdminOperatorsClear)
	mux.HandleFunc("/admin/api/booths", h.handleAdminBooths)
	mux.HandleFunc("/admin/api/booths/clear", h.handleAdminBoothsClear)
	mux.HandleFunc("/admin/api/checkins", h.handleAdminCheckIns)
	mux.HandleFunc("/admin/api/certificates", h.handleAdminCertificates)
	mux.HandleFunc("/admin/certificates/", h.handleAdminCertificatePDF)
	mux.HandleFunc("/admin/api/queue-status", h.handleAdminQueueStatus)
	mux.HandleFunc("/admin/event-name", h.handleAdminEventName)
	mux.HandleFunc("/admin/seal", h.handleAdminSeal)
	mux.HandleFunc("/admin/qr/", h.handleAdminQR)
	mux.HandleFunc("/admin/export", h.handleAdminExport)
	mux.HandleFunc("/admin/clear-all-data", h.handleAdminClearAll)
	return mux
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func writeOK(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, response{OK: true, Message: message})
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{OK: false, Message: message})
}

// failFor maps a store error to the response envelope. Domain outcomes
// stay 200 with ok=false; only an unreachable datastore is a 500.
func failFor(w http.ResponseWriter, err error) {
	status, message := mapError(err)
	writeFail(w, status, message)
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrStudentNotFound):
		return http.StatusOK, "student not found"
	case errors.Is(err, store.ErrOperatorNotFound):
		return http.StatusOK, "operator not found"
	case errors.Is(err, store.ErrBoothNotFound):
		return http.StatusOK, "booth not found"
	case errors.Is(err, store.ErrEntryNotFound):
		return http.StatusOK, "queue entry not found"
	case errors.Is(err, store.ErrRecordNotFound):
		return http.StatusOK, "record not found"
	case errors.Is(err, store.ErrCertificateNotFound):
		return http.StatusOK, "certificate not found"
	case errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusOK, "invalid id or password"
	case errors.Is(err, store.ErrDuplicateLoginID):
		return http.StatusOK, "this id is already in use"
	case errors.Is(err, store.ErrDuplicateIdentity):
		return http.StatusOK, "this student is already registered"
	case errors.Is(err, store.ErrDuplicateBoothName):
		return http.StatusOK, "a booth with this name already exists"
	case errors.Is(err, store.ErrDuplicateApplication):
		return http.StatusOK, "you already have an active spot in this queue"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// eventName reads the configured event name from settings, falling back
// to the deploy-time default.
func (h *Handler) eventName(r *http.Request) string {
	value, err := h.store.GetSetting(r.Context(), "event_name")
	if err != nil || value == "" {
		return h.opts.EventName
	}
	return value
}
