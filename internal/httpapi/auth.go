package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"boothq/internal/store"
)

const sessionCookie = "session_id"

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, kind string, subjectID int64) error {
	session := store.Session{
		SessionID: uuid.NewString(),
		Kind:      kind,
		SubjectID: subjectID,
		ExpiresAt: time.Now().Add(h.opts.SessionTTL),
	}
	if err := h.store.CreateSession(r.Context(), session); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.SessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})
	return nil
}

func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	if id := sessionIDFromRequest(r); id != "" {
		_ = h.store.DeleteSession(r.Context(), id)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// requireSession resolves the caller's session and enforces its kind.
// A missing or expired session answers 401 and returns false.
func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request, kind string) (store.Session, bool) {
	sessionID := sessionIDFromRequest(r)
	if sessionID == "" {
		writeFail(w, http.StatusUnauthorized, "login required")
		return store.Session{}, false
	}
	session, err := h.store.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			writeFail(w, http.StatusUnauthorized, "session expired, please log in again")
			return store.Session{}, false
		}
		writeFail(w, http.StatusInternalServerError, "internal server error")
		return store.Session{}, false
	}
	if session.Kind != kind {
		writeFail(w, http.StatusUnauthorized, "this action needs a "+kind+" session")
		return store.Session{}, false
	}
	return session, true
}

func (h *Handler) requireStudent(w http.ResponseWriter, r *http.Request) (store.Session, bool) {
	return h.requireSession(w, r, store.SessionStudent)
}

func (h *Handler) requireOperator(w http.ResponseWriter, r *http.Request) (store.Session, bool) {
	return h.requireSession(w, r, store.SessionOperator)
}

func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	_, ok := h.requireSession(w, r, store.SessionAdmin)
	return ok
}

func sessionIDFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
